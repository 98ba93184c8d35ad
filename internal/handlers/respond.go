package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stockpile/stockpile/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondMessage writes {"message": ...}; the auth endpoints and delete
// use this shape.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.MessageResponse{Message: message})
}

// respondError writes {"error": ...}; the product read/update paths use
// this shape.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}
