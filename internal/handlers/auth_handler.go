package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/models"
	usermodel "github.com/stockpile/stockpile/internal/models/user"
	"github.com/stockpile/stockpile/internal/service"
	"github.com/stockpile/stockpile/internal/storage"
	"github.com/stockpile/stockpile/internal/validation"
)

type AuthHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger.New("auth-handler"),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req usermodel.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateCredentials(req.Username, req.Password); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			respondMessage(w, http.StatusBadRequest, "Username already exists")
			return
		}
		h.log.Error("Failed to register user: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondMessage(w, http.StatusOK, "Registration successful. You can now login.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same body for unknown user and wrong password.
			respondMessage(w, http.StatusBadRequest, "Login failed. Please try again.")
			return
		}
		h.log.Error("Failed to login: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
