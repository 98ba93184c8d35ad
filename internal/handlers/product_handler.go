package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/models"
	"github.com/stockpile/stockpile/internal/service"
	"github.com/stockpile/stockpile/internal/storage"
	"github.com/stockpile/stockpile/internal/validation"
)

type ProductHandler struct {
	products *service.ProductService
	log      *logger.Logger
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		products: products,
		log:      logger.New("product-handler"),
	}
}

// List returns the bare product array, matching the shape clients of the
// original API expect.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	products, err := h.products.List(r.Context())
	if err != nil {
		h.log.Error("Failed to list products: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := r.URL.Query().Get("name")

	products, err := h.products.Search(r.Context(), name)
	if err != nil {
		h.log.Error("Failed to search products: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, models.SearchProductsResponse{Products: products})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateProductPatch(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error("Failed to update product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, models.ProductResponse{Product: *product})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error("Failed to delete product %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondMessage(w, http.StatusOK, "Product deleted")
}

func productID(r *http.Request) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
