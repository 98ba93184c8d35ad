package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stockpile/stockpile/internal/auth"
	"github.com/stockpile/stockpile/internal/middleware"
	"github.com/stockpile/stockpile/internal/models"
	"github.com/stockpile/stockpile/internal/service"
	"github.com/stockpile/stockpile/internal/storage"
)

type apiFixture struct {
	mux   *http.ServeMux
	store *storage.MemoryProductStorage
	jwt   *auth.JWTManager
}

// newAPIFixture wires the handlers the same way the server binary does,
// minus Postgres and Redis.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	userStore := storage.NewMemoryUserStorage()
	productStore := storage.NewMemoryProductStorage()

	authHandler := NewAuthHandler(service.NewUserService(userStore, jwtManager))
	productHandler := NewProductHandler(service.NewProductService(productStore, nil))
	authMW := middleware.NewAuthMiddleware(jwtManager)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", authHandler.Register)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/products", authMW.RequireAuth(productHandler.List))
	mux.HandleFunc("/api/products/search", authMW.RequireAuth(productHandler.Search))
	mux.HandleFunc("/api/products/", authMW.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			productHandler.Update(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}))

	return &apiFixture{mux: mux, store: productStore, jwt: jwtManager}
}

func (f *apiFixture) seed(t *testing.T, name string, price float64, category string, inStock bool) models.Product {
	t.Helper()
	product := models.Product{
		ID:        name + "-id",
		Name:      name,
		Price:     price,
		Category:  category,
		InStock:   inStock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := f.store.Create(context.Background(), &product); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func (f *apiFixture) token(t *testing.T) string {
	t.Helper()
	token, _, err := f.jwt.GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestListProducts_NoToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access denied. No token provided.") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestListProducts_InvalidToken(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/products", "not-a-token", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid token") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestListProducts_ReturnsBareArray(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "Laptop", 999.99, "Electronics", true)
	f.seed(t, "Desk", 149.50, "Furniture", false)

	rec := f.do(t, http.MethodGet, "/api/products", f.token(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var products []models.Product
	if err := json.NewDecoder(rec.Body).Decode(&products); err != nil {
		t.Fatalf("Expected a bare JSON array: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Laptop" || products[1].Name != "Desk" {
		t.Errorf("Unexpected order: %q, %q", products[0].Name, products[1].Name)
	}
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/products", f.token(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Errorf("Expected a JSON array, got %s", rec.Body.String())
	}
}

func TestListProducts_MethodNotAllowed(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t)

	rec := f.do(t, http.MethodPost, "/api/products", token, map[string]string{"name": "X"})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 for POST /api/products, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/products/search?name=x", token, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 for POST /api/products/search, got %d", rec.Code)
	}
}

func TestSearchProducts(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "Gaming Laptop", 1299.99, "Electronics", true)
	f.seed(t, "Laptop Stand", 39.99, "Accessories", true)
	f.seed(t, "Desk", 149.50, "Furniture", false)

	rec := f.do(t, http.MethodGet, "/api/products/search?name=laptop", f.token(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp models.SearchProductsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(resp.Products))
	}

	// Empty query matches everything.
	rec = f.do(t, http.MethodGet, "/api/products/search", f.token(t), nil)
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Products) != 3 {
		t.Errorf("Expected 3 products for empty query, got %d", len(resp.Products))
	}
}

func TestUpdateProduct_PartialMerge(t *testing.T) {
	f := newAPIFixture(t)
	seeded := f.seed(t, "Laptop", 999.99, "Electronics", true)

	rec := f.do(t, http.MethodPut, "/api/products/"+seeded.ID, f.token(t), map[string]interface{}{
		"price":   899.99,
		"inStock": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.ProductResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Product.Name != "Laptop" {
		t.Errorf("Name should be untouched, got %q", resp.Product.Name)
	}
	if resp.Product.Price != 899.99 {
		t.Errorf("Expected price 899.99, got %v", resp.Product.Price)
	}
	if resp.Product.InStock {
		t.Error("Expected inStock to be false")
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPut, "/api/products/missing", f.token(t), map[string]interface{}{
		"price": 1.0,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["error"] != "Product not found" {
		t.Errorf("Unexpected error message: %q", resp["error"])
	}
}

func TestUpdateProduct_RejectsBadPatch(t *testing.T) {
	f := newAPIFixture(t)
	seeded := f.seed(t, "Laptop", 999.99, "Electronics", true)

	rec := f.do(t, http.MethodPut, "/api/products/"+seeded.ID, f.token(t), map[string]interface{}{
		"price": -5.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative price, got %d", rec.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	f := newAPIFixture(t)
	seeded := f.seed(t, "Laptop", 999.99, "Electronics", true)

	rec := f.do(t, http.MethodDelete, "/api/products/"+seeded.ID, f.token(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Product deleted") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}

	rec = f.do(t, http.MethodDelete, "/api/products/"+seeded.ID, f.token(t), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", rec.Code)
	}
}

func TestRegisterLoginFetchFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t, "Laptop", 999.99, "Electronics", true)

	creds := map[string]string{"username": "alice", "password": "secret1"}

	rec := f.do(t, http.MethodPost, "/api/register", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("Register failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/api/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	var tokenResp models.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("Failed to decode token: %v", err)
	}
	if tokenResp.Token == "" {
		t.Fatal("Expected a token")
	}

	rec = f.do(t, http.MethodGet, "/api/products", tokenResp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 with fresh token, got %d", rec.Code)
	}
}
