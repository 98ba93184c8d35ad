package models

import "time"

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	InStock   bool      `json:"inStock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProductRequest is the explicit allow-list of updatable fields.
// Nil pointers mean "leave unchanged"; unknown JSON fields are dropped.
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	InStock  *bool    `json:"inStock,omitempty"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type SearchProductsResponse struct {
	Products []Product `json:"products"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
