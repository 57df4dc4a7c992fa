package model

import (
	"encoding/json"
	"time"
)

// DefaultCategory is assigned to products created without a category.
const DefaultCategory = "general"

// Product represents a single catalogue entry.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MarshalJSON renders created_at as RFC 3339, or null when it was never set.
func (p Product) MarshalJSON() ([]byte, error) {
	var createdAt *string
	if !p.CreatedAt.IsZero() {
		s := p.CreatedAt.UTC().Format(time.RFC3339Nano)
		createdAt = &s
	}

	type product Product
	return json.Marshal(struct {
		product
		CreatedAt *string `json:"created_at"`
	}{
		product:   product(p),
		CreatedAt: createdAt,
	})
}

// ProductPatch holds the fields of a partial update. Nil fields keep their stored value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.ImageURL == nil && p.Category == nil
}

// Apply copies the set fields of the patch onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
}

// CreateProductRequest represents the request payload for creating a product.
// Pointer fields distinguish an absent key from a zero value.
type CreateProductRequest struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
}

// UpdateProductRequest represents the request payload for updating a product.
type UpdateProductRequest = ProductPatch

// CreateProductResponse is returned after a successful create.
type CreateProductResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database,omitempty"`
}
