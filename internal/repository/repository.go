package repository

import (
	"context"

	"product-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves all products, newest first.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. It returns nil, nil when
	// no such product exists.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a product and fills in its ID and CreatedAt.
	Create(ctx context.Context, product *model.Product) error

	// Update applies a partial update in a single transaction and returns the
	// stored result. Returns model.ErrProductNotFound if the ID does not exist.
	Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)

	// Delete removes a product permanently.
	// Returns model.ErrProductNotFound if the ID does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)

	// Ping runs a trivial query to check the store is reachable.
	Ping(ctx context.Context) error
}
