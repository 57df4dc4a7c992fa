package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// memoryProductRepository keeps products in process memory.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMemoryProductRepository creates an empty in-memory product repository.
func NewMemoryProductRepository(logger zerolog.Logger) ProductRepository {
	return &memoryProductRepository{
		products: make(map[int64]model.Product),
		now:      time.Now,
		logger:   logger.With().Str("repository", "product").Str("driver", "memory").Logger(),
	}
}

func (r *memoryProductRepository) List(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})

	return products, nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryProductRepository) Create(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = r.now().UTC()
	r.products[product.ID] = *product

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created successfully")

	return nil
}

func (r *memoryProductRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}

	patch.Apply(&p)
	r.products[id] = p

	return &p, nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *memoryProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *memoryProductRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
