package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// sqliteTimeLayout is fixed-width so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteProductRepository implements the ProductRepository interface using SQLite.
type sqliteProductRepository struct {
	db     *sql.DB
	now    func() time.Time
	logger zerolog.Logger
}

// NewSQLiteProductRepository creates a new SQLite-backed product repository.
func NewSQLiteProductRepository(db *sql.DB, logger zerolog.Logger) ProductRepository {
	return &sqliteProductRepository{
		db:     db,
		now:    time.Now,
		logger: logger.With().Str("repository", "product").Str("driver", "sqlite").Logger(),
	}
}

// List retrieves all products ordered by creation time, newest first.
func (r *sqliteProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanSQLiteProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *sqliteProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := r.getByID(ctx, r.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// Create inserts a new product and fills in its generated ID and timestamp.
func (r *sqliteProductRepository) Create(ctx context.Context, product *model.Product) error {
	createdAt := r.now().UTC()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO products (name, description, price, image_url, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Category,
		createdAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read generated product id")
		return fmt.Errorf("failed to read product id: %w", err)
	}

	product.ID = id
	product.CreatedAt = createdAt

	r.logger.Debug().Int64("product_id", id).Msg("product created successfully")

	return nil
}

// Update writes the patch and reads the row back in one transaction. The
// UPDATE runs first so the write lock is taken before any read.
func (r *sqliteProductRepository) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = COALESCE(?, name),
			description = COALESCE(?, description),
			price = COALESCE(?, price),
			image_url = COALESCE(?, image_url),
			category = COALESCE(?, category)
		WHERE id = ?
	`, patch.Name, patch.Description, patch.Price, patch.ImageURL, patch.Category, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found for update")
		return nil, model.ErrProductNotFound
	}

	p, err := r.getByID(ctx, tx, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to reload updated product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to commit product update")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().Int64("product_id", id).Msg("product updated successfully")

	return p, nil
}

// Delete removes a product by its ID.
func (r *sqliteProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	r.logger.Debug().Int64("product_id", id).Msg("product deleted successfully")

	return nil
}

// Count returns the number of stored products.
func (r *sqliteProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Ping runs a trivial query against the database.
func (r *sqliteProductRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *sqliteProductRepository) getByID(ctx context.Context, q queryRower, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ?
	`
	return scanSQLiteProduct(q.QueryRowContext(ctx, query, id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteProduct(row scanner) (*model.Product, error) {
	var (
		p         model.Product
		createdAt string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &createdAt)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	return &p, nil
}
