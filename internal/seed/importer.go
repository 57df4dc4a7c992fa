package seed

import (
	"context"
	"fmt"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

// Importer fills an empty catalogue from a seed file.
type Importer struct {
	repo    repository.ProductRepository
	service service.ProductService
	loader  Loader
	logger  zerolog.Logger
}

// NewImporter creates a new seed importer. Records are created through
// the product service so they pass the same checks as API requests.
func NewImporter(repo repository.ProductRepository, productService service.ProductService, loader Loader, logger zerolog.Logger) *Importer {
	return &Importer{
		repo:    repo,
		service: productService,
		loader:  loader,
		logger:  logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Run imports filePath when the products table is empty. Invalid records are
// skipped; store failures abort the run.
func (i *Importer) Run(ctx context.Context, filePath string) (Result, error) {
	count, err := i.repo.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		i.logger.Info().Int("existing", count).Msg("catalogue already populated, skipping seed")
		return Result{AlreadySeeded: true}, nil
	}

	records, err := i.loader.Load(ctx, filePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load seed file: %w", err)
	}

	var result Result
	for _, rec := range records {
		req, err := model.DecodeCreateProductRequest(rec.Data)
		if err == nil {
			_, err = i.service.Create(ctx, req)
		}

		switch {
		case err == nil:
			result.Imported++
		case model.IsValidation(err):
			result.Skipped++
			i.logger.Warn().Err(err).Int("line", rec.Line).Msg("skipping invalid seed record")
		default:
			return result, fmt.Errorf("failed to import seed record on line %d: %w", rec.Line, err)
		}
	}

	i.logger.Info().
		Str("file", filePath).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("seed import finished")

	return result, nil
}
