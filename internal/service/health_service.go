package service

import (
	"context"
	"fmt"

	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

type healthService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewHealthService creates a health checker backed by the product store.
func NewHealthService(productRepo repository.ProductRepository, logger zerolog.Logger) HealthService {
	return &healthService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "health").Logger(),
	}
}

// Check pings the backing store.
func (s *healthService) Check(ctx context.Context) error {
	if err := s.productRepo.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
