package handler

import (
	"net/http"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	service service.HealthService
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service service.HealthService, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Check handles GET /health and GET /api/health requests.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Check(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusInternalServerError, model.HealthResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:   "ok",
		Message:  "server is running",
		Database: "connected",
	})
}
