package handler

import (
	"errors"
	"io"
	"net/http"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list products")
		writeError(w, r, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to retrieve product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	req, err := model.DecodeCreateProductRequest(body)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to create product")
		return
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateProductResponse{
		Message: "product created successfully",
		ID:      product.ID,
	})
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	patch, err := decodePatch(w, r)
	if err != nil {
		// An unknown id is reported as 404 whatever the body holds.
		if _, getErr := h.service.GetByID(r.Context(), id); getErr != nil {
			h.handleServiceError(w, r, getErr, "failed to update product")
			return
		}
		h.handleServiceError(w, r, err, "failed to update product")
		return
	}

	if _, err := h.service.Update(r.Context(), id, patch); err != nil {
		h.handleServiceError(w, r, err, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "product updated successfully"})
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err, "failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "product deleted successfully"})
}

// handleServiceError maps domain errors to status codes. Anything else is a
// 500 with a generic message; the cause is only logged.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var domainErr *model.DomainError

	switch {
	case model.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
	case model.IsValidation(err) && errors.As(err, &domainErr):
		writeError(w, r, http.StatusBadRequest, domainErr.Message, h.logger)
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		writeError(w, r, http.StatusInternalServerError, fallback, h.logger)
	}
}

func decodePatch(w http.ResponseWriter, r *http.Request) (model.ProductPatch, error) {
	body, err := readBody(w, r)
	if err != nil {
		return model.ProductPatch{}, model.NewValidationError(err.Error())
	}
	return model.DecodeProductPatch(body)
}

var errBodyRequired = errors.New("request body must be a JSON object")

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, errBodyRequired
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errors.New("request body too large")
		}
		return nil, errors.New("failed to read request body")
	}

	return body, nil
}
