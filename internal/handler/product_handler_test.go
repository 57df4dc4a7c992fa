package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, req model.UpdateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testProducts := []model.Product{
		{ID: 2, Name: "Product 2", Price: 20.00, Category: "Cat2", CreatedAt: createdAt},
		{ID: 1, Name: "Product 1", Price: 10.00, Category: model.DefaultCategory, CreatedAt: createdAt},
	}

	tests := []struct {
		name           string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
			expectedBody: `[
				{"id":2,"name":"Product 2","description":"","price":20,"image_url":"","category":"Cat2","created_at":"2024-03-01T12:00:00Z"},
				{"id":1,"name":"Product 1","description":"","price":10,"image_url":"","category":"general","created_at":"2024-03-01T12:00:00Z"}
			]`,
		},
		{
			name:           "Empty catalogue",
			mockReturn:     []model.Product{},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to retrieve products"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			mockService.On("List", mock.Anything).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	testProduct := &model.Product{ID: 1, Name: "Product 1", Price: 10.00, Category: "Cat1", CreatedAt: time.Now()}

	tests := []struct {
		name           string
		id             string
		expectService  bool
		productID      int64
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			id:             "1",
			expectService:  true,
			productID:      1,
			mockReturn:     testProduct,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Product not found",
			id:             "999",
			expectService:  true,
			productID:      999,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-numeric ID",
			id:             "P001",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Zero ID",
			id:             "0",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Service error",
			id:             "1",
			expectService:  true,
			productID:      1,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, tt.productID).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var product model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
				assert.Equal(t, testProduct.ID, product.ID)
				assert.Equal(t, testProduct.Name, product.Name)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		expectService  bool
		expectedReq    *model.CreateProductRequest
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			body:           `{"name":"Pen","price":1.5}`,
			expectService:  true,
			expectedReq:    &model.CreateProductRequest{Name: strPtr("Pen"), Price: floatPtr(1.5)},
			mockReturn:     &model.Product{ID: 1, Name: "Pen", Price: 1.5, Category: model.DefaultCategory},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"product created successfully","id":1}`,
		},
		{
			name:          "Numeric string price is coerced",
			body:          `{"name":"Pen","price":"2.75","category":"office"}`,
			expectService: true,
			expectedReq: &model.CreateProductRequest{
				Name:     strPtr("Pen"),
				Price:    floatPtr(2.75),
				Category: strPtr("office"),
			},
			mockReturn:     &model.Product{ID: 7},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"product created successfully","id":7}`,
		},
		{
			name:           "Missing name",
			body:           `{"price":1.5}`,
			expectService:  true,
			expectedReq:    &model.CreateProductRequest{Price: floatPtr(1.5)},
			mockError:      model.ErrNameRequired,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"name and price are required"}`,
		},
		{
			name:           "Empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"request body must be a JSON object"}`,
		},
		{
			name:           "Body is an array",
			body:           `[{"name":"Pen","price":1}]`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"request body must be a JSON object"}`,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"request body must be a JSON object"}`,
		},
		{
			name:           "Non-numeric price",
			body:           `{"name":"Pen","price":"cheap"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"price must be a finite number"}`,
		},
		{
			name:           "Name with wrong type",
			body:           `{"name":42,"price":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"name must be a string"}`,
		},
		{
			name:           "Service error",
			body:           `{"name":"Pen","price":1.5}`,
			expectService:  true,
			expectedReq:    &model.CreateProductRequest{Name: strPtr("Pen"), Price: floatPtr(1.5)},
			mockError:      errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Create", mock.Anything, tt.expectedReq).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Update(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		id             string
		body           string
		expectService  bool
		expectGet      bool
		getError       error
		productID      int64
		expectedPatch  model.UpdateProductRequest
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Price only",
			id:             "1",
			body:           `{"price":12.5}`,
			expectService:  true,
			productID:      1,
			expectedPatch:  model.UpdateProductRequest{Price: floatPtr(12.5)},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"product updated successfully"}`,
		},
		{
			name:           "Null fields are left unchanged",
			id:             "1",
			body:           `{"name":null,"description":"new"}`,
			expectService:  true,
			productID:      1,
			expectedPatch:  model.UpdateProductRequest{Description: strPtr("new")},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"product updated successfully"}`,
		},
		{
			name:           "Not found",
			id:             "42",
			body:           `{"price":12.5}`,
			expectService:  true,
			productID:      42,
			expectedPatch:  model.UpdateProductRequest{Price: floatPtr(12.5)},
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product not found"}`,
		},
		{
			name:           "Invalid id",
			id:             "-3",
			body:           `{"price":12.5}`,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product not found"}`,
		},
		{
			name:           "Invalid price",
			id:             "1",
			body:           `{"price":"NaN"}`,
			expectGet:      true,
			productID:      1,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"price must be a finite number"}`,
		},
		{
			name:           "Body is not an object",
			id:             "1",
			body:           `"price"`,
			expectGet:      true,
			productID:      1,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"request body must be a JSON object"}`,
		},
		{
			name:           "Unknown id with invalid price",
			id:             "999",
			body:           `{"price":"abc"}`,
			expectGet:      true,
			getError:       model.ErrProductNotFound,
			productID:      999,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product not found"}`,
		},
		{
			name:           "Unknown id with array body",
			id:             "999",
			body:           `[1]`,
			expectGet:      true,
			getError:       model.ErrProductNotFound,
			productID:      999,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product not found"}`,
		},
		{
			name:           "Unknown id with empty body",
			id:             "999",
			body:           ``,
			expectGet:      true,
			getError:       model.ErrProductNotFound,
			productID:      999,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"product not found"}`,
		},
		{
			name:           "Invalid body and store failure",
			id:             "1",
			body:           `[1]`,
			expectGet:      true,
			getError:       errors.New("database error"),
			productID:      1,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to update product"}`,
		},
		{
			name:           "Service error",
			id:             "1",
			body:           `{}`,
			expectService:  true,
			productID:      1,
			expectedPatch:  model.UpdateProductRequest{},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to update product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Update", mock.Anything, tt.productID, tt.expectedPatch).
					Return(&model.Product{ID: tt.productID}, tt.mockError)
			}
			if tt.expectGet {
				var found *model.Product
				if tt.getError == nil {
					found = &model.Product{ID: tt.productID}
				}
				mockService.On("GetByID", mock.Anything, tt.productID).Return(found, tt.getError)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/products/"+tt.id, strings.NewReader(tt.body))
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		id             string
		expectService  bool
		productID      int64
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			id:             "3",
			expectService:  true,
			productID:      3,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			id:             "3",
			expectService:  true,
			productID:      3,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-numeric ID",
			id:             "three",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Service error",
			id:             "3",
			expectService:  true,
			productID:      3,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Delete", mock.Anything, tt.productID).Return(tt.mockError)
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/products/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"message":"product deleted successfully"}`, w.Body.String())
			} else {
				assert.NotEmpty(t, decodeError(t, w))
			}

			mockService.AssertExpectations(t)
		})
	}
}
