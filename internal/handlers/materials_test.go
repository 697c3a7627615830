// internal/handlers/materials_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/handlers"
	"github.com/ammerola/stockledger/test/helpers"
	"github.com/ammerola/stockledger/test/mocks"
)

// apiResponse mirrors the response envelope.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
	Field   string          `json:"field"`
	Details map[string]any  `json:"details"`
}

func decodeResponse(t *testing.T, body []byte) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestMaterialHandler_CreateMaterial(t *testing.T) {
	created := helpers.CreateTestMaterial(func(m *domain.Material) { m.SKU = "TILE-001" })

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockMaterialService)
		expectedStatus int
		validateBody   func(*testing.T, apiResponse)
	}{
		{
			name: "creates_material_with_default_reorder_level",
			body: `{"sku":"tile-001","name":"Ceramic Tile","category":"Tiles","supplier":"Acme","unitPrice":45.5}`,
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d domain.MaterialDraft) (*domain.Material, error) {
						assert.Equal(t, "tile-001", d.SKU)
						assert.Nil(t, d.ReorderLevel)
						assert.True(t, decimal.RequireFromString("45.5").Equal(d.UnitPrice))
						return created, nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.True(t, resp.Success)
				var m domain.Material
				require.NoError(t, json.Unmarshal(resp.Data, &m))
				assert.Equal(t, created.ID, m.ID)
				assert.Equal(t, "TILE-001", m.SKU)
			},
		},
		{
			name: "explicit_zero_reorder_level_is_kept",
			body: `{"sku":"X","name":"n","category":"c","supplier":"s","unitPrice":"1","reorderLevel":0}`,
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d domain.MaterialDraft) (*domain.Material, error) {
						require.NotNil(t, d.ReorderLevel)
						assert.Equal(t, int64(0), *d.ReorderLevel)
						return created, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_unit_price",
			body:           `{"sku":"X","name":"n","category":"c","supplier":"s"}`,
			setupMocks:     func(*mocks.MockMaterialService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.False(t, resp.Success)
				assert.Equal(t, "unitPrice is required", resp.Error)
				assert.Equal(t, "unitPrice", resp.Field)
			},
		},
		{
			name:           "fractional_reorder_level",
			body:           `{"sku":"X","name":"n","category":"c","supplier":"s","unitPrice":1,"reorderLevel":2.5}`,
			setupMocks:     func(*mocks.MockMaterialService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.Equal(t, "reorderLevel must be a whole number", resp.Error)
			},
		},
		{
			name:           "malformed_json",
			body:           `{"sku":`,
			setupMocks:     func(*mocks.MockMaterialService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.Equal(t, "Invalid request body", resp.Error)
				assert.Equal(t, string(domain.KindValidation), resp.Kind)
			},
		},
		{
			name: "duplicate_sku_conflicts",
			body: `{"sku":"tile-001","name":"n","category":"c","supplier":"s","unitPrice":1}`,
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewConflictError("Material with SKU TILE-001 already exists"))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.Equal(t, "Material with SKU TILE-001 already exists", resp.Error)
				assert.Equal(t, string(domain.KindConflict), resp.Kind)
			},
		},
		{
			name: "storage_failure_is_masked",
			body: `{"sku":"X","name":"n","category":"c","supplier":"s","unitPrice":1}`,
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("failed to insert material: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, resp apiResponse) {
				assert.Equal(t, "Failed to create material", resp.Error)
				assert.NotContains(t, resp.Error, "connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := mocks.NewMockMaterialService(ctrl)
			handler := handlers.NewMaterialHandler(mockService, helpers.TestLogger())
			tt.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/materials", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.CreateMaterial(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.validateBody != nil {
				tt.validateBody(t, decodeResponse(t, w.Body.Bytes()))
			}
		})
	}
}

func TestMaterialHandler_GetMaterial(t *testing.T) {
	material := helpers.CreateTestMaterial()

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockMaterialService)
		expectedStatus int
		errorMessage   string
	}{
		{
			name: "returns_material_with_recent_movements",
			id:   material.ID.String(),
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().Get(gomock.Any(), material.ID).Return(&domain.MaterialDetail{
					Material:        material,
					RecentMovements: []*domain.Movement{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid_format",
			id:             "not-a-uuid",
			setupMocks:     func(*mocks.MockMaterialService) {},
			expectedStatus: http.StatusBadRequest,
			errorMessage:   "Invalid material ID format",
		},
		{
			name: "material_not_found",
			id:   material.ID.String(),
			setupMocks: func(m *mocks.MockMaterialService) {
				m.EXPECT().Get(gomock.Any(), material.ID).Return(nil, domain.NewNotFoundError("Material not found"))
			},
			expectedStatus: http.StatusNotFound,
			errorMessage:   "Material not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := mocks.NewMockMaterialService(ctrl)
			handler := handlers.NewMaterialHandler(mockService, helpers.TestLogger())
			tt.setupMocks(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/materials/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetMaterial(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w.Body.Bytes())
			if tt.errorMessage != "" {
				assert.Equal(t, tt.errorMessage, resp.Error)
				return
			}

			var detail struct {
				ID              uuid.UUID          `json:"id"`
				SKU             string             `json:"sku"`
				RecentMovements []*domain.Movement `json:"recentMovements"`
			}
			require.NoError(t, json.Unmarshal(resp.Data, &detail))
			assert.Equal(t, material.ID, detail.ID)
			assert.Equal(t, material.SKU, detail.SKU)
			assert.NotNil(t, detail.RecentMovements)
		})
	}
}

func TestMaterialHandler_UpdateMaterial(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockMaterialService(ctrl)
	handler := handlers.NewMaterialHandler(mockService, helpers.TestLogger())

	material := helpers.CreateTestMaterial()

	mockService.EXPECT().
		Update(gomock.Any(), material.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p domain.MaterialPatch) (*domain.Material, error) {
			require.NotNil(t, p.Name)
			assert.Equal(t, "Glossy Tile", *p.Name)
			assert.Nil(t, p.SKU)
			assert.Nil(t, p.UnitPrice)
			return material, nil
		})

	// Quantity fields are not part of the patch and are silently ignored.
	body := `{"name":"Glossy Tile","availableQuantity":9999}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/materials/"+material.ID.String(), bytes.NewBufferString(body))
	req.SetPathValue("id", material.ID.String())
	w := httptest.NewRecorder()

	handler.UpdateMaterial(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w.Body.Bytes()).Success)
}

func TestMaterialHandler_DeleteAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockMaterialService(ctrl)
	handler := handlers.NewMaterialHandler(mockService, helpers.TestLogger())

	id := uuid.New()
	mockService.EXPECT().Delete(gomock.Any(), id).Return(nil)
	mockService.EXPECT().List(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/materials/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	handler.DeleteMaterial(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Material deleted successfully", decodeResponse(t, w.Body.Bytes()).Message)

	w = httptest.NewRecorder()
	handler.ListMaterials(w, httptest.NewRequest(http.MethodGet, "/api/v1/materials", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	require.NotNil(t, resp.Count)
	assert.Equal(t, 0, *resp.Count)
	assert.JSONEq(t, `[]`, string(resp.Data))
}
