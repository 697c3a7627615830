// internal/handlers/sales_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func TestSalesHandler_RecordSale(t *testing.T) {
	saleDate := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockSalesService)
		expectedStatus int
		errorContains  string
	}{
		{
			name: "records_sale",
			body: `{"sku":"tile-001","quantity":10,"customerName":"Asha","saleDate":"2026-06-01T10:00:00Z"}`,
			setupMocks: func(m *mocks.MockSalesService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error) {
						assert.Equal(t, "tile-001", req.SKU)
						assert.Equal(t, int64(10), req.Quantity)
						require.NotNil(t, req.SaleDate)
						assert.True(t, saleDate.Equal(*req.SaleDate))
						return &domain.SaleReceipt{
							SaleID:       uuid.New(),
							SKU:          "TILE-001",
							QuantitySold: 10,
							UnitPrice:    decimal.RequireFromString("45.5"),
							TotalAmount:  decimal.RequireFromString("455"),
							StockBefore:  25,
							StockAfter:   15,
							IsLowStock:   true,
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_sku",
			body:           `{"quantity":1}`,
			setupMocks:     func(*mocks.MockSalesService) {},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "sku is required",
		},
		{
			name:           "bad_sale_date",
			body:           `{"sku":"A","quantity":1,"saleDate":"01/06/2026"}`,
			setupMocks:     func(*mocks.MockSalesService) {},
			expectedStatus: http.StatusBadRequest,
			errorContains:  "saleDate must be",
		},
		{
			name: "unknown_sku",
			body: `{"sku":"NOPE","quantity":1}`,
			setupMocks: func(m *mocks.MockSalesService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewNotFoundError("Product with SKU NOPE not found"))
			},
			expectedStatus: http.StatusNotFound,
			errorContains:  "Product with SKU NOPE not found",
		},
		{
			name: "oversized_sale",
			body: `{"sku":"TILE-001","quantity":26}`,
			setupMocks: func(m *mocks.MockSalesService) {
				m.EXPECT().
					RecordSale(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewInsufficientStockError("TILE-001", 25, 26))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			errorContains:  "Insufficient stock for TILE-001. Available: 25, Requested: 26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			svc := mocks.NewMockSalesService(ctrl)
			handler := handlers.NewSalesHandler(svc, helpers.TestLogger())
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.RecordSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w.Body.Bytes())
			if tt.errorContains != "" {
				assert.Contains(t, resp.Error, tt.errorContains)
				return
			}

			var receipt domain.SaleReceipt
			require.NoError(t, json.Unmarshal(resp.Data, &receipt))
			assert.Equal(t, "TILE-001", receipt.SKU)
			assert.Equal(t, int64(15), receipt.StockAfter)
			assert.True(t, receipt.IsLowStock)
		})
	}
}

func TestSalesHandler_ListAndSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSalesService(ctrl)
	handler := handlers.NewSalesHandler(svc, helpers.TestLogger())

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 999999999, time.UTC)

	svc.EXPECT().
		ListSales(gomock.Any(), domain.SalesFilter{From: &from, To: &to, Limit: 5}).
		Return([]domain.Sale{{SaleID: uuid.New(), SKU: "A"}}, nil)

	w := httptest.NewRecorder()
	handler.ListSales(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/sales?startDate=2026-01-01&endDate=2026-01-31&limit=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)

	svc.EXPECT().
		Summary(gomock.Any(), domain.SalesFilter{}).
		Return(&domain.SalesSummary{TotalSales: 3, TopProducts: []domain.ProductRevenue{}}, nil)

	w = httptest.NewRecorder()
	handler.Summary(w, httptest.NewRequest(http.MethodGet, "/api/v1/sales/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var summary domain.SalesSummary
	require.NoError(t, json.Unmarshal(decodeResponse(t, w.Body.Bytes()).Data, &summary))
	assert.Equal(t, 3, summary.TotalSales)

	svc.EXPECT().
		SalesBySKU(gomock.Any(), "ghost").
		Return(nil, domain.NewNotFoundError("Product with SKU ghost not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/sku/ghost", nil)
	req.SetPathValue("sku", "ghost")
	w = httptest.NewRecorder()
	handler.SalesBySKU(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
