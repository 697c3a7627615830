// internal/core/services/sales_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/test/helpers"
	"github.com/ammerola/stockledger/test/mocks"
)

func TestSalesService_RecordSale(t *testing.T) {
	now := time.Date(2026, 7, 1, 15, 30, 0, 0, time.UTC)
	backdated := now.AddDate(0, 0, -3)
	material := helpers.CreateTestMaterial(func(m *domain.Material) {
		m.SKU = "TILE-001"
		m.UnitPrice = decimal.RequireFromString("45.50")
		m.AvailableQuantity = 25
		m.ReorderLevel = 20
	})

	tests := []struct {
		name          string
		req           domain.SaleRequest
		setupMocks    func(*mocks.MockLedgerPoster, *mocks.MockMaterialRepository)
		expectedError bool
		errorContains string
		check         func(*testing.T, *domain.SaleReceipt)
	}{
		{
			name: "records_backdated_sale_with_customer",
			req: domain.SaleRequest{
				SKU:          "tile-001",
				Quantity:     10,
				Reference:    "INV-42",
				CustomerName: "Asha Builders",
				SaleDate:     &backdated,
			},
			setupMocks: func(p *mocks.MockLedgerPoster, mr *mocks.MockMaterialRepository) {
				mr.EXPECT().FindBySKUFold(gomock.Any(), "tile-001").Return(copyOf(material), nil)
				p.EXPECT().
					Post(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e domain.LedgerEntry) (*domain.Posting, error) {
						assert.Equal(t, domain.MovementOutward, e.Type)
						assert.Equal(t, domain.ReasonSales, e.Reason)
						assert.Equal(t, "Customer: Asha Builders", e.Notes)
						assert.Equal(t, backdated, e.OccurredAt)
						return &domain.Posting{
							Movement: &domain.Movement{
								ID: uuid.New(), MaterialID: material.ID, Type: e.Type, Quantity: e.Quantity,
								Reason: e.Reason, Reference: e.Reference, Notes: e.Notes, CreatedAt: e.OccurredAt,
							},
							Material:    copyOf(material, func(m *domain.Material) { m.AvailableQuantity = 15 }),
							StockBefore: 25,
							StockAfter:  15,
						}, nil
					})
			},
			check: func(t *testing.T, r *domain.SaleReceipt) {
				assert.Equal(t, "TILE-001", r.SKU)
				assert.Equal(t, "455", r.TotalAmount.String())
				assert.Equal(t, "Asha Builders", r.CustomerName)
				assert.Equal(t, "INV-42", r.Reference)
				assert.Equal(t, backdated, r.SaleDate)
				assert.Equal(t, int64(25), r.StockBefore)
				assert.Equal(t, int64(15), r.StockAfter)
				assert.True(t, r.IsLowStock)
			},
		},
		{
			name:          "missing_sku",
			req:           domain.SaleRequest{Quantity: 1},
			setupMocks:    func(*mocks.MockLedgerPoster, *mocks.MockMaterialRepository) {},
			expectedError: true,
			errorContains: "sku is required",
		},
		{
			name:          "non_positive_quantity",
			req:           domain.SaleRequest{SKU: "TILE-001", Quantity: -2},
			setupMocks:    func(*mocks.MockLedgerPoster, *mocks.MockMaterialRepository) {},
			expectedError: true,
			errorContains: "quantity must be greater than 0",
		},
		{
			name: "unknown_sku",
			req:  domain.SaleRequest{SKU: "NOPE-1", Quantity: 1},
			setupMocks: func(_ *mocks.MockLedgerPoster, mr *mocks.MockMaterialRepository) {
				mr.EXPECT().FindBySKUFold(gomock.Any(), "NOPE-1").Return(nil, nil)
			},
			expectedError: true,
			errorContains: "Product with SKU NOPE-1 not found",
		},
		{
			name: "insufficient_stock_never_posts",
			req:  domain.SaleRequest{SKU: "TILE-001", Quantity: 26},
			setupMocks: func(_ *mocks.MockLedgerPoster, mr *mocks.MockMaterialRepository) {
				mr.EXPECT().FindBySKUFold(gomock.Any(), "TILE-001").Return(copyOf(material), nil)
			},
			expectedError: true,
			errorContains: "Insufficient stock for TILE-001. Available: 25, Requested: 26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			poster := mocks.NewMockLedgerPoster(ctrl)
			materials := mocks.NewMockMaterialRepository(ctrl)
			movements := mocks.NewMockMovementRepository(ctrl)
			tt.setupMocks(poster, materials)

			svc := services.NewSalesService(poster, materials, movements, helpers.TestLogger(),
				services.WithClock(helpers.FixedClock(now)))

			receipt, err := svc.RecordSale(context.Background(), tt.req)
			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, receipt)
		})
	}
}

func TestSalesService_ListAndSummary(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tile := s.create(t, "TILE-001", "45.50", 20)
	paint := s.create(t, "PNT-001", "300.00", 5)
	s.move(t, tile.ID, domain.MovementInward, 100, "Purchase")
	s.move(t, paint.ID, domain.MovementInward, 10, "Purchase")

	sell := func(sku string, qty int64, customer string) {
		_, err := s.sales.RecordSale(ctx, domain.SaleRequest{SKU: sku, Quantity: qty, CustomerName: customer})
		require.NoError(t, err)
		s.clock.Advance(time.Hour)
	}
	sell("TILE-001", 10, "Rao")
	sell("PNT-001", 2, "")
	sell("TILE-001", 4, "Mehta")

	// A manual outward is not a sale.
	s.move(t, tile.ID, domain.MovementOutward, 1, "Manual adjustment")

	sales, err := s.sales.ListSales(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "Mehta", sales[0].CustomerName)
	assert.Equal(t, "TILE-001", sales[0].SKU)
	assert.Equal(t, "182", sales[0].TotalAmount.String())
	assert.Empty(t, sales[1].CustomerName)

	limited, err := s.sales.ListSales(ctx, domain.SalesFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	bySKU, err := s.sales.SalesBySKU(ctx, "tile-001")
	require.NoError(t, err)
	assert.Len(t, bySKU, 2)

	_, err = s.sales.SalesBySKU(ctx, "GHOST")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	summary, err := s.sales.Summary(ctx, domain.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalSales)
	assert.Equal(t, int64(16), summary.TotalQuantitySold)
	// 14 * 45.50 + 2 * 300
	assert.Equal(t, "1237", summary.TotalRevenue.String())
	assert.Equal(t, "412.33", summary.AverageOrderValue.String())
	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "TILE-001", summary.TopProducts[0].SKU)
	assert.Equal(t, 2, summary.TopProducts[0].SalesCount)
	assert.Equal(t, "PNT-001", summary.TopProducts[1].SKU)

	from := s.clock.Now().Add(-90 * time.Minute)
	windowed, err := s.sales.Summary(ctx, domain.SalesFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 1, windowed.TotalSales)

	to := from.Add(-time.Hour)
	_, err = s.sales.ListSales(ctx, domain.SalesFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
