// internal/core/services/sales.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// SalesService records sales as OUTWARD "Sales" movements and reports on them.
type SalesService struct {
	ledger    ports.LedgerPoster
	materials ports.MaterialRepository
	movements ports.MovementRepository
	logger    *slog.Logger
	now       func() time.Time
}

var _ ports.SalesService = (*SalesService)(nil)

// NewSalesService creates a new sales service
func NewSalesService(
	ledger ports.LedgerPoster,
	materials ports.MaterialRepository,
	movements ports.MovementRepository,
	logger *slog.Logger,
	opts ...Option,
) *SalesService {
	o := buildOptions(opts)
	return &SalesService{
		ledger:    ledger,
		materials: materials,
		movements: movements,
		logger:    logger.With(slog.String("service", "sales")),
		now:       o.now,
	}
}

// RecordSale sells quantity units of the material with the given SKU.
func (s *SalesService) RecordSale(ctx context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error) {
	sku, err := domain.RequireText("sku", req.SKU)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePositiveQuantity("quantity", req.Quantity); err != nil {
		return nil, err
	}

	m, err := s.materials.FindBySKUFold(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to find material: %w", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Product with SKU %s not found", sku))
	}
	if req.Quantity > m.AvailableQuantity {
		return nil, domain.NewInsufficientStockError(m.SKU, m.AvailableQuantity, req.Quantity)
	}

	saleDate := s.now()
	if req.SaleDate != nil && !req.SaleDate.IsZero() {
		saleDate = *req.SaleDate
	}
	customer := strings.TrimSpace(req.CustomerName)

	posting, err := s.ledger.Post(ctx, domain.LedgerEntry{
		MaterialID: m.ID,
		Type:       domain.MovementOutward,
		Quantity:   req.Quantity,
		Reason:     domain.ReasonSales,
		Reference:  req.Reference,
		Notes:      domain.CustomerNote(customer),
		OccurredAt: saleDate,
	})
	if err != nil {
		return nil, err
	}

	sold := posting.Material
	receipt := &domain.SaleReceipt{
		SaleID:       posting.Movement.ID,
		SKU:          sold.SKU,
		ProductName:  sold.Name,
		Category:     sold.Category,
		QuantitySold: req.Quantity,
		UnitPrice:    sold.UnitPrice,
		TotalAmount:  sold.UnitPrice.Mul(decimal.NewFromInt(req.Quantity)),
		Reference:    posting.Movement.Reference,
		CustomerName: customer,
		SaleDate:     posting.Movement.CreatedAt,
		StockBefore:  posting.StockBefore,
		StockAfter:   posting.StockAfter,
		IsLowStock:   posting.StockAfter <= sold.ReorderLevel,
	}

	s.logger.InfoContext(ctx, "recorded sale",
		slog.String("sale_id", receipt.SaleID.String()),
		slog.String("sku", receipt.SKU),
		slog.Int64("quantity", receipt.QuantitySold),
		slog.String("total", receipt.TotalAmount.StringFixed(2)))

	return receipt, nil
}

// ListSales lists sales newest first.
func (s *SalesService) ListSales(ctx context.Context, filter domain.SalesFilter) ([]domain.Sale, error) {
	if err := validateWindow(filter.From, filter.To); err != nil {
		return nil, err
	}

	return s.sales(ctx, domain.MovementFilter{
		Reason: domain.ReasonSales,
		From:   filter.From,
		To:     filter.To,
		Limit:  clampLimit(filter.Limit, domain.DefaultSalesLimit, maxMovementLimit),
	})
}

// SalesBySKU lists every sale of one material, newest first.
func (s *SalesService) SalesBySKU(ctx context.Context, sku string) ([]domain.Sale, error) {
	sku, err := domain.RequireText("sku", sku)
	if err != nil {
		return nil, err
	}

	m, err := s.materials.FindBySKUFold(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to find material: %w", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Product with SKU %s not found", sku))
	}

	return s.sales(ctx, domain.MovementFilter{
		MaterialID: &m.ID,
		Reason:     domain.ReasonSales,
	})
}

// Summary aggregates sales in the window. Revenue is priced at each
// material's current unit price.
func (s *SalesService) Summary(ctx context.Context, filter domain.SalesFilter) (*domain.SalesSummary, error) {
	if err := validateWindow(filter.From, filter.To); err != nil {
		return nil, err
	}

	sales, err := s.sales(ctx, domain.MovementFilter{
		Reason: domain.ReasonSales,
		From:   filter.From,
		To:     filter.To,
	})
	if err != nil {
		return nil, err
	}

	summary := &domain.SalesSummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TopProducts:       []domain.ProductRevenue{},
	}

	byMaterial := make(map[uuid.UUID]*domain.ProductRevenue)
	for _, sale := range sales {
		summary.TotalSales++
		summary.TotalQuantitySold += sale.QuantitySold
		summary.TotalRevenue = summary.TotalRevenue.Add(sale.TotalAmount)

		p, ok := byMaterial[sale.MaterialID]
		if !ok {
			p = &domain.ProductRevenue{SKU: sale.SKU, Name: sale.ProductName, TotalRevenue: decimal.Zero}
			byMaterial[sale.MaterialID] = p
		}
		p.TotalQuantity += sale.QuantitySold
		p.TotalRevenue = p.TotalRevenue.Add(sale.TotalAmount)
		p.SalesCount++
	}

	if summary.TotalSales > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.TotalSales))).
			Round(2)
	}

	for _, p := range byMaterial {
		summary.TopProducts = append(summary.TopProducts, *p)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		a, b := summary.TopProducts[i], summary.TopProducts[j]
		if !a.TotalRevenue.Equal(b.TotalRevenue) {
			return a.TotalRevenue.GreaterThan(b.TotalRevenue)
		}
		return a.SKU < b.SKU
	})
	if len(summary.TopProducts) > domain.TopProductsLimit {
		summary.TopProducts = summary.TopProducts[:domain.TopProductsLimit]
	}

	return summary, nil
}

// sales loads sales movements and joins them with their materials.
func (s *SalesService) sales(ctx context.Context, filter domain.MovementFilter) ([]domain.Sale, error) {
	mvs, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(mvs))
	seen := make(map[uuid.UUID]struct{}, len(mvs))
	for _, mv := range mvs {
		if _, ok := seen[mv.MaterialID]; !ok {
			seen[mv.MaterialID] = struct{}{}
			ids = append(ids, mv.MaterialID)
		}
	}

	materials, err := s.materials.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}

	out := make([]domain.Sale, 0, len(mvs))
	for _, mv := range mvs {
		m, ok := materials[mv.MaterialID]
		if !ok {
			continue
		}
		out = append(out, domain.NewSale(mv, m))
	}
	return out, nil
}

func validateWindow(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return domain.NewValidationError("startDate", "startDate must not be after endDate")
	}
	return nil
}
