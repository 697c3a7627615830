// internal/core/services/insights.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// InsightsService classifies materials from the current registry and ledger
// state. It never writes.
type InsightsService struct {
	materials      ports.MaterialRepository
	movements      ports.MovementRepository
	logger         *slog.Logger
	now            func() time.Time
	fastMovingDays int
}

var _ ports.InsightsService = (*InsightsService)(nil)

// NewInsightsService creates a new insights service. fastMovingDays is the
// window used when FastMoving is called without one.
func NewInsightsService(
	materials ports.MaterialRepository,
	movements ports.MovementRepository,
	fastMovingDays int,
	logger *slog.Logger,
	opts ...Option,
) *InsightsService {
	o := buildOptions(opts)
	if fastMovingDays <= 0 {
		fastMovingDays = domain.FastMovingDays
	}
	fastMovingDays = min(fastMovingDays, domain.MaxPeriodDays)
	return &InsightsService{
		materials:      materials,
		movements:      movements,
		logger:         logger.With(slog.String("service", "insights")),
		now:            o.now,
		fastMovingDays: fastMovingDays,
	}
}

// LowStock lists materials at or below their reorder level, critical first
// and then by ascending quantity.
func (s *InsightsService) LowStock(ctx context.Context) ([]*domain.LowStockAlert, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	alerts := make([]*domain.LowStockAlert, 0)
	for _, m := range materials {
		if m.IsLowStock() {
			alerts = append(alerts, &domain.LowStockAlert{
				Material: m,
				Alert:    domain.AlertLowStock,
				Urgency:  domain.LowStockUrgency(m.AvailableQuantity, m.ReorderLevel),
			})
		}
	}
	if len(alerts) == 0 {
		return alerts, nil
	}

	since := s.now().AddDate(0, 0, -domain.StockoutLookbackDays)
	outward, err := s.movements.OutwardTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outward movements: %w", err)
	}

	for _, a := range alerts {
		a.DaysUntilStockout = daysUntilStockout(a.AvailableQuantity, outward[a.ID])
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ci := alerts[i].Urgency == domain.UrgencyCritical
		cj := alerts[j].Urgency == domain.UrgencyCritical
		if ci != cj {
			return ci
		}
		if alerts[i].AvailableQuantity != alerts[j].AvailableQuantity {
			return alerts[i].AvailableQuantity < alerts[j].AvailableQuantity
		}
		return alerts[i].SKU < alerts[j].SKU
	})

	return alerts, nil
}

// daysUntilStockout divides qty by the trailing daily outward rate. It is
// nil when nothing went out in the lookback window.
func daysUntilStockout(qty, outward int64) *int64 {
	if outward <= 0 {
		return nil
	}
	days := qty * domain.StockoutLookbackDays / outward
	return &days
}

// DeadStock lists available stock with no sales in the dead-stock window,
// largest tied-up capital first.
func (s *InsightsService) DeadStock(ctx context.Context) ([]*domain.DeadStockItem, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	sold, err := s.recentlySold(ctx)
	if err != nil {
		return nil, err
	}
	return deadStock(materials, sold), nil
}

func (s *InsightsService) recentlySold(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	since := s.now().AddDate(0, 0, -domain.DeadStockDays)
	aggs, err := s.movements.SalesAggregates(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	sold := make(map[uuid.UUID]struct{}, len(aggs))
	for _, a := range aggs {
		sold[a.MaterialID] = struct{}{}
	}
	return sold, nil
}

func deadStock(materials []*domain.Material, sold map[uuid.UUID]struct{}) []*domain.DeadStockItem {
	items := make([]*domain.DeadStockItem, 0)
	for _, m := range materials {
		if m.AvailableQuantity <= 0 {
			continue
		}
		if _, ok := sold[m.ID]; ok {
			continue
		}
		capital := m.StockValue()
		items = append(items, &domain.DeadStockItem{
			Material:       m,
			Alert:          domain.AlertDeadStock,
			DaysInactive:   domain.DeadStockDays,
			TiedUpCapital:  capital.Round(2),
			Recommendation: domain.DeadStockRecommendation(capital, m.AvailableQuantity),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].TiedUpCapital.Equal(items[j].TiedUpCapital) {
			return items[i].TiedUpCapital.GreaterThan(items[j].TiedUpCapital)
		}
		return items[i].SKU < items[j].SKU
	})
	return items
}

// FastMoving lists materials whose sales in the trailing window reach the
// fast-moving thresholds, fastest first. days == 0 selects the default window.
func (s *InsightsService) FastMoving(ctx context.Context, days int) ([]*domain.FastMovingItem, error) {
	if err := domain.ValidatePeriodDays("days", int64(days)); err != nil {
		return nil, err
	}
	if days == 0 {
		days = s.fastMovingDays
	}

	since := s.now().AddDate(0, 0, -days)
	aggs, err := s.movements.SalesAggregates(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	qualifying := make([]domain.SalesAggregate, 0, len(aggs))
	ids := make([]uuid.UUID, 0, len(aggs))
	for _, a := range aggs {
		if a.IsFastMoving() {
			qualifying = append(qualifying, a)
			ids = append(ids, a.MaterialID)
		}
	}

	items := make([]*domain.FastMovingItem, 0, len(qualifying))
	if len(qualifying) == 0 {
		return items, nil
	}

	materials, err := s.materials.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}

	for _, a := range qualifying {
		m, ok := materials[a.MaterialID]
		if !ok {
			continue
		}
		items = append(items, fastMovingItem(m, a, days))
	}

	sort.SliceStable(items, func(i, j int) bool {
		vi, vj := items[i].SalesMetrics.TotalQuantitySold, items[j].SalesMetrics.TotalQuantitySold
		if vi != vj {
			return vi > vj
		}
		return items[i].SKU < items[j].SKU
	})

	return items, nil
}

func fastMovingItem(m *domain.Material, a domain.SalesAggregate, days int) *domain.FastMovingItem {
	period := int64(days)
	velocity := float64(a.TotalQuantity) / float64(days)
	frequency := float64(a.SalesCount) / float64(days)

	remaining := int64(domain.StableStockDays)
	var reorder int64
	if a.TotalQuantity > 0 {
		// qty / (total/days) and ceil(total/days * 14) in integers.
		remaining = stockDays(m.AvailableQuantity, period, a.TotalQuantity)
		reorder = (a.TotalQuantity*domain.ReorderBufferDays + period - 1) / period
	}

	return &domain.FastMovingItem{
		Material: m,
		Alert:    domain.AlertFastMoving,
		SalesMetrics: domain.SalesMetrics{
			TotalQuantitySold: a.TotalQuantity,
			SalesCount:        a.SalesCount,
			SalesVelocity:     domain.Round2(velocity),
			SalesFrequency:    domain.Round2(frequency),
			LastSaleDate:      a.LastSaleDate,
			PeriodDays:        days,
		},
		StockStatus: domain.StockStatus{
			CurrentStock:               m.AvailableQuantity,
			DaysOfStockRemaining:       remaining,
			RecommendedReorderQuantity: reorder,
		},
		Urgency: domain.FastMovingUrgency(remaining),
	}
}

// stockDays is floor(qty*period/total), saturated at domain.MaxQuantity.
func stockDays(qty, period, total int64) int64 {
	q, _ := decimal.NewFromInt(qty).Mul(decimal.NewFromInt(period)).QuoRem(decimal.NewFromInt(total), 0)
	if q.GreaterThan(decimal.NewFromInt(domain.MaxQuantity)) {
		return domain.MaxQuantity
	}
	return q.IntPart()
}

// Dashboard computes catalog-wide totals.
func (s *InsightsService) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	sold, err := s.recentlySold(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &domain.DashboardMetrics{
		TotalMaterials: len(materials),
		TotalValue:     decimal.Zero,
		DeadStockCount: len(deadStock(materials, sold)),
		Timestamp:      s.now(),
	}
	for _, m := range materials {
		metrics.TotalValue = metrics.TotalValue.Add(m.StockValue())
		metrics.TotalQuantity += m.AvailableQuantity
		metrics.TotalDamaged += m.DamagedQuantity
		if m.IsLowStock() {
			metrics.LowStockCount++
		}
	}
	metrics.TotalValue = metrics.TotalValue.Round(2)

	return metrics, nil
}

// CategoryBreakdown groups materials by category, sorted by category name.
func (s *InsightsService) CategoryBreakdown(ctx context.Context) ([]*domain.CategorySummary, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	byCategory := make(map[string]*domain.CategorySummary)
	for _, m := range materials {
		c, ok := byCategory[m.Category]
		if !ok {
			c = &domain.CategorySummary{
				Category:   m.Category,
				TotalValue: decimal.Zero,
				Items:      []domain.CategoryItem{},
			}
			byCategory[m.Category] = c
		}
		c.Count++
		c.TotalQuantity += m.AvailableQuantity
		c.TotalValue = c.TotalValue.Add(m.StockValue())
		c.Items = append(c.Items, domain.CategoryItem{
			ID:       m.ID,
			SKU:      m.SKU,
			Name:     m.Name,
			Quantity: m.AvailableQuantity,
		})
	}

	out := make([]*domain.CategorySummary, 0, len(byCategory))
	for _, c := range byCategory {
		c.TotalValue = c.TotalValue.Round(2)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	return out, nil
}

// DamagedSummary lists materials with damaged units, most damaged first.
func (s *InsightsService) DamagedSummary(ctx context.Context) (*domain.DamagedInventorySummary, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	summary := &domain.DamagedInventorySummary{
		Items:      []*domain.Material{},
		TotalValue: decimal.Zero,
	}
	for _, m := range materials {
		if m.DamagedQuantity <= 0 {
			continue
		}
		summary.Items = append(summary.Items, m)
		summary.TotalQuantity += m.DamagedQuantity
		summary.TotalValue = summary.TotalValue.Add(m.DamagedValue())
	}
	summary.TotalValue = summary.TotalValue.Round(2)

	sort.SliceStable(summary.Items, func(i, j int) bool {
		if summary.Items[i].DamagedQuantity != summary.Items[j].DamagedQuantity {
			return summary.Items[i].DamagedQuantity > summary.Items[j].DamagedQuantity
		}
		return summary.Items[i].SKU < summary.Items[j].SKU
	})

	return summary, nil
}

// TopMovingSKUs ranks materials by how many movements they have.
func (s *InsightsService) TopMovingSKUs(ctx context.Context, limit int) ([]*domain.MovementRanking, error) {
	limit = clampLimit(limit, domain.DefaultTopSKUs, domain.MaxTopSKUs)

	counts, err := s.movements.CountByMaterial(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.MaterialID)
	}
	materials, err := s.materials.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}

	out := make([]*domain.MovementRanking, 0, len(counts))
	for _, c := range counts {
		if m, ok := materials[c.MaterialID]; ok {
			out = append(out, &domain.MovementRanking{Material: m, MovementCount: c.Count})
		}
	}
	return out, nil
}

// Comprehensive runs the fast-moving, dead-stock and low-stock classifiers
// concurrently and summarizes them.
func (s *InsightsService) Comprehensive(ctx context.Context) (*domain.ComprehensiveInsights, error) {
	var (
		fast []*domain.FastMovingItem
		dead []*domain.DeadStockItem
		low  []*domain.LowStockAlert
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fast, err = s.FastMoving(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		dead, err = s.DeadStock(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		low, err = s.LowStock(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "comprehensive insights failed", slog.String("error", err.Error()))
		return nil, err
	}

	criticalFast := 0
	for _, f := range fast {
		if f.Urgency == domain.UrgencyCritical {
			criticalFast++
		}
	}
	criticalLow := make([]*domain.LowStockAlert, 0)
	for _, l := range low {
		if l.Urgency == domain.UrgencyCritical {
			criticalLow = append(criticalLow, l)
		}
	}

	return &domain.ComprehensiveInsights{
		Summary: domain.InsightsSummary{
			FastMovingCount: len(fast),
			DeadStockCount:  len(dead),
			LowStockCount:   len(low),
			TotalIssues:     criticalFast + len(dead) + len(criticalLow),
		},
		FastMovingItems: head(fast, domain.ComprehensiveTop),
		DeadStockItems:  head(dead, domain.ComprehensiveTop),
		LowStockItems:   head(criticalLow, domain.ComprehensiveTop),
		Timestamp:       s.now(),
	}, nil
}

func head[T any](items []T, n int) []T {
	return items[:min(n, len(items))]
}
