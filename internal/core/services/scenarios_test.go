// internal/core/services/scenarios_test.go
package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockledger/internal/adapters/memory"
	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/test/helpers"
)

type stack struct {
	clock     *helpers.Clock
	movements ports.MovementRepository
	ledger    *services.LedgerService
	materials *services.MaterialService
	sales     *services.SalesService
	insights  *services.InsightsService
}

func newStack(t *testing.T) *stack {
	t.Helper()

	clock := helpers.NewClock(time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore()
	materialRepo, movementRepo := store.Repositories()
	logger := helpers.TestLogger()
	opt := services.WithClock(clock.Now)

	ledger := services.NewLedgerService(store, materialRepo, movementRepo, logger, opt)
	return &stack{
		clock:     clock,
		movements: movementRepo,
		ledger:    ledger,
		materials: services.NewMaterialService(store, materialRepo, movementRepo, logger, opt),
		sales:     services.NewSalesService(ledger, materialRepo, movementRepo, logger, opt),
		insights:  services.NewInsightsService(materialRepo, movementRepo, 30, logger, opt),
	}
}

func (s *stack) create(t *testing.T, sku string, price string, reorder int64) *domain.Material {
	t.Helper()
	m, err := s.materials.Create(context.Background(), domain.MaterialDraft{
		SKU:          sku,
		Name:         "Item " + sku,
		Category:     "Tiles",
		Supplier:     "TileWorks",
		UnitPrice:    decimal.RequireFromString(price),
		ReorderLevel: &reorder,
	})
	require.NoError(t, err)
	return m
}

func (s *stack) move(t *testing.T, id uuid.UUID, typ domain.MovementType, qty int64, reason string) {
	t.Helper()
	_, err := s.ledger.RecordMovement(context.Background(), domain.MovementRequest{
		MaterialID: id,
		Type:       typ,
		Quantity:   qty,
		Reason:     reason,
	})
	require.NoError(t, err)
}

func (s *stack) balance(t *testing.T, id uuid.UUID) *domain.Material {
	t.Helper()
	d, err := s.materials.Get(context.Background(), id)
	require.NoError(t, err)
	return d.Material
}

func TestScenario_LowStockCriticalAndNotDead(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tile := s.create(t, "TILE-003", "25.00", 30)
	s.move(t, tile.ID, domain.MovementInward, 50, "Purchase")
	s.move(t, tile.ID, domain.MovementOutward, 45, "Sales")

	assert.Equal(t, int64(5), s.balance(t, tile.ID).AvailableQuantity)

	low, err := s.insights.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "TILE-003", low[0].SKU)
	assert.Equal(t, domain.UrgencyCritical, low[0].Urgency)
	assert.Equal(t, domain.AlertLowStock, low[0].Alert)
	require.NotNil(t, low[0].DaysUntilStockout)
	// 45 out over 7 days: floor(5 / (45/7)) = 0.
	assert.Equal(t, int64(0), *low[0].DaysUntilStockout)

	dead, err := s.insights.DeadStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestScenario_ZeroStockExcludedFromDeadStock(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "LAM-001", "80.00", 5)
	s.move(t, m.ID, domain.MovementInward, 12, "Purchase")
	_, err := s.sales.RecordSale(ctx, domain.SaleRequest{SKU: "lam-001", Quantity: 12})
	require.NoError(t, err)

	s.clock.Advance(40 * 24 * time.Hour)

	dead, err := s.insights.DeadStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)

	low, err := s.insights.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Zero(t, low[0].AvailableQuantity)
	assert.Nil(t, low[0].DaysUntilStockout)
}

func TestScenario_OversizedSaleLeavesNoTrace(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tile := s.create(t, "TILE-001", "45.50", 20)
	s.move(t, tile.ID, domain.MovementInward, 150, "Purchase")

	before, err := s.ledger.MovementsForMaterial(ctx, tile.ID)
	require.NoError(t, err)

	_, err = s.sales.RecordSale(ctx, domain.SaleRequest{SKU: "TILE-001", Quantity: 200})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock for TILE-001. Available: 150, Requested: 200", err.Error())

	after, err := s.ledger.MovementsForMaterial(ctx, tile.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(150), s.balance(t, tile.ID).AvailableQuantity)
}

func TestScenario_FastMovingSixSales(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "PNT-001", "30.00", 10)
	s.move(t, m.ID, domain.MovementInward, 100, "Purchase")

	for _, qty := range []int64{5, 4, 4, 4, 4, 4} {
		_, err := s.sales.RecordSale(ctx, domain.SaleRequest{SKU: "PNT-001", Quantity: qty, CustomerName: "Rao"})
		require.NoError(t, err)
		s.clock.Advance(24 * time.Hour)
	}

	fast, err := s.insights.FastMoving(ctx, 0)
	require.NoError(t, err)
	require.Len(t, fast, 1)

	item := fast[0]
	assert.Equal(t, int64(6), item.SalesMetrics.SalesCount)
	assert.Equal(t, int64(25), item.SalesMetrics.TotalQuantitySold)
	assert.Equal(t, 0.83, item.SalesMetrics.SalesVelocity)
	assert.Equal(t, 0.2, item.SalesMetrics.SalesFrequency)
	assert.Equal(t, 30, item.SalesMetrics.PeriodDays)
	// 75 left at 25/30 per day: floor(75*30/25) = 90 days.
	assert.Equal(t, int64(90), item.StockStatus.DaysOfStockRemaining)
	assert.Equal(t, int64(12), item.StockStatus.RecommendedReorderQuantity)
	assert.Equal(t, domain.UrgencyMedium, item.Urgency)
	assert.Equal(t, domain.AlertFastMoving, item.Alert)
}

func TestProperty_BalanceMatchesLedger(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "HW-001", "12.00", 10)
	s.move(t, m.ID, domain.MovementInward, 40, "Purchase")
	s.move(t, m.ID, domain.MovementOutward, 7, "")
	_, err := s.ledger.RecordDamage(ctx, m.ID, 3, "cracked in transit")
	require.NoError(t, err)
	_, err = s.sales.RecordSale(ctx, domain.SaleRequest{SKU: "hw-001", Quantity: 10})
	require.NoError(t, err)
	_, err = s.ledger.RecordDamage(ctx, m.ID, 100, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	mvs, err := s.ledger.MovementsForMaterial(ctx, m.ID)
	require.NoError(t, err)

	var sum int64
	for _, mv := range mvs {
		if mv.Type == domain.MovementInward {
			sum += mv.Quantity
		} else {
			sum -= mv.Quantity
		}
	}

	got := s.balance(t, m.ID)
	assert.Equal(t, sum, got.AvailableQuantity)
	assert.Equal(t, int64(20), got.AvailableQuantity)
	assert.Equal(t, int64(3), got.DamagedQuantity)
}

func TestScenario_ManualDamageReasonKeepsDamagedBalance(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "LAM-004", "30.00", 5)
	s.move(t, m.ID, domain.MovementInward, 20, "Purchase")

	mv, err := s.ledger.RecordMovement(ctx, domain.MovementRequest{
		MaterialID: m.ID,
		Type:       domain.MovementOutward,
		Quantity:   3,
		Reason:     "damage",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonDamage, mv.Reason)

	got := s.balance(t, m.ID)
	assert.Equal(t, int64(17), got.AvailableQuantity)
	assert.Equal(t, int64(0), got.DamagedQuantity)

	_, err = s.ledger.RecordDamage(ctx, m.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.balance(t, m.ID).DamagedQuantity)

	_, err = s.ledger.RecordDamage(ctx, m.ID, 16, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock to mark as damaged. Available: 15", err.Error())
}

func TestProperty_ConcurrentOutwardNeverNegative(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "SAN-001", "150.00", 5)
	s.move(t, m.ID, domain.MovementInward, 50, "Purchase")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.sales.RecordSale(ctx, domain.SaleRequest{SKU: "SAN-001", Quantity: 3})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, succeeded)
	assert.Equal(t, int64(2), s.balance(t, m.ID).AvailableQuantity)
}

func TestProperty_SKUConflictIgnoresCase(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.create(t, "TILE-002", "10.00", 10)

	_, err := s.materials.Create(ctx, domain.MaterialDraft{
		SKU:       "tile-002",
		Name:      "Duplicate",
		Category:  "Tiles",
		Supplier:  "Other",
		UnitPrice: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Material with SKU TILE-002 already exists", err.Error())
}

func TestProperty_CascadeDelete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "LGT-001", "20.00", 10)
	s.move(t, m.ID, domain.MovementInward, 10, "Purchase")
	s.move(t, m.ID, domain.MovementOutward, 2, "Sales")

	require.NoError(t, s.materials.Delete(ctx, m.ID))

	mvs, err := s.ledger.MovementsForMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, mvs)

	_, err = s.materials.Get(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.materials.Delete(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProperty_InsightsAreIdempotent(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a := s.create(t, "TILE-010", "45.00", 20)
	b := s.create(t, "PNT-010", "300.00", 10)
	s.move(t, a.ID, domain.MovementInward, 60, "Purchase")
	s.move(t, b.ID, domain.MovementInward, 40, "Purchase")
	for i := 0; i < 5; i++ {
		s.move(t, a.ID, domain.MovementOutward, 9, "Sales")
	}

	first, err := s.insights.Comprehensive(ctx)
	require.NoError(t, err)
	second, err := s.insights.Comprehensive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	d1, err := s.insights.Dashboard(ctx)
	require.NoError(t, err)
	d2, err := s.insights.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestMaterialService_UpdateKeepsBalances(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	m := s.create(t, "TILE-020", "10.00", 10)
	other := s.create(t, "TILE-021", "10.00", 10)
	s.move(t, m.ID, domain.MovementInward, 30, "Purchase")

	price := decimal.RequireFromString("11.25")
	updated, err := s.materials.Update(ctx, m.ID, domain.MaterialPatch{UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(30), updated.AvailableQuantity)
	assert.True(t, price.Equal(updated.UnitPrice))

	clash := "tile-021"
	_, err = s.materials.Update(ctx, m.ID, domain.MaterialPatch{SKU: &clash})
	assert.ErrorIs(t, err, domain.ErrConflict)

	same := "tile-020"
	_, err = s.materials.Update(ctx, m.ID, domain.MaterialPatch{SKU: &same})
	require.NoError(t, err)

	_, err = s.materials.Update(ctx, uuid.New(), domain.MaterialPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	found, err := s.materials.GetBySKU(ctx, " TILE-021 ")
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.ID)

	_, err = s.materials.GetBySKU(ctx, "tile-021")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
