// internal/core/ports/services.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
)

// LedgerPoster is the single atomic ledger-update contract.
type LedgerPoster interface {
	Post(ctx context.Context, entry domain.LedgerEntry) (*domain.Posting, error)
}

// LedgerService defines the movement ledger port.
type LedgerService interface {
	LedgerPoster
	RecordMovement(ctx context.Context, req domain.MovementRequest) (*domain.Movement, error)
	RecordDamage(ctx context.Context, materialID uuid.UUID, quantity int64, note string) (*domain.Movement, error)
	MovementsForMaterial(ctx context.Context, materialID uuid.UUID) ([]*domain.Movement, error)
	RecentMovements(ctx context.Context, limit int) ([]*domain.Movement, error)
	MovementsBetween(ctx context.Context, start, end time.Time) ([]*domain.Movement, error)
}

// MaterialService defines the material registry port.
type MaterialService interface {
	Create(ctx context.Context, draft domain.MaterialDraft) (*domain.Material, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.MaterialPatch) (*domain.Material, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.MaterialDetail, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Material, error)
	List(ctx context.Context) ([]*domain.Material, error)
}

// SalesService defines the sales recorder port.
type SalesService interface {
	RecordSale(ctx context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error)
	ListSales(ctx context.Context, filter domain.SalesFilter) ([]domain.Sale, error)
	SalesBySKU(ctx context.Context, sku string) ([]domain.Sale, error)
	Summary(ctx context.Context, filter domain.SalesFilter) (*domain.SalesSummary, error)
}

// InsightsService defines the read-only analytics port.
type InsightsService interface {
	LowStock(ctx context.Context) ([]*domain.LowStockAlert, error)
	DeadStock(ctx context.Context) ([]*domain.DeadStockItem, error)
	FastMoving(ctx context.Context, days int) ([]*domain.FastMovingItem, error)
	Dashboard(ctx context.Context) (*domain.DashboardMetrics, error)
	CategoryBreakdown(ctx context.Context) ([]*domain.CategorySummary, error)
	DamagedSummary(ctx context.Context) (*domain.DamagedInventorySummary, error)
	TopMovingSKUs(ctx context.Context, limit int) ([]*domain.MovementRanking, error)
	Comprehensive(ctx context.Context) (*domain.ComprehensiveInsights, error)
}
