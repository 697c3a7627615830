// internal/core/ports/repositories.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
)

// MaterialRepository defines the persistence port for the material registry.
// Finders return nil, nil when nothing matches.
type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	Update(ctx context.Context, m *domain.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Material, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Material, error)
	// FindBySKU matches the stored SKU exactly.
	FindBySKU(ctx context.Context, sku string) (*domain.Material, error)
	// FindBySKUFold matches the stored SKU ignoring case.
	FindBySKUFold(ctx context.Context, sku string) (*domain.Material, error)
	// FindAll returns every material, newest first.
	FindAll(ctx context.Context) ([]*domain.Material, error)
	// FindForUpdate loads a material and holds it against concurrent
	// postings until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*domain.Material, error)
	// ApplyQuantityChange adds the deltas to the balances if the available
	// quantity stays non-negative. It returns nil, nil when the guard rejects
	// the change.
	ApplyQuantityChange(ctx context.Context, id uuid.UUID, availableDelta, damagedDelta int64, at time.Time) (*domain.Material, error)
}

// MovementRepository defines the persistence port for the append-only ledger.
type MovementRepository interface {
	Create(ctx context.Context, mv *domain.Movement) error
	DeleteByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error)
	// List returns matching movements, newest first.
	List(ctx context.Context, filter domain.MovementFilter) ([]*domain.Movement, error)
	// OutwardTotals sums OUTWARD quantities of any reason per material since the cutoff.
	OutwardTotals(ctx context.Context, since time.Time) (map[uuid.UUID]int64, error)
	// SalesAggregates rolls up OUTWARD sales per material since the cutoff.
	SalesAggregates(ctx context.Context, since time.Time) ([]domain.SalesAggregate, error)
	// CountByMaterial ranks materials by movement count, highest first.
	CountByMaterial(ctx context.Context, limit int) ([]domain.MovementCount, error)
}
