// internal/adapters/memory/movement_repository.go
package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

type movementRepository struct {
	store *Store
}

var _ ports.MovementRepository = (*movementRepository)(nil)

func (r *movementRepository) Create(ctx context.Context, mv *domain.Movement) error {
	defer r.store.write(ctx)()

	r.store.movements = append(r.store.movements, *mv)
	return nil
}

func (r *movementRepository) DeleteByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error) {
	defer r.store.write(ctx)()

	kept := r.store.movements[:0:0]
	var removed int64
	for _, mv := range r.store.movements {
		if mv.MaterialID == materialID {
			removed++
			continue
		}
		kept = append(kept, mv)
	}
	r.store.movements = kept
	return removed, nil
}

func (r *movementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]*domain.Movement, error) {
	defer r.store.read(ctx)()

	out := make([]*domain.Movement, 0)
	for _, mv := range r.store.movements {
		if !matches(mv, filter) {
			continue
		}
		mv := mv
		out = append(out, &mv)
	}
	sortNewestFirst(out)

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *movementRepository) OutwardTotals(ctx context.Context, since time.Time) (map[uuid.UUID]int64, error) {
	defer r.store.read(ctx)()

	totals := make(map[uuid.UUID]int64)
	for _, mv := range r.store.movements {
		if mv.Type == domain.MovementOutward && !mv.CreatedAt.Before(since) {
			totals[mv.MaterialID] += mv.Quantity
		}
	}
	return totals, nil
}

func (r *movementRepository) SalesAggregates(ctx context.Context, since time.Time) ([]domain.SalesAggregate, error) {
	defer r.store.read(ctx)()

	byMaterial := make(map[uuid.UUID]*domain.SalesAggregate)
	var order []uuid.UUID
	for _, mv := range r.store.movements {
		if !mv.IsSale() || mv.CreatedAt.Before(since) {
			continue
		}
		agg, ok := byMaterial[mv.MaterialID]
		if !ok {
			agg = &domain.SalesAggregate{MaterialID: mv.MaterialID}
			byMaterial[mv.MaterialID] = agg
			order = append(order, mv.MaterialID)
		}
		agg.TotalQuantity += mv.Quantity
		agg.SalesCount++
		if mv.CreatedAt.After(agg.LastSaleDate) {
			agg.LastSaleDate = mv.CreatedAt
		}
	}

	out := make([]domain.SalesAggregate, 0, len(order))
	for _, id := range order {
		out = append(out, *byMaterial[id])
	}
	return out, nil
}

func (r *movementRepository) CountByMaterial(ctx context.Context, limit int) ([]domain.MovementCount, error) {
	defer r.store.read(ctx)()

	counts := make(map[uuid.UUID]int64)
	for _, mv := range r.store.movements {
		counts[mv.MaterialID]++
	}

	out := make([]domain.MovementCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.MovementCount{MaterialID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].MaterialID.String() < out[j].MaterialID.String()
		}
		return out[i].Count > out[j].Count
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(mv domain.Movement, f domain.MovementFilter) bool {
	if f.MaterialID != nil && mv.MaterialID != *f.MaterialID {
		return false
	}
	if f.Type != "" && mv.Type != f.Type {
		return false
	}
	if f.Reason != "" && mv.Reason != f.Reason {
		return false
	}
	if f.From != nil && mv.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && mv.CreatedAt.After(*f.To) {
		return false
	}
	return true
}
