// internal/adapters/memory/material_repository.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

type materialRepository struct {
	store *Store
}

var _ ports.MaterialRepository = (*materialRepository)(nil)

func (r *materialRepository) Create(ctx context.Context, m *domain.Material) error {
	defer r.store.write(ctx)()

	if r.skuTaken(m.SKU, uuid.Nil) {
		return domain.NewConflictError(fmt.Sprintf("Material with SKU %s already exists", m.SKU))
	}
	r.store.materials[m.ID] = *m
	return nil
}

func (r *materialRepository) Update(ctx context.Context, m *domain.Material) error {
	defer r.store.write(ctx)()

	current, ok := r.store.materials[m.ID]
	if !ok {
		return fmt.Errorf("material %s does not exist", m.ID)
	}
	if r.skuTaken(m.SKU, m.ID) {
		return domain.NewConflictError(fmt.Sprintf("Material with SKU %s already exists", m.SKU))
	}

	// Balances belong to the ledger.
	next := *m
	next.AvailableQuantity = current.AvailableQuantity
	next.DamagedQuantity = current.DamagedQuantity
	r.store.materials[m.ID] = next
	return nil
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.write(ctx)()

	delete(r.store.materials, id)
	return nil
}

func (r *materialRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	defer r.store.read(ctx)()

	m, ok := r.store.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *materialRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Material, error) {
	defer r.store.read(ctx)()

	out := make(map[uuid.UUID]*domain.Material, len(ids))
	for _, id := range ids {
		if m, ok := r.store.materials[id]; ok {
			out[id] = &m
		}
	}
	return out, nil
}

func (r *materialRepository) FindBySKU(ctx context.Context, sku string) (*domain.Material, error) {
	defer r.store.read(ctx)()

	for _, m := range r.store.materials {
		if m.SKU == sku {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *materialRepository) FindBySKUFold(ctx context.Context, sku string) (*domain.Material, error) {
	defer r.store.read(ctx)()

	for _, m := range r.store.materials {
		if strings.EqualFold(m.SKU, sku) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *materialRepository) FindAll(ctx context.Context) ([]*domain.Material, error) {
	defer r.store.read(ctx)()

	out := make([]*domain.Material, 0, len(r.store.materials))
	for _, m := range r.store.materials {
		m := m
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SKU < out[j].SKU
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// FindForUpdate is FindByID; a transaction already holds the store exclusively.
func (r *materialRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	return r.FindByID(ctx, id)
}

func (r *materialRepository) ApplyQuantityChange(ctx context.Context, id uuid.UUID, availableDelta, damagedDelta int64, at time.Time) (*domain.Material, error) {
	defer r.store.write(ctx)()

	m, ok := r.store.materials[id]
	if !ok {
		return nil, fmt.Errorf("material %s does not exist", id)
	}
	if m.AvailableQuantity+availableDelta < 0 {
		return nil, nil
	}

	m.AvailableQuantity += availableDelta
	m.DamagedQuantity += damagedDelta
	m.UpdatedAt = at
	r.store.materials[id] = m
	return &m, nil
}

// skuTaken reports whether another material already uses sku, ignoring case.
func (r *materialRepository) skuTaken(sku string, self uuid.UUID) bool {
	for id, m := range r.store.materials {
		if id != self && strings.EqualFold(m.SKU, sku) {
			return true
		}
	}
	return false
}
