// internal/core/services/materials.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// MaterialService manages the material catalog. It never writes balances.
type MaterialService struct {
	tx        ports.TxManager
	materials ports.MaterialRepository
	movements ports.MovementRepository
	logger    *slog.Logger
	now       func() time.Time
}

var _ ports.MaterialService = (*MaterialService)(nil)

// NewMaterialService creates a new material service
func NewMaterialService(
	tx ports.TxManager,
	materials ports.MaterialRepository,
	movements ports.MovementRepository,
	logger *slog.Logger,
	opts ...Option,
) *MaterialService {
	o := buildOptions(opts)
	return &MaterialService{
		tx:        tx,
		materials: materials,
		movements: movements,
		logger:    logger.With(slog.String("service", "materials")),
		now:       o.now,
	}
}

// Create registers a material with zero stock.
func (s *MaterialService) Create(ctx context.Context, draft domain.MaterialDraft) (*domain.Material, error) {
	m, err := domain.NewMaterial(draft, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueSKU(ctx, m.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.materials.Create(ctx, m); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.InfoContext(ctx, "created material",
		slog.String("material_id", m.ID.String()),
		slog.String("sku", m.SKU))

	return m, nil
}

// Update applies a partial change to a material's catalog fields.
func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, patch domain.MaterialPatch) (*domain.Material, error) {
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError("Material not found")
	}

	previousSKU := m.SKU
	if err := m.Apply(patch, s.now()); err != nil {
		return nil, err
	}

	if m.SKU != previousSKU {
		if err := s.ensureUniqueSKU(ctx, m.SKU, m.ID); err != nil {
			return nil, err
		}
	}

	if err := s.materials.Update(ctx, m); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	s.logger.InfoContext(ctx, "updated material",
		slog.String("material_id", m.ID.String()),
		slog.String("sku", m.SKU))

	return m, nil
}

// Delete removes a material together with its movements.
func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	var removed int64
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := s.materials.FindForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get material: %w", err)
		}
		if m == nil {
			return domain.NewNotFoundError("Material not found")
		}

		removed, err = s.movements.DeleteByMaterial(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete movements: %w", err)
		}
		if err := s.materials.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete material: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "deleted material",
		slog.String("material_id", id.String()),
		slog.Int64("movements_removed", removed))

	return nil
}

// Get returns a material with its most recent movements.
func (s *MaterialService) Get(ctx context.Context, id uuid.UUID) (*domain.MaterialDetail, error) {
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError("Material not found")
	}

	recent, err := s.movements.List(ctx, domain.MovementFilter{
		MaterialID: &id,
		Limit:      domain.RecentMovementsLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent movements: %w", err)
	}

	return &domain.MaterialDetail{Material: m, RecentMovements: recent}, nil
}

// GetBySKU looks a material up by its exact SKU.
func (s *MaterialService) GetBySKU(ctx context.Context, sku string) (*domain.Material, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "sku is required")
	}

	m, err := s.materials.FindBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if m == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Material with SKU %s not found", sku))
	}
	return m, nil
}

// List returns all materials, newest first.
func (s *MaterialService) List(ctx context.Context) ([]*domain.Material, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (s *MaterialService) ensureUniqueSKU(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.materials.FindBySKUFold(ctx, sku)
	if err != nil {
		return fmt.Errorf("failed to check sku: %w", err)
	}
	if existing != nil && existing.ID != self {
		return domain.NewConflictError(fmt.Sprintf("Material with SKU %s already exists", sku))
	}
	return nil
}
