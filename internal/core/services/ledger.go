// internal/core/services/ledger.go
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

// LedgerService is the only writer of material balances. Every change is a
// movement appended together with the balance update in one transaction.
type LedgerService struct {
	tx        ports.TxManager
	materials ports.MaterialRepository
	movements ports.MovementRepository
	logger    *slog.Logger
	now       func() time.Time
}

var _ ports.LedgerService = (*LedgerService)(nil)

// NewLedgerService creates a new ledger service
func NewLedgerService(
	tx ports.TxManager,
	materials ports.MaterialRepository,
	movements ports.MovementRepository,
	logger *slog.Logger,
	opts ...Option,
) *LedgerService {
	o := buildOptions(opts)
	return &LedgerService{
		tx:        tx,
		materials: materials,
		movements: movements,
		logger:    logger.With(slog.String("service", "ledger")),
		now:       o.now,
	}
}

// Post appends entry to the ledger and moves the material balance with it.
// Outward entries larger than the available balance fail with an
// insufficient-stock error and leave nothing behind.
func (s *LedgerService) Post(ctx context.Context, entry domain.LedgerEntry) (*domain.Posting, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	at := entry.OccurredAt
	if at.IsZero() {
		at = now
	}
	availableDelta, damagedDelta := entry.Deltas()

	var posting *domain.Posting
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := s.materials.FindForUpdate(ctx, entry.MaterialID)
		if err != nil {
			return fmt.Errorf("failed to load material: %w", err)
		}
		if m == nil {
			return domain.NewNotFoundError("Material not found")
		}

		if m.AvailableQuantity+availableDelta < 0 {
			return s.insufficient(ctx, m, entry)
		}

		updated, err := s.materials.ApplyQuantityChange(ctx, m.ID, availableDelta, damagedDelta, now)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		if updated == nil {
			return s.insufficient(ctx, m, entry)
		}

		mv := &domain.Movement{
			ID:         uuid.New(),
			MaterialID: m.ID,
			Type:       entry.Type,
			Quantity:   entry.Quantity,
			Reason:     entry.Reason,
			Reference:  strings.TrimSpace(entry.Reference),
			Notes:      strings.TrimSpace(entry.Notes),
			CreatedAt:  at,
		}
		if err := s.movements.Create(ctx, mv); err != nil {
			return fmt.Errorf("failed to append movement: %w", err)
		}

		posting = &domain.Posting{
			Movement:    mv,
			Material:    updated,
			StockBefore: m.AvailableQuantity,
			StockAfter:  updated.AvailableQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "posted movement",
		slog.String("movement_id", posting.Movement.ID.String()),
		slog.String("material_id", posting.Material.ID.String()),
		slog.String("type", string(entry.Type)),
		slog.String("reason", string(entry.Reason)),
		slog.Int64("quantity", entry.Quantity),
		slog.Int64("stock_after", posting.StockAfter))

	return posting, nil
}

func (s *LedgerService) insufficient(ctx context.Context, m *domain.Material, entry domain.LedgerEntry) error {
	s.logger.WarnContext(ctx, "insufficient stock",
		slog.String("material_id", m.ID.String()),
		slog.Int64("available", m.AvailableQuantity),
		slog.Int64("requested", entry.Quantity),
		slog.Bool("damaged", entry.Damaged))

	switch {
	case entry.Damaged:
		return domain.NewInsufficientDamageError(m.AvailableQuantity, entry.Quantity)
	case entry.Reason.IsSales():
		return domain.NewInsufficientStockError(m.SKU, m.AvailableQuantity, entry.Quantity)
	default:
		return domain.NewInsufficientStockError("", m.AvailableQuantity, entry.Quantity)
	}
}

// RecordMovement posts a manual INWARD or OUTWARD movement. A blank reason
// becomes "Manual adjustment". Only RecordDamage grows the damaged balance,
// whatever the reason text says.
func (s *LedgerService) RecordMovement(ctx context.Context, req domain.MovementRequest) (*domain.Movement, error) {
	if req.MaterialID == uuid.Nil {
		return nil, domain.NewValidationError("materialId", "materialId is required")
	}
	if req.Type != domain.MovementInward && req.Type != domain.MovementOutward {
		return nil, domain.NewValidationError("type",
			fmt.Sprintf("type must be %s or %s", domain.MovementInward, domain.MovementOutward))
	}
	reason, err := domain.NormalizeReason(req.Reason, req.Type)
	if err != nil {
		return nil, err
	}

	posting, err := s.Post(ctx, domain.LedgerEntry{
		MaterialID: req.MaterialID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		Reason:     reason,
		Reference:  req.Reference,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return posting.Movement, nil
}

// RecordDamage writes off quantity units as damaged.
func (s *LedgerService) RecordDamage(ctx context.Context, materialID uuid.UUID, quantity int64, note string) (*domain.Movement, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = string(domain.ReasonDamage)
	}

	posting, err := s.Post(ctx, domain.LedgerEntry{
		MaterialID: materialID,
		Type:       domain.MovementOutward,
		Quantity:   quantity,
		Reason:     domain.ReasonDamage,
		Notes:      note,
		Damaged:    true,
	})
	if err != nil {
		return nil, err
	}
	return posting.Movement, nil
}

// MovementsForMaterial lists a material's movements, newest first. Unknown
// materials yield an empty list.
func (s *LedgerService) MovementsForMaterial(ctx context.Context, materialID uuid.UUID) ([]*domain.Movement, error) {
	mvs, err := s.movements.List(ctx, domain.MovementFilter{MaterialID: &materialID})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return mvs, nil
}

// RecentMovements lists the latest movements across all materials.
func (s *LedgerService) RecentMovements(ctx context.Context, limit int) ([]*domain.Movement, error) {
	limit = clampLimit(limit, defaultMovementLimit, maxMovementLimit)

	mvs, err := s.movements.List(ctx, domain.MovementFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return mvs, nil
}

// MovementsBetween lists movements whose event time falls in [start, end].
func (s *LedgerService) MovementsBetween(ctx context.Context, start, end time.Time) ([]*domain.Movement, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError("startDate", "startDate and endDate are required")
	}
	if start.After(end) {
		return nil, domain.NewValidationError("startDate", "startDate must not be after endDate")
	}

	mvs, err := s.movements.List(ctx, domain.MovementFilter{From: &start, To: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return mvs, nil
}
