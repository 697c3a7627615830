// internal/adapters/db/movement_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

var movementColumns = []string{
	"id", "material_id", "type", "quantity", "reason", "reference", "notes", "created_at",
}

// movementRepository implements ports.MovementRepository
type movementRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *Database, logger *slog.Logger) ports.MovementRepository {
	return &movementRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "stock_movements")),
	}
}

func (r *movementRepository) Create(ctx context.Context, mv *domain.Movement) error {
	query, args, err := psql.Insert("stock_movements").
		Columns(movementColumns...).
		Values(mv.ID, mv.MaterialID, mv.Type, mv.Quantity, mv.Reason, mv.Reference, mv.Notes, mv.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := querier(ctx, r.db.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}

	r.logger.DebugContext(ctx, "movement recorded",
		slog.String("movement_id", mv.ID.String()),
		slog.String("material_id", mv.MaterialID.String()),
		slog.String("type", string(mv.Type)),
		slog.Int64("quantity", mv.Quantity))
	return nil
}

func (r *movementRepository) DeleteByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error) {
	tag, err := querier(ctx, r.db.pool).Exec(ctx, `DELETE FROM stock_movements WHERE material_id = $1`, materialID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete movements: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *movementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]*domain.Movement, error) {
	qb := psql.Select(movementColumns...).
		From("stock_movements").
		OrderBy("created_at DESC")

	if filter.MaterialID != nil {
		qb = qb.Where(squirrel.Eq{"material_id": *filter.MaterialID})
	}
	if filter.Type != "" {
		qb = qb.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Reason != "" {
		qb = qb.Where(squirrel.Eq{"reason": filter.Reason})
	}
	if filter.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		qb = qb.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := querier(ctx, r.db.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	movements, err := ScanMany(rows, scanMovement)
	if err != nil {
		return nil, fmt.Errorf("failed to scan movements: %w", err)
	}
	return movements, nil
}

func (r *movementRepository) OutwardTotals(ctx context.Context, since time.Time) (map[uuid.UUID]int64, error) {
	query, args, err := psql.Select("material_id", "SUM(quantity)").
		From("stock_movements").
		Where(squirrel.Eq{"type": domain.MovementOutward}).
		Where(squirrel.GtOrEq{"created_at": since}).
		GroupBy("material_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := querier(ctx, r.db.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outward movements: %w", err)
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]int64)
	for rows.Next() {
		var (
			id    uuid.UUID
			total int64
		)
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("failed to scan outward total: %w", err)
		}
		totals[id] = total
	}
	return totals, rows.Err()
}

func (r *movementRepository) SalesAggregates(ctx context.Context, since time.Time) ([]domain.SalesAggregate, error) {
	query, args, err := psql.Select("material_id", "SUM(quantity)", "COUNT(*)", "MAX(created_at)").
		From("stock_movements").
		Where(squirrel.Eq{"type": domain.MovementOutward, "reason": domain.ReasonSales}).
		Where(squirrel.GtOrEq{"created_at": since}).
		GroupBy("material_id").
		OrderBy("MIN(created_at)", "material_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := querier(ctx, r.db.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	aggs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SalesAggregate, error) {
		var a domain.SalesAggregate
		err := row.Scan(&a.MaterialID, &a.TotalQuantity, &a.SalesCount, &a.LastSaleDate)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales aggregates: %w", err)
	}
	return aggs, nil
}

func (r *movementRepository) CountByMaterial(ctx context.Context, limit int) ([]domain.MovementCount, error) {
	qb := psql.Select("material_id", "COUNT(*) AS movement_count").
		From("stock_movements").
		GroupBy("material_id").
		OrderBy("movement_count DESC", "material_id::text ASC")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := querier(ctx, r.db.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MovementCount, error) {
		var c domain.MovementCount
		err := row.Scan(&c.MaterialID, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan movement counts: %w", err)
	}
	return counts, nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var mv domain.Movement
	err := row.Scan(
		&mv.ID, &mv.MaterialID, &mv.Type, &mv.Quantity,
		&mv.Reason, &mv.Reference, &mv.Notes, &mv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mv, nil
}
