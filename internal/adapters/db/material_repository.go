// internal/adapters/db/material_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

var materialColumns = []string{
	"id", "sku", "name", "category", "supplier", "unit_price",
	"available_quantity", "damaged_quantity", "reorder_level",
	"created_at", "updated_at",
}

// materialRepository implements ports.MaterialRepository
type materialRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *Database, logger *slog.Logger) ports.MaterialRepository {
	return &materialRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "materials")),
	}
}

func (r *materialRepository) Create(ctx context.Context, m *domain.Material) error {
	query, args, err := psql.Insert("materials").
		Columns(materialColumns...).
		Values(
			m.ID, m.SKU, m.Name, m.Category, m.Supplier, m.UnitPrice,
			m.AvailableQuantity, m.DamagedQuantity, m.ReorderLevel,
			m.CreatedAt, m.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := querier(ctx, r.db.pool).Exec(ctx, query, args...); err != nil {
		return translate(fmt.Errorf("failed to create material: %w", err), skuConflict(m.SKU))
	}

	r.logger.DebugContext(ctx, "material created",
		slog.String("material_id", m.ID.String()),
		slog.String("sku", m.SKU))
	return nil
}

// Update writes the registry fields. Balances are left to the ledger.
func (r *materialRepository) Update(ctx context.Context, m *domain.Material) error {
	query, args, err := psql.Update("materials").
		SetMap(map[string]any{
			"sku":           m.SKU,
			"name":          m.Name,
			"category":      m.Category,
			"supplier":      m.Supplier,
			"unit_price":    m.UnitPrice,
			"reorder_level": m.ReorderLevel,
			"updated_at":    m.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := querier(ctx, r.db.pool).Exec(ctx, query, args...)
	if err != nil {
		return translate(fmt.Errorf("failed to update material: %w", err), skuConflict(m.SKU))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %s does not exist", m.ID)
	}
	return nil
}

// Delete removes the material; its movements go with it through the
// foreign key cascade.
func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := querier(ctx, r.db.pool).Exec(ctx, `DELETE FROM materials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func (r *materialRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "")
}

func (r *materialRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Material, error) {
	out := make(map[uuid.UUID]*domain.Material, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	materials, err := r.findMany(ctx, psql.Select(materialColumns...).
		From("materials").
		Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		out[m.ID] = m
	}
	return out, nil
}

func (r *materialRepository) FindBySKU(ctx context.Context, sku string) (*domain.Material, error) {
	return r.findOne(ctx, squirrel.Eq{"sku": sku}, "")
}

func (r *materialRepository) FindBySKUFold(ctx context.Context, sku string) (*domain.Material, error) {
	return r.findOne(ctx, squirrel.Expr("lower(sku) = lower(?)", sku), "")
}

func (r *materialRepository) FindAll(ctx context.Context) ([]*domain.Material, error) {
	return r.findMany(ctx, psql.Select(materialColumns...).
		From("materials").
		OrderBy("created_at DESC", "sku ASC"))
}

func (r *materialRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "FOR UPDATE")
}

// ApplyQuantityChange guards the available balance in the WHERE clause so
// the check and the write happen in one statement.
func (r *materialRepository) ApplyQuantityChange(ctx context.Context, id uuid.UUID, availableDelta, damagedDelta int64, at time.Time) (*domain.Material, error) {
	query, args, err := psql.Update("materials").
		Set("available_quantity", squirrel.Expr("available_quantity + ?", availableDelta)).
		Set("damaged_quantity", squirrel.Expr("damaged_quantity + ?", damagedDelta)).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("available_quantity + ? >= 0", availableDelta)).
		Suffix("RETURNING " + strings.Join(materialColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	m, err := ScanOne(querier(ctx, r.db.pool).QueryRow(ctx, query, args...), scanMaterial)
	if err != nil {
		return nil, translate(fmt.Errorf("failed to apply quantity change: %w", err), "")
	}
	if m == nil {
		r.logger.DebugContext(ctx, "quantity change rejected",
			slog.String("material_id", id.String()),
			slog.Int64("available_delta", availableDelta))
	}
	return m, nil
}

func (r *materialRepository) findOne(ctx context.Context, pred squirrel.Sqlizer, lock string) (*domain.Material, error) {
	qb := psql.Select(materialColumns...).From("materials").Where(pred).Limit(1)
	if lock != "" {
		qb = qb.Suffix(lock)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	m, err := ScanOne(querier(ctx, r.db.pool).QueryRow(ctx, query, args...), scanMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to find material: %w", err)
	}
	return m, nil
}

func (r *materialRepository) findMany(ctx context.Context, qb squirrel.SelectBuilder) ([]*domain.Material, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := querier(ctx, r.db.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	materials, err := ScanMany(rows, scanMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to scan materials: %w", err)
	}
	return materials, nil
}

func scanMaterial(row pgx.Row) (*domain.Material, error) {
	var m domain.Material
	err := row.Scan(
		&m.ID, &m.SKU, &m.Name, &m.Category, &m.Supplier, &m.UnitPrice,
		&m.AvailableQuantity, &m.DamagedQuantity, &m.ReorderLevel,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func skuConflict(sku string) string {
	return fmt.Sprintf("Material with SKU %s already exists", sku)
}
