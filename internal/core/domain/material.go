// internal/core/domain/material.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReorderLevel applies when a material is created without one.
const DefaultReorderLevel int64 = 10

// RecentMovementsLimit is how many ledger entries a material detail carries.
const RecentMovementsLimit = 10

// Material is a trackable catalog item. AvailableQuantity and
// DamagedQuantity are owned by the ledger; nothing in the registry writes them.
type Material struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Supplier          string          `json:"supplier"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	AvailableQuantity int64           `json:"availableQuantity"`
	DamagedQuantity   int64           `json:"damagedQuantity"`
	ReorderLevel      int64           `json:"reorderLevel"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// MaterialDraft carries the client-settable fields of a new material.
// ReorderLevel is nil when the client omitted it.
type MaterialDraft struct {
	SKU          string
	Name         string
	Category     string
	Supplier     string
	UnitPrice    decimal.Decimal
	ReorderLevel *int64
}

// MaterialPatch is a partial update. It has no quantity fields.
type MaterialPatch struct {
	SKU          *string
	Name         *string
	Category     *string
	Supplier     *string
	UnitPrice    *decimal.Decimal
	ReorderLevel *int64
}

// MaterialDetail is a material together with its latest ledger entries.
type MaterialDetail struct {
	*Material
	RecentMovements []*Movement `json:"recentMovements"`
}

// NewMaterial validates a draft and returns a material with a zero balance.
func NewMaterial(d MaterialDraft, now time.Time) (*Material, error) {
	sku, err := NormalizeSKU(d.SKU)
	if err != nil {
		return nil, err
	}
	name, err := RequireText("name", d.Name)
	if err != nil {
		return nil, err
	}
	category, err := RequireText("category", d.Category)
	if err != nil {
		return nil, err
	}
	supplier, err := RequireText("supplier", d.Supplier)
	if err != nil {
		return nil, err
	}
	if err := ValidateUnitPrice(d.UnitPrice); err != nil {
		return nil, err
	}

	reorder := DefaultReorderLevel
	if d.ReorderLevel != nil {
		reorder = *d.ReorderLevel
	}
	if err := ValidateNonNegativeQuantity("reorderLevel", reorder); err != nil {
		return nil, err
	}

	return &Material{
		ID:           uuid.New(),
		SKU:          sku,
		Name:         name,
		Category:     category,
		Supplier:     supplier,
		UnitPrice:    d.UnitPrice,
		ReorderLevel: reorder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply validates p and copies the present fields onto m.
func (m *Material) Apply(p MaterialPatch, now time.Time) error {
	next := *m

	if p.SKU != nil {
		sku, err := NormalizeSKU(*p.SKU)
		if err != nil {
			return err
		}
		next.SKU = sku
	}
	if p.Name != nil {
		name, err := RequireText("name", *p.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if p.Category != nil {
		category, err := RequireText("category", *p.Category)
		if err != nil {
			return err
		}
		next.Category = category
	}
	if p.Supplier != nil {
		supplier, err := RequireText("supplier", *p.Supplier)
		if err != nil {
			return err
		}
		next.Supplier = supplier
	}
	if p.UnitPrice != nil {
		if err := ValidateUnitPrice(*p.UnitPrice); err != nil {
			return err
		}
		next.UnitPrice = *p.UnitPrice
	}
	if p.ReorderLevel != nil {
		if err := ValidateNonNegativeQuantity("reorderLevel", *p.ReorderLevel); err != nil {
			return err
		}
		next.ReorderLevel = *p.ReorderLevel
	}

	next.UpdatedAt = now
	*m = next
	return nil
}

// IsLowStock reports whether the balance is at or below the reorder level.
func (m *Material) IsLowStock() bool {
	return m.AvailableQuantity <= m.ReorderLevel
}

// StockValue is unit price times available quantity.
func (m *Material) StockValue() decimal.Decimal {
	return m.UnitPrice.Mul(decimal.NewFromInt(m.AvailableQuantity))
}

// DamagedValue is unit price times damaged quantity.
func (m *Material) DamagedValue() decimal.Decimal {
	return m.UnitPrice.Mul(decimal.NewFromInt(m.DamagedQuantity))
}
