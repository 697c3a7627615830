// internal/core/domain/movement.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MovementType is the direction of a ledger entry.
type MovementType string

const (
	MovementInward  MovementType = "INWARD"
	MovementOutward MovementType = "OUTWARD"
)

// ParseMovementType accepts the type case-insensitively.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementInward:
		return MovementInward, nil
	case MovementOutward:
		return MovementOutward, nil
	case "":
		return "", NewValidationError("type", "type is required")
	default:
		return "", NewValidationError("type", fmt.Sprintf("type must be %s or %s", MovementInward, MovementOutward))
	}
}

// Reason classifies a movement. Only ReasonSales and ReasonDamage carry
// meaning for analytics; other values are display text.
type Reason string

const (
	ReasonSales            Reason = "Sales"
	ReasonDamage           Reason = "Damage"
	ReasonPurchase         Reason = "Purchase"
	ReasonManualAdjustment Reason = "Manual adjustment"
)

// IsSales reports whether r is the sales tag.
func (r Reason) IsSales() bool { return r == ReasonSales }

// IsDamage reports whether r is the damage tag.
func (r Reason) IsDamage() bool { return r == ReasonDamage }

// NormalizeReason trims raw, defaults it to ReasonManualAdjustment and
// canonicalizes the Sales and Damage tags, which only apply to OUTWARD.
func NormalizeReason(raw string, t MovementType) (Reason, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ReasonManualAdjustment, nil
	case strings.EqualFold(raw, string(ReasonSales)):
		if t != MovementOutward {
			return "", NewValidationError("reason", "Sales movements must be OUTWARD")
		}
		return ReasonSales, nil
	case strings.EqualFold(raw, string(ReasonDamage)):
		if t != MovementOutward {
			return "", NewValidationError("reason", "Damage movements must be OUTWARD")
		}
		return ReasonDamage, nil
	default:
		return Reason(raw), nil
	}
}

// Movement is one immutable ledger entry.
type Movement struct {
	ID         uuid.UUID    `json:"id"`
	MaterialID uuid.UUID    `json:"materialId"`
	Type       MovementType `json:"type"`
	Quantity   int64        `json:"quantity"`
	Reason     Reason       `json:"reason"`
	Reference  string       `json:"reference,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// IsSale reports whether m is an outward sales entry.
func (m *Movement) IsSale() bool {
	return m.Type == MovementOutward && m.Reason.IsSales()
}

// MovementRequest is the input of a manual stock movement.
type MovementRequest struct {
	MaterialID uuid.UUID
	Type       MovementType
	Quantity   int64
	Reason     string
	Reference  string
	Notes      string
}

// LedgerEntry is the single input shape of an atomic ledger posting.
type LedgerEntry struct {
	MaterialID uuid.UUID
	Type       MovementType
	Quantity   int64
	Reason     Reason
	Reference  string
	Notes      string
	// OccurredAt backdates the entry; zero means now.
	OccurredAt time.Time
	// Damaged also grows the material's damaged counter.
	Damaged bool
}

// Validate checks the entry's own fields.
func (e LedgerEntry) Validate() error {
	if e.MaterialID == uuid.Nil {
		return NewValidationError("materialId", "materialId is required")
	}
	if e.Type != MovementInward && e.Type != MovementOutward {
		return NewValidationError("type", fmt.Sprintf("type must be %s or %s", MovementInward, MovementOutward))
	}
	if err := ValidatePositiveQuantity("quantity", e.Quantity); err != nil {
		return err
	}
	if e.Damaged && e.Type != MovementOutward {
		return NewValidationError("type", "damage must be recorded as OUTWARD")
	}
	return nil
}

// Deltas returns the changes the entry makes to available and damaged.
func (e LedgerEntry) Deltas() (available, damaged int64) {
	available = e.Quantity
	if e.Type == MovementOutward {
		available = -e.Quantity
	}
	if e.Damaged {
		damaged = e.Quantity
	}
	return available, damaged
}

// Posting is the result of a committed ledger entry.
type Posting struct {
	Movement    *Movement
	Material    *Material
	StockBefore int64
	StockAfter  int64
}

// MovementFilter narrows ledger queries. Zero values mean "no constraint".
type MovementFilter struct {
	MaterialID *uuid.UUID
	Type       MovementType
	Reason     Reason
	From       *time.Time
	To         *time.Time
	Limit      int
}

// MovementCount is the number of ledger entries for one material.
type MovementCount struct {
	MaterialID uuid.UUID
	Count      int64
}
