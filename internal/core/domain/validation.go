// internal/core/domain/validation.go
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity accepted by the ledger (2^53 - 1), so
// balances stay exact for any JSON client.
const MaxQuantity int64 = 1<<53 - 1

// ValidatePositiveQuantity checks a quantity already decoded to an integer.
func ValidatePositiveQuantity(field string, v int64) error {
	if v <= 0 {
		return NewValidationError(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	if v > MaxQuantity {
		return NewValidationError(field, fmt.Sprintf("%s is too large", field))
	}
	return nil
}

// ValidateNonNegativeQuantity checks counters such as reorder levels.
func ValidateNonNegativeQuantity(field string, v int64) error {
	if v < 0 {
		return NewValidationError(field, fmt.Sprintf("%s cannot be negative", field))
	}
	if v > MaxQuantity {
		return NewValidationError(field, fmt.Sprintf("%s is too large", field))
	}
	return nil
}

// ParsePositiveInteger parses a raw numeric token (JSON number or query
// string) into a positive safe integer.
func ParsePositiveInteger(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, NewValidationError(field, fmt.Sprintf("%s is required", field))
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewValidationError(field, fmt.Sprintf("%s must be a valid number", field))
	}
	if f != math.Trunc(f) {
		return 0, NewValidationError(field, fmt.Sprintf("%s must be a whole number", field))
	}
	if f <= 0 {
		return 0, NewValidationError(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	if f > float64(MaxQuantity) {
		return 0, NewValidationError(field, fmt.Sprintf("%s is too large", field))
	}

	return int64(f), nil
}

// ParseNonNegativeInteger is ParsePositiveInteger for counters that may be
// zero. An empty token yields def.
func ParseNonNegativeInteger(field, raw string, def int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewValidationError(field, fmt.Sprintf("%s must be a valid number", field))
	}
	if f != math.Trunc(f) {
		return 0, NewValidationError(field, fmt.Sprintf("%s must be a whole number", field))
	}
	if f < 0 {
		return 0, NewValidationError(field, fmt.Sprintf("%s cannot be negative", field))
	}
	if f > float64(MaxQuantity) {
		return 0, NewValidationError(field, fmt.Sprintf("%s is too large", field))
	}

	return int64(f), nil
}

// ValidatePeriodDays rejects look-back windows longer than MaxPeriodDays.
// Zero means the caller's default window.
func ValidatePeriodDays(field string, days int64) error {
	if days < 0 {
		return NewValidationError(field, fmt.Sprintf("%s cannot be negative", field))
	}
	if days > MaxPeriodDays {
		return NewValidationError(field, fmt.Sprintf("%s must be at most %d", field, MaxPeriodDays))
	}
	return nil
}

// RequireText trims s and rejects it when empty.
func RequireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return s, nil
}

// NormalizeSKU trims and upper-cases a SKU.
func NormalizeSKU(sku string) (string, error) {
	sku, err := RequireText("sku", sku)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(sku), nil
}

// ValidateUnitPrice rejects negative prices.
func ValidateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return NewValidationError("unitPrice", "unitPrice cannot be negative")
	}
	return nil
}
