// internal/adapters/db/errors.go
package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammerola/stockledger/internal/core/domain"
)

// SQLSTATE codes the repositories translate.
const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

const (
	skuIndex             = "materials_sku_lower_key"
	availableNonNegative = "materials_available_non_negative"
)

// translate maps constraint violations onto domain errors and leaves
// everything else untouched.
func translate(err error, conflictMessage string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == uniqueViolation && pgErr.ConstraintName == skuIndex:
		return &domain.Error{Kind: domain.KindConflict, Message: conflictMessage, Field: "sku", Err: err}
	case pgErr.Code == checkViolation && pgErr.ConstraintName == availableNonNegative:
		return &domain.Error{Kind: domain.KindInsufficientStock, Message: "Insufficient stock", Err: err}
	}
	return err
}
