// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so callers can map them to a
// transport status without inspecting messages.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInsufficientStock ErrorKind = "insufficient_stock"
	KindInternal          ErrorKind = "internal"
)

// Error is the structured failure returned by the ledger, registry, sales
// and insights services.
type Error struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Kind == e.Kind
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// WithDetails attaches structured context and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// NewValidationError reports a rejected input field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewConflictError reports a uniqueness clash.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInsufficientStockError reports an outward request larger than the
// available balance.
func NewInsufficientStockError(sku string, available, requested int64) *Error {
	msg := fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", available, requested)
	if sku != "" {
		msg = fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", sku, available, requested)
	}
	return &Error{
		Kind:    KindInsufficientStock,
		Message: msg,
		Details: map[string]any{
			"available": available,
			"requested": requested,
		},
	}
}

// NewInsufficientDamageError reports a damage write-off larger than the
// available balance.
func NewInsufficientDamageError(available, requested int64) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Insufficient stock to mark as damaged. Available: %d", available),
		Details: map[string]any{
			"available": available,
			"requested": requested,
		},
	}
}

// KindOf returns the kind of the first domain error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// AsError extracts the domain error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
