// internal/handlers/response.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ammerola/stockledger/internal/core/domain"
)

const dateLayout = "2006-01-02"

// envelope is the body shape of every API response.
type envelope struct {
	Success bool             `json:"success"`
	Data    any              `json:"data,omitempty"`
	Count   *int             `json:"count,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Field   string           `json:"field,omitempty"`
	Details map[string]any   `json:"details,omitempty"`
}

// responder writes envelopes and is embedded by every API handler.
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h responder) respondData(w http.ResponseWriter, status int, data any) {
	h.respondJSON(w, status, envelope{Success: true, Data: data})
}

func (h responder) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, envelope{Success: true, Message: message})
}

func respondList[T any](h responder, w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	h.respondJSON(w, http.StatusOK, envelope{Success: true, Data: items, Count: &count})
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, envelope{Error: message, Kind: kindForStatus(status)})
}

// respondDomainError maps err to a status by kind. Internal failures are
// logged and replaced with fallback so storage details never leak.
func (h responder) respondDomainError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	de, ok := domain.AsError(err)
	if !ok || de.Kind == domain.KindInternal {
		h.logger.ErrorContext(ctx, fallback, slog.String("error", err.Error()))
		h.respondJSON(w, http.StatusInternalServerError, envelope{Error: fallback, Kind: domain.KindInternal})
		return
	}

	status := statusForKind(de.Kind)
	h.logger.WarnContext(ctx, "request rejected",
		slog.String("kind", string(de.Kind)),
		slog.String("error", de.Error()))

	h.respondJSON(w, status, envelope{
		Error:   de.Message,
		Kind:    de.Kind,
		Field:   de.Field,
		Details: de.Details,
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusConflict:
		return domain.KindConflict
	case http.StatusUnprocessableEntity:
		return domain.KindInsufficientStock
	default:
		return domain.KindInternal
	}
}

// decodeJSON reads a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	return nil
}

// parseDate accepts RFC 3339 or a calendar date. A calendar date used as
// the end of a window covers the whole day.
func parseDate(field, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.NewValidationError(field, field+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// parseLimit reads ?limit. Zero leaves the service default in place.
func parseLimit(r *http.Request) (int, error) {
	n, err := domain.ParseNonNegativeInteger("limit", r.URL.Query().Get("limit"), 0)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
