// internal/handlers/movements.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// MovementHandler handles stock movement HTTP requests
type MovementHandler struct {
	responder
	ledger ports.LedgerService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(ledger ports.LedgerService, logger *slog.Logger) *MovementHandler {
	return &MovementHandler{
		responder: responder{logger: logger.With(slog.String("handler", "movements"))},
		ledger:    ledger,
	}
}

// ListMovements handles GET /api/v1/stock-movements
func (h *MovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid limit")
		return
	}

	movements, err := h.ledger.RecentMovements(ctx, limit)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to list stock movements")
		return
	}
	respondList(h.responder, w, movements)
}

// CreateMovement handles POST /api/v1/stock-movements
func (h *MovementHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	mreq, err := req.ToDomain()
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	movement, err := h.ledger.RecordMovement(ctx, mreq)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to record stock movement")
		return
	}

	h.logger.InfoContext(ctx, "stock movement recorded",
		slog.String("movement_id", movement.ID.String()),
		slog.String("material_id", movement.MaterialID.String()),
		slog.String("type", string(movement.Type)),
		slog.Int64("quantity", movement.Quantity))

	h.respondData(w, http.StatusCreated, movement)
}

// MovementsForMaterial handles GET /api/v1/stock-movements/material/{id}
func (h *MovementHandler) MovementsForMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID format")
		return
	}

	movements, err := h.ledger.MovementsForMaterial(r.Context(), id)
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to list stock movements")
		return
	}
	respondList(h.responder, w, movements)
}

// MovementsInRange handles GET /api/v1/stock-movements/range
func (h *MovementHandler) MovementsInRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if strings.TrimSpace(q.Get("startDate")) == "" || strings.TrimSpace(q.Get("endDate")) == "" {
		h.respondError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := parseDate("startDate", q.Get("startDate"), false)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid startDate")
		return
	}
	end, err := parseDate("endDate", q.Get("endDate"), true)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid endDate")
		return
	}

	movements, err := h.ledger.MovementsBetween(ctx, *start, *end)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to list stock movements")
		return
	}
	respondList(h.responder, w, movements)
}

// RecordDamage handles POST /api/v1/stock-movements/damage
func (h *MovementHandler) RecordDamage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordDamageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	id, qty, err := req.Parse()
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	movement, err := h.ledger.RecordDamage(ctx, id, qty, req.Notes)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to record damage")
		return
	}

	h.logger.InfoContext(ctx, "damage recorded",
		slog.String("material_id", id.String()),
		slog.Int64("quantity", qty))

	h.respondData(w, http.StatusCreated, movement)
}

// Request DTOs

// CreateMovementRequest represents the request body for a manual movement
type CreateMovementRequest struct {
	MaterialID string      `json:"materialId"`
	Type       string      `json:"type"`
	Quantity   json.Number `json:"quantity"`
	Reason     string      `json:"reason"`
	Reference  string      `json:"reference"`
	Notes      string      `json:"notes"`
}

// ToDomain validates the wire fields and converts them.
func (r *CreateMovementRequest) ToDomain() (domain.MovementRequest, error) {
	id, err := parseMaterialID(r.MaterialID)
	if err != nil {
		return domain.MovementRequest{}, err
	}
	t, err := domain.ParseMovementType(r.Type)
	if err != nil {
		return domain.MovementRequest{}, err
	}
	qty, err := domain.ParsePositiveInteger("quantity", r.Quantity.String())
	if err != nil {
		return domain.MovementRequest{}, err
	}

	return domain.MovementRequest{
		MaterialID: id,
		Type:       t,
		Quantity:   qty,
		Reason:     r.Reason,
		Reference:  strings.TrimSpace(r.Reference),
		Notes:      strings.TrimSpace(r.Notes),
	}, nil
}

// RecordDamageRequest represents the request body for damaged stock
type RecordDamageRequest struct {
	MaterialID string      `json:"materialId"`
	Quantity   json.Number `json:"quantity"`
	Notes      string      `json:"notes"`
}

// Parse validates the wire fields.
func (r *RecordDamageRequest) Parse() (uuid.UUID, int64, error) {
	id, err := parseMaterialID(r.MaterialID)
	if err != nil {
		return uuid.Nil, 0, err
	}
	qty, err := domain.ParsePositiveInteger("quantity", r.Quantity.String())
	if err != nil {
		return uuid.Nil, 0, err
	}
	return id, qty, nil
}

func parseMaterialID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError("materialId", "materialId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("materialId", "materialId must be a valid ID")
	}
	return id, nil
}
