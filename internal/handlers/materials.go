// internal/handlers/materials.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// MaterialHandler handles material registry HTTP requests
type MaterialHandler struct {
	responder
	service ports.MaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(service ports.MaterialService, logger *slog.Logger) *MaterialHandler {
	return &MaterialHandler{
		responder: responder{logger: logger.With(slog.String("handler", "materials"))},
		service:   service,
	}
}

// ListMaterials handles GET /api/v1/materials
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.service.List(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to list materials")
		return
	}
	respondList(h.responder, w, materials)
}

// CreateMaterial handles POST /api/v1/materials
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateMaterialRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	draft, err := req.ToDomain()
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	material, err := h.service.Create(ctx, draft)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to create material")
		return
	}

	h.logger.InfoContext(ctx, "material created",
		slog.String("material_id", material.ID.String()),
		slog.String("sku", material.SKU))

	h.respondData(w, http.StatusCreated, material)
}

// GetMaterial handles GET /api/v1/materials/{id}
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID format")
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to retrieve material")
		return
	}
	h.respondData(w, http.StatusOK, detail)
}

// GetMaterialBySKU handles GET /api/v1/materials/sku/{sku}
func (h *MaterialHandler) GetMaterialBySKU(w http.ResponseWriter, r *http.Request) {
	material, err := h.service.GetBySKU(r.Context(), r.PathValue("sku"))
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to retrieve material")
		return
	}
	h.respondData(w, http.StatusOK, material)
}

// UpdateMaterial handles PUT /api/v1/materials/{id}
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID format")
		return
	}

	var req UpdateMaterialRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	patch, err := req.ToDomain()
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	material, err := h.service.Update(ctx, id, patch)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to update material")
		return
	}

	h.logger.InfoContext(ctx, "material updated",
		slog.String("material_id", id.String()))

	h.respondData(w, http.StatusOK, material)
}

// DeleteMaterial handles DELETE /api/v1/materials/{id}
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid material ID format")
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.respondDomainError(ctx, w, err, "Failed to delete material")
		return
	}

	h.logger.InfoContext(ctx, "material deleted",
		slog.String("material_id", id.String()))

	h.respondMessage(w, http.StatusOK, "Material deleted successfully")
}

// Request DTOs

// CreateMaterialRequest represents the request body for creating a material.
// Quantities are not accepted; stock enters through the ledger.
type CreateMaterialRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Supplier     string           `json:"supplier"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	ReorderLevel *json.Number     `json:"reorderLevel"`
}

// ToDomain converts the request into a draft.
func (r *CreateMaterialRequest) ToDomain() (domain.MaterialDraft, error) {
	if r.UnitPrice == nil {
		return domain.MaterialDraft{}, domain.NewValidationError("unitPrice", "unitPrice is required")
	}

	reorder, err := parseOptionalCount("reorderLevel", r.ReorderLevel)
	if err != nil {
		return domain.MaterialDraft{}, err
	}

	return domain.MaterialDraft{
		SKU:          r.SKU,
		Name:         r.Name,
		Category:     r.Category,
		Supplier:     r.Supplier,
		UnitPrice:    *r.UnitPrice,
		ReorderLevel: reorder,
	}, nil
}

// UpdateMaterialRequest represents a partial update. Absent fields are kept.
type UpdateMaterialRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Supplier     *string          `json:"supplier"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	ReorderLevel *json.Number     `json:"reorderLevel"`
}

// ToDomain converts the request into a patch.
func (r *UpdateMaterialRequest) ToDomain() (domain.MaterialPatch, error) {
	reorder, err := parseOptionalCount("reorderLevel", r.ReorderLevel)
	if err != nil {
		return domain.MaterialPatch{}, err
	}

	return domain.MaterialPatch{
		SKU:          r.SKU,
		Name:         r.Name,
		Category:     r.Category,
		Supplier:     r.Supplier,
		UnitPrice:    r.UnitPrice,
		ReorderLevel: reorder,
	}, nil
}

func parseOptionalCount(field string, raw *json.Number) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := domain.ParseNonNegativeInteger(field, raw.String(), 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
