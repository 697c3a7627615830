// internal/handlers/insights.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// InsightsHandler serves the read-only analytics endpoints
type InsightsHandler struct {
	responder
	service ports.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service ports.InsightsService, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		responder: responder{logger: logger.With(slog.String("handler", "insights"))},
		service:   service,
	}
}

// Dashboard handles GET /api/v1/insights/dashboard
func (h *InsightsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to build dashboard")
		return
	}
	h.respondData(w, http.StatusOK, metrics)
}

// LowStock handles GET /api/v1/insights/low-stock
func (h *InsightsHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.LowStock(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to compute low stock")
		return
	}
	respondList(h.responder, w, alerts)
}

// DeadStock handles GET /api/v1/insights/dead-stock
func (h *InsightsHandler) DeadStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.DeadStock(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to compute dead stock")
		return
	}
	respondList(h.responder, w, items)
}

// FastMoving handles GET /api/v1/insights/fast-moving?days=N
func (h *InsightsHandler) FastMoving(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days, err := domain.ParseNonNegativeInteger("days", r.URL.Query().Get("days"), 0)
	if err == nil {
		err = domain.ValidatePeriodDays("days", days)
	}
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid days")
		return
	}

	items, err := h.service.FastMoving(ctx, int(days))
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to compute fast-moving items")
		return
	}
	respondList(h.responder, w, items)
}

// TopSKUs handles GET /api/v1/insights/top-skus?limit=N
func (h *InsightsHandler) TopSKUs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid limit")
		return
	}

	ranking, err := h.service.TopMovingSKUs(ctx, limit)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to rank SKUs")
		return
	}
	respondList(h.responder, w, ranking)
}

// DamagedInventory handles GET /api/v1/insights/damaged-inventory
func (h *InsightsHandler) DamagedInventory(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.DamagedSummary(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to summarize damaged inventory")
		return
	}
	h.respondData(w, http.StatusOK, summary)
}

// CategoryBreakdown handles GET /api/v1/insights/category-breakdown
func (h *InsightsHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.CategoryBreakdown(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to build category breakdown")
		return
	}
	respondList(h.responder, w, categories)
}

// Comprehensive handles GET /api/v1/insights/comprehensive
func (h *InsightsHandler) Comprehensive(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Comprehensive(r.Context())
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to build insights")
		return
	}
	h.respondData(w, http.StatusOK, insights)
}
