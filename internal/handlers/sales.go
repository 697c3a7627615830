// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// SalesHandler handles sales HTTP requests
type SalesHandler struct {
	responder
	service ports.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service ports.SalesService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		responder: responder{logger: logger.With(slog.String("handler", "sales"))},
		service:   service,
	}
}

// RecordSale handles POST /api/v1/sales
func (h *SalesHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	sale, err := req.ToDomain()
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid request body")
		return
	}

	receipt, err := h.service.RecordSale(ctx, sale)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to record sale")
		return
	}

	h.logger.InfoContext(ctx, "sale recorded",
		slog.String("sale_id", receipt.SaleID.String()),
		slog.String("sku", receipt.SKU),
		slog.Int64("quantity", receipt.QuantitySold))

	h.respondData(w, http.StatusCreated, receipt)
}

// ListSales handles GET /api/v1/sales
func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseSalesFilter(r)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid query")
		return
	}

	sales, err := h.service.ListSales(ctx, filter)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to list sales")
		return
	}
	respondList(h.responder, w, sales)
}

// SalesBySKU handles GET /api/v1/sales/sku/{sku}
func (h *SalesHandler) SalesBySKU(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.SalesBySKU(r.Context(), r.PathValue("sku"))
	if err != nil {
		h.respondDomainError(r.Context(), w, err, "Failed to list sales")
		return
	}
	respondList(h.responder, w, sales)
}

// Summary handles GET /api/v1/sales/summary
func (h *SalesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseSalesFilter(r)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Invalid query")
		return
	}

	summary, err := h.service.Summary(ctx, filter)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to summarize sales")
		return
	}
	h.respondData(w, http.StatusOK, summary)
}

func parseSalesFilter(r *http.Request) (domain.SalesFilter, error) {
	q := r.URL.Query()

	from, err := parseDate("startDate", q.Get("startDate"), false)
	if err != nil {
		return domain.SalesFilter{}, err
	}
	to, err := parseDate("endDate", q.Get("endDate"), true)
	if err != nil {
		return domain.SalesFilter{}, err
	}
	limit, err := parseLimit(r)
	if err != nil {
		return domain.SalesFilter{}, err
	}

	return domain.SalesFilter{From: from, To: to, Limit: limit}, nil
}

// RecordSaleRequest represents the request body for a sale
type RecordSaleRequest struct {
	SKU          string      `json:"sku"`
	Quantity     json.Number `json:"quantity"`
	Reference    string      `json:"reference"`
	CustomerName string      `json:"customerName"`
	SaleDate     string      `json:"saleDate"`
}

// ToDomain validates the wire fields and converts them.
func (r *RecordSaleRequest) ToDomain() (domain.SaleRequest, error) {
	if strings.TrimSpace(r.SKU) == "" {
		return domain.SaleRequest{}, domain.NewValidationError("sku", "sku is required")
	}
	qty, err := domain.ParsePositiveInteger("quantity", r.Quantity.String())
	if err != nil {
		return domain.SaleRequest{}, err
	}
	date, err := parseDate("saleDate", r.SaleDate, false)
	if err != nil {
		return domain.SaleRequest{}, err
	}

	return domain.SaleRequest{
		SKU:          r.SKU,
		Quantity:     qty,
		Reference:    strings.TrimSpace(r.Reference),
		CustomerName: r.CustomerName,
		SaleDate:     date,
	}, nil
}
