// internal/handlers/export.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/reports"
)

// ExportHandler renders inventory reports
type ExportHandler struct {
	responder
	reports *reports.Generator
	queue   ports.TaskQueue
}

// NewExportHandler creates a new export handler. archive may be nil, in
// which case archiving is reported as unavailable.
func NewExportHandler(materials ports.MaterialService, insights ports.InsightsService, archive ports.ReportArchive, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		responder: responder{logger: logger.With(slog.String("handler", "export"))},
		reports:   reports.NewGenerator(materials, insights, archive, logger),
	}
}

// WithQueue enables handing archive jobs to the background worker.
func (h *ExportHandler) WithQueue(queue ports.TaskQueue) *ExportHandler {
	h.queue = queue
	return h
}

// InventoryWorkbook handles GET /api/v1/reports/inventory
func (h *ExportHandler) InventoryWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.logger.InfoContext(ctx, "Starting inventory export")

	wb, err := h.reports.Inventory(ctx)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to generate Excel file")
		return
	}

	w.Header().Set("Content-Type", reports.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, wb.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(wb.Data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(wb.Data); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Inventory export completed",
		slog.Int("total_rows", wb.Rows),
		slog.String("filename", wb.Filename))
}

// ArchiveInventory handles POST /api/v1/reports/inventory/archive
func (h *ExportHandler) ArchiveInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.reports.CanArchive() {
		h.respondError(w, http.StatusServiceUnavailable, "Report archive is not configured")
		return
	}

	archived, err := h.reports.Archive(ctx)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to archive report")
		return
	}

	h.respondData(w, http.StatusCreated, archived)
}

// ScheduleArchive handles POST /api/v1/reports/inventory/archive/jobs
func (h *ExportHandler) ScheduleArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.queue == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Background worker is not configured")
		return
	}

	task, err := h.queue.EnqueueReportArchive(ctx)
	if err != nil {
		h.respondDomainError(ctx, w, err, "Failed to schedule report archive")
		return
	}

	h.logger.InfoContext(ctx, "Report archive scheduled",
		slog.String("task_id", task.ID),
		slog.String("queue", task.Queue))

	h.respondData(w, http.StatusAccepted, task)
}
