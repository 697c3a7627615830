// internal/workers/report_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/reports"
)

// Digest summarizes the low-stock alerts a digest task found.
type Digest struct {
	Total     int                    `json:"total"`
	ByUrgency map[domain.Urgency]int `json:"by_urgency"`
	SKUs      []string               `json:"skus"`
}

// ReportProcessor handles report and alert tasks
type ReportProcessor struct {
	reports  *reports.Generator
	insights ports.InsightsService
	logger   *slog.Logger
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(generator *reports.Generator, insights ports.InsightsService, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		reports:  generator,
		insights: insights,
		logger:   logger.With(slog.String("processor", "reports")),
	}
}

// Register mounts the task handlers on mux.
func (p *ReportProcessor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeArchiveInventory, p.ArchiveInventory)
	mux.HandleFunc(TypeLowStockDigest, p.LowStockDigest)
}

// ArchiveInventory renders the inventory workbook and uploads it.
func (p *ReportProcessor) ArchiveInventory(ctx context.Context, t *asynq.Task) error {
	var payload ArchivePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "archiving inventory report",
		slog.String("trigger", payload.Trigger),
		slog.Time("requested_at", payload.RequestedAt))

	archived, err := p.reports.Archive(ctx)
	switch {
	case errors.Is(err, reports.ErrArchiveDisabled):
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	case err != nil:
		return fmt.Errorf("failed to archive inventory report: %w", err)
	}

	writeResult(ctx, p.logger, t, archived)
	return nil
}

// LowStockDigest logs every low-stock alert at or above the requested
// urgency.
func (p *ReportProcessor) LowStockDigest(ctx context.Context, t *asynq.Task) error {
	var payload DigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	alerts, err := p.insights.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to load low stock alerts: %w", err)
	}

	digest := &Digest{ByUrgency: make(map[domain.Urgency]int), SKUs: []string{}}
	for _, a := range alerts {
		if urgencyRank(a.Urgency) < urgencyRank(payload.MinUrgency) {
			continue
		}
		digest.Total++
		digest.ByUrgency[a.Urgency]++
		digest.SKUs = append(digest.SKUs, a.SKU)

		attrs := []any{
			slog.String("sku", a.SKU),
			slog.String("urgency", string(a.Urgency)),
			slog.Int64("available", a.AvailableQuantity),
			slog.Int64("reorder_level", a.ReorderLevel),
		}
		if a.DaysUntilStockout != nil {
			attrs = append(attrs, slog.Int64("days_until_stockout", *a.DaysUntilStockout))
		}
		p.logger.WarnContext(ctx, a.Alert, attrs...)
	}

	p.logger.InfoContext(ctx, "low stock digest",
		slog.Int("alerts", digest.Total),
		slog.Int("critical", digest.ByUrgency[domain.UrgencyCritical]),
		slog.Int("high", digest.ByUrgency[domain.UrgencyHigh]),
		slog.Int("medium", digest.ByUrgency[domain.UrgencyMedium]))

	writeResult(ctx, p.logger, t, digest)
	return nil
}

// urgencyRank orders urgencies; unknown and empty values rank lowest.
func urgencyRank(u domain.Urgency) int {
	switch u {
	case domain.UrgencyCritical:
		return 3
	case domain.UrgencyHigh:
		return 2
	case domain.UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// writeResult stores v as the task result. Tasks built outside a worker
// have no result writer.
func writeResult(ctx context.Context, logger *slog.Logger, t *asynq.Task, v any) {
	w := t.ResultWriter()
	if w == nil {
		return
	}
	data, err := json.Marshal(v)
	if err == nil {
		_, err = w.Write(data)
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to write task result", slog.String("error", err.Error()))
	}
}
