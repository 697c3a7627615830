// cmd/seeder/seed.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// Seeder writes a catalog through the registry and the ledger, so every
// seeded balance is backed by movements.
type Seeder struct {
	materials ports.MaterialService
	ledger    ports.LedgerService
	now       func() time.Time
	logger    *slog.Logger
}

// Summary counts what a run wrote.
type Summary struct {
	Materials  int
	Skipped    int
	Movements  int
	Categories map[string]int
	ZeroStock  int
	LowStock   int
}

func NewSeeder(materials ports.MaterialService, ledger ports.LedgerService, logger *slog.Logger) *Seeder {
	return &Seeder{
		materials: materials,
		ledger:    ledger,
		now:       time.Now,
		logger:    logger,
	}
}

// Reset deletes every material and, with it, its movements.
func (s *Seeder) Reset(ctx context.Context) (int, error) {
	all, err := s.materials.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, m := range all {
		if err := s.materials.Delete(ctx, m.ID); err != nil {
			return 0, fmt.Errorf("failed to delete %s: %w", m.SKU, err)
		}
	}
	return len(all), nil
}

// Seed creates each catalog item and posts its history oldest first. Items
// whose SKU already exists are skipped.
func (s *Seeder) Seed(ctx context.Context, catalog []CatalogItem) (*Summary, error) {
	summary := &Summary{Categories: make(map[string]int)}
	now := s.now()

	for _, item := range catalog {
		_, err := s.materials.GetBySKU(ctx, item.SKU)
		switch {
		case err == nil:
			s.logger.InfoContext(ctx, "skipping existing material", slog.String("sku", item.SKU))
			summary.Skipped++
			continue
		case domain.KindOf(err) != domain.KindNotFound:
			return summary, err
		}

		reorder := item.ReorderLevel
		m, err := s.materials.Create(ctx, domain.MaterialDraft{
			SKU:          item.SKU,
			Name:         item.Name,
			Category:     item.Category,
			Supplier:     item.Supplier,
			UnitPrice:    item.UnitPrice,
			ReorderLevel: &reorder,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to create %s: %w", item.SKU, err)
		}

		history := append([]HistoryEntry(nil), item.History...)
		sort.SliceStable(history, func(i, j int) bool { return history[i].DaysAgo > history[j].DaysAgo })

		var last *domain.Material
		for _, h := range history {
			reason, err := domain.NormalizeReason(h.Reason, h.Type)
			if err != nil {
				return summary, fmt.Errorf("%s: %w", item.SKU, err)
			}

			posting, err := s.ledger.Post(ctx, domain.LedgerEntry{
				MaterialID: m.ID,
				Type:       h.Type,
				Quantity:   h.Quantity,
				Reason:     reason,
				Reference:  h.Reference,
				Notes:      h.Notes,
				OccurredAt: now.AddDate(0, 0, -h.DaysAgo),
				Damaged:    reason.IsDamage(),
			})
			if err != nil {
				return summary, fmt.Errorf("%s: failed to post %s %d: %w", item.SKU, h.Type, h.Quantity, err)
			}
			last = posting.Material
			summary.Movements++
		}

		available := int64(0)
		if last != nil {
			available = last.AvailableQuantity
		}
		switch {
		case available == 0:
			summary.ZeroStock++
		case available <= item.ReorderLevel:
			summary.LowStock++
		}
		summary.Materials++
		summary.Categories[item.Category]++

		s.logger.InfoContext(ctx, "seeded material",
			slog.String("sku", item.SKU),
			slog.Int("movements", len(history)),
			slog.Int64("available", available))
	}

	return summary, nil
}
