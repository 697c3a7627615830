// Package reports renders inventory workbooks and stores them in the
// report archive.
package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
)

// ContentType is the MIME type of every generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrArchiveDisabled is returned by Archive when no archive is configured.
var ErrArchiveDisabled = errors.New("report archive is not configured")

var (
	inventoryHeaders = []string{
		"SKU", "Name", "Category", "Supplier", "Unit Price",
		"Available", "Damaged", "Reorder Level", "Stock Value", "Low Stock", "Updated At",
	}
	lowStockHeaders = []string{
		"SKU", "Name", "Available", "Reorder Level", "Urgency", "Days Until Stockout",
	}
)

// Workbook is an encoded inventory report.
type Workbook struct {
	Data        []byte
	Filename    string
	Rows        int
	GeneratedAt time.Time
}

// Archived describes a workbook stored in the archive.
type Archived struct {
	Key      string    `json:"key"`
	Location string    `json:"location"`
	Rows     int       `json:"rows"`
	Created  time.Time `json:"createdAt"`
}

// Generator builds inventory workbooks from the registry and the low-stock
// analysis.
type Generator struct {
	materials ports.MaterialService
	insights  ports.InsightsService
	archive   ports.ReportArchive
	now       func() time.Time
	logger    *slog.Logger
}

// NewGenerator creates a generator. archive may be nil.
func NewGenerator(materials ports.MaterialService, insights ports.InsightsService, archive ports.ReportArchive, logger *slog.Logger) *Generator {
	return &Generator{
		materials: materials,
		insights:  insights,
		archive:   archive,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "reports")),
	}
}

// CanArchive reports whether Archive has somewhere to write.
func (g *Generator) CanArchive() bool {
	return g.archive != nil
}

// Inventory renders the Inventory and Low Stock sheets.
func (g *Generator) Inventory(ctx context.Context) (*Workbook, error) {
	materials, err := g.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := g.insights.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	data, err := renderInventory(materials, alerts)
	if err != nil {
		return nil, err
	}

	generated := g.now()
	return &Workbook{
		Data:        data,
		Filename:    fmt.Sprintf("inventory_report_%s.xlsx", generated.Format("20060102_150405")),
		Rows:        len(materials),
		GeneratedAt: generated,
	}, nil
}

// Archive renders the inventory workbook and uploads it under a
// date-partitioned key.
func (g *Generator) Archive(ctx context.Context) (*Archived, error) {
	if g.archive == nil {
		return nil, ErrArchiveDisabled
	}

	wb, err := g.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	created := wb.GeneratedAt.UTC()
	key := fmt.Sprintf("reports/inventory/%s/inventory_report_%s.xlsx",
		created.Format("2006/01/02"), created.Format("20060102_150405"))

	location, err := g.archive.Upload(ctx, key, bytes.NewReader(wb.Data), ContentType)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "inventory report archived",
		slog.String("key", key),
		slog.String("location", location),
		slog.Int("rows", wb.Rows))

	return &Archived{Key: key, Location: location, Rows: wb.Rows, Created: created}, nil
}

func renderInventory(materials []*domain.Material, alerts []*domain.LowStockAlert) ([]byte, error) {
	file := xlsx.NewFile()

	inventory, err := addSheet(file, "Inventory", inventoryHeaders)
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		row := inventory.AddRow()
		row.AddCell().SetString(m.SKU)
		row.AddCell().SetString(m.Name)
		row.AddCell().SetString(m.Category)
		row.AddCell().SetString(m.Supplier)
		row.AddCell().SetString(m.UnitPrice.StringFixed(2))
		row.AddCell().SetInt64(m.AvailableQuantity)
		row.AddCell().SetInt64(m.DamagedQuantity)
		row.AddCell().SetInt64(m.ReorderLevel)
		row.AddCell().SetString(m.StockValue().StringFixed(2))
		row.AddCell().SetBool(m.IsLowStock())
		row.AddCell().SetString(m.UpdatedAt.Format(time.RFC3339))
	}

	low, err := addSheet(file, "Low Stock", lowStockHeaders)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		row := low.AddRow()
		row.AddCell().SetString(a.SKU)
		row.AddCell().SetString(a.Name)
		row.AddCell().SetInt64(a.AvailableQuantity)
		row.AddCell().SetInt64(a.ReorderLevel)
		row.AddCell().SetString(string(a.Urgency))
		if a.DaysUntilStockout != nil {
			row.AddCell().SetInt64(*a.DaysUntilStockout)
		} else {
			row.AddCell().SetString("")
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}
	return buffer.Bytes(), nil
}

func addSheet(file *xlsx.File, name string, headers []string) (*xlsx.Sheet, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for i := range headers {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	return sheet, nil
}
