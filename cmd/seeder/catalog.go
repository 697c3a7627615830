// cmd/seeder/catalog.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockledger/internal/core/domain"
)

// CatalogItem is one material together with its movement history.
type CatalogItem struct {
	SKU          string
	Name         string
	Category     string
	Supplier     string
	UnitPrice    decimal.Decimal
	ReorderLevel int64
	History      []HistoryEntry
}

// HistoryEntry is a backdated ledger entry. DaysAgo is counted from the
// moment the seeder runs.
type HistoryEntry struct {
	Type      domain.MovementType
	Quantity  int64
	Reason    string
	Reference string
	Notes     string
	DaysAgo   int
}

func in(qty int64, ref string, daysAgo int) HistoryEntry {
	return HistoryEntry{Type: domain.MovementInward, Quantity: qty, Reason: "Purchase", Reference: ref, DaysAgo: daysAgo}
}

func sale(qty int64, ref string, daysAgo int) HistoryEntry {
	return HistoryEntry{Type: domain.MovementOutward, Quantity: qty, Reason: "Sales", Reference: ref, DaysAgo: daysAgo}
}

func damage(qty int64, notes string, daysAgo int) HistoryEntry {
	return HistoryEntry{Type: domain.MovementOutward, Quantity: qty, Reason: "Damage", Notes: notes, DaysAgo: daysAgo}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultCatalog covers zero, low, normal and high stock across six
// categories, plus a dead-stock item and an edge-case name.
func defaultCatalog() []CatalogItem {
	return []CatalogItem{
		{SKU: "TILE-001", Name: "Ceramic Floor Tile 60x60", Category: "Tiles", Supplier: "Supreme Ceramics", UnitPrice: price("450"), ReorderLevel: 50,
			History: []HistoryEntry{in(200, "PO-2025-001", 15), sale(50, "INV-2025-001", 10), damage(5, "Damaged during handling", 8), sale(30, "INV-2025-015", 2), in(35, "PO-2025-012", 1)}},
		{SKU: "TILE-002", Name: "Porcelain Wall Tile 30x60", Category: "Tiles", Supplier: "Nitco Ltd", UnitPrice: price("380"), ReorderLevel: 75,
			History: []HistoryEntry{in(250, "PO-2025-002", 20), sale(50, "INV-2025-002", 12)}},
		{SKU: "TILE-003", Name: "Vitrified Tile Premium Glossy Finish", Category: "Tiles", Supplier: "Kajaria Ceramics", UnitPrice: price("520"), ReorderLevel: 30,
			History: []HistoryEntry{in(50, "PO-2025-003", 30), sale(45, "INV-2025-008", 5)}},
		{SKU: "TILE-004", Name: "Mosaic Tile Pattern Blue & White Designer Collection", Category: "Tiles", Supplier: "Somany Ceramics", UnitPrice: price("680"), ReorderLevel: 20,
			History: []HistoryEntry{in(30, "PO-2025-004", 25), sale(28, "INV-2025-010", 10), damage(2, "Damaged tiles during transport", 8)}},
		{SKU: "LAM-001", Name: "Premium HPL Laminate Sheets", Category: "Laminates", Supplier: "Sunmica India", UnitPrice: price("850"), ReorderLevel: 30,
			History: []HistoryEntry{in(100, "PO-2025-005", 18), sale(20, "INV-2025-005", 6), damage(2, "", 4)}},
		{SKU: "LAM-002", Name: "Eco-Friendly Laminate", Category: "Laminates", Supplier: "Formica Group", UnitPrice: price("920"), ReorderLevel: 40,
			History: []HistoryEntry{in(150, "PO-2025-006", 22), sale(30, "INV-2025-006", 14)}},
		{SKU: "LAM-003", Name: "Textured Wood Grain Laminate", Category: "Laminates", Supplier: "Merino Laminates", UnitPrice: price("780"), ReorderLevel: 25,
			History: []HistoryEntry{in(40, "PO-2025-007", 45), sale(40, "INV-2025-011", 35)}},
		{SKU: "LIGHT-001", Name: "LED Panel Light 36W", Category: "Lighting", Supplier: "Philips India", UnitPrice: price("1200"), ReorderLevel: 20,
			History: []HistoryEntry{in(60, "PO-2025-008", 16), sale(15, "INV-2025-012", 7), damage(1, "Defective unit", 3)}},
		{SKU: "LIGHT-002", Name: "Fluorescent Tube 40W", Category: "Lighting", Supplier: "Osram Limited", UnitPrice: price("280"), ReorderLevel: 40,
			History: []HistoryEntry{in(50, "PO-2025-009", 60), sale(42, "INV-2025-013", 50)}},
		{SKU: "LIGHT-003", Name: "Smart LED Bulb WiFi Enabled RGB", Category: "Lighting", Supplier: "Syska LED", UnitPrice: price("850"), ReorderLevel: 50,
			History: []HistoryEntry{in(600, "PO-2025-010", 12), sale(100, "INV-2025-014", 3)}},
		{SKU: "SANIT-001", Name: "Ceramic Water Closet", Category: "Sanitaryware", Supplier: "Kohler India", UnitPrice: price("4500"), ReorderLevel: 10,
			History: []HistoryEntry{in(30, "PO-2025-011", 20), sale(5, "INV-2025-016", 8), damage(1, "Broken during installation demo", 5)}},
		{SKU: "SANIT-002", Name: "Wall-Mounted Wash Basin", Category: "Sanitaryware", Supplier: "Jaquar Group", UnitPrice: price("3200"), ReorderLevel: 15,
			History: []HistoryEntry{in(35, "PO-2025-017", 30)}},
		{SKU: "SANIT-003", Name: "Premium Stainless Steel Kitchen Sink Double Bowl", Category: "Sanitaryware", Supplier: "Cera Sanitaryware", UnitPrice: price("5600"), ReorderLevel: 8},
		{SKU: "PAINT-001", Name: "Premium Exterior Paint (20L)", Category: "Paints", Supplier: "Asian Paints", UnitPrice: price("2400"), ReorderLevel: 25,
			History: []HistoryEntry{in(80, "PO-2025-013", 14), sale(10, "INV-2025-017", 9), damage(3, "Leaked cans", 6), sale(7, "INV-2025-018", 2)}},
		{SKU: "PAINT-002", Name: "Interior Emulsion (10L)", Category: "Paints", Supplier: "Berger Paints", UnitPrice: price("1400"), ReorderLevel: 20,
			History: []HistoryEntry{in(25, "PO-2025-014", 28), sale(22, "INV-2025-019", 4)}},
		{SKU: "PAINT-003", Name: "Waterproofing Sealant Coat", Category: "Paints", Supplier: "Dulux Paints", UnitPrice: price("1800"), ReorderLevel: 30,
			History: []HistoryEntry{in(96, "PO-2025-018", 20), damage(1, "Dented can", 10)}},
		{SKU: "HW-001", Name: "Door Handle Brass Antique Finish", Category: "Hardware", Supplier: "Yale India", UnitPrice: price("450"), ReorderLevel: 40,
			History: []HistoryEntry{in(150, "PO-2025-015", 10), sale(30, "INV-2025-020", 2)}},
		{SKU: "HW-002", Name: "Door Lock Digital Smart Biometric", Category: "Hardware", Supplier: "Godrej Security", UnitPrice: price("8500"), ReorderLevel: 5},
		{SKU: "HW-003", Name: "Window Hinge Stainless Steel 304 Grade Premium Quality", Category: "Hardware", Supplier: "Dorma India", UnitPrice: price("280"), ReorderLevel: 50,
			History: []HistoryEntry{in(60, "PO-2025-016", 40), sale(58, "INV-2025-021", 20)}},
		{SKU: "SPEC-001", Name: "Special Product with Very Long Name for Testing UI Display and Truncation Behavior in Tables", Category: "Other", Supplier: "Test Supplier", UnitPrice: price("1000"), ReorderLevel: 10,
			History: []HistoryEntry{in(15, "PO-2025-019", 12)}},
		{SKU: "TEST-999", Name: "Test Product Zero Stock", Category: "Other", Supplier: "Test Supplier", UnitPrice: price("100"), ReorderLevel: 5},
	}
}

// Workbook sheet names understood by loadCatalog.
const (
	materialsSheet = "Materials"
	historySheet   = "History"
)

// loadCatalog reads a workbook with a Materials sheet
// (SKU, Name, Category, Supplier, UnitPrice, ReorderLevel) and an optional
// History sheet (SKU, Type, Quantity, Reason, Reference, Notes, DaysAgo).
// Both sheets start with a header row.
func loadCatalog(file *xlsx.File) ([]CatalogItem, error) {
	sheet, ok := file.Sheet[materialsSheet]
	if !ok {
		return nil, fmt.Errorf("workbook has no %q sheet", materialsSheet)
	}

	var (
		items []CatalogItem
		bySKU = make(map[string]int)
	)
	err := forEachDataRow(sheet, func(rowNum int, get func(int) string) error {
		sku := get(0)
		if sku == "" {
			return nil
		}
		unitPrice, err := decimal.NewFromString(get(4))
		if err != nil {
			return fmt.Errorf("%s row %d: invalid unit price %q", materialsSheet, rowNum, get(4))
		}
		reorder := domain.DefaultReorderLevel
		if raw := get(5); raw != "" {
			if reorder, err = strconv.ParseInt(raw, 10, 64); err != nil {
				return fmt.Errorf("%s row %d: invalid reorder level %q", materialsSheet, rowNum, raw)
			}
		}
		if _, dup := bySKU[strings.ToUpper(sku)]; dup {
			return fmt.Errorf("%s row %d: duplicate SKU %s", materialsSheet, rowNum, sku)
		}

		bySKU[strings.ToUpper(sku)] = len(items)
		items = append(items, CatalogItem{
			SKU:          sku,
			Name:         get(1),
			Category:     get(2),
			Supplier:     get(3),
			UnitPrice:    unitPrice,
			ReorderLevel: reorder,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	history, ok := file.Sheet[historySheet]
	if !ok {
		return items, nil
	}

	err = forEachDataRow(history, func(rowNum int, get func(int) string) error {
		sku := get(0)
		if sku == "" {
			return nil
		}
		idx, known := bySKU[strings.ToUpper(sku)]
		if !known {
			return fmt.Errorf("%s row %d: unknown SKU %s", historySheet, rowNum, sku)
		}
		typ, err := domain.ParseMovementType(get(1))
		if err != nil {
			return fmt.Errorf("%s row %d: %w", historySheet, rowNum, err)
		}
		qty, err := strconv.ParseInt(get(2), 10, 64)
		if err != nil || qty <= 0 {
			return fmt.Errorf("%s row %d: invalid quantity %q", historySheet, rowNum, get(2))
		}
		days, err := strconv.Atoi(get(6))
		if err != nil || days < 0 {
			return fmt.Errorf("%s row %d: invalid days ago %q", historySheet, rowNum, get(6))
		}

		items[idx].History = append(items[idx].History, HistoryEntry{
			Type:      typ,
			Quantity:  qty,
			Reason:    get(3),
			Reference: get(4),
			Notes:     get(5),
			DaysAgo:   days,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// forEachDataRow calls fn for every row after the header. Row numbers are
// 1-based, as a spreadsheet shows them.
func forEachDataRow(sheet *xlsx.Sheet, fn func(rowNum int, get func(int) string) error) error {
	rowIdx := 0
	return sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if s, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(c.String())
		}
		return fn(rowIdx, get)
	})
}
