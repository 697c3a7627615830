// internal/core/domain/sale.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// customerNotePrefix embeds the customer name in a sales movement's notes.
const customerNotePrefix = "Customer: "

// DefaultSalesLimit bounds sales listings when no limit is given.
const DefaultSalesLimit = 100

// TopProductsLimit bounds the ranking in a sales summary.
const TopProductsLimit = 10

// CustomerNote renders the notes text for a sale to name.
func CustomerNote(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return customerNotePrefix + name
}

// CustomerFromNote extracts the customer name written by CustomerNote.
func CustomerFromNote(notes string) string {
	if !strings.HasPrefix(notes, customerNotePrefix) {
		return ""
	}
	return strings.TrimPrefix(notes, customerNotePrefix)
}

// SaleRequest records an outward sales movement by SKU.
type SaleRequest struct {
	SKU          string
	Quantity     int64
	Reference    string
	CustomerName string
	SaleDate     *time.Time
}

// SaleReceipt is returned after a sale is posted.
type SaleReceipt struct {
	SaleID       uuid.UUID       `json:"saleId"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"productName"`
	Category     string          `json:"category"`
	QuantitySold int64           `json:"quantitySold"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Reference    string          `json:"reference,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	SaleDate     time.Time       `json:"saleDate"`
	StockBefore  int64           `json:"stockBefore"`
	StockAfter   int64           `json:"stockAfter"`
	IsLowStock   bool            `json:"isLowStock"`
}

// Sale is one sales line priced at the material's current unit price.
type Sale struct {
	SaleID       uuid.UUID       `json:"saleId"`
	MaterialID   uuid.UUID       `json:"materialId"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"productName"`
	Category     string          `json:"category"`
	QuantitySold int64           `json:"quantitySold"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Reference    string          `json:"reference,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	SaleDate     time.Time       `json:"saleDate"`
}

// NewSale joins a sales movement with its material.
func NewSale(mv *Movement, m *Material) Sale {
	return Sale{
		SaleID:       mv.ID,
		MaterialID:   m.ID,
		SKU:          m.SKU,
		ProductName:  m.Name,
		Category:     m.Category,
		QuantitySold: mv.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalAmount:  m.UnitPrice.Mul(decimal.NewFromInt(mv.Quantity)),
		Reference:    mv.Reference,
		CustomerName: CustomerFromNote(mv.Notes),
		SaleDate:     mv.CreatedAt,
	}
}

// SalesFilter narrows sales listings and summaries.
type SalesFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ProductRevenue aggregates the sales of one SKU.
type ProductRevenue struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	SalesCount    int             `json:"salesCount"`
}

// SalesSummary aggregates sales over a window.
type SalesSummary struct {
	TotalSales        int              `json:"totalSales"`
	TotalQuantitySold int64            `json:"totalQuantitySold"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal  `json:"averageOrderValue"`
	TopProducts       []ProductRevenue `json:"topProducts"`
}
