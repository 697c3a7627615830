// internal/core/domain/insights.go
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StockoutLookbackDays = 7
	DeadStockDays        = 30
	FastMovingDays       = 30
	MaxPeriodDays        = 3650

	FastMovingMinSales    = 5
	FastMovingMinQuantity = 20
	ReorderBufferDays     = 14

	// StableStockDays stands in for days-of-stock when nothing is selling.
	StableStockDays = 999

	DefaultTopSKUs   = 10
	MaxTopSKUs       = 100
	ComprehensiveTop = 10
)

const deadStockLargeQuantity int64 = 50

var deadStockHighValue = decimal.NewFromInt(10000)

// Alert texts.
const (
	AlertLowStock   = "Low stock — reorder recommended"
	AlertDeadStock  = "Dead stock — no sales in 30 days"
	AlertFastMoving = "Fast-moving item — restock early to avoid stock-out"

	RecommendHighValue = "High-value dead stock — consider discount sale or return to supplier"
	RecommendPromotion = "Large quantity sitting idle — consider promotional offer"
	RecommendMonitor   = "Monitor for another 30 days or consider bundling with fast-moving items"
)

// Urgency ranks an alert.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// LowStockUrgency classifies qty against reorder. Integer arithmetic keeps
// the 50% and 75% boundaries exact.
func LowStockUrgency(qty, reorder int64) Urgency {
	switch {
	case qty == 0 || 2*qty <= reorder:
		return UrgencyCritical
	case 4*qty <= 3*reorder:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// FastMovingUrgency classifies days of stock remaining.
func FastMovingUrgency(daysRemaining int64) Urgency {
	switch {
	case daysRemaining <= 7:
		return UrgencyCritical
	case daysRemaining <= 14:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// DeadStockRecommendation picks the advice for idle stock.
func DeadStockRecommendation(tiedUpCapital decimal.Decimal, qty int64) string {
	switch {
	case tiedUpCapital.GreaterThan(deadStockHighValue):
		return RecommendHighValue
	case qty > deadStockLargeQuantity:
		return RecommendPromotion
	default:
		return RecommendMonitor
	}
}

// Round2 rounds a ratio to two decimals for output.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// LowStockAlert is a material at or below its reorder level.
type LowStockAlert struct {
	*Material
	Alert   string  `json:"alert"`
	Urgency Urgency `json:"urgency"`
	// DaysUntilStockout is nil when there is no recent outward activity.
	DaysUntilStockout *int64 `json:"daysUntilStockout"`
}

// DeadStockItem is available stock with no recent sales.
type DeadStockItem struct {
	*Material
	Alert          string          `json:"alert"`
	DaysInactive   int             `json:"daysInactive"`
	TiedUpCapital  decimal.Decimal `json:"tiedUpCapital"`
	Recommendation string          `json:"recommendation"`
}

// SalesMetrics describes a material's sales over a window.
type SalesMetrics struct {
	TotalQuantitySold int64     `json:"totalQuantitySold"`
	SalesCount        int64     `json:"salesCount"`
	SalesVelocity     float64   `json:"salesVelocity"`
	SalesFrequency    float64   `json:"salesFrequency"`
	LastSaleDate      time.Time `json:"lastSaleDate"`
	PeriodDays        int       `json:"periodDays"`
}

// StockStatus projects the remaining stock against sales velocity.
type StockStatus struct {
	CurrentStock               int64 `json:"currentStock"`
	DaysOfStockRemaining       int64 `json:"daysOfStockRemaining"`
	RecommendedReorderQuantity int64 `json:"recommendedReorderQuantity"`
}

// FastMovingItem is a material selling above the fast-moving thresholds.
type FastMovingItem struct {
	*Material
	Alert        string       `json:"alert"`
	SalesMetrics SalesMetrics `json:"salesMetrics"`
	StockStatus  StockStatus  `json:"stockStatus"`
	Urgency      Urgency      `json:"urgency"`
}

// SalesAggregate is the per-material roll-up of sales in a window.
type SalesAggregate struct {
	MaterialID    uuid.UUID
	TotalQuantity int64
	SalesCount    int64
	LastSaleDate  time.Time
}

// IsFastMoving applies the count-or-quantity threshold.
func (a SalesAggregate) IsFastMoving() bool {
	return a.SalesCount >= FastMovingMinSales || a.TotalQuantity >= FastMovingMinQuantity
}

// DashboardMetrics are catalog-wide totals.
type DashboardMetrics struct {
	TotalMaterials int             `json:"totalMaterials"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	TotalQuantity  int64           `json:"totalQuantity"`
	TotalDamaged   int64           `json:"totalDamaged"`
	LowStockCount  int             `json:"lowStockCount"`
	DeadStockCount int             `json:"deadStockCount"`
	Timestamp      time.Time       `json:"timestamp"`
}

// CategoryItem is a member line of a category breakdown.
type CategoryItem struct {
	ID       uuid.UUID `json:"id"`
	SKU      string    `json:"sku"`
	Name     string    `json:"name"`
	Quantity int64     `json:"quantity"`
}

// CategorySummary groups materials by category.
type CategorySummary struct {
	Category      string          `json:"category"`
	Count         int             `json:"count"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Items         []CategoryItem  `json:"items"`
}

// DamagedInventorySummary lists materials carrying damaged units.
type DamagedInventorySummary struct {
	Items         []*Material     `json:"items"`
	TotalQuantity int64           `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// MovementRanking is a material with its total ledger entry count.
type MovementRanking struct {
	*Material
	MovementCount int64 `json:"movementCount"`
}

// InsightsSummary counts the issues found by the classifiers.
type InsightsSummary struct {
	FastMovingCount int `json:"fastMovingCount"`
	DeadStockCount  int `json:"deadStockCount"`
	LowStockCount   int `json:"lowStockCount"`
	TotalIssues     int `json:"totalIssues"`
}

// ComprehensiveInsights combines the three classifiers.
type ComprehensiveInsights struct {
	Summary         InsightsSummary   `json:"summary"`
	FastMovingItems []*FastMovingItem `json:"fastMovingItems"`
	DeadStockItems  []*DeadStockItem  `json:"deadStockItems"`
	LowStockItems   []*LowStockAlert  `json:"lowStockItems"`
	Timestamp       time.Time         `json:"timestamp"`
}
