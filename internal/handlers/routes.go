// internal/handlers/routes.go
package handlers

import "net/http"

const apiV1 = "/api/v1"

// Routes groups the handlers served by the API.
type Routes struct {
	Materials *MaterialHandler
	Movements *MovementHandler
	Sales     *SalesHandler
	Insights  *InsightsHandler
	Export    *ExportHandler
	Health    *HealthHandler
}

// Register mounts every route on mux using method patterns.
func (rt *Routes) Register(mux *http.ServeMux) {
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", rt.Health.Health)
	}

	// Materials
	mux.HandleFunc("GET "+apiV1+"/materials", rt.Materials.ListMaterials)
	mux.HandleFunc("POST "+apiV1+"/materials", rt.Materials.CreateMaterial)
	mux.HandleFunc("GET "+apiV1+"/materials/sku/{sku}", rt.Materials.GetMaterialBySKU)
	mux.HandleFunc("GET "+apiV1+"/materials/{id}", rt.Materials.GetMaterial)
	mux.HandleFunc("PUT "+apiV1+"/materials/{id}", rt.Materials.UpdateMaterial)
	mux.HandleFunc("DELETE "+apiV1+"/materials/{id}", rt.Materials.DeleteMaterial)

	// Stock movements
	mux.HandleFunc("GET "+apiV1+"/stock-movements", rt.Movements.ListMovements)
	mux.HandleFunc("POST "+apiV1+"/stock-movements", rt.Movements.CreateMovement)
	mux.HandleFunc("GET "+apiV1+"/stock-movements/material/{id}", rt.Movements.MovementsForMaterial)
	mux.HandleFunc("GET "+apiV1+"/stock-movements/range", rt.Movements.MovementsInRange)
	mux.HandleFunc("POST "+apiV1+"/stock-movements/damage", rt.Movements.RecordDamage)

	// Sales
	mux.HandleFunc("GET "+apiV1+"/sales", rt.Sales.ListSales)
	mux.HandleFunc("POST "+apiV1+"/sales", rt.Sales.RecordSale)
	mux.HandleFunc("GET "+apiV1+"/sales/sku/{sku}", rt.Sales.SalesBySKU)
	mux.HandleFunc("GET "+apiV1+"/sales/summary", rt.Sales.Summary)

	// Insights
	mux.HandleFunc("GET "+apiV1+"/insights/dashboard", rt.Insights.Dashboard)
	mux.HandleFunc("GET "+apiV1+"/insights/low-stock", rt.Insights.LowStock)
	mux.HandleFunc("GET "+apiV1+"/insights/dead-stock", rt.Insights.DeadStock)
	mux.HandleFunc("GET "+apiV1+"/insights/fast-moving", rt.Insights.FastMoving)
	mux.HandleFunc("GET "+apiV1+"/insights/top-skus", rt.Insights.TopSKUs)
	mux.HandleFunc("GET "+apiV1+"/insights/damaged-inventory", rt.Insights.DamagedInventory)
	mux.HandleFunc("GET "+apiV1+"/insights/category-breakdown", rt.Insights.CategoryBreakdown)
	mux.HandleFunc("GET "+apiV1+"/insights/comprehensive", rt.Insights.Comprehensive)

	// Reports
	mux.HandleFunc("GET "+apiV1+"/reports/inventory", rt.Export.InventoryWorkbook)
	mux.HandleFunc("POST "+apiV1+"/reports/inventory/archive", rt.Export.ArchiveInventory)
	mux.HandleFunc("POST "+apiV1+"/reports/inventory/archive/jobs", rt.Export.ScheduleArchive)
}
