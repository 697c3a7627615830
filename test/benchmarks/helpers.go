// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ammerola/stockledger/internal/adapters/memory"
	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/test/helpers"
)

// fixture is an in-memory ledger with services wired the way the API
// wires them.
type fixture struct {
	ledger    *services.LedgerService
	materials *services.MaterialService
	sales     *services.SalesService
	insights  *services.InsightsService
	catalog   []*domain.Material
}

// newFixture registers n materials with opening stock and a few sales each.
func newFixture(b *testing.B, n int) *fixture {
	b.Helper()

	store := memory.NewStore()
	materialRepo, movementRepo := store.Repositories()
	logger := helpers.TestLogger()

	ledger := services.NewLedgerService(store, materialRepo, movementRepo, logger)
	f := &fixture{
		ledger:    ledger,
		materials: services.NewMaterialService(store, materialRepo, movementRepo, logger),
		sales:     services.NewSalesService(ledger, materialRepo, movementRepo, logger),
		insights:  services.NewInsightsService(materialRepo, movementRepo, 30, logger),
	}

	ctx := context.Background()
	categories := []string{"Tiles", "Laminates", "Lighting", "Sanitaryware", "Paints", "Hardware"}
	reorder := int64(20)
	for i := 0; i < n; i++ {
		m, err := f.materials.Create(ctx, domain.MaterialDraft{
			SKU:          fmt.Sprintf("BENCH-%05d", i),
			Name:         fmt.Sprintf("Benchmark Material %d", i),
			Category:     categories[i%len(categories)],
			Supplier:     "Bench Supplies",
			UnitPrice:    decimal.NewFromInt(int64(10 + i%90)),
			ReorderLevel: &reorder,
		})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.ledger.RecordMovement(ctx, domain.MovementRequest{
			MaterialID: m.ID, Type: domain.MovementInward, Quantity: 1_000_000, Reason: "Purchase",
		}); err != nil {
			b.Fatal(err)
		}
		for s := 0; s < i%5; s++ {
			if _, err := f.sales.RecordSale(ctx, domain.SaleRequest{SKU: m.SKU, Quantity: int64(s + 1)}); err != nil {
				b.Fatal(err)
			}
		}
		f.catalog = append(f.catalog, m)
	}
	return f
}
