package benchmarks

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/ammerola/stockledger/internal/core/domain"
)

func BenchmarkLedger(b *testing.B) {
	f := newFixture(b, 200)
	ctx := context.Background()

	b.Run("RecordMovement", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := f.catalog[i%len(f.catalog)]
			typ := domain.MovementInward
			if i%2 == 1 {
				typ = domain.MovementOutward
			}
			if _, err := f.ledger.RecordMovement(ctx, domain.MovementRequest{
				MaterialID: m.ID, Type: typ, Quantity: 1,
			}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("RecordSale", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			m := f.catalog[i%len(f.catalog)]
			if _, err := f.sales.RecordSale(ctx, domain.SaleRequest{SKU: m.SKU, Quantity: 1}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ParallelSales", func(b *testing.B) {
		var next atomic.Int64
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				m := f.catalog[int(next.Add(1))%len(f.catalog)]
				if _, err := f.sales.RecordSale(ctx, domain.SaleRequest{SKU: m.SKU, Quantity: 1}); err != nil {
					b.Error(err)
					return
				}
			}
		})
	})
}

func BenchmarkInsights(b *testing.B) {
	f := newFixture(b, 500)
	ctx := context.Background()

	b.Run("LowStock", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := f.insights.LowStock(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("FastMoving", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := f.insights.FastMoving(ctx, 30); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Comprehensive", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := f.insights.Comprehensive(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})
}
