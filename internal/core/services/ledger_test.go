// internal/core/services/ledger_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/test/helpers"
	"github.com/ammerola/stockledger/test/mocks"
)

// passthroughTx makes the mocked TxManager run the callback directly.
func passthroughTx(tx *mocks.MockTxManager) {
	tx.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func TestLedgerService_Post(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	material := helpers.CreateTestMaterial(func(m *domain.Material) {
		m.AvailableQuantity = 10
	})

	tests := []struct {
		name          string
		entry         domain.LedgerEntry
		setupMocks    func(*mocks.MockMaterialRepository, *mocks.MockMovementRepository)
		expectedError bool
		errorKind     domain.ErrorKind
		errorContains string
		stockAfter    int64
	}{
		{
			name: "inward_increases_balance",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementInward,
				Quantity:   5,
				Reason:     domain.ReasonPurchase,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, mv *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
				mr.EXPECT().
					ApplyQuantityChange(gomock.Any(), material.ID, int64(5), int64(0), now).
					Return(copyOf(material, func(m *domain.Material) { m.AvailableQuantity = 15 }), nil)
				mv.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m *domain.Movement) error {
						assert.Equal(t, domain.MovementInward, m.Type)
						assert.Equal(t, now, m.CreatedAt)
						return nil
					})
			},
			stockAfter: 15,
		},
		{
			name: "damage_grows_damaged_counter",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementOutward,
				Quantity:   3,
				Reason:     domain.ReasonDamage,
				Damaged:    true,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, mv *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
				mr.EXPECT().
					ApplyQuantityChange(gomock.Any(), material.ID, int64(-3), int64(3), now).
					Return(copyOf(material, func(m *domain.Material) {
						m.AvailableQuantity = 7
						m.DamagedQuantity = 3
					}), nil)
				mv.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			stockAfter: 7,
		},
		{
			name: "zero_quantity_rejected_before_storage",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementInward,
				Quantity:   0,
			},
			setupMocks:    func(*mocks.MockMaterialRepository, *mocks.MockMovementRepository) {},
			expectedError: true,
			errorKind:     domain.KindValidation,
			errorContains: "quantity must be greater than 0",
		},
		{
			name: "unknown_material",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementInward,
				Quantity:   1,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, _ *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(nil, nil)
			},
			expectedError: true,
			errorKind:     domain.KindNotFound,
			errorContains: "Material not found",
		},
		{
			name: "outward_above_balance",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementOutward,
				Quantity:   11,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, _ *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
			},
			expectedError: true,
			errorKind:     domain.KindInsufficientStock,
			errorContains: "Insufficient stock. Available: 10, Requested: 11",
		},
		{
			name: "damage_above_balance",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementOutward,
				Quantity:   12,
				Reason:     domain.ReasonDamage,
				Damaged:    true,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, _ *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
			},
			expectedError: true,
			errorKind:     domain.KindInsufficientStock,
			errorContains: "Insufficient stock to mark as damaged. Available: 10",
		},
		{
			name: "balance_guard_rejects_concurrent_drain",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementOutward,
				Quantity:   4,
				Reason:     domain.ReasonSales,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, _ *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
				mr.EXPECT().
					ApplyQuantityChange(gomock.Any(), material.ID, int64(-4), int64(0), now).
					Return(nil, nil)
			},
			expectedError: true,
			errorKind:     domain.KindInsufficientStock,
			errorContains: "Insufficient stock for " + material.SKU,
		},
		{
			name: "movement_append_failure_is_wrapped",
			entry: domain.LedgerEntry{
				MaterialID: material.ID,
				Type:       domain.MovementInward,
				Quantity:   2,
			},
			setupMocks: func(mr *mocks.MockMaterialRepository, mv *mocks.MockMovementRepository) {
				mr.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil)
				mr.EXPECT().
					ApplyQuantityChange(gomock.Any(), material.ID, int64(2), int64(0), now).
					Return(copyOf(material), nil)
				mv.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			expectedError: true,
			errorKind:     domain.KindInternal,
			errorContains: "failed to append movement: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			tx := mocks.NewMockTxManager(ctrl)
			materials := mocks.NewMockMaterialRepository(ctrl)
			movements := mocks.NewMockMovementRepository(ctrl)
			passthroughTx(tx)
			tt.setupMocks(materials, movements)

			svc := services.NewLedgerService(tx, materials, movements, helpers.TestLogger(),
				services.WithClock(helpers.FixedClock(now)))

			posting, err := svc.Post(context.Background(), tt.entry)

			if tt.expectedError {
				require.Error(t, err)
				assert.Equal(t, tt.errorKind, domain.KindOf(err))
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, posting)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, material.AvailableQuantity, posting.StockBefore)
			assert.Equal(t, tt.stockAfter, posting.StockAfter)
			assert.Equal(t, tt.entry.Quantity, posting.Movement.Quantity)
		})
	}
}

func TestLedgerService_RecordMovement(t *testing.T) {
	ctrl := gomock.NewController(t)

	tx := mocks.NewMockTxManager(ctrl)
	materials := mocks.NewMockMaterialRepository(ctrl)
	movements := mocks.NewMockMovementRepository(ctrl)
	passthroughTx(tx)

	material := helpers.CreateTestMaterial(func(m *domain.Material) { m.AvailableQuantity = 20 })
	materials.EXPECT().FindForUpdate(gomock.Any(), material.ID).Return(copyOf(material), nil).Times(2)
	materials.EXPECT().
		ApplyQuantityChange(gomock.Any(), material.ID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(copyOf(material), nil).
		Times(2)

	var recorded []*domain.Movement
	movements.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *domain.Movement) error {
			recorded = append(recorded, mv)
			return nil
		}).
		Times(2)

	svc := services.NewLedgerService(tx, materials, movements, helpers.TestLogger())

	_, err := svc.RecordMovement(context.Background(), domain.MovementRequest{
		MaterialID: material.ID,
		Type:       domain.MovementOutward,
		Quantity:   2,
	})
	require.NoError(t, err)

	_, err = svc.RecordMovement(context.Background(), domain.MovementRequest{
		MaterialID: material.ID,
		Type:       domain.MovementOutward,
		Quantity:   1,
		Reason:     "sales",
	})
	require.NoError(t, err)

	require.Len(t, recorded, 2)
	assert.Equal(t, domain.ReasonManualAdjustment, recorded[0].Reason)
	assert.Equal(t, domain.ReasonSales, recorded[1].Reason)

	_, err = svc.RecordMovement(context.Background(), domain.MovementRequest{
		MaterialID: material.ID,
		Type:       domain.MovementInward,
		Quantity:   1,
		Reason:     "Sales",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.RecordMovement(context.Background(), domain.MovementRequest{
		MaterialID: material.ID,
		Type:       "RETURN",
		Quantity:   1,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerService_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)

	movements := mocks.NewMockMovementRepository(ctrl)
	svc := services.NewLedgerService(mocks.NewMockTxManager(ctrl), mocks.NewMockMaterialRepository(ctrl),
		movements, helpers.TestLogger())
	ctx := context.Background()

	movements.EXPECT().
		List(gomock.Any(), domain.MovementFilter{Limit: 100}).
		Return([]*domain.Movement{}, nil)
	_, err := svc.RecentMovements(ctx, 0)
	require.NoError(t, err)

	movements.EXPECT().
		List(gomock.Any(), domain.MovementFilter{Limit: 1000}).
		Return([]*domain.Movement{}, nil)
	_, err = svc.RecentMovements(ctx, 5000)
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	_, err = svc.MovementsBetween(ctx, end, start)
	assert.ErrorIs(t, err, domain.ErrValidation)

	id := uuid.New()
	movements.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.MovementFilter) ([]*domain.Movement, error) {
			require.NotNil(t, f.MaterialID)
			assert.Equal(t, id, *f.MaterialID)
			return nil, errors.New("timeout")
		})
	_, err = svc.MovementsForMaterial(ctx, id)
	assert.EqualError(t, err, "failed to list movements: timeout")
}

func copyOf(m *domain.Material, overrides ...func(*domain.Material)) *domain.Material {
	c := *m
	for _, o := range overrides {
		o(&c)
	}
	return &c
}
