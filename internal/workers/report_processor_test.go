// internal/workers/report_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/reports"
	"github.com/ammerola/stockledger/internal/workers"
	"github.com/ammerola/stockledger/test/helpers"
	"github.com/ammerola/stockledger/test/mocks"
)

func TestReportProcessor_ArchiveInventory(t *testing.T) {
	tests := []struct {
		name          string
		payload       []byte
		withArchive   bool
		setupMocks    func(*mocks.MockMaterialService, *mocks.MockInsightsService, *mocks.MockReportArchive)
		expectedError bool
		skipRetry     bool
	}{
		{
			name:        "uploads_workbook",
			withArchive: true,
			setupMocks: func(m *mocks.MockMaterialService, i *mocks.MockInsightsService, a *mocks.MockReportArchive) {
				m.EXPECT().List(gomock.Any()).Return([]*domain.Material{helpers.CreateTestMaterial()}, nil)
				i.EXPECT().LowStock(gomock.Any()).Return(nil, nil)
				a.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), reports.ContentType).
					DoAndReturn(func(_ context.Context, key string, body io.Reader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "reports/inventory/"))
						data, err := io.ReadAll(body)
						require.NoError(t, err)
						assert.NotEmpty(t, data)
						return "s3://bucket/" + key, nil
					})
			},
		},
		{
			name:        "upload_failure_retries",
			withArchive: true,
			setupMocks: func(m *mocks.MockMaterialService, i *mocks.MockInsightsService, a *mocks.MockReportArchive) {
				m.EXPECT().List(gomock.Any()).Return(nil, nil)
				i.EXPECT().LowStock(gomock.Any()).Return(nil, nil)
				a.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("slow down"))
			},
			expectedError: true,
		},
		{
			name:          "archive_disabled",
			setupMocks:    func(*mocks.MockMaterialService, *mocks.MockInsightsService, *mocks.MockReportArchive) {},
			expectedError: true,
			skipRetry:     true,
		},
		{
			name:          "bad_payload",
			payload:       []byte("{"),
			withArchive:   true,
			setupMocks:    func(*mocks.MockMaterialService, *mocks.MockInsightsService, *mocks.MockReportArchive) {},
			expectedError: true,
			skipRetry:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			materials := mocks.NewMockMaterialService(ctrl)
			insights := mocks.NewMockInsightsService(ctrl)
			archive := mocks.NewMockReportArchive(ctrl)
			tt.setupMocks(materials, insights, archive)

			var target ports.ReportArchive
			if tt.withArchive {
				target = archive
			}
			processor := workers.NewReportProcessor(
				reports.NewGenerator(materials, insights, target, helpers.TestLogger()),
				insights,
				helpers.TestLogger(),
			)

			task, err := workers.NewArchiveInventoryTask(workers.TriggerSchedule, time.Now(), 3)
			require.NoError(t, err)
			if tt.payload != nil {
				task = asynq.NewTask(workers.TypeArchiveInventory, tt.payload)
			}

			err = processor.ArchiveInventory(context.Background(), task)
			if !tt.expectedError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestReportProcessor_LowStockDigest(t *testing.T) {
	alert := func(sku string, urgency domain.Urgency) *domain.LowStockAlert {
		return &domain.LowStockAlert{
			Material: helpers.CreateTestMaterial(func(m *domain.Material) { m.SKU = sku }),
			Alert:    domain.AlertLowStock,
			Urgency:  urgency,
		}
	}

	tests := []struct {
		name          string
		minUrgency    domain.Urgency
		alerts        []*domain.LowStockAlert
		loadErr       error
		expectedError bool
	}{
		{
			name:       "all_alerts",
			alerts:     []*domain.LowStockAlert{alert("A", domain.UrgencyCritical), alert("B", domain.UrgencyMedium)},
			minUrgency: "",
		},
		{
			name:       "high_and_above",
			alerts:     []*domain.LowStockAlert{alert("A", domain.UrgencyCritical), alert("B", domain.UrgencyMedium), alert("C", domain.UrgencyHigh)},
			minUrgency: domain.UrgencyHigh,
		},
		{
			name:          "insights_failure",
			loadErr:       errors.New("failed to list materials: timeout"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			insights := mocks.NewMockInsightsService(ctrl)
			insights.EXPECT().LowStock(gomock.Any()).Return(tt.alerts, tt.loadErr)

			processor := workers.NewReportProcessor(
				reports.NewGenerator(mocks.NewMockMaterialService(ctrl), insights, nil, helpers.TestLogger()),
				insights,
				helpers.TestLogger(),
			)

			task, err := workers.NewLowStockDigestTask(tt.minUrgency)
			require.NoError(t, err)

			err = processor.LowStockDigest(context.Background(), task)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewArchiveInventoryTask(t *testing.T) {
	at := time.Date(2026, 3, 1, 2, 0, 0, 0, time.FixedZone("IST", 19800))

	task, err := workers.NewArchiveInventoryTask(workers.TriggerAPI, at, 2)
	require.NoError(t, err)
	assert.Equal(t, workers.TypeArchiveInventory, task.Type())

	var payload workers.ArchivePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, workers.TriggerAPI, payload.Trigger)
	assert.True(t, payload.RequestedAt.Equal(at))
	assert.Equal(t, time.UTC, payload.RequestedAt.Location())
}
