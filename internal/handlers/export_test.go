// internal/handlers/export_test.go
package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/handlers"
	"github.com/ammerola/stockledger/test/helpers"
	"github.com/ammerola/stockledger/test/mocks"
)

func exportFixtures() ([]*domain.Material, []*domain.LowStockAlert) {
	tile := helpers.CreateTestMaterial(func(m *domain.Material) {
		m.SKU = "TILE-001"
		m.UnitPrice = decimal.RequireFromString("45.50")
		m.AvailableQuantity = 3
	})
	paint := helpers.CreateTestMaterial(func(m *domain.Material) {
		m.SKU = "PNT-001"
		m.AvailableQuantity = 40
	})
	days := int64(2)
	alerts := []*domain.LowStockAlert{{
		Material:          tile,
		Alert:             domain.AlertLowStock,
		Urgency:           domain.UrgencyCritical,
		DaysUntilStockout: &days,
	}}
	return []*domain.Material{tile, paint}, alerts
}

func TestExportHandler_InventoryWorkbook(t *testing.T) {
	ctrl := gomock.NewController(t)
	materials := mocks.NewMockMaterialService(ctrl)
	insights := mocks.NewMockInsightsService(ctrl)

	all, alerts := exportFixtures()
	materials.EXPECT().List(gomock.Any()).Return(all, nil)
	insights.EXPECT().LowStock(gomock.Any()).Return(alerts, nil)

	handler := handlers.NewExportHandler(materials, insights, nil, helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.InventoryWorkbook(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/inventory", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="inventory_report_`))
	assert.NotEmpty(t, w.Header().Get("Content-Length"))

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)

	inventory, ok := file.Sheet["Inventory"]
	require.True(t, ok)
	assert.Equal(t, 3, inventory.MaxRow)

	header, err := inventory.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "SKU", header.Value)

	sku, err := inventory.Cell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "TILE-001", sku.Value)

	value, err := inventory.Cell(1, 8)
	require.NoError(t, err)
	assert.Equal(t, "136.50", value.Value)

	low, ok := file.Sheet["Low Stock"]
	require.True(t, ok)
	assert.Equal(t, 2, low.MaxRow)
}

func TestExportHandler_ArchiveInventory(t *testing.T) {
	t.Run("uploads_workbook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		materials := mocks.NewMockMaterialService(ctrl)
		insights := mocks.NewMockInsightsService(ctrl)
		archive := mocks.NewMockReportArchive(ctrl)

		all, alerts := exportFixtures()
		materials.EXPECT().List(gomock.Any()).Return(all, nil)
		insights.EXPECT().LowStock(gomock.Any()).Return(alerts, nil)

		var uploaded []byte
		archive.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet").
			DoAndReturn(func(_ context.Context, key string, body io.Reader, _ string) (string, error) {
				assert.True(t, strings.HasPrefix(key, "reports/inventory/"))
				assert.True(t, strings.HasSuffix(key, ".xlsx"))
				var err error
				uploaded, err = io.ReadAll(body)
				require.NoError(t, err)
				return "https://bucket.s3.amazonaws.com/" + key, nil
			})

		handler := handlers.NewExportHandler(materials, insights, archive, helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.ArchiveInventory(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/inventory/archive", nil))

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		assert.True(t, resp.Success)
		assert.Contains(t, string(resp.Data), `"rows":2`)

		_, err := xlsx.OpenReaderAt(bytes.NewReader(uploaded), int64(len(uploaded)))
		require.NoError(t, err)
	})

	t.Run("not_configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := handlers.NewExportHandler(mocks.NewMockMaterialService(ctrl), mocks.NewMockInsightsService(ctrl), nil, helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.ArchiveInventory(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/inventory/archive", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Report archive is not configured", decodeResponse(t, w.Body.Bytes()).Error)
	})

	t.Run("upload_failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		materials := mocks.NewMockMaterialService(ctrl)
		insights := mocks.NewMockInsightsService(ctrl)
		archive := mocks.NewMockReportArchive(ctrl)

		materials.EXPECT().List(gomock.Any()).Return(nil, nil)
		insights.EXPECT().LowStock(gomock.Any()).Return(nil, nil)
		archive.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("failed to upload file: access denied"))

		handler := handlers.NewExportHandler(materials, insights, archive, helpers.TestLogger())

		w := httptest.NewRecorder()
		handler.ArchiveInventory(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/inventory/archive", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to archive report", decodeResponse(t, w.Body.Bytes()).Error)
	})
}

func TestExportHandler_ScheduleArchive(t *testing.T) {
	tests := []struct {
		name           string
		withQueue      bool
		setupMocks     func(*mocks.MockTaskQueue)
		expectedStatus int
		expectedError  string
	}{
		{
			name:      "enqueues_task",
			withQueue: true,
			setupMocks: func(q *mocks.MockTaskQueue) {
				q.EXPECT().EnqueueReportArchive(gomock.Any()).Return(&ports.QueuedTask{ID: "task-1", Queue: "reports"}, nil)
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:      "enqueue_failure",
			withQueue: true,
			setupMocks: func(q *mocks.MockTaskQueue) {
				q.EXPECT().EnqueueReportArchive(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to schedule report archive",
		},
		{
			name:           "no_worker",
			setupMocks:     func(*mocks.MockTaskQueue) {},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "Background worker is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			queue := mocks.NewMockTaskQueue(ctrl)
			tt.setupMocks(queue)

			handler := handlers.NewExportHandler(mocks.NewMockMaterialService(ctrl), mocks.NewMockInsightsService(ctrl), nil, helpers.TestLogger())
			if tt.withQueue {
				handler.WithQueue(queue)
			}

			w := httptest.NewRecorder()
			handler.ScheduleArchive(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/inventory/archive/jobs", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w.Body.Bytes())
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			assert.Contains(t, string(resp.Data), `"taskId":"task-1"`)
		})
	}
}
