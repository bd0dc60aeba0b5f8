package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories/inmemory"
	"equipment-inventory/internal/services"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

func newReportService(t *testing.T) services.ReportServiceInterface {
	t.Helper()
	store := inmemory.NewStore()
	equipment := services.NewEquipmentService(store, nil, nil, zap.NewNop())
	seedFleet(t, equipment)
	dashboard := services.NewDashboardService(store, nil, 0, zap.NewNop())
	return services.NewReportService(dashboard, equipment, store, zap.NewNop())
}

func TestReportService_GetReport(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	byStatus, err := svc.GetReport(ctx, services.ReportByStatus)
	require.NoError(t, err)
	assert.Equal(t, int64(5), byStatus.Total)
	require.Len(t, byStatus.Rows, len(entities.AllStatuses))
	assert.Equal(t, types.ReportRow{Key: "active", Label: "В работе", Color: "#10B981", Count: 3}, byStatus.Rows[0])

	var sum int64
	for _, row := range byStatus.Rows {
		sum += row.Count
	}
	assert.Equal(t, byStatus.Total, sum)

	byCategory, err := svc.GetReport(ctx, services.ReportByCategory)
	require.NoError(t, err)
	require.Len(t, byCategory.Rows, len(entities.AllCategories))
	assert.Equal(t, "computer", byCategory.Rows[0].Key)
	assert.Equal(t, int64(0), byCategory.Rows[len(byCategory.Rows)-1].Count)

	_, err = svc.GetReport(ctx, "location")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestReportService_ExportReportXLSX(t *testing.T) {
	svc := newReportService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportReportXLSX(context.Background(), services.ReportByStatus, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "По статусам"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Значение", header)

	label, _ := f.GetCellValue(sheet, "A2")
	count, _ := f.GetCellValue(sheet, "B2")
	assert.Equal(t, "В работе", label)
	assert.Equal(t, "3", count)

	totalLabel, _ := f.GetCellValue(sheet, "A6")
	total, _ := f.GetCellValue(sheet, "B6")
	assert.Equal(t, "Всего", totalLabel)
	assert.Equal(t, "5", total)

	width, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
	bold, err := f.GetCellStyle(sheet, "A1")
	require.NoError(t, err)
	assert.NotZero(t, bold, "заголовок оформлен стилем")
}

func TestReportService_ExportEquipmentXLSX(t *testing.T) {
	svc := newReportService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportEquipmentXLSX(context.Background(), types.EquipmentFilter{Status: "repair"}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Оборудование")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "HP LaserJet Pro", rows[1][0])
	assert.Equal(t, "PR-2023-002", rows[1][1])
	assert.Equal(t, "Принтер", rows[1][2])
	assert.Equal(t, "На ремонте", rows[1][3])

	width, err := f.GetColWidth("Оборудование", "H")
	require.NoError(t, err)
	assert.Equal(t, 50.0, width)
}
