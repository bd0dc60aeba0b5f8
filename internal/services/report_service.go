package services

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

const (
	ReportByStatus   = "status"
	ReportByCategory = "category"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, kind string) (*types.Report, error)
	ExportReportXLSX(ctx context.Context, kind string, w io.Writer) error
	ExportEquipmentXLSX(ctx context.Context, filter types.EquipmentFilter, w io.Writer) error
}

type reportService struct {
	dashboard DashboardServiceInterface
	equipment EquipmentServiceInterface
	refs      repositories.ReferenceRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(
	dashboard DashboardServiceInterface,
	equipment EquipmentServiceInterface,
	refs repositories.ReferenceRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{dashboard: dashboard, equipment: equipment, refs: refs, logger: logger}
}

func (s *reportService) GetReport(ctx context.Context, kind string) (*types.Report, error) {
	counts, err := s.dashboard.GetEquipmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	report := &types.Report{Kind: kind, Total: counts.Total}
	switch kind {
	case ReportByStatus:
		colors := s.statusColors(ctx)
		for _, st := range entities.AllStatuses {
			color, ok := colors[st]
			if !ok {
				color = st.Color()
			}
			report.Rows = append(report.Rows, types.ReportRow{
				Key: string(st), Label: st.Label(), Color: color, Count: counts.ByStatus[st],
			})
		}
	case ReportByCategory:
		for _, c := range entities.AllCategories {
			report.Rows = append(report.Rows, types.ReportRow{
				Key: string(c), Label: c.Label(), Color: c.Color(), Count: counts.ByCategory[c],
			})
		}
	default:
		return nil, apperrors.NewInvalidInputError(apperrors.ErrBadRequest, "неизвестный тип отчета: %q", kind)
	}
	return report, nil
}

// statusColors берет цвета из справочника; при ошибке остаются цвета по умолчанию.
func (s *reportService) statusColors(ctx context.Context) map[entities.Status]string {
	colors := make(map[entities.Status]string)
	list, err := s.refs.ListStatuses(ctx)
	if err != nil {
		s.logger.Warn("Не удалось прочитать цвета статусов", zap.Error(err))
		return colors
	}
	for _, ref := range list {
		st, err := entities.ParseStatus(ref.Name)
		if err != nil || ref.Color == nil || *ref.Color == "" {
			continue
		}
		colors[st] = *ref.Color
	}
	return colors
}

func (s *reportService) ExportReportXLSX(ctx context.Context, kind string, w io.Writer) error {
	report, err := s.GetReport(ctx, kind)
	if err != nil {
		return err
	}

	title := "По статусам"
	if kind == ReportByCategory {
		title = "По категориям"
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	if err := f.SetSheetName(sheet, title); err != nil {
		return err
	}
	sheet = title

	headers := []interface{}{"Значение", "Количество", "Доля, %"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, row := range report.Rows {
		share := 0.0
		if report.Total > 0 {
			share = float64(row.Count) * 100 / float64(report.Total)
		}
		if err := setRow(f, sheet, i+2, []interface{}{row.Label, row.Count, share}); err != nil {
			return err
		}
	}
	if err := setRow(f, sheet, len(report.Rows)+2, []interface{}{"Всего", report.Total}); err != nil {
		return err
	}

	if err := boldHeader(f, sheet, "A1", "C1"); err != nil {
		return err
	}
	if err := setWidths(f, sheet, colWidth{"A", "A", 30}, colWidth{"B", "C", 15}); err != nil {
		return err
	}

	return f.Write(w)
}

func (s *reportService) ExportEquipmentXLSX(ctx context.Context, filter types.EquipmentFilter, w io.Writer) error {
	items, err := s.equipment.GetEquipments(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Оборудование"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []interface{}{
		"Название", "Инвентарный номер", "Категория", "Статус", "Дата покупки",
		"Ответственный", "Местоположение", "Описание",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, item := range items {
		description := ""
		if item.Description != nil {
			description = *item.Description
		}
		row := []interface{}{
			item.Name, item.InventoryNumber, item.Category.Label(), item.Status.Label(), item.PurchaseDate,
			item.ResponsiblePerson, item.Location, description,
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := boldHeader(f, sheet, "A1", "H1"); err != nil {
		return err
	}
	if err := setWidths(f, sheet, colWidth{"A", "A", 30}, colWidth{"B", "G", 20}, colWidth{"H", "H", 50}); err != nil {
		return err
	}

	s.logger.Debug("Экспорт оборудования в XLSX", zap.Int("rows", len(items)))
	return f.Write(w)
}

// setRow пишет значения в строку row (с единицы), начиная с колонки A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

type colWidth struct {
	from, to string
	width    float64
}

func setWidths(f *excelize.File, sheet string, widths ...colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}

func boldHeader(f *excelize.File, sheet, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
