package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/services"
	"equipment-inventory/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport отдает JSON либо XLSX при format=xlsx.
func (c *ReportController) GetReport(ctx echo.Context) error {
	kind := ctx.Param("kind")

	if ctx.QueryParam("format") == "xlsx" {
		fileName := fmt.Sprintf("report_%s_%s.xlsx", kind, time.Now().Format("2006-01-02"))
		ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
		ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)

		if err := c.reportService.ExportReportXLSX(ctx.Request().Context(), kind, ctx.Response().Writer); err != nil {
			ctx.Response().Header().Del("Content-Disposition")
			ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return nil
	}

	report, err := c.reportService.GetReport(ctx.Request().Context(), kind)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Отчет успешно сформирован", http.StatusOK)
}
