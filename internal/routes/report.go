package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/controllers"
	"equipment-inventory/internal/services"
)

func runDashboardRouter(api *echo.Group, dashboard services.DashboardServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewDashboardController(dashboard, logger)
	api.GET("/dashboard/counts", ctrl.GetEquipmentCounts)
}

func runReportRouter(api *echo.Group, report services.ReportServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewReportController(report, logger)
	api.GET("/reports/:kind", ctrl.GetReport)
}

func runReferenceRouter(api *echo.Group, reference services.ReferenceServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewReferenceController(reference, logger)
	api.GET("/references/categories", ctrl.GetCategories)
	api.GET("/references/statuses", ctrl.GetStatuses)
}
