package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/services"
)

// Services - всё, что нужно маршрутам. Собирается в app/main.go.
type Services struct {
	Equipment services.EquipmentServiceInterface
	History   services.EquipmentHistoryServiceInterface
	Dashboard services.DashboardServiceInterface
	Report    services.ReportServiceInterface
	Reference services.ReferenceServiceInterface
}

func InitRouter(e *echo.Echo, svc Services, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	runEquipmentRouter(api, svc, logger)
	runJournalRouter(api, svc.History, logger)
	runDashboardRouter(api, svc.Dashboard, logger)
	runReportRouter(api, svc.Report, logger)
	runReferenceRouter(api, svc.Reference, logger)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
