package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/controllers"
	"equipment-inventory/internal/services"
)

func runEquipmentRouter(api *echo.Group, svc Services, logger *zap.Logger) {
	equipmentCtrl := controllers.NewEquipmentController(svc.Equipment, svc.Report, logger)
	historyCtrl := controllers.NewEquipmentHistoryController(svc.History, logger)

	api.GET("/equipment", equipmentCtrl.GetEquipments)
	api.GET("/equipment/export", equipmentCtrl.ExportEquipments)
	api.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	api.POST("/equipment", equipmentCtrl.CreateEquipment)
	api.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	api.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)

	api.GET("/equipment/:id/history", historyCtrl.GetHistory)
	api.POST("/equipment/:id/history", historyCtrl.AddEntry)
}

func runJournalRouter(api *echo.Group, history services.EquipmentHistoryServiceInterface, logger *zap.Logger) {
	historyCtrl := controllers.NewEquipmentHistoryController(history, logger)
	api.GET("/journal", historyCtrl.GetJournal)
}
