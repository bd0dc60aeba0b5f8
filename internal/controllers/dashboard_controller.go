package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/services"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/utils"
)

type DashboardController struct {
	service services.DashboardServiceInterface
	logger  *zap.Logger
}

func NewDashboardController(service services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{service: service, logger: logger}
}

func (c *DashboardController) GetEquipmentCounts(ctx echo.Context) error {
	counts, err := c.service.GetEquipmentCounts(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка загрузки дашборда", err, nil), c.logger)
	}
	return utils.SuccessResponse(ctx, counts, "Статистика успешно получена", http.StatusOK)
}
