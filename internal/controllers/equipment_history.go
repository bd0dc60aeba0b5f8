package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/dto"
	"equipment-inventory/internal/services"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/utils"
)

type EquipmentHistoryController struct {
	historyService services.EquipmentHistoryServiceInterface
	logger         *zap.Logger
}

func NewEquipmentHistoryController(historyService services.EquipmentHistoryServiceInterface, logger *zap.Logger) *EquipmentHistoryController {
	return &EquipmentHistoryController{historyService: historyService, logger: logger}
}

func (c *EquipmentHistoryController) GetHistory(ctx echo.Context) error {
	res, err := c.historyService.GetHistory(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить историю оборудования", err, nil), c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewHistoryListDTO(res), "История успешно получена", http.StatusOK)
}

// AddEntry отвечает 202 без тела, если запись не была сохранена.
func (c *EquipmentHistoryController) AddEntry(ctx echo.Context) error {
	var payload dto.CreateHistoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entry, err := c.historyService.AddEntry(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if entry == nil {
		return utils.SuccessResponse(ctx, nil, "Запись не сохранена", http.StatusAccepted)
	}
	return utils.SuccessResponse(ctx, entry, "Запись истории добавлена", http.StatusCreated)
}

func (c *EquipmentHistoryController) GetJournal(ctx echo.Context) error {
	filter, err := utils.ParseJournalFilter(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.historyService.GetJournal(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить журнал", err, nil), c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewJournalDTO(res), "Журнал успешно получен", http.StatusOK)
}
