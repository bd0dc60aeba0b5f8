package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/services"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/utils"
)

type ReferenceController struct {
	service services.ReferenceServiceInterface
	logger  *zap.Logger
}

func NewReferenceController(service services.ReferenceServiceInterface, logger *zap.Logger) *ReferenceController {
	return &ReferenceController{service: service, logger: logger}
}

func (c *ReferenceController) GetCategories(ctx echo.Context) error {
	res, err := c.service.GetCategories(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить категории", err, nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категории успешно получены", http.StatusOK)
}

func (c *ReferenceController) GetStatuses(ctx echo.Context) error {
	res, err := c.service.GetStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить статусы", err, nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статусы успешно получены", http.StatusOK)
}
