package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// ParseEquipmentFilter читает search, category и status из строки запроса.
func ParseEquipmentFilter(values url.Values) types.EquipmentFilter {
	return types.EquipmentFilter{
		Search:   strings.TrimSpace(values.Get("search")),
		Category: normalizeAll(values.Get("category")),
		Status:   normalizeAll(values.Get("status")),
	}
}

func normalizeAll(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return entities.FilterAll
	}
	return v
}

// ParseJournalFilter разбирает фильтр журнала. date_to включает весь день.
func ParseJournalFilter(values url.Values) (types.JournalFilter, error) {
	filter := types.JournalFilter{
		Search: strings.TrimSpace(values.Get("search")),
		Action: normalizeAll(values.Get("action")),
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			return filter, apperrors.NewInvalidInputError(apperrors.ErrBadRequest, "неверное значение limit: %q", limitStr)
		}
		filter.Limit = l
	}

	if from := values.Get("date_from"); from != "" {
		t, err := time.ParseInLocation(entities.PurchaseDateFmt, from, time.Local)
		if err != nil {
			return filter, apperrors.NewInvalidInputError(apperrors.ErrBadRequest, "неверный формат date_from: %q", from)
		}
		filter.DateFrom = &t
	}
	if to := values.Get("date_to"); to != "" {
		t, err := time.ParseInLocation(entities.PurchaseDateFmt, to, time.Local)
		if err != nil {
			return filter, apperrors.NewInvalidInputError(apperrors.ErrBadRequest, "неверный формат date_to: %q", to)
		}
		next := t.AddDate(0, 0, 1)
		filter.DateTo = &next
	}

	if filter.Action != entities.FilterAll {
		if _, err := entities.ParseHistoryAction(filter.Action); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Message: message, Body: body})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Ошибка валидации: " + strings.Join(msgs, "; ")})
	}

	if httpErr := ToHttpError(err, nil); httpErr != nil {
		if httpErr.Err != nil {
			logger.Warn("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
