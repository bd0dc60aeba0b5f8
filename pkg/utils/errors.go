package utils

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "equipment-inventory/pkg/errors"
)

// ToHttpError сопоставляет ошибку приложения с HTTP-кодом и сообщением.
func ToHttpError(err error, ctx map[string]interface{}) *apperrors.HttpError {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var resErr *apperrors.ResolutionError
	if errors.As(err, &resErr) {
		e := apperrors.NewHttpError(http.StatusUnprocessableEntity,
			fmt.Sprintf("Значение %q поля %s отсутствует в справочнике", resErr.Value, resErr.Field), err, ctx)
		e.Details = map[string]string{"field": resErr.Field, "value": resErr.Value}
		return e
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.NewHttpError(http.StatusNotFound, "Оборудование не найдено", nil, ctx)
	case errors.Is(err, apperrors.ErrConflict):
		return apperrors.NewHttpError(http.StatusConflict, "Оборудование с таким инвентарным номером уже существует", nil, ctx)
	case apperrors.IsValidation(err), errors.Is(err, apperrors.ErrBadRequest):
		return apperrors.NewHttpError(http.StatusBadRequest, err.Error(), nil, ctx)
	}
	return nil
}
