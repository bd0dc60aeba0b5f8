package errors

import (
	"errors"
	"fmt"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("запись с такими данными уже существует")

	// Идентификаторы и справочники
	ErrInvalidID       = fmt.Errorf("неверный формат идентификатора")
	ErrInvalidCategory = fmt.Errorf("неизвестная категория оборудования")
	ErrInvalidStatus   = fmt.Errorf("неизвестный статус оборудования")
	ErrInvalidAction   = fmt.Errorf("неизвестный тип действия")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
	Err     error
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return e.Err }

func NewInvalidInputError(cause error, format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...), Err: cause}
}

// IsValidation сообщает, что ошибка возникла на этапе локальной проверки
// входных данных и не должна уходить клиенту как ошибка хранилища.
func IsValidation(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr) || errors.Is(err, ErrInvalidID)
}

// ResolutionError - название категории или статуса не нашлось в справочнике.
type ResolutionError struct {
	Field string
	Value string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("не удалось сопоставить поле %s со значением %q со справочником", e.Field, e.Value)
}

func NewResolutionError(field, value string) error {
	return &ResolutionError{Field: field, Value: value}
}

type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
