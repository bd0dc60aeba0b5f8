// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"equipment-inventory/internal/entities"
)

// RegisterCustomValidations регистрирует правила для действия истории и
// даты покупки. Категория и статус сверяются со справочниками при
// сохранении, чтобы ответ называл поле и значение.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("history_action", isHistoryAction); err != nil {
		return err
	}
	if err := v.RegisterValidation("purchase_date", isPurchaseDate); err != nil {
		return err
	}
	return nil
}

func isHistoryAction(fl validator.FieldLevel) bool {
	_, err := entities.ParseHistoryAction(fl.Field().String())
	return err == nil
}

// Пустое значение допустимо: обязательность задается тегом required.
func isPurchaseDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(entities.PurchaseDateFmt, s)
	return err == nil
}
