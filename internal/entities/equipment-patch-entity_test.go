package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "equipment-inventory/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestEquipmentPatch_Apply(t *testing.T) {
	before := Equipment{
		ID:                "123e4567-e89b-12d3-a456-426614174000",
		Name:              "HP LaserJet",
		InventoryNumber:   "PR-1",
		Category:          CategoryPrinter,
		Status:            StatusRepair,
		PurchaseDate:      "2022-11-20",
		ResponsiblePerson: "Сидорова Е.В.",
		Location:          "Бухгалтерия",
		Description:       ptr("Лазерный принтер"),
		ImageURL:          ptr(DefaultImageURL),
	}

	t.Run("пустой патч", func(t *testing.T) {
		assert.Equal(t, before, EquipmentPatch{}.Apply(before))
	})

	t.Run("только имя", func(t *testing.T) {
		after := EquipmentPatch{Name: ptr("HP LaserJet Pro"), InventoryNumber: ptr("PR-2")}.Apply(before)
		want := before
		want.Name, want.InventoryNumber = "HP LaserJet Pro", "PR-2"
		assert.Equal(t, want, after)
	})

	t.Run("пустые категория и статус не меняют запись", func(t *testing.T) {
		after := EquipmentPatch{Category: ptr(Category("")), Status: ptr(Status(""))}.Apply(before)
		assert.Equal(t, CategoryPrinter, after.Category)
		assert.Equal(t, StatusRepair, after.Status)
	})

	t.Run("пустое описание очищает поле", func(t *testing.T) {
		after := EquipmentPatch{Description: ptr(""), Status: ptr(StatusActive)}.Apply(before)
		assert.Nil(t, after.Description)
		assert.Equal(t, StatusActive, after.Status)
		assert.Equal(t, before.ImageURL, after.ImageURL)
	})
}

func TestCheckReferences(t *testing.T) {
	assert.NoError(t, EquipmentPatch{}.CheckReferences())
	assert.NoError(t, EquipmentPatch{Category: ptr(CategoryMobile), Status: ptr(StatusStorage)}.CheckReferences())
	assert.NoError(t, Equipment{}.CheckReferences(), "пустые значения проверяются после подстановки умолчаний")

	cases := []struct {
		name  string
		err   error
		field string
		value string
	}{
		{"категория в патче", EquipmentPatch{Category: ptr(Category("nonexistent-category"))}.CheckReferences(), "category", "nonexistent-category"},
		{"статус в патче", EquipmentPatch{Status: ptr(Status("broken"))}.CheckReferences(), "status", "broken"},
		{"категория записи", Equipment{Category: "laptop", Status: StatusActive}.CheckReferences(), "category", "laptop"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resErr *apperrors.ResolutionError
			require.ErrorAs(t, tc.err, &resErr)
			assert.Equal(t, tc.field, resErr.Field)
			assert.Equal(t, tc.value, resErr.Value)
		})
	}
}
