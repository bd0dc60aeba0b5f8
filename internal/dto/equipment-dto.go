package dto

import (
	"strings"

	"equipment-inventory/internal/entities"
)

// CreateEquipmentDTO - тело POST. Категория и статус проверяются по
// справочникам при сохранении.
type CreateEquipmentDTO struct {
	Name              string  `json:"name" validate:"required,max=255"`
	InventoryNumber   string  `json:"inventoryNumber" validate:"required,max=100"`
	Category          string  `json:"category" validate:"max=50"`
	Status            string  `json:"status" validate:"max=50"`
	PurchaseDate      string  `json:"purchaseDate" validate:"omitempty,purchase_date"`
	ResponsiblePerson string  `json:"responsiblePerson" validate:"max=255"`
	Location          string  `json:"location" validate:"max=255"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL          *string `json:"imageUrl,omitempty" validate:"omitempty,max=1024"`
	QRCode            *string `json:"qrCode,omitempty" validate:"omitempty,max=1024"`
	PerformedBy       string  `json:"performedBy,omitempty" validate:"max=255"`
}

func (d CreateEquipmentDTO) ToEntity() entities.Equipment {
	return entities.Equipment{
		Name:              strings.TrimSpace(d.Name),
		InventoryNumber:   strings.TrimSpace(d.InventoryNumber),
		Category:          entities.Category(d.Category),
		Status:            entities.Status(d.Status),
		PurchaseDate:      d.PurchaseDate,
		ResponsiblePerson: d.ResponsiblePerson,
		Location:          d.Location,
		Description:       d.Description,
		ImageURL:          d.ImageURL,
		QRCode:            d.QRCode,
	}
}

// UpdateEquipmentDTO - тело PUT. Отсутствующие поля не меняются.
type UpdateEquipmentDTO struct {
	Name              *string `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	InventoryNumber   *string `json:"inventoryNumber,omitempty" validate:"omitnil,min=1,max=100"`
	Category          *string `json:"category,omitempty" validate:"omitnil,max=50"`
	Status            *string `json:"status,omitempty" validate:"omitnil,max=50"`
	PurchaseDate      *string `json:"purchaseDate,omitempty" validate:"omitnil,purchase_date"`
	ResponsiblePerson *string `json:"responsiblePerson,omitempty" validate:"omitnil,max=255"`
	Location          *string `json:"location,omitempty" validate:"omitnil,max=255"`
	Description       *string `json:"description,omitempty" validate:"omitnil,max=2000"`
	ImageURL          *string `json:"imageUrl,omitempty" validate:"omitnil,max=1024"`
	QRCode            *string `json:"qrCode,omitempty" validate:"omitnil,max=1024"`
	PerformedBy       string  `json:"performedBy,omitempty" validate:"max=255"`
}

func (d UpdateEquipmentDTO) ToPatch() entities.EquipmentPatch {
	patch := entities.EquipmentPatch{
		Name:              trimmed(d.Name),
		InventoryNumber:   trimmed(d.InventoryNumber),
		PurchaseDate:      d.PurchaseDate,
		ResponsiblePerson: d.ResponsiblePerson,
		Location:          d.Location,
		Description:       d.Description,
		ImageURL:          d.ImageURL,
		QRCode:            d.QRCode,
	}
	if d.Category != nil {
		c := entities.Category(*d.Category)
		patch.Category = &c
	}
	if d.Status != nil {
		st := entities.Status(*d.Status)
		patch.Status = &st
	}
	return patch
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type EquipmentDTO struct {
	entities.Equipment
	CategoryLabel string `json:"categoryLabel"`
	StatusLabel   string `json:"statusLabel"`
	StatusColor   string `json:"statusColor"`
}

func NewEquipmentDTO(e entities.Equipment) EquipmentDTO {
	return EquipmentDTO{
		Equipment:     e,
		CategoryLabel: e.Category.Label(),
		StatusLabel:   e.Status.Label(),
		StatusColor:   e.Status.Color(),
	}
}

func NewEquipmentListDTO(items []entities.Equipment) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, NewEquipmentDTO(item))
	}
	return out
}
