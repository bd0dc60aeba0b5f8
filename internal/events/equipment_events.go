package events

import "equipment-inventory/internal/entities"

const (
	EquipmentSaved   = "equipment.saved"
	EquipmentDeleted = "equipment.deleted"
)

// EquipmentSavedEvent - запись создана или обновлена и транзакция закоммичена.
type EquipmentSavedEvent struct {
	EquipmentID string
	Category    entities.Category
	Status      entities.Status
}

func (e EquipmentSavedEvent) Name() string { return EquipmentSaved }

// EquipmentDeletedEvent - запись удалена вместе со своей историей.
type EquipmentDeletedEvent struct {
	EquipmentID string
}

func (e EquipmentDeletedEvent) Name() string { return EquipmentDeleted }
