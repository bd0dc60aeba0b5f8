package entities

import (
	"time"

	apperrors "equipment-inventory/pkg/errors"
)

type HistoryAction string

const (
	ActionCreate       HistoryAction = "create"
	ActionUpdate       HistoryAction = "update"
	ActionMove         HistoryAction = "move"
	ActionRepair       HistoryAction = "repair"
	ActionUpgrade      HistoryAction = "upgrade"
	ActionStatusChange HistoryAction = "status-change"
)

var AllHistoryActions = []HistoryAction{ActionCreate, ActionUpdate, ActionMove, ActionRepair, ActionUpgrade, ActionStatusChange}

// DefaultPerformer подставляется, когда исполнитель не указан.
const DefaultPerformer = "Система"

// AutoPerformer - исполнитель автоматической записи истории: переданный явно,
// иначе ответственный за оборудование. Если пусто и то и другое, при записи
// подставится DefaultPerformer.
func AutoPerformer(performedBy string, e Equipment) string {
	if performedBy != "" {
		return performedBy
	}
	return e.ResponsiblePerson
}

func ParseHistoryAction(s string) (HistoryAction, error) {
	for _, a := range AllHistoryActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", apperrors.NewInvalidInputError(apperrors.ErrInvalidAction, "неизвестный тип действия: %q", s)
}

var historyActionLabels = map[HistoryAction]string{
	ActionCreate:       "Добавление оборудования",
	ActionUpdate:       "Обновление информации",
	ActionMove:         "Перемещение оборудования",
	ActionRepair:       "Ремонт оборудования",
	ActionUpgrade:      "Модернизация",
	ActionStatusChange: "Изменение статуса",
}

func (a HistoryAction) Label() string {
	if l, ok := historyActionLabels[a]; ok {
		return l
	}
	return string(a)
}

type HistoryEntry struct {
	ID          string        `json:"id"`
	EquipmentID string        `json:"equipmentId"`
	Action      HistoryAction `json:"action"`
	Description string        `json:"description"`
	PerformedBy string        `json:"performedBy"`
	PerformedAt time.Time     `json:"performedAt"`
}

// JournalEntry - запись общего журнала вместе с названием оборудования.
type JournalEntry struct {
	HistoryEntry
	EquipmentName   string `json:"equipmentName"`
	InventoryNumber string `json:"inventoryNumber"`
}

// ChangeAction определяет, каким действием записать обновление в историю.
func ChangeAction(before, after Equipment) HistoryAction {
	switch {
	case before.Status != after.Status && after.Status == StatusRepair:
		return ActionRepair
	case before.Status != after.Status:
		return ActionStatusChange
	case before.Location != after.Location:
		return ActionMove
	default:
		return ActionUpdate
	}
}

func ChangeDescription(action HistoryAction, before, after Equipment) string {
	switch action {
	case ActionCreate:
		return "Добавлено новое оборудование"
	case ActionRepair:
		return "Оборудование передано в ремонт"
	case ActionStatusChange:
		return "Статус изменен: " + before.Status.Label() + " → " + after.Status.Label()
	case ActionMove:
		return "Перемещено: " + before.Location + " → " + after.Location
	default:
		return "Обновлена информация об оборудовании"
	}
}
