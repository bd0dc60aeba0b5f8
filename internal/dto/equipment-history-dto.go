package dto

import "equipment-inventory/internal/entities"

type CreateHistoryDTO struct {
	Action      string `json:"action" validate:"required,history_action"`
	Description string `json:"description" validate:"required,max=2000"`
	PerformedBy string `json:"performedBy" validate:"max=255"`
}

type HistoryEntryDTO struct {
	entities.HistoryEntry
	ActionLabel string `json:"actionLabel"`
}

func NewHistoryListDTO(entries []entities.HistoryEntry) []HistoryEntryDTO {
	out := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryDTO{HistoryEntry: e, ActionLabel: e.Action.Label()})
	}
	return out
}

type JournalEntryDTO struct {
	entities.JournalEntry
	ActionLabel string `json:"actionLabel"`
}

func NewJournalDTO(entries []entities.JournalEntry) []JournalEntryDTO {
	out := make([]JournalEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, JournalEntryDTO{JournalEntry: e, ActionLabel: e.Action.Label()})
	}
	return out
}
