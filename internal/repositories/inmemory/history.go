package inmemory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"equipment-inventory/internal/entities"
	"equipment-inventory/pkg/types"
)

func (s *Store) Append(ctx context.Context, equipmentID string, action entities.HistoryAction, description, performedBy string) (*entities.HistoryEntry, error) {
	if !entities.IsValidID(equipmentID) {
		return nil, nil
	}
	if _, err := entities.ParseHistoryAction(string(action)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	entry := s.appendLocked(equipmentID, action, description, performedBy)
	return &entry, nil
}

func (s *Store) appendLocked(equipmentID string, action entities.HistoryAction, description, performedBy string) entities.HistoryEntry {
	if performedBy == "" {
		performedBy = entities.DefaultPerformer
	}
	entry := entities.HistoryEntry{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		Action:      action,
		Description: description,
		PerformedBy: performedBy,
		PerformedAt: s.tick(),
	}
	s.history = append(s.history, entry)
	return entry
}

func (s *Store) newestFirst(entries []entities.HistoryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].PerformedAt.Equal(entries[j].PerformedAt) {
			return entries[i].PerformedAt.After(entries[j].PerformedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}

func (s *Store) List(ctx context.Context, equipmentID string) ([]entities.HistoryEntry, error) {
	out := make([]entities.HistoryEntry, 0)
	if !entities.IsValidID(equipmentID) {
		return out, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	for _, h := range s.history {
		if h.EquipmentID == equipmentID {
			out = append(out, h)
		}
	}
	s.newestFirst(out)
	return out, nil
}

func (s *Store) Journal(ctx context.Context, filter types.JournalFilter) ([]entities.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	entries := make([]entities.HistoryEntry, len(s.history))
	copy(entries, s.history)
	s.newestFirst(entries)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	search := strings.ToLower(filter.Search)

	out := make([]entities.JournalEntry, 0)
	for _, h := range entries {
		item, ok := s.equipment[h.EquipmentID]
		if !ok {
			continue
		}
		if !isAll(filter.Action) && string(h.Action) != filter.Action {
			continue
		}
		if filter.DateFrom != nil && h.PerformedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !h.PerformedAt.Before(*filter.DateTo) {
			continue
		}
		if search != "" && !containsAny(search, h.Description, h.PerformedBy, item.Name, item.InventoryNumber) {
			continue
		}
		out = append(out, entities.JournalEntry{HistoryEntry: h, EquipmentName: item.Name, InventoryNumber: item.InventoryNumber})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
