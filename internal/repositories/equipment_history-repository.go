package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"equipment-inventory/internal/entities"
	"equipment-inventory/pkg/types"
)

const historyTable = "equipment_history"

const (
	DefaultJournalLimit = 200
	MaxJournalLimit     = 500
)

type EquipmentHistoryRepositoryInterface interface {
	Append(ctx context.Context, equipmentID string, action entities.HistoryAction, description, performedBy string) (*entities.HistoryEntry, error)
	List(ctx context.Context, equipmentID string) ([]entities.HistoryEntry, error)
	Journal(ctx context.Context, filter types.JournalFilter) ([]entities.JournalEntry, error)
}

type EquipmentHistoryRepository struct {
	storage Querier
}

// NewEquipmentHistoryRepository принимает как пул, так и открытую транзакцию.
func NewEquipmentHistoryRepository(storage Querier) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage}
}

// Append пишет ровно одну запись. Для некорректного id оборудования
// ничего не пишется и возвращается (nil, nil).
func (r *EquipmentHistoryRepository) Append(ctx context.Context, equipmentID string, action entities.HistoryAction, description, performedBy string) (*entities.HistoryEntry, error) {
	if !entities.IsValidID(equipmentID) {
		return nil, nil
	}
	if _, err := entities.ParseHistoryAction(string(action)); err != nil {
		return nil, err
	}
	if performedBy == "" {
		performedBy = entities.DefaultPerformer
	}

	entry := entities.HistoryEntry{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		Action:      action,
		Description: description,
		PerformedBy: performedBy,
	}

	query, args, err := psql.Insert(historyTable).
		Columns("id", "equipment_id", "action", "description", "performed_by").
		Values(entry.ID, entry.EquipmentID, string(entry.Action), entry.Description, entry.PerformedBy).
		Suffix("RETURNING performed_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.storage.QueryRowContext(ctx, query, args...).Scan(&entry.PerformedAt); err != nil {
		return nil, mapPgError(fmt.Errorf("ошибка записи истории: %w", err))
	}
	return &entry, nil
}

// List возвращает историю оборудования от новых записей к старым.
func (r *EquipmentHistoryRepository) List(ctx context.Context, equipmentID string) ([]entities.HistoryEntry, error) {
	if !entities.IsValidID(equipmentID) {
		return []entities.HistoryEntry{}, nil
	}

	query, args, err := psql.Select("id", "equipment_id", "action", "description", "performed_by", "performed_at").
		From(historyTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		OrderBy("performed_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения истории: %w", err)
	}
	defer rows.Close()

	history := make([]entities.HistoryEntry, 0)
	for rows.Next() {
		var h entities.HistoryEntry
		var action string
		if err := rows.Scan(&h.ID, &h.EquipmentID, &action, &h.Description, &h.PerformedBy, &h.PerformedAt); err != nil {
			return nil, err
		}
		h.Action = entities.HistoryAction(action)
		history = append(history, h)
	}
	return history, rows.Err()
}

// Journal - история по всему оборудованию вместе с его названием.
func (r *EquipmentHistoryRepository) Journal(ctx context.Context, filter types.JournalFilter) ([]entities.JournalEntry, error) {
	builder := psql.Select(
		"h.id", "h.equipment_id", "h.action", "h.description", "h.performed_by", "h.performed_at",
		"e.name", "e.inventory_number",
	).
		From(historyTable + " h").
		Join(equipmentTable + " e ON e.id = h.equipment_id")

	if filter.Search != "" {
		builder = builder.Where(searchPredicate(filter.Search, "h.description", "h.performed_by", "e.name", "e.inventory_number"))
	}
	if !isAll(filter.Action) {
		builder = builder.Where(sq.Eq{"h.action": filter.Action})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"h.performed_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.Lt{"h.performed_at": *filter.DateTo})
	}

	query, args, err := builder.
		OrderBy("h.performed_at DESC", "h.id DESC").
		Limit(uint64(journalLimit(filter.Limit))).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	journal := make([]entities.JournalEntry, 0)
	for rows.Next() {
		var j entities.JournalEntry
		var action string
		var performedAt time.Time
		if err := rows.Scan(&j.ID, &j.EquipmentID, &action, &j.Description, &j.PerformedBy, &performedAt,
			&j.EquipmentName, &j.InventoryNumber); err != nil {
			return nil, err
		}
		j.Action = entities.HistoryAction(action)
		j.PerformedAt = performedAt
		journal = append(journal, j)
	}
	return journal, rows.Err()
}

func journalLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultJournalLimit
	case limit > MaxJournalLimit:
		return MaxJournalLimit
	default:
		return limit
	}
}
