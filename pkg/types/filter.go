package types

import "time"

// EquipmentFilter - параметры выборки списка оборудования.
// Пустая строка и "all" означают отсутствие ограничения.
type EquipmentFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

// IsEmpty - фильтр ничего не ограничивает.
func (f EquipmentFilter) IsEmpty() bool {
	return f.Search == "" && isAll(f.Category) && isAll(f.Status)
}

func isAll(v string) bool { return v == "" || v == "all" }

// JournalFilter - параметры общего журнала действий.
type JournalFilter struct {
	Search   string     `json:"search,omitempty"`
	Action   string     `json:"action,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Limit    int        `json:"limit"`
}

// http://localhost:8080/equipment?search=ThinkPad&category=computer&status=all
// http://localhost:8080/journal?action=repair&date_from=2024-01-01&limit=50
