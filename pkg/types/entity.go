package types

import "time"

// BaseEntity - общие серверные отметки времени справочных таблиц.
type BaseEntity struct {
	CreatedAt *time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
