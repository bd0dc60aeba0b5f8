package entities

import "equipment-inventory/pkg/types"

// Reference - строка справочника категорий или статусов.
type Reference struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`

	types.BaseEntity
}
