package entities

import apperrors "equipment-inventory/pkg/errors"

// EquipmentPatch - изменения при обновлении. nil означает, что поле не передано
// и сохраняет текущее значение.
type EquipmentPatch struct {
	Name              *string
	InventoryNumber   *string
	Category          *Category
	Status            *Status
	PurchaseDate      *string
	ResponsiblePerson *string
	Location          *string
	Description       *string
	ImageURL          *string
	QRCode            *string
}

// Apply накладывает переданные поля на текущую запись. Пустые категория и
// статус считаются непереданными. Пустые описание, изображение и QR-код
// очищают поле.
func (p EquipmentPatch) Apply(e Equipment) Equipment {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.InventoryNumber != nil {
		e.InventoryNumber = *p.InventoryNumber
	}
	if p.Category != nil && *p.Category != "" {
		e.Category = *p.Category
	}
	if p.Status != nil && *p.Status != "" {
		e.Status = *p.Status
	}
	if p.PurchaseDate != nil {
		e.PurchaseDate = *p.PurchaseDate
	}
	if p.ResponsiblePerson != nil {
		e.ResponsiblePerson = *p.ResponsiblePerson
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = nilIfEmpty(*p.Description)
	}
	if p.ImageURL != nil {
		e.ImageURL = nilIfEmpty(*p.ImageURL)
	}
	if p.QRCode != nil {
		e.QRCode = nilIfEmpty(*p.QRCode)
	}
	return e
}

// CheckReferences отклоняет категорию или статус вне перечислений до обращения к хранилищу.
func (p EquipmentPatch) CheckReferences() error {
	return checkReferences(p.Category, p.Status)
}

// CheckReferences - значение вне перечисления не может найтись в справочнике,
// поэтому сразу возвращается ResolutionError с именем поля.
func (e Equipment) CheckReferences() error {
	return checkReferences(&e.Category, &e.Status)
}

func checkReferences(category *Category, status *Status) error {
	if category != nil && *category != "" {
		if _, err := ParseCategory(string(*category)); err != nil {
			return apperrors.NewResolutionError("category", string(*category))
		}
	}
	if status != nil && *status != "" {
		if _, err := ParseStatus(string(*status)); err != nil {
			return apperrors.NewResolutionError("status", string(*status))
		}
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
