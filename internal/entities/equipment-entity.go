package entities

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	apperrors "equipment-inventory/pkg/errors"
)

type Category string

const (
	CategoryComputer   Category = "computer"
	CategoryPrinter    Category = "printer"
	CategoryNetwork    Category = "network"
	CategoryPeripheral Category = "peripheral"
	CategoryMobile     Category = "mobile"
	CategoryOther      Category = "other"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRepair     Status = "repair"
	StatusStorage    Status = "storage"
	StatusWrittenOff Status = "written-off"
)

// FilterAll - значение фильтра "без ограничения".
const FilterAll = "all"

const (
	DefaultImageURL = "/placeholder.svg"
	qrServiceURL    = "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data="
	PurchaseDateFmt = "2006-01-02"
)

// Порядок важен: в этом порядке строятся отчеты и дашборд.
var (
	AllCategories = []Category{CategoryComputer, CategoryPrinter, CategoryNetwork, CategoryPeripheral, CategoryMobile, CategoryOther}
	AllStatuses   = []Status{StatusActive, StatusRepair, StatusStorage, StatusWrittenOff}
)

var uuidRegex = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsValidID проверяет канонический формат UUID (версия 1-5, вариант 8/9/a/b).
func IsValidID(id string) bool {
	return uuidRegex.MatchString(id)
}

type Equipment struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	InventoryNumber   string     `json:"inventoryNumber"`
	Category          Category   `json:"category"`
	Status            Status     `json:"status"`
	PurchaseDate      string     `json:"purchaseDate"`
	ResponsiblePerson string     `json:"responsiblePerson"`
	Location          string     `json:"location"`
	Description       *string    `json:"description,omitempty"`
	ImageURL          *string    `json:"imageUrl,omitempty"`
	QRCode            *string    `json:"qrCode,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// IsNew - запись еще не сохранена: идентификатора нет или он некорректен.
func (e *Equipment) IsNew() bool {
	return !IsValidID(e.ID)
}

// ApplyDefaults заполняет поля, которые не пришли при создании.
func (e *Equipment) ApplyDefaults() {
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.ImageURL == nil || *e.ImageURL == "" {
		img := DefaultImageURL
		e.ImageURL = &img
	}
	if (e.QRCode == nil || *e.QRCode == "") && e.InventoryNumber != "" {
		qr := QRCodeURL("equipment/" + e.InventoryNumber)
		e.QRCode = &qr
	}
}

// Matches - регистронезависимый поиск по названию, инвентарному номеру,
// местоположению и описанию. Пустая строка подходит под всё.
func (e *Equipment) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.InventoryNumber), term) ||
		strings.Contains(strings.ToLower(e.Location), term) {
		return true
	}
	return e.Description != nil && strings.Contains(strings.ToLower(*e.Description), term)
}

// QRCodeURL возвращает адрес внешнего генератора QR-кодов для текста.
func QRCodeURL(text string) string {
	return qrServiceURL + url.QueryEscape(text)
}

// ParseCategory - строгое преобразование для записи в хранилище.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", apperrors.NewInvalidInputError(apperrors.ErrInvalidCategory, "неизвестная категория: %q", s)
}

// ParseStatus - строгое преобразование для записи в хранилище.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", apperrors.NewInvalidInputError(apperrors.ErrInvalidStatus, "неизвестный статус: %q", s)
}

// CategoryFromStore читает значение из БД; всё незнакомое считается "other".
func CategoryFromStore(s string) Category {
	if c, err := ParseCategory(s); err == nil {
		return c
	}
	return CategoryOther
}

// StatusFromStore читает значение из БД; всё незнакомое считается "active".
func StatusFromStore(s string) Status {
	if st, err := ParseStatus(s); err == nil {
		return st
	}
	return StatusActive
}

var categoryLabels = map[Category]string{
	CategoryComputer:   "Компьютер",
	CategoryPrinter:    "Принтер",
	CategoryNetwork:    "Сетевое оборудование",
	CategoryPeripheral: "Периферия",
	CategoryMobile:     "Мобильное устройство",
	CategoryOther:      "Другое",
}

var statusLabels = map[Status]string{
	StatusActive:     "В работе",
	StatusRepair:     "На ремонте",
	StatusStorage:    "На складе",
	StatusWrittenOff: "Списано",
}

// Цвета по умолчанию, если в справочнике статусов цвет не задан.
var statusColors = map[Status]string{
	StatusActive:     "#10B981",
	StatusRepair:     "#F59E0B",
	StatusStorage:    "#3B82F6",
	StatusWrittenOff: "#6B7280",
}

var categoryColors = map[Category]string{
	CategoryComputer:   "#8B5CF6",
	CategoryPrinter:    "#EC4899",
	CategoryNetwork:    "#14B8A6",
	CategoryPeripheral: "#F97316",
	CategoryMobile:     "#6366F1",
	CategoryOther:      "#9CA3AF",
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Неизвестно"
}

func (c Category) Color() string { return categoryColors[c] }

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Неизвестно"
}

func (s Status) Color() string { return statusColors[s] }
