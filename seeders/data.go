package seeders

import (
	"equipment-inventory/internal/entities"
	"equipment-inventory/pkg/utils"
)

type referenceSeed struct {
	Name        string
	Color       *string
	Description string
}

func categoriesData() []referenceSeed {
	out := make([]referenceSeed, 0, len(entities.AllCategories))
	for _, c := range entities.AllCategories {
		out = append(out, referenceSeed{Name: string(c), Description: c.Label()})
	}
	return out
}

func statusesData() []referenceSeed {
	out := make([]referenceSeed, 0, len(entities.AllStatuses))
	for _, s := range entities.AllStatuses {
		out = append(out, referenceSeed{Name: string(s), Color: utils.ToPtr(s.Color()), Description: s.Label()})
	}
	return out
}

var sampleEquipmentData = []entities.Equipment{
	{
		Name:              "Lenovo ThinkPad X1",
		InventoryNumber:   "PC-2023-001",
		Category:          entities.CategoryComputer,
		Status:            entities.StatusActive,
		PurchaseDate:      "2023-01-15",
		ResponsiblePerson: "Иванов И.И.",
		Location:          "Офис #203",
		Description:       utils.ToPtr("16GB RAM, 512GB SSD"),
	},
	{
		Name:              "HP LaserJet Pro M404dn",
		InventoryNumber:   "PR-2023-002",
		Category:          entities.CategoryPrinter,
		Status:            entities.StatusRepair,
		PurchaseDate:      "2023-02-20",
		ResponsiblePerson: "Петров А.С.",
		Location:          "Бухгалтерия",
		Description:       utils.ToPtr("Двусторонняя печать, Ethernet"),
	},
	{
		Name:              "Cisco Catalyst 2960",
		InventoryNumber:   "NW-2023-003",
		Category:          entities.CategoryNetwork,
		Status:            entities.StatusActive,
		PurchaseDate:      "2023-03-10",
		ResponsiblePerson: "Сидоров В.К.",
		Location:          "Серверная комната",
		Description:       utils.ToPtr("24 порта, PoE"),
	},
	{
		Name:              "Samsung Galaxy Tab S7",
		InventoryNumber:   "MB-2023-004",
		Category:          entities.CategoryMobile,
		Status:            entities.StatusStorage,
		PurchaseDate:      "2023-04-01",
		ResponsiblePerson: "Кузнецова О.И.",
		Location:          "Склад",
		Description:       utils.ToPtr("128GB, Wi-Fi"),
	},
	{
		Name:              "Logitech MX Master 3",
		InventoryNumber:   "PE-2023-005",
		Category:          entities.CategoryPeripheral,
		Status:            entities.StatusActive,
		PurchaseDate:      "2023-05-05",
		ResponsiblePerson: "Морозов П.Л.",
		Location:          "Офис #205",
		Description:       utils.ToPtr("Беспроводная мышь"),
	},
}
