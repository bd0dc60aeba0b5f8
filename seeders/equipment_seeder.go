package seeders

import (
	"context"
	"log"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
	"equipment-inventory/pkg/types"
)

// SeedSampleEquipment добавляет демонстрационное оборудование, которого еще нет.
// Записи идут через репозиторий, поэтому у каждой появляется запись истории "create".
func SeedSampleEquipment(ctx context.Context, repo repositories.EquipmentRepositoryInterface) error {
	log.Println("▶️  Запуск наполнения демонстрационного оборудования...")

	for _, item := range sampleEquipmentData {
		existing, err := repo.FetchFiltered(ctx, types.EquipmentFilter{Search: item.InventoryNumber})
		if err != nil {
			return err
		}
		if containsInventoryNumber(existing, item.InventoryNumber) {
			log.Printf("    - %s уже есть, пропуск", item.InventoryNumber)
			continue
		}
		if _, err := repo.Save(ctx, item, ""); err != nil {
			log.Printf("Ошибка при добавлении '%s': %v", item.Name, err)
			return err
		}
	}

	log.Println("✅ Демонстрационное оборудование добавлено!")
	return nil
}

func containsInventoryNumber(items []entities.Equipment, inv string) bool {
	for _, it := range items {
		if it.InventoryNumber == inv {
			return true
		}
	}
	return false
}
