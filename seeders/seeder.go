package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// КЛЮЧИК: true - обновить цвет и описание, если запись с таким name уже есть.
const updateIfExists = false

// SeedReferences наполняет справочники категорий и статусов.
func SeedReferences(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedTable(ctx, db, "equipment_categories", categoriesData()); err != nil {
		return err
	}
	if err := seedTable(ctx, db, "equipment_statuses", statusesData()); err != nil {
		return err
	}

	log.Println("✅ Наполнение справочников завершено!")
	return nil
}

func seedTable(ctx context.Context, db *pgxpool.Pool, table string, rows []referenceSeed) error {
	log.Printf("  - Наполнение таблицы '%s'...", table)

	withColor := table == "equipment_statuses"
	query := referenceUpsert(table, withColor)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, r := range rows {
		args := []any{r.Name, r.Description}
		if withColor {
			args = append(args, r.Color)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			log.Printf("Ошибка при вставке '%s' в %s: %v", r.Name, table, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func referenceUpsert(table string, withColor bool) string {
	switch {
	case withColor && updateIfExists:
		return `INSERT INTO ` + table + ` (name, description, color) VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, color = EXCLUDED.color`
	case withColor:
		return `INSERT INTO ` + table + ` (name, description, color) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`
	case updateIfExists:
		return `INSERT INTO ` + table + ` (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`
	default:
		return `INSERT INTO ` + table + ` (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	}
}
