package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"equipment-inventory/internal/repositories"
	"equipment-inventory/pkg/config"
	"equipment-inventory/pkg/database/postgresql"
	applogger "equipment-inventory/pkg/logger"
	"equipment-inventory/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runRefs := flag.Bool("references", false, "Наполнить справочники категорий и статусов")
	runSamples := flag.Bool("samples", false, "Добавить демонстрационное оборудование")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -references -samples)")
	flag.Parse()

	if !*runRefs && !*runSamples && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -references")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	pool, db, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer pool.Close()
	defer db.Close()

	if err := postgresql.RunMigrations(ctx, db); err != nil {
		logger.Fatal("Ошибка миграций", zap.Error(err))
	}

	if *runAll || *runRefs {
		if err := seeders.SeedReferences(ctx, pool); err != nil {
			logger.Fatal("❌ Ошибка наполнения справочников", zap.Error(err))
		}
	}
	if *runAll || *runSamples {
		repo := repositories.NewEquipmentRepository(db, logger)
		if err := seeders.SeedSampleEquipment(ctx, repo); err != nil {
			logger.Fatal("❌ Ошибка наполнения оборудования", zap.Error(err))
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
}
