// Файл: app/main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"equipment-inventory/internal/listeners"
	"equipment-inventory/internal/repositories"
	"equipment-inventory/internal/routes"
	"equipment-inventory/internal/services"
	"equipment-inventory/pkg/config"
	"equipment-inventory/pkg/customvalidator"
	"equipment-inventory/pkg/database/postgresql"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/eventbus"
	applogger "equipment-inventory/pkg/logger"
	appmiddleware "equipment-inventory/pkg/middleware"
	"equipment-inventory/pkg/utils"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	pool, db, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	defer pool.Close()
	defer db.Close()

	if cfg.Postgres.RunMigrations {
		if err := postgresql.RunMigrations(ctx, db); err != nil {
			logger.Fatal("Ошибка миграций", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		// Без Redis дашборд просто считается каждый раз заново.
		logger.Warn("Redis недоступен", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	bus := eventbus.New(logger)

	equipmentRepo := repositories.NewEquipmentRepository(db, logger)
	historyRepo := repositories.NewEquipmentHistoryRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	listeners.NewDashboardCacheListener(cacheRepo, logger).Register(bus)

	equipmentService := services.NewEquipmentService(equipmentRepo, cacheRepo, bus, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheRepo, cfg.Dashboard.CacheTTL, logger)
	routes.InitRouter(e, routes.Services{
		Equipment: equipmentService,
		History:   services.NewEquipmentHistoryService(historyRepo, logger),
		Dashboard: dashboardService,
		Report:    services.NewReportService(dashboardService, equipmentService, referenceRepo, logger),
		Reference: services.NewReferenceService(referenceRepo),
	}, logger)

	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
}
