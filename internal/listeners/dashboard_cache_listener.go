package listeners

import (
	"context"

	"go.uber.org/zap"

	"equipment-inventory/internal/events"
	"equipment-inventory/internal/repositories"
	"equipment-inventory/internal/services"
	"equipment-inventory/pkg/eventbus"
)

// DashboardCacheListener сбрасывает кеш агрегатов после любых изменений оборудования.
type DashboardCacheListener struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewDashboardCacheListener(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *DashboardCacheListener {
	return &DashboardCacheListener{cache: cache, logger: logger}
}

func (l *DashboardCacheListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EquipmentSaved, l.invalidate)
	bus.Subscribe(events.EquipmentDeleted, l.invalidate)
}

func (l *DashboardCacheListener) invalidate(ctx context.Context, event eventbus.Event) error {
	if err := l.cache.Del(ctx, services.DashboardCountsCacheKey); err != nil {
		return err
	}
	l.logger.Debug("кеш дашборда сброшен", zap.String("event", event.Name()))
	return nil
}
