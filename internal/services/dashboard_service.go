package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
)

const DashboardCountsCacheKey = "dashboard:equipment:counts"

type DashboardServiceInterface interface {
	GetEquipmentCounts(ctx context.Context) (entities.AggregateCounts, error)
}

type DashboardService struct {
	repo     repositories.DashboardRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, cache repositories.CacheRepositoryInterface, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// GetEquipmentCounts сначала смотрит в кеш. Ошибки кеша только логируются.
func (s *DashboardService) GetEquipmentCounts(ctx context.Context) (entities.AggregateCounts, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, DashboardCountsCacheKey)
		switch {
		case err == nil:
			var counts entities.AggregateCounts
			if jsonErr := json.Unmarshal([]byte(raw), &counts); jsonErr == nil {
				s.logger.Debug("Агрегаты дашборда взяты из кеша")
				return counts, nil
			}
			s.logger.Warn("Поврежденное значение в кеше дашборда", zap.String("key", DashboardCountsCacheKey))
		case errors.Is(err, repositories.ErrCacheMiss):
		default:
			s.logger.Warn("Ошибка чтения кеша дашборда", zap.Error(err))
		}
	}

	counts, err := s.repo.GetEquipmentCounts(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчета агрегатов дашборда", zap.Error(err))
		return entities.AggregateCounts{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, DashboardCountsCacheKey, data, s.cacheTTL); err != nil {
				s.logger.Warn("Ошибка записи кеша дашборда", zap.Error(err))
			}
		}
	}
	return counts, nil
}
