package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"equipment-inventory/internal/dto"
	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/events"
	"equipment-inventory/internal/repositories"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/eventbus"
	"equipment-inventory/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

// EquipmentService - единственная точка изменения оборудования.
type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	cache               repositories.CacheRepositoryInterface
	bus                 *eventbus.Bus
	logger              *zap.Logger
}

// NewEquipmentService: cache может быть nil, тогда сбрасывать нечего.
func NewEquipmentService(equipmentRepository repositories.EquipmentRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		cache:               cache,
		bus:                 bus,
		logger:              logger,
	}
}

// GetEquipments без ограничений в фильтре отдает полный список.
func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	if filter.IsEmpty() {
		return s.equipmentRepository.FetchAll(ctx)
	}
	return s.equipmentRepository.FetchFiltered(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	return s.equipmentRepository.FetchByID(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	item := payload.ToEntity()
	item.ApplyDefaults()
	saved, err := s.equipmentRepository.Save(ctx, item, payload.PerformedBy)
	return s.afterSave(ctx, item.ID, saved, err)
}

// UpdateEquipment меняет только переданные поля. Некорректный id
// отвечает "не найдено" и не трогает хранилище.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	if !entities.IsValidID(id) {
		return nil, apperrors.ErrNotFound
	}
	saved, err := s.equipmentRepository.Update(ctx, id, payload.ToPatch(), payload.PerformedBy)
	return s.afterSave(ctx, id, saved, err)
}

func (s *EquipmentService) afterSave(ctx context.Context, id string, saved *entities.Equipment, err error) (*entities.Equipment, error) {
	if err != nil {
		var resErr *apperrors.ResolutionError
		switch {
		case errors.As(err, &resErr):
			s.logger.Warn("Не удалось сопоставить справочник при сохранении оборудования",
				zap.String("field", resErr.Field), zap.String("value", resErr.Value))
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrConflict), apperrors.IsValidation(err):
			s.logger.Info("Оборудование не сохранено", zap.String("id", id), zap.Error(err))
		default:
			s.logger.Error("Ошибка при сохранении оборудования", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Оборудование сохранено",
		zap.String("id", saved.ID),
		zap.String("inventoryNumber", saved.InventoryNumber),
	)
	s.dropCounts(ctx)
	s.publish(ctx, events.EquipmentSavedEvent{
		EquipmentID: saved.ID,
		Category:    saved.Category,
		Status:      saved.Status,
	})
	return saved, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	if err := s.equipmentRepository.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка при удалении оборудования", zap.String("id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("Оборудование удалено", zap.String("id", id))
	s.dropCounts(ctx)
	s.publish(ctx, events.EquipmentDeletedEvent{EquipmentID: id})
	return nil
}

// dropCounts сбрасывает кеш дашборда до ответа клиенту. Слушатель шины
// повторяет сброс после того, как событие будет доставлено.
func (s *EquipmentService) dropCounts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, DashboardCountsCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш дашборда", zap.Error(err))
	}
}

func (s *EquipmentService) publish(ctx context.Context, event eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}
