package services

import (
	"context"

	"go.uber.org/zap"

	"equipment-inventory/internal/dto"
	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
	"equipment-inventory/pkg/types"
)

type EquipmentHistoryServiceInterface interface {
	GetHistory(ctx context.Context, equipmentID string) ([]entities.HistoryEntry, error)
	AddEntry(ctx context.Context, equipmentID string, payload dto.CreateHistoryDTO) (*entities.HistoryEntry, error)
	GetJournal(ctx context.Context, filter types.JournalFilter) ([]entities.JournalEntry, error)
}

type EquipmentHistoryService struct {
	historyRepository repositories.EquipmentHistoryRepositoryInterface
	logger            *zap.Logger
}

func NewEquipmentHistoryService(historyRepository repositories.EquipmentHistoryRepositoryInterface, logger *zap.Logger) *EquipmentHistoryService {
	return &EquipmentHistoryService{historyRepository: historyRepository, logger: logger}
}

func (s *EquipmentHistoryService) GetHistory(ctx context.Context, equipmentID string) ([]entities.HistoryEntry, error) {
	return s.historyRepository.List(ctx, equipmentID)
}

// AddEntry для некорректного id ничего не пишет и возвращает (nil, nil).
func (s *EquipmentHistoryService) AddEntry(ctx context.Context, equipmentID string, payload dto.CreateHistoryDTO) (*entities.HistoryEntry, error) {
	action, err := entities.ParseHistoryAction(payload.Action)
	if err != nil {
		return nil, err
	}

	entry, err := s.historyRepository.Append(ctx, equipmentID, action, payload.Description, payload.PerformedBy)
	if err != nil {
		s.logger.Error("Ошибка записи истории", zap.String("equipmentID", equipmentID), zap.Error(err))
		return nil, err
	}
	if entry == nil {
		s.logger.Warn("Запись истории не сохранена: некорректный id оборудования", zap.String("equipmentID", equipmentID))
		return nil, nil
	}
	return entry, nil
}

func (s *EquipmentHistoryService) GetJournal(ctx context.Context, filter types.JournalFilter) ([]entities.JournalEntry, error) {
	return s.historyRepository.Journal(ctx, filter)
}
