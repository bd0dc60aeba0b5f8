package services

import (
	"context"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
)

type ReferenceServiceInterface interface {
	GetCategories(ctx context.Context) ([]entities.Reference, error)
	GetStatuses(ctx context.Context) ([]entities.Reference, error)
}

type ReferenceService struct {
	repo repositories.ReferenceRepositoryInterface
}

func NewReferenceService(repo repositories.ReferenceRepositoryInterface) *ReferenceService {
	return &ReferenceService{repo: repo}
}

func (s *ReferenceService) GetCategories(ctx context.Context) ([]entities.Reference, error) {
	return s.repo.ListCategories(ctx)
}

func (s *ReferenceService) GetStatuses(ctx context.Context) ([]entities.Reference, error) {
	return s.repo.ListStatuses(ctx)
}
