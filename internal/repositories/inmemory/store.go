// Package inmemory содержит хранилище в памяти с теми же контрактами, что и
// репозитории на Postgres. Используется в тестах сервисов и контроллеров.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

var (
	_ repositories.EquipmentRepositoryInterface        = (*Store)(nil)
	_ repositories.EquipmentHistoryRepositoryInterface = (*Store)(nil)
	_ repositories.ReferenceRepositoryInterface        = (*Store)(nil)
	_ repositories.DashboardRepositoryInterface        = (*Store)(nil)
)

type Store struct {
	mu sync.Mutex

	equipment  map[string]entities.Equipment
	history    []entities.HistoryEntry
	categories map[entities.Category]entities.Reference
	statuses   map[entities.Status]entities.Reference

	now   time.Time
	calls int

	// FailWith, если задан, возвращается любой операцией, дошедшей до хранилища.
	FailWith error
}

// NewStore создает хранилище с заполненными справочниками.
func NewStore() *Store {
	s := &Store{
		equipment:  make(map[string]entities.Equipment),
		categories: make(map[entities.Category]entities.Reference),
		statuses:   make(map[entities.Status]entities.Reference),
		now:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, c := range entities.AllCategories {
		s.categories[c] = entities.Reference{ID: uuid.NewString(), Name: string(c)}
	}
	for _, st := range entities.AllStatuses {
		color := st.Color()
		s.statuses[st] = entities.Reference{ID: uuid.NewString(), Name: string(st), Color: &color}
	}
	return s
}

// RemoveCategoryRef и RemoveStatusRef убирают строку справочника.
func (s *Store) RemoveCategoryRef(c entities.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, c)
}

func (s *Store) RemoveStatusRef(st entities.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.statuses, st)
}

// Calls - сколько раз операции обращались к хранилищу.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Put кладет запись как есть, минуя проверки. Нужна для тестов чтения.
func (s *Store) Put(item entities.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	if item.CreatedAt == nil {
		item.CreatedAt = &now
	}
	s.equipment[item.ID] = item
}

// tick выдает строго возрастающее время, чтобы порядок был детерминирован.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Store) touch() error {
	s.calls++
	return s.FailWith
}

func (s *Store) sorted() []entities.Equipment {
	items := make([]entities.Equipment, 0, len(s.equipment))
	for _, item := range s.equipment {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.CreatedAt.Equal(*b.CreatedAt) {
			return a.CreatedAt.After(*b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return items
}

func (s *Store) FetchAll(ctx context.Context) ([]entities.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	return s.sorted(), nil
}

func (s *Store) FetchByID(ctx context.Context, id string) (*entities.Equipment, error) {
	if !entities.IsValidID(id) {
		return nil, apperrors.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	item, ok := s.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (s *Store) FetchFiltered(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	out := make([]entities.Equipment, 0)
	if !isAll(filter.Category) {
		c, err := entities.ParseCategory(filter.Category)
		if err != nil {
			return out, nil
		}
		if _, ok := s.categories[c]; !ok {
			return out, nil
		}
	}
	if !isAll(filter.Status) {
		st, err := entities.ParseStatus(filter.Status)
		if err != nil {
			return out, nil
		}
		if _, ok := s.statuses[st]; !ok {
			return out, nil
		}
	}

	for _, item := range s.sorted() {
		if !isAll(filter.Category) && string(item.Category) != filter.Category {
			continue
		}
		if !isAll(filter.Status) && string(item.Status) != filter.Status {
			continue
		}
		if !item.Matches(filter.Search) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, item entities.Equipment, performedBy string) (*entities.Equipment, error) {
	if item.Category == "" {
		item.Category = entities.CategoryOther
	}
	if item.Status == "" {
		item.Status = entities.StatusActive
	}
	if err := item.CheckReferences(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	if item.IsNew() {
		return s.commitLocked(entities.Equipment{}, item, performedBy)
	}
	before, ok := s.equipment[item.ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if item.ImageURL == nil {
		item.ImageURL = before.ImageURL
	}
	if item.QRCode == nil {
		item.QRCode = before.QRCode
	}
	return s.commitLocked(before, item, performedBy)
}

func (s *Store) Update(ctx context.Context, id string, patch entities.EquipmentPatch, performedBy string) (*entities.Equipment, error) {
	if !entities.IsValidID(id) {
		return nil, apperrors.ErrNotFound
	}
	if err := patch.CheckReferences(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}

	before, ok := s.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.commitLocked(before, patch.Apply(before), performedBy)
}

// commitLocked проверяет справочники и уникальность, затем пишет запись и
// одну запись истории. before пустой для новой записи.
func (s *Store) commitLocked(before, item entities.Equipment, performedBy string) (*entities.Equipment, error) {
	if _, ok := s.categories[item.Category]; !ok {
		return nil, apperrors.NewResolutionError("category", string(item.Category))
	}
	if _, ok := s.statuses[item.Status]; !ok {
		return nil, apperrors.NewResolutionError("status", string(item.Status))
	}
	for id, other := range s.equipment {
		if other.InventoryNumber == item.InventoryNumber && id != item.ID {
			return nil, fmt.Errorf("%w: inventory_number=%s", apperrors.ErrConflict, item.InventoryNumber)
		}
	}

	now := s.tick()
	var action entities.HistoryAction
	if item.IsNew() {
		item.ID = uuid.NewString()
		item.ApplyDefaults()
		item.CreatedAt, item.UpdatedAt = &now, &now
		action = entities.ActionCreate
	} else {
		item.CreatedAt, item.UpdatedAt = before.CreatedAt, &now
		action = entities.ChangeAction(before, item)
	}

	s.equipment[item.ID] = item
	s.appendLocked(item.ID, action, entities.ChangeDescription(action, before, item), entities.AutoPerformer(performedBy, item))
	saved := item
	return &saved, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if !entities.IsValidID(id) {
		return apperrors.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return err
	}
	if _, ok := s.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.equipment, id)

	kept := s.history[:0]
	for _, h := range s.history {
		if h.EquipmentID != id {
			kept = append(kept, h)
		}
	}
	s.history = kept
	return nil
}

func (s *Store) CountAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return 0, err
	}
	return int64(len(s.equipment)), nil
}

func (s *Store) CountByStatusRef(ctx context.Context, statusID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return 0, err
	}
	var n int64
	for _, item := range s.equipment {
		if ref, ok := s.statuses[item.Status]; ok && ref.ID == statusID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountByCategoryRef(ctx context.Context, categoryID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return 0, err
	}
	var n int64
	for _, item := range s.equipment {
		if ref, ok := s.categories[item.Category]; ok && ref.ID == categoryID {
			n++
		}
	}
	return n, nil
}

// GetEquipmentCounts считает агрегаты перебором всей коллекции.
func (s *Store) GetEquipmentCounts(ctx context.Context) (entities.AggregateCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return entities.AggregateCounts{}, err
	}
	return entities.CountEquipment(s.sorted()), nil
}

func isAll(v string) bool {
	return v == "" || v == entities.FilterAll
}
