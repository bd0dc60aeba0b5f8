package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"equipment-inventory/internal/entities"
	"equipment-inventory/internal/repositories"
	apperrors "equipment-inventory/pkg/errors"
)

func (s *Store) ResolveCategory(ctx context.Context, category entities.Category) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return "", err
	}
	ref, ok := s.categories[category]
	if !ok {
		return "", apperrors.NewResolutionError("category", string(category))
	}
	return ref.ID, nil
}

func (s *Store) ResolveStatus(ctx context.Context, status entities.Status) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return "", err
	}
	ref, ok := s.statuses[status]
	if !ok {
		return "", apperrors.NewResolutionError("status", string(status))
	}
	return ref.ID, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]entities.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	out := make([]entities.Reference, 0, len(s.categories))
	for _, ref := range s.categories {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ListStatuses(ctx context.Context) ([]entities.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.touch(); err != nil {
		return nil, err
	}
	out := make([]entities.Reference, 0, len(s.statuses))
	for _, ref := range s.statuses {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repositories.CacheRepositoryInterface = (*Cache)(nil)

// Cache - кеш в памяти без учета времени жизни.
type Cache struct {
	mu   sync.Mutex
	data map[string]string

	// Err, если задан, возвращается всеми операциями.
	Err error
}

func NewCache() *Cache {
	return &Cache{data: make(map[string]string)}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	default:
		return errors.New("неподдерживаемый тип значения")
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// Has сообщает, лежит ли ключ в кеше.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
