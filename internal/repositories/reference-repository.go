package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"

	"equipment-inventory/internal/entities"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

const (
	categoryTable = "equipment_categories"
	statusTable   = "equipment_statuses"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type dbReference struct {
	ID          string
	Name        string
	Color       null.String
	Description null.String
	CreatedAt   time.Time
}

func (db *dbReference) toEntity() entities.Reference {
	createdAt := db.CreatedAt
	return entities.Reference{
		ID:          db.ID,
		Name:        db.Name,
		Color:       db.Color.Ptr(),
		Description: db.Description.Ptr(),
		BaseEntity:  types.BaseEntity{CreatedAt: &createdAt},
	}
}

type ReferenceRepositoryInterface interface {
	ResolveCategory(ctx context.Context, category entities.Category) (string, error)
	ResolveStatus(ctx context.Context, status entities.Status) (string, error)
	ListCategories(ctx context.Context) ([]entities.Reference, error)
	ListStatuses(ctx context.Context) ([]entities.Reference, error)
}

type referenceRepository struct{ storage Querier }

func NewReferenceRepository(storage Querier) ReferenceRepositoryInterface {
	return &referenceRepository{storage: storage}
}

// ResolveCategory возвращает id строки справочника категорий или ResolutionError.
func (r *referenceRepository) ResolveCategory(ctx context.Context, category entities.Category) (string, error) {
	return r.resolve(ctx, categoryTable, "category", string(category))
}

// ResolveStatus возвращает id строки справочника статусов или ResolutionError.
func (r *referenceRepository) ResolveStatus(ctx context.Context, status entities.Status) (string, error) {
	return r.resolve(ctx, statusTable, "status", string(status))
}

func (r *referenceRepository) resolve(ctx context.Context, table, field, name string) (string, error) {
	query, args, err := psql.Select("id").From(table).Where(sq.Eq{"name": name}).Limit(1).ToSql()
	if err != nil {
		return "", fmt.Errorf("ошибка построения запроса к %s: %w", table, err)
	}

	var id string
	if err := r.storage.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NewResolutionError(field, name)
		}
		return "", fmt.Errorf("ошибка поиска в справочнике %s: %w", table, err)
	}
	return id, nil
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]entities.Reference, error) {
	return r.list(ctx, psql.Select("id", "name", "NULL AS color", "description", "created_at").From(categoryTable).OrderBy("name"))
}

func (r *referenceRepository) ListStatuses(ctx context.Context) ([]entities.Reference, error) {
	return r.list(ctx, psql.Select("id", "name", "color", "description", "created_at").From(statusTable).OrderBy("name"))
}

func (r *referenceRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Reference, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника: %w", err)
	}
	defer rows.Close()

	refs := make([]entities.Reference, 0)
	for rows.Next() {
		var dbRow dbReference
		if err := rows.Scan(&dbRow.ID, &dbRow.Name, &dbRow.Color, &dbRow.Description, &dbRow.CreatedAt); err != nil {
			return nil, err
		}
		refs = append(refs, dbRow.toEntity())
	}
	return refs, rows.Err()
}

// statusRefs и categoryRefs отдают соответствие "значение перечисления -> id".
// Строки справочника с незнакомыми названиями пропускаются.
func statusRefs(ctx context.Context, refs ReferenceRepositoryInterface) (map[entities.Status]string, error) {
	list, err := refs.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[entities.Status]string, len(list))
	for _, ref := range list {
		if st, err := entities.ParseStatus(ref.Name); err == nil {
			out[st] = ref.ID
		}
	}
	return out, nil
}

func categoryRefs(ctx context.Context, refs ReferenceRepositoryInterface) (map[entities.Category]string, error) {
	list, err := refs.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[entities.Category]string, len(list))
	for _, ref := range list {
		if c, err := entities.ParseCategory(ref.Name); err == nil {
			out[c] = ref.ID
		}
	}
	return out, nil
}
