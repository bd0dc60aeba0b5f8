package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

const equipmentTable = "equipment"

var equipmentColumns = []string{
	"e.id", "e.name", "e.inventory_number", "c.name", "s.name", "e.purchase_date",
	"e.responsible_person", "e.location", "e.description", "e.image_url", "e.qr_code",
	"e.created_at", "e.updated_at",
}

var equipmentSearchColumns = []string{"e.name", "e.inventory_number", "e.location", "e.description"}

type EquipmentRepositoryInterface interface {
	FetchAll(ctx context.Context) ([]entities.Equipment, error)
	FetchByID(ctx context.Context, id string) (*entities.Equipment, error)
	FetchFiltered(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error)
	Save(ctx context.Context, item entities.Equipment, performedBy string) (*entities.Equipment, error)
	Update(ctx context.Context, id string, patch entities.EquipmentPatch, performedBy string) (*entities.Equipment, error)
	Delete(ctx context.Context, id string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatusRef(ctx context.Context, statusID string) (int64, error)
	CountByCategoryRef(ctx context.Context, categoryID string) (int64, error)
}

type EquipmentRepository struct {
	storage *sql.DB
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *sql.DB, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

// dbEquipment - строка выборки с уже подставленными названиями справочников.
type dbEquipment struct {
	ID                string
	Name              string
	InventoryNumber   string
	Category          null.String
	Status            null.String
	PurchaseDate      null.Time
	ResponsiblePerson null.String
	Location          null.String
	Description       null.String
	ImageURL          null.String
	QRCode            null.String
	CreatedAt         null.Time
	UpdatedAt         null.Time
}

func (db *dbEquipment) scanArgs() []any {
	return []any{
		&db.ID, &db.Name, &db.InventoryNumber, &db.Category, &db.Status, &db.PurchaseDate,
		&db.ResponsiblePerson, &db.Location, &db.Description, &db.ImageURL, &db.QRCode,
		&db.CreatedAt, &db.UpdatedAt,
	}
}

func (db *dbEquipment) toEntity() entities.Equipment {
	item := entities.Equipment{
		ID:                db.ID,
		Name:              db.Name,
		InventoryNumber:   db.InventoryNumber,
		Category:          entities.CategoryFromStore(db.Category.String),
		Status:            entities.StatusFromStore(db.Status.String),
		ResponsiblePerson: db.ResponsiblePerson.String,
		Location:          db.Location.String,
		Description:       db.Description.Ptr(),
		ImageURL:          db.ImageURL.Ptr(),
		QRCode:            db.QRCode.Ptr(),
		CreatedAt:         db.CreatedAt.Ptr(),
		UpdatedAt:         db.UpdatedAt.Ptr(),
	}
	if db.PurchaseDate.Valid {
		item.PurchaseDate = db.PurchaseDate.Time.Format(entities.PurchaseDateFmt)
	}
	return item
}

func selectEquipment() sq.SelectBuilder {
	return psql.Select(equipmentColumns...).
		From(equipmentTable + " e").
		LeftJoin(categoryTable + " c ON c.id = e.category_id").
		LeftJoin(statusTable + " s ON s.id = e.status_id")
}

func queryEquipment(ctx context.Context, q Querier, builder sq.SelectBuilder) ([]entities.Equipment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса оборудования: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки оборудования: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		var row dbEquipment
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки оборудования: %w", err)
		}
		items = append(items, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func fetchEquipment(ctx context.Context, q Querier, id string, forUpdate bool) (*entities.Equipment, error) {
	builder := selectEquipment().Where(sq.Eq{"e.id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE OF e")
	}

	items, err := queryEquipment(ctx, q, builder)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *EquipmentRepository) FetchAll(ctx context.Context) ([]entities.Equipment, error) {
	return queryEquipment(ctx, r.storage, selectEquipment().OrderBy("e.created_at DESC", "e.id"))
}

// FetchByID с некорректным id сразу возвращает ErrNotFound, не обращаясь к БД.
func (r *EquipmentRepository) FetchByID(ctx context.Context, id string) (*entities.Equipment, error) {
	if !entities.IsValidID(id) {
		return nil, apperrors.ErrNotFound
	}
	return fetchEquipment(ctx, r.storage, id, false)
}

// FetchFiltered: недопустимое значение категории или статуса, как и значение
// без строки в справочнике, дает пустой результат без ошибки.
func (r *EquipmentRepository) FetchFiltered(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	builder := selectEquipment()
	refs := NewReferenceRepository(r.storage)

	if filter.Search != "" {
		builder = builder.Where(searchPredicate(filter.Search, equipmentSearchColumns...))
	}

	if !isAll(filter.Category) {
		category, err := entities.ParseCategory(filter.Category)
		if err != nil {
			r.logger.Debug("фильтр по неизвестной категории", zap.String("category", filter.Category))
			return []entities.Equipment{}, nil
		}
		categoryID, err := refs.ResolveCategory(ctx, category)
		if err != nil {
			return emptyOnResolution(err)
		}
		builder = builder.Where(sq.Eq{"e.category_id": categoryID})
	}

	if !isAll(filter.Status) {
		status, err := entities.ParseStatus(filter.Status)
		if err != nil {
			r.logger.Debug("фильтр по неизвестному статусу", zap.String("status", filter.Status))
			return []entities.Equipment{}, nil
		}
		statusID, err := refs.ResolveStatus(ctx, status)
		if err != nil {
			return emptyOnResolution(err)
		}
		builder = builder.Where(sq.Eq{"e.status_id": statusID})
	}

	return queryEquipment(ctx, r.storage, builder.OrderBy("e.created_at DESC", "e.id"))
}

func emptyOnResolution(err error) ([]entities.Equipment, error) {
	var resErr *apperrors.ResolutionError
	if errors.As(err, &resErr) {
		return []entities.Equipment{}, nil
	}
	return nil, err
}

// Save вставляет или обновляет запись и добавляет одну запись истории в той же
// транзакции. Справочники разрешаются до любой записи.
func (r *EquipmentRepository) Save(ctx context.Context, item entities.Equipment, performedBy string) (*entities.Equipment, error) {
	if item.Category == "" {
		item.Category = entities.CategoryOther
	}
	if item.Status == "" {
		item.Status = entities.StatusActive
	}
	if err := item.CheckReferences(); err != nil {
		return nil, err
	}
	if _, err := parsePurchaseDate(item.PurchaseDate); err != nil {
		return nil, err
	}

	var saved *entities.Equipment
	err := WithTx(ctx, r.storage, nil, func(tx Querier) error {
		var err error
		if item.IsNew() {
			saved, err = createInTx(ctx, tx, item, performedBy)
			return err
		}

		before, err := fetchEquipment(ctx, tx, item.ID, true)
		if err != nil {
			return err
		}
		if item.ImageURL == nil {
			item.ImageURL = before.ImageURL
		}
		if item.QRCode == nil {
			item.QRCode = before.QRCode
		}
		saved, err = updateInTx(ctx, tx, *before, item, performedBy)
		return err
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return saved, nil
}

// Update меняет только переданные поля. Текущая запись читается с блокировкой
// в той же транзакции, что и обновление с записью истории.
func (r *EquipmentRepository) Update(ctx context.Context, id string, patch entities.EquipmentPatch, performedBy string) (*entities.Equipment, error) {
	if !entities.IsValidID(id) {
		return nil, apperrors.ErrNotFound
	}
	if err := patch.CheckReferences(); err != nil {
		return nil, err
	}
	if patch.PurchaseDate != nil {
		if _, err := parsePurchaseDate(*patch.PurchaseDate); err != nil {
			return nil, err
		}
	}

	var saved *entities.Equipment
	err := WithTx(ctx, r.storage, nil, func(tx Querier) error {
		before, err := fetchEquipment(ctx, tx, id, true)
		if err != nil {
			return err
		}
		saved, err = updateInTx(ctx, tx, *before, patch.Apply(*before), performedBy)
		return err
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return saved, nil
}

func resolveRefs(ctx context.Context, tx Querier, item entities.Equipment) (categoryID, statusID string, err error) {
	refs := NewReferenceRepository(tx)
	if categoryID, err = refs.ResolveCategory(ctx, item.Category); err != nil {
		return "", "", err
	}
	if statusID, err = refs.ResolveStatus(ctx, item.Status); err != nil {
		return "", "", err
	}
	return categoryID, statusID, nil
}

func createInTx(ctx context.Context, tx Querier, item entities.Equipment, performedBy string) (*entities.Equipment, error) {
	categoryID, statusID, err := resolveRefs(ctx, tx, item)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := parsePurchaseDate(item.PurchaseDate)
	if err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	item.ApplyDefaults()
	if err := insertEquipment(ctx, tx, &item, categoryID, statusID, purchaseDate); err != nil {
		return nil, err
	}

	description := entities.ChangeDescription(entities.ActionCreate, entities.Equipment{}, item)
	if _, err := NewEquipmentHistoryRepository(tx).Append(ctx, item.ID, entities.ActionCreate, description,
		entities.AutoPerformer(performedBy, item)); err != nil {
		return nil, err
	}
	return &item, nil
}

// updateInTx: справочники разрешаются до UPDATE, действие истории
// выводится из разницы before и item.
func updateInTx(ctx context.Context, tx Querier, before, item entities.Equipment, performedBy string) (*entities.Equipment, error) {
	categoryID, statusID, err := resolveRefs(ctx, tx, item)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := parsePurchaseDate(item.PurchaseDate)
	if err != nil {
		return nil, err
	}

	if err := updateEquipment(ctx, tx, &item, categoryID, statusID, purchaseDate); err != nil {
		return nil, err
	}

	action := entities.ChangeAction(before, item)
	description := entities.ChangeDescription(action, before, item)
	if _, err := NewEquipmentHistoryRepository(tx).Append(ctx, item.ID, action, description,
		entities.AutoPerformer(performedBy, item)); err != nil {
		return nil, err
	}
	return &item, nil
}

func parsePurchaseDate(s string) (null.Time, error) {
	if s == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(entities.PurchaseDateFmt, s)
	if err != nil {
		return null.Time{}, apperrors.NewInvalidInputError(apperrors.ErrBadRequest, "неверный формат даты покупки: %q", s)
	}
	return null.TimeFrom(t), nil
}

func insertEquipment(ctx context.Context, tx Querier, item *entities.Equipment, categoryID, statusID string, purchaseDate null.Time) error {
	query, args, err := psql.Insert(equipmentTable).
		Columns("id", "name", "inventory_number", "category_id", "status_id", "purchase_date",
			"responsible_person", "location", "description", "image_url", "qr_code").
		Values(item.ID, item.Name, item.InventoryNumber, categoryID, statusID, purchaseDate,
			item.ResponsiblePerson, item.Location, null.StringFromPtr(item.Description),
			null.StringFromPtr(item.ImageURL), null.StringFromPtr(item.QRCode)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	var createdAt, updatedAt time.Time
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("ошибка добавления оборудования: %w", err)
	}
	item.CreatedAt, item.UpdatedAt = &createdAt, &updatedAt
	return nil
}

func updateEquipment(ctx context.Context, tx Querier, item *entities.Equipment, categoryID, statusID string, purchaseDate null.Time) error {
	query, args, err := psql.Update(equipmentTable).
		Set("name", item.Name).
		Set("inventory_number", item.InventoryNumber).
		Set("category_id", categoryID).
		Set("status_id", statusID).
		Set("purchase_date", purchaseDate).
		Set("responsible_person", item.ResponsiblePerson).
		Set("location", item.Location).
		Set("description", null.StringFromPtr(item.Description)).
		Set("image_url", null.StringFromPtr(item.ImageURL)).
		Set("qr_code", null.StringFromPtr(item.QRCode)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	var createdAt, updatedAt time.Time
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("ошибка обновления оборудования: %w", err)
	}
	item.CreatedAt, item.UpdatedAt = &createdAt, &updatedAt
	return nil
}

// Delete удаляет запись; история удаляется каскадно.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	if !entities.IsValidID(id) {
		return apperrors.ErrNotFound
	}

	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	result, err := r.storage.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) CountAll(ctx context.Context) (int64, error) {
	return countEquipment(ctx, r.storage, nil)
}

func (r *EquipmentRepository) CountByStatusRef(ctx context.Context, statusID string) (int64, error) {
	return countEquipment(ctx, r.storage, sq.Eq{"status_id": statusID})
}

func (r *EquipmentRepository) CountByCategoryRef(ctx context.Context, categoryID string) (int64, error) {
	return countEquipment(ctx, r.storage, sq.Eq{"category_id": categoryID})
}
