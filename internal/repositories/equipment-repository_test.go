package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
	apperrors "equipment-inventory/pkg/errors"
	"equipment-inventory/pkg/types"
)

const (
	testEquipmentID = "123e4567-e89b-12d3-a456-426614174000"
	testCategoryID  = "11111111-1111-4111-8111-111111111111"
	testStatusID    = "22222222-2222-4222-8222-222222222222"
)

var equipmentRowColumns = []string{
	"id", "name", "inventory_number", "category", "status", "purchase_date",
	"responsible_person", "location", "description", "image_url", "qr_code",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func thinkPadRow(status interface{}) *sqlmock.Rows {
	ts := time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(equipmentRowColumns).AddRow(
		testEquipmentID, "Lenovo ThinkPad X1", "PC-2023-001", "computer", status,
		time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), "Иванов И.И.", "Офис #203",
		"16GB RAM, 512GB SSD", "/placeholder.svg", nil, ts, ts,
	)
}

func TestEquipmentRepository_FetchByID_MalformedIDSkipsStore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	for _, id := range []string{"", "1", "not-a-uuid", "123e4567-e89b-62d3-a456-426614174000"} {
		item, err := repo.FetchByID(context.Background(), id)
		assert.Nil(t, item)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_FetchByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("FROM equipment e LEFT JOIN equipment_categories c ON c.id = e.category_id LEFT JOIN equipment_statuses s ON s.id = e.status_id WHERE e.id = $1")).
		WithArgs(testEquipmentID).
		WillReturnRows(thinkPadRow(nil))

	item, err := repo.FetchByID(context.Background(), testEquipmentID)
	require.NoError(t, err)

	assert.Equal(t, "Lenovo ThinkPad X1", item.Name)
	assert.Equal(t, entities.CategoryComputer, item.Category)
	assert.Equal(t, entities.StatusActive, item.Status, "статус без справочника читается как active")
	assert.Equal(t, "2023-01-15", item.PurchaseDate)
	require.NotNil(t, item.Description)
	assert.Equal(t, "16GB RAM, 512GB SSD", *item.Description)
	assert.Nil(t, item.QRCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_FetchByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("WHERE e.id = $1")).
		WithArgs(testEquipmentID).
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns))

	_, err := repo.FetchByID(context.Background(), testEquipmentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_FetchAll_TransportError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("ORDER BY e.created_at DESC")).WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestEquipmentRepository_FetchFiltered_InvalidEnumIsEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	items, err := repo.FetchFiltered(context.Background(), types.EquipmentFilter{Category: "laptop"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, err = repo.FetchFiltered(context.Background(), types.EquipmentFilter{Status: "broken"})
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_FetchFiltered_UnresolvedReferenceIsEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("SELECT id FROM equipment_categories WHERE name = $1 LIMIT 1")).
		WithArgs("printer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, err := repo.FetchFiltered(context.Background(), types.EquipmentFilter{Category: "printer", Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_FetchFiltered_SearchAndStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("SELECT id FROM equipment_statuses WHERE name = $1 LIMIT 1")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testStatusID))

	pattern := `%50\%\_off%`
	mock.ExpectQuery(q(`WHERE (e.name ILIKE $1 ESCAPE '\' OR e.inventory_number ILIKE $2 ESCAPE '\' OR e.location ILIKE $3 ESCAPE '\' OR e.description ILIKE $4 ESCAPE '\') AND e.status_id = $5`)).
		WithArgs(pattern, pattern, pattern, pattern, testStatusID).
		WillReturnRows(thinkPadRow("active"))

	items, err := repo.FetchFiltered(context.Background(), types.EquipmentFilter{Search: "50%_off", Category: "all", Status: "active"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entities.StatusActive, items[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_Insert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).WithArgs("printer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCategoryID))
	mock.ExpectQuery(q("SELECT id FROM equipment_statuses")).WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testStatusID))
	mock.ExpectQuery(q("INSERT INTO equipment (id,name,inventory_number,category_id,status_id,purchase_date,responsible_person,location,description,image_url,qr_code)")).
		WithArgs(sqlmock.AnyArg(), "HP LaserJet", "PR-2023-002", testCategoryID, testStatusID,
			sqlmock.AnyArg(), "Петров А.С.", "Бухгалтерия", nil, entities.DefaultImageURL, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(q("INSERT INTO equipment_history (id,equipment_id,action,description,performed_by)")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "create", "Добавлено новое оборудование", "Петров А.С.").
		WillReturnRows(sqlmock.NewRows([]string{"performed_at"}).AddRow(now))
	mock.ExpectCommit()

	saved, err := repo.Save(context.Background(), entities.Equipment{
		Name:              "HP LaserJet",
		InventoryNumber:   "PR-2023-002",
		Category:          entities.CategoryPrinter,
		PurchaseDate:      "2023-02-20",
		ResponsiblePerson: "Петров А.С.",
		Location:          "Бухгалтерия",
	}, "")
	require.NoError(t, err)

	assert.True(t, entities.IsValidID(saved.ID))
	assert.Equal(t, entities.StatusActive, saved.Status)
	require.NotNil(t, saved.QRCode)
	assert.Contains(t, *saved.QRCode, "equipment%2FPR-2023-002")
	assert.NotNil(t, saved.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_ResolutionFailureWritesNothing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).WithArgs("computer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCategoryID))
	mock.ExpectQuery(q("SELECT id FROM equipment_statuses")).WithArgs("written-off").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), entities.Equipment{
		Name: "Old PC", InventoryNumber: "PC-1", Category: entities.CategoryComputer, Status: entities.StatusWrittenOff,
	}, "")

	var resErr *apperrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "status", resErr.Field)
	assert.Equal(t, "written-off", resErr.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_InvalidEnumSkipsStore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	_, err := repo.Save(context.Background(), entities.Equipment{Name: "X", InventoryNumber: "X-1", Category: "laptop"}, "")
	var resErr *apperrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "category", resErr.Field)
	assert.Equal(t, "laptop", resErr.Value)

	_, err = repo.Save(context.Background(), entities.Equipment{
		ID: testEquipmentID, Name: "X", InventoryNumber: "X-1", Category: "nonexistent-category",
	}, "")
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "category", resErr.Field)

	_, err = repo.Save(context.Background(), entities.Equipment{Name: "X", InventoryNumber: "X-1", Status: "broken"}, "")
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "status", resErr.Field)

	_, err = repo.Save(context.Background(), entities.Equipment{Name: "X", InventoryNumber: "X-1", PurchaseDate: "15.01.2023"}, "")
	assert.True(t, apperrors.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_UpdateMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(q("WHERE e.id = $1 FOR UPDATE OF e")).WithArgs(testEquipmentID).
		WillReturnRows(sqlmock.NewRows(equipmentRowColumns))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), entities.Equipment{
		ID: testEquipmentID, Name: "X", InventoryNumber: "X-1", Category: entities.CategoryComputer, Status: entities.StatusActive,
	}, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_UpdateToRepair(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE OF e")).WithArgs(testEquipmentID).
		WillReturnRows(thinkPadRow("active"))
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).WithArgs("computer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCategoryID))
	mock.ExpectQuery(q("SELECT id FROM equipment_statuses")).WithArgs("repair").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testStatusID))
	mock.ExpectQuery(q("UPDATE equipment SET name = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(q("INSERT INTO equipment_history")).
		WithArgs(sqlmock.AnyArg(), testEquipmentID, "repair", "Оборудование передано в ремонт", "Петров А.С.").
		WillReturnRows(sqlmock.NewRows([]string{"performed_at"}).AddRow(now))
	mock.ExpectCommit()

	saved, err := repo.Save(context.Background(), entities.Equipment{
		ID: testEquipmentID, Name: "Lenovo ThinkPad X1", InventoryNumber: "PC-2023-001",
		Category: entities.CategoryComputer, Status: entities.StatusRepair,
		ResponsiblePerson: "Иванов И.И.", Location: "Офис #203",
	}, "Петров А.С.")
	require.NoError(t, err)

	assert.Equal(t, entities.StatusRepair, saved.Status)
	require.NotNil(t, saved.ImageURL, "изображение сохраняется, если не передано")
	assert.Equal(t, entities.DefaultImageURL, *saved.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Update_RejectsBeforeStore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())
	name := "X"

	_, err := repo.Update(context.Background(), "17", entities.EquipmentPatch{Name: &name}, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	category := entities.Category("nonexistent-category")
	_, err = repo.Update(context.Background(), testEquipmentID, entities.EquipmentPatch{Name: &name, Category: &category}, "")
	var resErr *apperrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "category", resErr.Field)
	assert.Equal(t, "nonexistent-category", resErr.Value)

	date := "2023/01/15"
	_, err = repo.Update(context.Background(), testEquipmentID, entities.EquipmentPatch{PurchaseDate: &date}, "")
	assert.True(t, apperrors.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Update_KeepsOmittedFields(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE OF e")).WithArgs(testEquipmentID).
		WillReturnRows(thinkPadRow("repair"))
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).WithArgs("computer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCategoryID))
	mock.ExpectQuery(q("SELECT id FROM equipment_statuses")).WithArgs("repair").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testStatusID))
	mock.ExpectQuery(q("UPDATE equipment SET name = $1")).
		WithArgs("ThinkPad X1 Carbon", "PC-2023-010", testCategoryID, testStatusID, sqlmock.AnyArg(),
			"Иванов И.И.", "Офис #203", "16GB RAM, 512GB SSD", entities.DefaultImageURL, nil, testEquipmentID).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery(q("INSERT INTO equipment_history")).
		WithArgs(sqlmock.AnyArg(), testEquipmentID, "update", "Обновлена информация об оборудовании", "Иванов И.И.").
		WillReturnRows(sqlmock.NewRows([]string{"performed_at"}).AddRow(now))
	mock.ExpectCommit()

	name, number := "ThinkPad X1 Carbon", "PC-2023-010"
	saved, err := repo.Update(context.Background(), testEquipmentID,
		entities.EquipmentPatch{Name: &name, InventoryNumber: &number}, "")
	require.NoError(t, err)

	assert.Equal(t, "ThinkPad X1 Carbon", saved.Name)
	assert.Equal(t, entities.CategoryComputer, saved.Category)
	assert.Equal(t, entities.StatusRepair, saved.Status)
	assert.Equal(t, "2023-01-15", saved.PurchaseDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Update_UnresolvedReferenceRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE OF e")).WithArgs(testEquipmentID).
		WillReturnRows(thinkPadRow("active"))
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).WithArgs("mobile").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	category := entities.CategoryMobile
	_, err := repo.Update(context.Background(), testEquipmentID, entities.EquipmentPatch{Category: &category}, "")
	var resErr *apperrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "category", resErr.Field)
	assert.Equal(t, "mobile", resErr.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Save_DuplicateInventoryNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM equipment_categories")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testCategoryID))
	mock.ExpectQuery(q("SELECT id FROM equipment_statuses")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testStatusID))
	mock.ExpectQuery(q("INSERT INTO equipment (")).
		WillReturnError(&pgconn.PgError{Code: "23505", Detail: "Key (inventory_number)=(PC-2023-001) already exists."})
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), entities.Equipment{Name: "Dup", InventoryNumber: "PC-2023-001"}, "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	assert.ErrorIs(t, repo.Delete(context.Background(), "bad"), apperrors.ErrNotFound)

	mock.ExpectExec(q("DELETE FROM equipment WHERE id = $1")).WithArgs(testEquipmentID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), testEquipmentID), apperrors.ErrNotFound)

	mock.ExpectExec(q("DELETE FROM equipment WHERE id = $1")).WithArgs(testEquipmentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), testEquipmentID))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_Counts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEquipmentRepository(db, zap.NewNop())

	mock.ExpectQuery(q("SELECT COUNT(*) FROM equipment")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM equipment WHERE status_id = $1")).WithArgs(testStatusID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(q("SELECT COUNT(*) FROM equipment WHERE category_id = $1")).WithArgs(testCategoryID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	n, err := repo.CountByStatusRef(context.Background(), testStatusID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountByCategoryRef(context.Background(), testCategoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_a\\b`, escapeLike(`50%_a\b`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
