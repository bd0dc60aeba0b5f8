package repositories

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"equipment-inventory/internal/entities"
)

type DashboardRepositoryInterface interface {
	GetEquipmentCounts(ctx context.Context) (entities.AggregateCounts, error)
}

type DashboardRepository struct {
	storage *sql.DB
	logger  *zap.Logger
}

func NewDashboardRepository(storage *sql.DB, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// GetEquipmentCounts делает отдельный COUNT на каждый статус и каждую
// категорию плюс общий итог. Все запросы идут в одном снимке REPEATABLE READ.
// Записи со ссылками на незнакомые значения справочника попадают в
// active и other, как и при чтении отдельных записей.
func (r *DashboardRepository) GetEquipmentCounts(ctx context.Context) (entities.AggregateCounts, error) {
	counts := entities.NewAggregateCounts()

	err := WithTx(ctx, r.storage, snapshotTxOptions, func(tx Querier) error {
		total, err := countEquipment(ctx, tx, nil)
		if err != nil {
			return err
		}
		counts.Total = total

		refs := NewReferenceRepository(tx)

		statusIDs, err := statusRefs(ctx, refs)
		if err != nil {
			return err
		}
		for _, status := range entities.AllStatuses {
			id, ok := statusIDs[status]
			if !ok {
				continue
			}
			n, err := countEquipment(ctx, tx, sq.Eq{"status_id": id})
			if err != nil {
				return err
			}
			counts.ByStatus[status] = n
		}

		categoryIDs, err := categoryRefs(ctx, refs)
		if err != nil {
			return err
		}
		for _, category := range entities.AllCategories {
			id, ok := categoryIDs[category]
			if !ok {
				continue
			}
			n, err := countEquipment(ctx, tx, sq.Eq{"category_id": id})
			if err != nil {
				return err
			}
			counts.ByCategory[category] = n
		}
		return nil
	})
	if err != nil {
		return entities.AggregateCounts{}, err
	}

	if rest := counts.Total - counts.StatusSum(); rest > 0 {
		r.logger.Debug("оборудование с неизвестным статусом учтено как active", zap.Int64("count", rest))
		counts.ByStatus[entities.StatusActive] += rest
	}
	if rest := counts.Total - counts.CategorySum(); rest > 0 {
		r.logger.Debug("оборудование с неизвестной категорией учтено как other", zap.Int64("count", rest))
		counts.ByCategory[entities.CategoryOther] += rest
	}
	return counts, nil
}
