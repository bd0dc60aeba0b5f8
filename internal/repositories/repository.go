package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "equipment-inventory/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы поиск был буквальным.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// searchPredicate - ILIKE по нескольким колонкам через OR.
func searchPredicate(term string, columns ...string) sq.Sqlizer {
	pattern := "%" + escapeLike(term) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.Expr(col+` ILIKE ? ESCAPE '\'`, pattern))
	}
	return or
}

func isAll(v string) bool {
	return v == "" || v == "all"
}

// mapPgError переводит коды ошибок Postgres в ошибки приложения.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Detail)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: нарушена ссылка %s", apperrors.ErrNotFound, pgErr.ConstraintName)
	}
	return err
}

// countEquipment выполняет один COUNT(*) по таблице оборудования.
func countEquipment(ctx context.Context, q Querier, where sq.Sqlizer) (int64, error) {
	builder := psql.Select("COUNT(*)").From(equipmentTable)
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчета оборудования: %w", err)
	}
	return n, nil
}
