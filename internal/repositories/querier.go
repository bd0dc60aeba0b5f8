package repositories

import (
	"context"
	"database/sql"
)

// Querier - общий набор методов *sql.DB и *sql.Tx, с которым работают репозитории.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
