package repositories

import (
	"context"
	"database/sql"
)

// SQLExecutor abstracts *sql.DB and *sql.Tx so repository methods can take
// part in caller-managed transactions.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
