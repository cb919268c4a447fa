package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor is the query surface shared by *sql.DB, *sql.Tx, *DB and *Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor is an open transaction
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// TxBeginner starts transactions; implemented by *DB and PlainDB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

type txKey struct{}

// WithTx stores an open transaction in the context
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction stored by WithTx
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return tx, ok
}

// IsInTransaction reports whether ctx carries an open transaction
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor returns the transaction from ctx if there is one, otherwise db.
// Repositories call it on every query so they work both inside and outside
// a transaction manager.
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// PlainDB adapts *sql.DB to TxBeginner without collecting metrics
type PlainDB struct {
	*sql.DB
}

// NewPlain wraps db
func NewPlain(db *sql.DB) *PlainDB {
	return &PlainDB{DB: db}
}

func (p *PlainDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return p.DB.BeginTx(ctx, opts)
}
