package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Conn is the query surface shared by *sql.DB and *sql.Tx. Repositories take
// a Conn so the same code runs on the pool or inside InTx.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Conn = (*sql.DB)(nil)
	_ Conn = (*sql.Tx)(nil)
)

// InTx runs fn in a single transaction on database. fn returning nil commits;
// an error or a panic rolls back. The transaction takes the write lock up
// front (see OpenDB), so read-modify-write inside fn cannot interleave with
// another writer.
func InTx(ctx context.Context, database *sql.DB, fn func(ctx context.Context, conn Conn) error) (err error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
