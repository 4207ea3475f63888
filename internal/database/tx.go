package database

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a transaction.  The transaction is committed when
// fn returns nil and rolled back otherwise, including when fn panics.
// Errors from fn are returned unchanged so callers can match sentinels.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
