package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL applied by EnsureSchema.
func Schema() string { return schema }

// EnsureSchema creates any missing table.  Every statement uses
// CREATE TABLE IF NOT EXISTS so running it against an existing database
// is a no-op.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
