package repository

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var SchemaSQL string

// Migrate creates the tables, constraints and indexes if they do not exist yet.
func Migrate(ctx context.Context, db Database) error {
	if _, err := db.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
