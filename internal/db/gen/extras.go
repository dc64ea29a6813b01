package db

import (
	"context"
)

// ApplySchema runs a multi-statement DDL script through the underlying DBTX.
// pgx sends argument-less statements over the simple protocol, so the script
// may hold several statements.
func (q *Queries) ApplySchema(ctx context.Context, script string) error {
	_, err := q.db.Exec(ctx, script)
	return err
}
