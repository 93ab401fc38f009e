package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// withTransaction executes fn inside a transaction. All guard evaluation
// (last-member, last-admin) and position computation happens through this
// helper so a concurrent mutation can never observe a half-applied state:
// rows are locked with FOR UPDATE inside fn, and the commit is all-or-nothing.
func withTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op if the transaction commits
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
