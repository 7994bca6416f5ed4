package database

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction scoped to ctx.  The transaction is
// committed when fn returns nil and rolled back otherwise, so no partial
// writes survive a failed handler.  A failed commit is reported as an
// error; the driver has already discarded the transaction at that point.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit: %w", cerr)
		}
	}()
	err = fn(tx)
	return err
}
