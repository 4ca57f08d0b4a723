package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// RunInTx commits when fn succeeds and rolls back otherwise. A rollback
// failure is joined onto the original error.
func RunInTx(ctx context.Context, db PgxIface, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(err, rollbackErr)
	}

	return err
}
