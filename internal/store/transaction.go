package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/taskr-api/internal/platform/logger"
)

// TxFn is the unit of work run inside RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// ErrRollback wraps a rollback failure; the error returned by the
// TxFn stays reachable through errors.Is as well.
var ErrRollback = errors.New("rollback failed")

// RunInTransaction runs fn inside a transaction on db. The transaction
// commits when fn returns nil and rolls back otherwise. A panic inside fn
// rolls back and is re-raised.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		p := recover()
		if committed || (p == nil && err == nil) {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction", "error", rbErr, "cause", err, "panic", p)
			if p == nil {
				err = errors.Join(fmt.Errorf("%w: %w", ErrRollback, rbErr), err)
			}
		} else {
			log.Debug("rolled back transaction", "cause", err, "panic", p)
		}

		if p != nil {
			// ALLOW-PANIC: re-raise after rollback
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	// A failed commit leaves nothing to roll back.
	committed = true
	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
