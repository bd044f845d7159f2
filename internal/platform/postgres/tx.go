package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "medhope/pkg/domain-errors"
	txcontext "medhope/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// TxRunner runs a function inside a database transaction carried in ctx.
// Stores pick the transaction up through pkg/platform/tx.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTxRunner(db *sql.DB, timeout time.Duration) *TxRunner {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &TxRunner{db: db, timeout: timeout}
}

// RunInTx commits when fn returns nil and rolls back otherwise. A
// transaction already present in ctx is reused.
func (t *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
