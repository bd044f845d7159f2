package service

import (
	"context"
	"sync"
)

// StoreTx provides a transactional boundary for multi-store writes.
// PostgreSQL deployments pass postgres.TxRunner; in memory a coarse lock
// serializes the unit of work.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
