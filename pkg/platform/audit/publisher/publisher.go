// Package publisher emits audit events to a store, synchronously or through
// a bounded in-process buffer drained by a worker goroutine.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "medhope/pkg/domain"
	audit "medhope/pkg/platform/audit"
	"medhope/pkg/platform/audit/worker"
)

var (
	ErrBufferFull    = errors.New("audit buffer full")
	ErrMissingAction = errors.New("audit event requires Action")
	ErrClosed        = errors.New("audit publisher closed")
)

// Publisher validates events, stamps them and hands them to the store.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
	clock  func() time.Time

	bufferSize int
	mu         sync.RWMutex
	inbox      chan audit.Event
	closed     bool
	done       chan struct{}
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking with a buffer of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(p *Publisher) {
		if clock != nil {
			p.clock = clock
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit records the event. In async mode a full buffer returns ErrBufferFull
// rather than blocking the caller.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return ErrMissingAction
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.clock()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"case_id", event.CaseID,
		)
		return ErrBufferFull
	}
}

// List returns events for a case when the underlying store can read.
func (p *Publisher) List(ctx context.Context, caseID id.CaseID) ([]audit.Event, error) {
	reader, ok := p.store.(audit.Reader)
	if !ok {
		return nil, nil
	}
	return reader.ListByCase(ctx, caseID)
}

// Close stops accepting events and drains the buffer.
func (p *Publisher) Close() error {
	if p.inbox == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()
	<-p.done
	return nil
}
