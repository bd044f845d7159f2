package worker

import (
	"context"
	"log/slog"

	audit "medhope/pkg/platform/audit"
)

// Worker consumes audit events from a channel and forwards them to a store.
// Append failures are logged and the event is dropped; the worker keeps running.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run forwards events until ctx is cancelled or the inbox is closed.
// A closed inbox is drained completely before Run returns nil.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to forward audit event",
					"action", event.Action,
					"case_id", event.CaseID,
					"error", err,
				)
			}
		}
	}
}
