package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "medhope/pkg/domain"
	audit "medhope/pkg/platform/audit"
	txcontext "medhope/pkg/platform/tx"
)

// Store implements audit.Store and audit.Reader on the audit_events table.
// Append joins a transaction carried in ctx, so an event can commit with
// the change it describes.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts one event. The category is always derived from the action.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, occurred_at, action, case_id, subject,
			actor_id, target_id, reason, amount, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.New(),
		string(audit.AuditEvent(event.Action).Category()),
		event.Timestamp,
		event.Action,
		nullCaseID(event.CaseID),
		event.Subject,
		nullUserID(event.ActorID),
		nullUserID(event.TargetID),
		event.Reason,
		event.Amount,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByCase returns events for a case in append order.
func (s *Store) ListByCase(ctx context.Context, caseID id.CaseID) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, action, case_id, subject,
			   actor_id, target_id, reason, amount, request_id
		FROM audit_events
		WHERE case_id = $1
		ORDER BY seq
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, uuid.UUID(caseID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var (
			event    audit.Event
			category string
			caseCol  uuid.NullUUID
			actor    uuid.NullUUID
			target   uuid.NullUUID
		)
		if err := rows.Scan(
			&category,
			&event.Timestamp,
			&event.Action,
			&caseCol,
			&event.Subject,
			&actor,
			&target,
			&event.Reason,
			&event.Amount,
			&event.RequestID,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		if caseCol.Valid {
			event.CaseID = id.CaseID(caseCol.UUID)
		}
		if actor.Valid {
			event.ActorID = id.UserID(actor.UUID)
		}
		if target.Valid {
			event.TargetID = id.UserID(target.UUID)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func nullCaseID(v id.CaseID) uuid.NullUUID {
	if v.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(v), Valid: true}
}

func nullUserID(v id.UserID) uuid.NullUUID {
	if v.IsNil() {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(v), Valid: true}
}
