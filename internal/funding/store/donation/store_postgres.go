package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"medhope/internal/funding/models"
	"medhope/internal/platform/postgres"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
	txcontext "medhope/pkg/platform/tx"
)

const referenceIndex = "donations_payment_reference_uniq"

// PostgresStore reads and writes the donations table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectDonation = `
	SELECT id, case_id, donor_id, amount, status, is_zakat,
	       COALESCE(payment_reference, ''), failure_reason, created_at, completed_at
	FROM donations`

func (s *PostgresStore) Create(ctx context.Context, d *models.Donation) error {
	var reference sql.NullString
	if d.PaymentReference != "" {
		reference = sql.NullString{String: d.PaymentReference, Valid: true}
	}
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO donations (id, case_id, donor_id, amount, status, is_zakat, payment_reference, failure_reason, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		uuid.UUID(d.ID), uuid.UUID(d.CaseID), uuid.UUID(d.DonorID), d.Amount.StringFixed(2),
		string(d.Status), d.IsZakat, reference, d.FailureReason, d.CreatedAt, d.CompletedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, referenceIndex) || postgres.IsUniqueViolation(err, "donations_pkey") {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByReference(ctx context.Context, reference string) (*models.Donation, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx,
		selectDonation+` WHERE payment_reference = $1 AND status = 'completed'`, reference)
	d, err := scanDonation(row)
	if err != nil {
		return nil, fmt.Errorf("find donation by reference: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Donation, error) {
	return s.list(ctx, selectDonation+` WHERE case_id = $1 ORDER BY created_at, id`, uuid.UUID(caseID))
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID id.UserID, caseID id.CaseID) ([]*models.Donation, error) {
	return s.list(ctx, selectDonation+` WHERE donor_id = $1 AND case_id = $2 ORDER BY created_at, id`,
		uuid.UUID(donorID), uuid.UUID(caseID))
}

func (s *PostgresStore) HasCompleted(ctx context.Context, donorID id.UserID, caseID id.CaseID) (bool, error) {
	var exists bool
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM donations
			WHERE donor_id = $1 AND case_id = $2 AND status = 'completed'
		)
	`, uuid.UUID(donorID), uuid.UUID(caseID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check donor contribution: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Donation, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (*models.Donation, error) {
	var (
		d          models.Donation
		donationID uuid.UUID
		caseID     uuid.UUID
		donorID    uuid.UUID
		amount     string
		status     string
		completed  sql.NullTime
	)
	err := row.Scan(&donationID, &caseID, &donorID, &amount, &status, &d.IsZakat,
		&d.PaymentReference, &d.FailureReason, &d.CreatedAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	d.ID = id.DonationID(donationID)
	d.CaseID = id.CaseID(caseID)
	d.DonorID = id.UserID(donorID)
	d.Status = models.DonationStatus(status)
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse donation amount: %w", err)
	}
	if completed.Valid {
		t := completed.Time
		d.CompletedAt = &t
	}
	return &d, nil
}
