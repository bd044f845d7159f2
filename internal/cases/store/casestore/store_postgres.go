package casestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"medhope/internal/cases/models"
	"medhope/internal/platform/postgres"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/sentinel"
	txcontext "medhope/pkg/platform/tx"
)

// PostgresStore persists cases in PostgreSQL. Conditional writes lock the
// row with SELECT ... FOR UPDATE; donation credits are a single guarded
// UPDATE so concurrent donors never lose an increment.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const caseColumns = `id, case_number, submitter_id, applicant, disease, document_refs,
	district, area, priority, status, volunteer_id, volunteer_approval_status,
	volunteer_rejection_reasons, funding_target, zakat_eligible, total_donations,
	assigned_at, volunteer_reviewed_at, decided_at, decided_by, created_at, updated_at`

const selectCase = `SELECT ` + caseColumns + ` FROM cases`

func (s *PostgresStore) Create(ctx context.Context, c *models.Case) error {
	applicant, disease, err := marshalDetails(c)
	if err != nil {
		return err
	}
	_, err = txcontext.Pick(ctx, s.db).ExecContext(ctx, `
		INSERT INTO cases (`+caseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`,
		uuid.UUID(c.ID), c.CaseNumber, uuid.UUID(c.SubmitterID), applicant, disease, pq.Array(nonNil(c.DocumentRefs)),
		c.District, c.Area, string(c.Priority), string(c.Status), nullUserID(c.VolunteerID), nullApproval(c.VolunteerApprovalStatus),
		pq.Array(reasonStrings(c.VolunteerRejectionReasons)), c.FundingTarget, c.ZakatEligible, c.TotalDonations,
		nullTime(c.AssignedAt), nullTime(c.VolunteerReviewedAt), nullTime(c.DecidedAt), nullUserID(c.DecidedBy),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrAlreadyUsed
		}
		if postgres.IsNumericOverflow(err) {
			return dErrors.New(dErrors.CodeValidation, "funding target must not exceed "+models.MaxAmount.StringFixed(2))
		}
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, selectCase+` WHERE id = $1`, uuid.UUID(caseID))
	c, err := scanCase(row)
	if err != nil {
		return nil, fmt.Errorf("find case by id: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) FindByNumber(ctx context.Context, caseNumber string) (*models.Case, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, selectCase+` WHERE case_number = $1`, caseNumber)
	c, err := scanCase(row)
	if err != nil {
		return nil, fmt.Errorf("find case by number: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Case, error) {
	query := selectCase + ` ORDER BY created_at DESC, case_number DESC`
	args := []any{}
	if status != "" {
		query = selectCase + ` WHERE status = $1 ORDER BY created_at DESC, case_number DESC`
		args = append(args, string(status))
	}
	return s.queryCases(ctx, query, args...)
}

func (s *PostgresStore) ListByVolunteer(ctx context.Context, volunteerID id.UserID) ([]*models.Case, error) {
	return s.queryCases(ctx, `
		SELECT `+prefixed("c.", caseColumns)+`
		FROM cases c
		JOIN case_assignments a ON a.case_id = c.id
		WHERE a.volunteer_id = $1
		ORDER BY c.created_at DESC, c.case_number DESC
	`, uuid.UUID(volunteerID))
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status models.Status) (int, error) {
	var n int
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM cases WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cases by status: %w", err)
	}
	return n, nil
}

// Execute locks the case row, validates, mutates and writes it back in one
// transaction. It joins a transaction already carried by ctx.
func (s *PostgresStore) Execute(ctx context.Context, caseID id.CaseID, validate func(*models.Case) error, mutate func(*models.Case) bool) (*models.Case, error) {
	var result *models.Case
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, selectCase+` WHERE id = $1 FOR UPDATE`, uuid.UUID(caseID))
		current, err := scanCase(row)
		if err != nil {
			return err
		}
		working := current.Clone()
		if err := validate(working); err != nil {
			return err
		}
		if !mutate(working) {
			result = working
			return nil
		}
		if err := updateCase(ctx, tx, working); err != nil {
			return err
		}
		if assignmentChanged(current, working) {
			if err := upsertAssignment(ctx, tx, working); err != nil {
				return err
			}
		}
		result = working
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreditDonation increments total_donations if the case is accepted and, for
// zakat, eligible. When the guard fails it reports why.
func (s *PostgresStore) CreditDonation(ctx context.Context, caseID id.CaseID, amount decimal.Decimal, isZakat bool) (*models.Case, error) {
	row := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, `
		UPDATE cases
		SET total_donations = total_donations + $2, updated_at = NOW()
		WHERE id = $1 AND status = 'accepted' AND (NOT $3 OR zakat_eligible)
		RETURNING `+caseColumns,
		uuid.UUID(caseID), amount, isZakat,
	)
	c, err := scanCase(row)
	if err == nil {
		return c, nil
	}
	if postgres.IsNumericOverflow(err) {
		return nil, models.ErrTotalExceedsMax
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("credit donation: %w", err)
	}

	existing, err := s.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := existing.CanReceiveDonation(isZakat); err != nil {
		return nil, err
	}
	return nil, sentinel.ErrConflict
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if tx, ok := txcontext.From(ctx); ok {
		return fn(tx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin case tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit case tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryCases(ctx context.Context, query string, args ...any) ([]*models.Case, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return out, nil
}

func updateCase(ctx context.Context, tx *sql.Tx, c *models.Case) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE cases SET
			priority = $2,
			status = $3,
			volunteer_id = $4,
			volunteer_approval_status = $5,
			volunteer_rejection_reasons = $6,
			assigned_at = $7,
			volunteer_reviewed_at = $8,
			decided_at = $9,
			decided_by = $10,
			updated_at = $11
		WHERE id = $1
	`,
		uuid.UUID(c.ID), string(c.Priority), string(c.Status), nullUserID(c.VolunteerID), nullApproval(c.VolunteerApprovalStatus),
		pq.Array(reasonStrings(c.VolunteerRejectionReasons)), nullTime(c.AssignedAt), nullTime(c.VolunteerReviewedAt),
		nullTime(c.DecidedAt), nullUserID(c.DecidedBy), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	return nil
}

func upsertAssignment(ctx context.Context, tx *sql.Tx, c *models.Case) error {
	at := c.UpdatedAt
	if c.AssignedAt != nil {
		at = *c.AssignedAt
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO case_assignments (case_id, volunteer_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (case_id, volunteer_id) DO UPDATE SET assigned_at = EXCLUDED.assigned_at
	`, uuid.UUID(c.ID), uuid.UUID(*c.VolunteerID), at)
	if err != nil {
		return fmt.Errorf("record assignment: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var (
		c            models.Case
		caseID       uuid.UUID
		submitterID  uuid.UUID
		applicant    []byte
		disease      []byte
		documentRefs []string
		prio         string
		status       string
		volunteerID  uuid.NullUUID
		approval     sql.NullString
		reasons      []string
		assignedAt   sql.NullTime
		reviewedAt   sql.NullTime
		decidedAt    sql.NullTime
		decidedBy    uuid.NullUUID
	)
	err := row.Scan(
		&caseID, &c.CaseNumber, &submitterID, &applicant, &disease, pq.Array(&documentRefs),
		&c.District, &c.Area, &prio, &status, &volunteerID, &approval,
		pq.Array(&reasons), &c.FundingTarget, &c.ZakatEligible, &c.TotalDonations,
		&assignedAt, &reviewedAt, &decidedAt, &decidedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(applicant, &c.Applicant); err != nil {
		return nil, fmt.Errorf("unmarshal applicant: %w", err)
	}
	if err := json.Unmarshal(disease, &c.Disease); err != nil {
		return nil, fmt.Errorf("unmarshal disease: %w", err)
	}

	c.ID = id.CaseID(caseID)
	c.SubmitterID = id.UserID(submitterID)
	c.DocumentRefs = documentRefs
	c.Priority = priority.Priority(prio)
	c.Status = models.Status(status)
	if volunteerID.Valid {
		v := id.UserID(volunteerID.UUID)
		c.VolunteerID = &v
	}
	if approval.Valid {
		a := models.VolunteerApprovalStatus(approval.String)
		c.VolunteerApprovalStatus = &a
	}
	if len(reasons) > 0 {
		c.VolunteerRejectionReasons = make([]models.RejectionReason, len(reasons))
		for i, r := range reasons {
			c.VolunteerRejectionReasons[i] = models.RejectionReason(r)
		}
	}
	c.AssignedAt = timePtr(assignedAt)
	c.VolunteerReviewedAt = timePtr(reviewedAt)
	c.DecidedAt = timePtr(decidedAt)
	if decidedBy.Valid {
		d := id.UserID(decidedBy.UUID)
		c.DecidedBy = &d
	}
	return &c, nil
}

func marshalDetails(c *models.Case) ([]byte, []byte, error) {
	applicant, err := json.Marshal(c.Applicant)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal applicant: %w", err)
	}
	disease, err := json.Marshal(c.Disease)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal disease: %w", err)
	}
	return applicant, disease, nil
}

func nullUserID(v *id.UserID) uuid.NullUUID {
	if v == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*v), Valid: true}
}

func nullApproval(v *models.VolunteerApprovalStatus) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func reasonStrings(reasons []models.RejectionReason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = string(r)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
