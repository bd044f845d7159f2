//go:build integration

package casestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"medhope/internal/cases/models"
	"medhope/internal/cases/store/casestore"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/sentinel"
	"medhope/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *casestore.PostgresStore
	seq      int64
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = casestore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "donations", "case_assignments", "cases"))
}

func (s *PostgresStoreSuite) newCase() *models.Case {
	s.seq++
	now := time.Now().UTC().Truncate(time.Microsecond)
	number, err := models.FormatCaseNumber(2026, s.seq)
	s.Require().NoError(err)
	return &models.Case{
		ID:            id.NewCaseID(),
		CaseNumber:    number,
		SubmitterID:   id.NewUserID(),
		Applicant:     models.Applicant{FullName: "Bilal Ahmed", Phone: "0300-0000000"},
		Disease:       models.Disease{Name: "Thalassemia", Hospital: "Civil Hospital"},
		DocumentRefs:  []string{"doc-1", "doc-2"},
		District:      "South",
		Area:          "Lyari",
		Priority:      priority.High,
		Status:        models.StatusPending,
		FundingTarget: decimal.RequireFromString("50000.00"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *PostgresStoreSuite) accept(c *models.Case) {
	_, err := s.store.Execute(context.Background(), c.ID,
		func(*models.Case) error { return nil },
		func(c *models.Case) bool { return c.ApplyAdminApproval(id.NewUserID(), time.Now()) },
	)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))

	found, err := s.store.FindByNumber(ctx, c.CaseNumber)
	s.Require().NoError(err)
	s.Equal(c.ID, found.ID)
	s.Equal(c.Applicant, found.Applicant)
	s.Equal(c.Disease, found.Disease)
	s.Equal(c.DocumentRefs, found.DocumentRefs)
	s.True(c.FundingTarget.Equal(found.FundingTarget))
	s.True(found.TotalDonations.IsZero())
	s.Nil(found.VolunteerID)
	s.Nil(found.VolunteerApprovalStatus)
	s.Equal(models.StateUnassigned, found.State())

	s.ErrorIs(s.store.Create(ctx, c), sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestVerdictPersistence() {
	ctx := context.Background()
	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))
	volunteer := id.NewUserID()

	_, err := s.store.Execute(ctx, c.ID,
		func(c *models.Case) error { return c.CanAssign() },
		func(c *models.Case) bool { c.ApplyAssignment(volunteer, time.Now()); return true },
	)
	s.Require().NoError(err)

	reasons := []models.RejectionReason{models.ReasonPersonalInfo, models.ReasonDiseaseInfo}
	_, err = s.store.Execute(ctx, c.ID,
		func(c *models.Case) error { return c.CanRecordVerdict(volunteer) },
		func(c *models.Case) bool { c.ApplyVolunteerRejection(reasons, time.Now()); return true },
	)
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.StateVolunteerRejected, found.State())
	s.Equal(reasons, found.VolunteerRejectionReasons)
	s.Equal(models.StatusPending, found.Status)

	assigned, err := s.store.ListByVolunteer(ctx, volunteer)
	s.Require().NoError(err)
	s.Len(assigned, 1)
}

// TestConcurrentAdminDecisions verifies row locking: of many concurrent
// approvals exactly one changes the case.
func (s *PostgresStoreSuite) TestConcurrentAdminDecisions() {
	ctx := context.Background()
	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))

	const goroutines = 20
	changed := make(chan bool, goroutines)
	var g errgroup.Group
	for range goroutines {
		g.Go(func() error {
			_, err := s.store.Execute(ctx, c.ID,
				func(*models.Case) error { return nil },
				func(c *models.Case) bool {
					ok := c.ApplyAdminApproval(id.NewUserID(), time.Now())
					changed <- ok
					return ok
				},
			)
			return err
		})
	}
	s.Require().NoError(g.Wait())
	close(changed)

	n := 0
	for ok := range changed {
		if ok {
			n++
		}
	}
	s.Equal(1, n)
}

// TestConcurrentCreditsSumExactly verifies the atomic increment under load.
func (s *PostgresStoreSuite) TestConcurrentCreditsSumExactly() {
	ctx := context.Background()
	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))
	s.accept(c)

	const n = 50
	var g errgroup.Group
	for i := range n {
		amount := decimal.NewFromInt(int64(i + 1)).Add(decimal.RequireFromString("0.25"))
		g.Go(func() error {
			_, err := s.store.CreditDonation(ctx, c.ID, amount, false)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	want := decimal.NewFromInt(n * (n + 1) / 2).Add(decimal.RequireFromString("0.25").Mul(decimal.NewFromInt(n)))
	s.True(want.Equal(found.TotalDonations), "want %s got %s", want, found.TotalDonations)
}

func (s *PostgresStoreSuite) TestCreditDonationGuards() {
	ctx := context.Background()
	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))

	_, err := s.store.CreditDonation(ctx, c.ID, decimal.NewFromInt(10), false)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "pending case: %v", err)

	s.accept(c)
	_, err = s.store.CreditDonation(ctx, c.ID, decimal.NewFromInt(10), true)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation), "zakat on ineligible case: %v", err)

	_, err = s.store.CreditDonation(ctx, id.NewCaseID(), decimal.NewFromInt(10), false)
	s.ErrorIs(err, sentinel.ErrNotFound)

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.True(found.TotalDonations.IsZero())
}

// TestMoneyColumnOverflowIsValidation pins NUMERIC(14,2) overflow to a
// validation error rather than an internal one.
func (s *PostgresStoreSuite) TestMoneyColumnOverflowIsValidation() {
	ctx := context.Background()

	huge := s.newCase()
	huge.FundingTarget = decimal.RequireFromString("10000000000000")
	err := s.store.Create(ctx, huge)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation), "oversized target: %v", err)

	c := s.newCase()
	s.Require().NoError(s.store.Create(ctx, c))
	s.accept(c)
	_, err = s.store.CreditDonation(ctx, c.ID, models.MaxAmount, false)
	s.Require().NoError(err)

	_, err = s.store.CreditDonation(ctx, c.ID, decimal.RequireFromString("0.01"), false)
	s.ErrorIs(err, models.ErrTotalExceedsMax)
	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.True(models.MaxAmount.Equal(found.TotalDonations))
}
