//go:build integration

package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	casemodels "medhope/internal/cases/models"
	"medhope/internal/cases/store/casestore"
	"medhope/internal/funding/models"
	"medhope/internal/funding/payment"
	"medhope/internal/funding/service"
	"medhope/internal/funding/store/donation"
	"medhope/internal/platform/postgres"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/testutil/containers"
)

type LedgerPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	cases    *casestore.PostgresStore
	ledger   *service.Service
}

func TestLedgerPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LedgerPostgresSuite))
}

func (s *LedgerPostgresSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.cases = casestore.NewPostgres(s.postgres.DB)
	var err error
	s.ledger, err = service.New(s.cases, donation.NewPostgres(s.postgres.DB), payment.SandboxProcessor{},
		service.WithTx(postgres.NewTxRunner(s.postgres.DB, 10*time.Second)),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
}

func (s *LedgerPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "donations", "case_assignments", "cases"))
}

func (s *LedgerPostgresSuite) acceptedCase(zakat bool) *casemodels.Case {
	now := time.Now().UTC().Truncate(time.Microsecond)
	number, err := casemodels.FormatCaseNumber(now.Year(), int64(now.Nanosecond()%casemodels.MaxCaseSequence)+1)
	s.Require().NoError(err)
	c := &casemodels.Case{
		ID:            id.NewCaseID(),
		CaseNumber:    number,
		SubmitterID:   id.NewUserID(),
		Applicant:     casemodels.Applicant{FullName: "Zainab Raza"},
		Disease:       casemodels.Disease{Name: "Leukemia"},
		District:      "Korangi",
		Area:          "Landhi",
		Priority:      priority.High,
		Status:        casemodels.StatusAccepted,
		FundingTarget: decimal.NewFromInt(50000),
		ZakatEligible: zakat,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Require().NoError(s.cases.Create(context.Background(), c))
	return c
}

func (s *LedgerPostgresSuite) TestConcurrentDonationsSumExactly() {
	ctx := context.Background()
	c := s.acceptedCase(true)
	const donors = 40

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < donors; i++ {
		g.Go(func() error {
			_, err := s.ledger.RecordDonation(gctx, id.NewUserID(), models.DonationRequest{
				CaseID:  c.ID,
				Amount:  decimal.NewFromInt(1500),
				IsZakat: i%3 == 0,
			})
			return err
		})
	}
	s.Require().NoError(g.Wait())

	status, err := s.ledger.FundingStatus(ctx, c.ID)
	s.Require().NoError(err)
	s.True(status.TotalDonations.Equal(decimal.NewFromInt(60000)), "total %s", status.TotalDonations)
	s.True(status.Remaining.IsZero())
	s.True(status.Overfunded)
}

func (s *LedgerPostgresSuite) TestConcurrentReplaysCreditOnce() {
	ctx := context.Background()
	c := s.acceptedCase(false)
	req := models.DonationRequest{CaseID: c.ID, Amount: decimal.NewFromInt(750), PaymentReference: "pay_replayed"}
	donor := id.NewUserID()

	results := make([]*models.Donation, 10)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			d, err := s.ledger.RecordDonation(ctx, donor, req)
			results[i] = d
			return err
		})
	}
	s.Require().NoError(g.Wait())

	for _, d := range results {
		s.Equal(results[0].ID, d.ID)
	}
	status, err := s.ledger.FundingStatus(ctx, c.ID)
	s.Require().NoError(err)
	s.True(status.TotalDonations.Equal(decimal.NewFromInt(750)), "total %s", status.TotalDonations)
}

func (s *LedgerPostgresSuite) TestZakatRefusalRollsBack() {
	ctx := context.Background()
	c := s.acceptedCase(false)
	_, err := s.ledger.RecordDonation(ctx, id.NewUserID(), models.DonationRequest{
		CaseID: c.ID, Amount: decimal.NewFromInt(100), IsZakat: true,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	list, err := s.ledger.ListDonations(ctx, c.ID)
	s.Require().NoError(err)
	s.Empty(list)
	status, err := s.ledger.FundingStatus(ctx, c.ID)
	s.Require().NoError(err)
	s.True(status.TotalDonations.IsZero())
}
