package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks PaymentProcessor,AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	casemodels "medhope/internal/cases/models"
	"medhope/internal/cases/store/casestore"
	"medhope/internal/funding/models"
	"medhope/internal/funding/payment"
	"medhope/internal/funding/service/mocks"
	"medhope/internal/funding/store/donation"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
	"medhope/pkg/platform/audit"
	"medhope/pkg/requestcontext"
	"medhope/pkg/testutil"
)

type LedgerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	payments  *mocks.MockPaymentProcessor
	publisher *mocks.MockAuditPublisher
	cases     *casestore.InMemoryStore
	donations *donation.InMemoryStore
	service   *Service
	ctx       context.Context
	seq       int64

	mu     sync.Mutex
	events []audit.Event
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.payments = mocks.NewMockPaymentProcessor(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.events = append(s.events, e)
			return nil
		}).AnyTimes()
	s.events = nil
	s.cases = casestore.NewInMemoryStore()
	s.donations = donation.NewInMemoryStore()

	var err error
	s.service, err = New(s.cases, s.donations, s.payments,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.publisher),
	)
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC))
}

func (s *LedgerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LedgerSuite) newCase(status casemodels.Status, target int64, zakat bool) *casemodels.Case {
	s.seq++
	now := time.Now().UTC()
	number, err := casemodels.FormatCaseNumber(2025, s.seq)
	s.Require().NoError(err)
	c := &casemodels.Case{
		ID:             id.NewCaseID(),
		CaseNumber:     number,
		SubmitterID:    id.NewUserID(),
		Applicant:      casemodels.Applicant{FullName: "Hamza Ali"},
		Disease:        casemodels.Disease{Name: "Cardiac surgery"},
		District:       "East",
		Area:           "Gulshan-e-Iqbal",
		Priority:       priority.Medium,
		Status:         status,
		FundingTarget:  decimal.NewFromInt(target),
		TotalDonations: decimal.Zero,
		ZakatEligible:  zakat,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Require().NoError(s.cases.Create(context.Background(), c))
	return c
}

func (s *LedgerSuite) total(caseID id.CaseID) decimal.Decimal {
	status, err := s.service.FundingStatus(s.ctx, caseID)
	s.Require().NoError(err)
	return status.TotalDonations
}

func donate(caseID id.CaseID, amount int64, zakat bool) models.DonationRequest {
	return models.DonationRequest{CaseID: caseID, Amount: decimal.NewFromInt(amount), IsZakat: zakat}
}

func (s *LedgerSuite) TestRecordDonation() {
	s.Run("credits an accepted case", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		donor := id.NewUserID()
		d, err := s.service.RecordDonation(s.ctx, donor, donate(c.ID, 2500, false))
		s.Require().NoError(err)
		s.Equal(models.DonationCompleted, d.Status)
		s.Equal(donor, d.DonorID)
		s.True(s.total(c.ID).Equal(decimal.NewFromInt(2500)))

		s.mu.Lock()
		last := s.events[len(s.events)-1]
		s.mu.Unlock()
		s.Equal(string(audit.EventDonationRecorded), last.Action)
		s.Equal("2500.00", last.Amount)
		s.Equal(c.CaseNumber, last.Subject)
	})

	s.Run("refuses pending and rejected cases", func() {
		for _, status := range []casemodels.Status{casemodels.StatusPending, casemodels.StatusRejected} {
			c := s.newCase(status, 10000, true)
			_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, 100, false))
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeConflict), "status %s: %v", status, err)
			s.True(s.total(c.ID).IsZero())
		}
	})

	s.Run("refuses non-positive amounts", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, 0, false))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, -10, false))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown case", func() {
		_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), donate(id.NewCaseID(), 10, false))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("requires a donor", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		_, err := s.service.RecordDonation(s.ctx, id.UserID{}, donate(c.ID, 10, false))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("overfunding stops at the maximum amount", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), models.DonationRequest{CaseID: c.ID, Amount: casemodels.MaxAmount})
		s.Require().NoError(err)

		_, err = s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, 1, false))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		s.True(s.total(c.ID).Equal(casemodels.MaxAmount))

		_, err = s.service.RecordDonation(s.ctx, id.NewUserID(), models.DonationRequest{
			CaseID: c.ID,
			Amount: casemodels.MaxAmount.Add(decimal.NewFromInt(1)),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *LedgerSuite) TestZakatRefusalLeavesTotalUntouched() {
	c := s.newCase(casemodels.StatusAccepted, 10000, false)
	_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, 500, false))
	s.Require().NoError(err)

	_, err = s.service.RecordDonation(s.ctx, id.NewUserID(), donate(c.ID, 700, true))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.True(s.total(c.ID).Equal(decimal.NewFromInt(500)))

	list, err := s.service.ListDonations(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *LedgerSuite) TestPaymentReferenceIsIdempotent() {
	c := s.newCase(casemodels.StatusAccepted, 10000, false)
	req := donate(c.ID, 1000, false)
	req.PaymentReference = "pay_123"
	donor := id.NewUserID()

	first, err := s.service.RecordDonation(s.ctx, donor, req)
	s.Require().NoError(err)
	second, err := s.service.RecordDonation(s.ctx, donor, req)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.True(s.total(c.ID).Equal(decimal.NewFromInt(1000)))

	s.Run("reference reused for a different donation", func() {
		other := req
		other.Amount = decimal.NewFromInt(5)
		_, err := s.service.RecordDonation(s.ctx, donor, other)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("reference reused by another donor", func() {
		d, err := s.service.RecordDonation(s.ctx, id.NewUserID(), req)
		s.Nil(d)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.True(s.total(c.ID).Equal(decimal.NewFromInt(1000)))
	})
}

func (s *LedgerSuite) TestConcurrentDonationsSumExactly() {
	c := s.newCase(casemodels.StatusAccepted, 1000, true)
	const donors = 50

	var g errgroup.Group
	for i := 0; i < donors; i++ {
		zakat := i%2 == 0
		g.Go(func() error {
			_, err := s.service.RecordDonation(s.ctx, id.NewUserID(), models.DonationRequest{
				CaseID:  c.ID,
				Amount:  decimal.RequireFromString("100.25"),
				IsZakat: zakat,
			})
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.True(s.total(c.ID).Equal(decimal.RequireFromString("5012.50")), "got %s", s.total(c.ID))
	list, err := s.service.ListDonations(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(list, donors)
}

func (s *LedgerSuite) TestContribute() {
	s.Run("captured payment is recorded", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, true)
		donor := id.NewUserID()
		s.payments.EXPECT().Capture(gomock.Any(), payment.Charge{
			CaseID: c.ID, DonorID: donor, Amount: decimal.NewFromInt(300), IsZakat: true,
		}).Return(&payment.Capture{Success: true, Reference: "sbx_1"}, nil)

		d, err := s.service.Contribute(s.ctx, donor, donate(c.ID, 300, true))
		s.Require().NoError(err)
		s.Equal("sbx_1", d.PaymentReference)
		s.True(s.total(c.ID).Equal(decimal.NewFromInt(300)))

		has, err := s.service.HasContributed(s.ctx, donor, c.ID)
		s.Require().NoError(err)
		s.True(has)
	})

	s.Run("declined payment records a failed donation", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		donor := id.NewUserID()
		s.payments.EXPECT().Capture(gomock.Any(), gomock.Any()).
			Return(&payment.Capture{DeclineReason: "insufficient funds"}, nil)

		d, err := s.service.Contribute(s.ctx, donor, donate(c.ID, 300, false))
		s.Require().NoError(err)
		s.Equal(models.DonationFailed, d.Status)
		s.Equal("insufficient funds", d.FailureReason)
		s.True(s.total(c.ID).IsZero())

		has, err := s.service.HasContributed(s.ctx, donor, c.ID)
		s.Require().NoError(err)
		s.False(has)

		mine, err := s.service.ListDonorDonations(s.ctx, donor, c.ID)
		s.Require().NoError(err)
		s.Len(mine, 1)
	})

	s.Run("ineligible case is refused before charging", func() {
		c := s.newCase(casemodels.StatusPending, 10000, false)
		_, err := s.service.Contribute(s.ctx, id.NewUserID(), donate(c.ID, 300, false))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		c = s.newCase(casemodels.StatusAccepted, 10000, false)
		_, err = s.service.Contribute(s.ctx, id.NewUserID(), donate(c.ID, 300, true))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("processor outage is internal", func() {
		c := s.newCase(casemodels.StatusAccepted, 10000, false)
		s.payments.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(nil, errors.New("gateway timeout"))
		_, err := s.service.Contribute(s.ctx, id.NewUserID(), donate(c.ID, 300, false))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.True(s.total(c.ID).IsZero())
	})
}

func (s *LedgerSuite) TestQueriesOnUnknownCase() {
	_, err := s.service.FundingStatus(s.ctx, id.NewCaseID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.ListDonations(s.ctx, id.NewCaseID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// TestOverfunding checks that a case keeps receiving donations past its
// target and reports the full total.
func TestOverfunding(t *testing.T) {
	ctx := context.Background()
	cases := casestore.NewInMemoryStore()
	svc, err := New(cases, donation.NewInMemoryStore(), payment.SandboxProcessor{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	testutil.Given(t, "an accepted case with a 50000 target", func(t *testing.T) {
		c := &casemodels.Case{
			ID:             id.NewCaseID(),
			CaseNumber:     "CASE-2025-00042",
			Status:         casemodels.StatusAccepted,
			FundingTarget:  decimal.NewFromInt(50000),
			TotalDonations: decimal.Zero,
			Priority:       priority.High,
		}
		require.NoError(t, cases.Create(ctx, c))

		testutil.When(t, "two donors give 30000 each", func(t *testing.T) {
			for i := 0; i < 2; i++ {
				_, err := svc.RecordDonation(ctx, id.NewUserID(), models.DonationRequest{
					CaseID:           c.ID,
					Amount:           decimal.NewFromInt(30000),
					PaymentReference: fmt.Sprintf("ref-%d", i),
				})
				require.NoError(t, err)
			}

			testutil.Then(t, "the total is 60000 and nothing remains", func(t *testing.T) {
				status, err := svc.FundingStatus(ctx, c.ID)
				require.NoError(t, err)
				assert.True(t, status.TotalDonations.Equal(decimal.NewFromInt(60000)), "total %s", status.TotalDonations)
				assert.True(t, status.Remaining.IsZero())
				assert.True(t, status.Overfunded)
			})
		})
	})
}

func TestNewRequiresCollaborators(t *testing.T) {
	cases := casestore.NewInMemoryStore()
	donations := donation.NewInMemoryStore()
	processor := payment.SandboxProcessor{}

	_, err := New(nil, donations, processor)
	assert.Error(t, err)
	_, err = New(cases, nil, processor)
	assert.Error(t, err)
	_, err = New(cases, donations, nil)
	assert.Error(t, err)
}
