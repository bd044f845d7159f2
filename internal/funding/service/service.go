// Package service implements the funding ledger: donations recorded against
// accepted cases, with atomic totals and zakat earmarking.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	casemodels "medhope/internal/cases/models"
	"medhope/internal/funding/metrics"
	"medhope/internal/funding/models"
	"medhope/internal/funding/payment"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/audit"
)

// CaseLedger is the case side of the ledger. CreditDonation must add amount
// to the case total atomically, refusing cases that cannot take it.
type CaseLedger interface {
	FindByID(ctx context.Context, caseID id.CaseID) (*casemodels.Case, error)
	CreditDonation(ctx context.Context, caseID id.CaseID, amount decimal.Decimal, isZakat bool) (*casemodels.Case, error)
}

type DonationStore interface {
	Create(ctx context.Context, d *models.Donation) error
	FindByReference(ctx context.Context, reference string) (*models.Donation, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Donation, error)
	ListByDonor(ctx context.Context, donorID id.UserID, caseID id.CaseID) ([]*models.Donation, error)
	HasCompleted(ctx context.Context, donorID id.UserID, caseID id.CaseID) (bool, error)
}

// PaymentProcessor captures money from donors.
type PaymentProcessor interface {
	Capture(ctx context.Context, charge payment.Charge) (*payment.Capture, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// StoreTx runs fn so that the case credit and the donation insert commit or
// roll back together.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service records donations and reports funding progress.
type Service struct {
	cases          CaseLedger
	donations      DonationStore
	payments       PaymentProcessor
	tx             StoreTx
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(cases CaseLedger, donations DonationStore, payments PaymentProcessor, opts ...Option) (*Service, error) {
	if cases == nil {
		return nil, errors.New("case ledger is required")
	}
	if donations == nil {
		return nil, errors.New("donation store is required")
	}
	if payments == nil {
		return nil, errors.New("payment processor is required")
	}
	s := &Service{
		cases:     cases,
		donations: donations,
		payments:  payments,
		logger:    slog.Default(),
		tracer:    otel.Tracer("medhope/funding"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = &inMemoryStoreTx{}
	}
	return s, nil
}

type inMemoryStoreTx struct {
	mu sync.Mutex
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
