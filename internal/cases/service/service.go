// Package service implements the case lifecycle: submission, volunteer
// assignment, volunteer verdicts and admin decisions.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	casemetrics "medhope/internal/cases/metrics"
	"medhope/internal/cases/models"
	identity "medhope/internal/identity/models"
	"medhope/internal/priority"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/audit"
)

type CaseStore interface {
	Create(ctx context.Context, c *models.Case) error
	FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	FindByNumber(ctx context.Context, caseNumber string) (*models.Case, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Case, error)
	ListByVolunteer(ctx context.Context, volunteerID id.UserID) ([]*models.Case, error)
	CountByStatus(ctx context.Context, status models.Status) (int, error)
	Execute(ctx context.Context, caseID id.CaseID, validate func(*models.Case) error, mutate func(*models.Case) bool) (*models.Case, error)
}

// SequenceAllocator hands out per-year case number sequences.
type SequenceAllocator interface {
	Next(ctx context.Context, year int) (int64, error)
}

type Classifier interface {
	Classify(district, area string) priority.Priority
}

// IdentityLookup is the identity provider as seen by the lifecycle.
type IdentityLookup interface {
	Lookup(ctx context.Context, userID id.UserID) (*identity.Identity, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the case lifecycle.
type Service struct {
	cases          CaseStore
	sequence       SequenceAllocator
	classifier     Classifier
	identities     IdentityLookup
	tx             StoreTx
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *casemetrics.Metrics
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

func WithMetrics(m *casemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTx sets the transaction boundary used for case creation.
func WithTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(cases CaseStore, sequence SequenceAllocator, classifier Classifier, identities IdentityLookup, opts ...Option) (*Service, error) {
	if cases == nil {
		return nil, errors.New("case store is required")
	}
	if sequence == nil {
		return nil, errors.New("sequence allocator is required")
	}
	if classifier == nil {
		return nil, errors.New("priority classifier is required")
	}
	if identities == nil {
		return nil, errors.New("identity lookup is required")
	}
	s := &Service{
		cases:      cases,
		sequence:   sequence,
		classifier: classifier,
		identities: identities,
		logger:     slog.Default(),
		tracer:     otel.Tracer("medhope/cases"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = newInMemoryStoreTx()
	}
	return s, nil
}
