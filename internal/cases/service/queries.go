package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"medhope/internal/cases/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

func (s *Service) GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to load case")
	}
	return c, nil
}

func (s *Service) GetCaseByNumber(ctx context.Context, caseNumber string) (*models.Case, error) {
	caseNumber = strings.ToUpper(strings.TrimSpace(caseNumber))
	if caseNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "case number is required")
	}
	c, err := s.cases.FindByNumber(ctx, caseNumber)
	if err != nil {
		return nil, wrapCaseErr(err, "failed to load case")
	}
	return c, nil
}

// ListCasesByStatus lists cases newest first. An empty status lists all.
func (s *Service) ListCasesByStatus(ctx context.Context, status models.Status) ([]*models.Case, error) {
	if status != "" && !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be one of pending, accepted, rejected")
	}
	cases, err := s.cases.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list cases")
	}
	return cases, nil
}

// StatusCounts counts cases per status concurrently.
func (s *Service) StatusCounts(ctx context.Context) (*models.StatusCounts, error) {
	counts := make([]int, len(models.Statuses))
	g, gctx := errgroup.WithContext(ctx)
	for i, status := range models.Statuses {
		g.Go(func() error {
			n, err := s.cases.CountByStatus(gctx, status)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count cases")
	}
	return &models.StatusCounts{
		Pending:  counts[0],
		Accepted: counts[1],
		Rejected: counts[2],
	}, nil
}
