package service

import (
	"context"

	"medhope/internal/funding/models"
	id "medhope/pkg/domain"
	dErrors "medhope/pkg/domain-errors"
)

// ListDonations returns every donation attempt for the case, oldest first.
func (s *Service) ListDonations(ctx context.Context, caseID id.CaseID) ([]*models.Donation, error) {
	if _, err := s.cases.FindByID(ctx, caseID); err != nil {
		return nil, wrapLedgerErr(err, "failed to load case")
	}
	donations, err := s.donations.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return donations, nil
}

func (s *Service) ListDonorDonations(ctx context.Context, donorID id.UserID, caseID id.CaseID) ([]*models.Donation, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return donations, nil
}

// HasContributed reports whether the donor has a completed donation to the
// case. It is informational; the ledger accepts repeat donations.
func (s *Service) HasContributed(ctx context.Context, donorID id.UserID, caseID id.CaseID) (bool, error) {
	ok, err := s.donations.HasCompleted(ctx, donorID, caseID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check contribution")
	}
	return ok, nil
}
