package donation

import (
	"context"
	"sort"
	"sync"

	"medhope/internal/funding/models"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
)

// InMemoryStore keeps donations in a process-local map.
type InMemoryStore struct {
	mu          sync.RWMutex
	donations   map[id.DonationID]*models.Donation
	byReference map[string]id.DonationID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		donations:   make(map[id.DonationID]*models.Donation),
		byReference: make(map[string]id.DonationID),
	}
}

// Create stores d. A completed donation reusing a recorded payment
// reference returns sentinel.ErrAlreadyUsed.
func (s *InMemoryStore) Create(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[d.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	indexed := d.IsCompleted() && d.PaymentReference != ""
	if indexed {
		if _, ok := s.byReference[d.PaymentReference]; ok {
			return sentinel.ErrAlreadyUsed
		}
	}
	cp := *d
	s.donations[d.ID] = &cp
	if indexed {
		s.byReference[d.PaymentReference] = d.ID
	}
	return nil
}

// FindByReference returns the completed donation recorded under reference.
func (s *InMemoryStore) FindByReference(_ context.Context, reference string) (*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donationID, ok := s.byReference[reference]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.donations[donationID]
	return &cp, nil
}

// ListByCase returns every donation for the case, oldest first.
func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Donation, 0)
	for _, d := range s.donations {
		if d.CaseID == caseID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListByDonor returns the donor's donations to the case, oldest first.
func (s *InMemoryStore) ListByDonor(ctx context.Context, donorID id.UserID, caseID id.CaseID) ([]*models.Donation, error) {
	all, err := s.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, d := range all {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *InMemoryStore) HasCompleted(_ context.Context, donorID id.UserID, caseID id.CaseID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.donations {
		if d.DonorID == donorID && d.CaseID == caseID && d.IsCompleted() {
			return true, nil
		}
	}
	return false, nil
}
