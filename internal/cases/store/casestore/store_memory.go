package casestore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"medhope/internal/cases/models"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
)

// InMemoryStore keeps cases in process. A single mutex serializes
// conditional writes the way row locks do in PostgreSQL.
type InMemoryStore struct {
	mu          sync.RWMutex
	cases       map[id.CaseID]*models.Case
	byNumber    map[string]id.CaseID
	assignments map[id.UserID]map[id.CaseID]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		cases:       make(map[id.CaseID]*models.Case),
		byNumber:    make(map[string]id.CaseID),
		assignments: make(map[id.UserID]map[id.CaseID]time.Time),
	}
}

func (s *InMemoryStore) Create(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.byNumber[c.CaseNumber]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.cases[c.ID] = c.Clone()
	s.byNumber[c.CaseNumber] = c.ID
	if c.VolunteerID != nil {
		s.recordAssignment(c)
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, caseID id.CaseID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, caseNumber string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	caseID, ok := s.byNumber[caseNumber]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.cases[caseID].Clone(), nil
}

// ListByStatus returns cases with status, or all cases when status is empty,
// newest first.
func (s *InMemoryStore) ListByStatus(_ context.Context, status models.Status) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Case, 0)
	for _, c := range s.cases {
		if status == "" || c.Status == status {
			out = append(out, c.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByVolunteer returns every case ever assigned to volunteerID.
func (s *InMemoryStore) ListByVolunteer(_ context.Context, volunteerID id.UserID) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assigned := s.assignments[volunteerID]
	out := make([]*models.Case, 0, len(assigned))
	for caseID := range assigned {
		out = append(out, s.cases[caseID].Clone())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status models.Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.cases {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

// Execute validates and mutates one case atomically. mutate reports whether
// it changed anything; unchanged cases are not rewritten.
func (s *InMemoryStore) Execute(_ context.Context, caseID id.CaseID, validate func(*models.Case) error, mutate func(*models.Case) bool) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := current.Clone()
	if err := validate(working); err != nil {
		return nil, err
	}
	if !mutate(working) {
		return working, nil
	}
	if assignmentChanged(current, working) {
		s.recordAssignment(working)
	}
	s.cases[caseID] = working.Clone()
	return working, nil
}

// CreditDonation adds amount to the case total if the case still accepts the
// donation.
func (s *InMemoryStore) CreditDonation(_ context.Context, caseID id.CaseID, amount decimal.Decimal, isZakat bool) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := c.CanCredit(amount, isZakat); err != nil {
		return nil, err
	}
	c.TotalDonations = c.TotalDonations.Add(amount)
	c.UpdatedAt = time.Now().UTC()
	return c.Clone(), nil
}

func (s *InMemoryStore) recordAssignment(c *models.Case) {
	volunteerID := *c.VolunteerID
	if s.assignments[volunteerID] == nil {
		s.assignments[volunteerID] = make(map[id.CaseID]time.Time)
	}
	at := c.UpdatedAt
	if c.AssignedAt != nil {
		at = *c.AssignedAt
	}
	s.assignments[volunteerID][c.ID] = at
}

func assignmentChanged(before, after *models.Case) bool {
	if after.VolunteerID == nil {
		return false
	}
	if before.VolunteerID == nil || *before.VolunteerID != *after.VolunteerID {
		return true
	}
	if before.AssignedAt == nil || after.AssignedAt == nil {
		return before.AssignedAt != after.AssignedAt
	}
	return !before.AssignedAt.Equal(*after.AssignedAt)
}

func sortNewestFirst(cases []*models.Case) {
	slices.SortFunc(cases, func(a, b *models.Case) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.CaseNumber, a.CaseNumber)
	})
}
