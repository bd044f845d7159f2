package memory

import (
	"context"
	"sync"

	id "medhope/pkg/domain"
	audit "medhope/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	byCase map[id.CaseID][]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byCase: make(map[id.CaseID][]int)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.byCase = make(map[id.CaseID][]int)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	s.byCase[event.CaseID] = append(s.byCase[event.CaseID], len(s.events)-1)
	return nil
}

// ListByCase returns events for a case in append order.
func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.byCase[caseID]
	out := make([]audit.Event, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.events[i])
	}
	return out, nil
}

// ListAll returns every recorded event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}
