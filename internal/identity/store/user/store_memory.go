package user

import (
	"context"
	"strings"
	"sync"

	"medhope/internal/identity/models"
	id "medhope/pkg/domain"
	"medhope/pkg/platform/sentinel"
)

// InMemoryStore is a user directory for local runs and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.Identity
	byEmail map[string]id.UserID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:   make(map[id.UserID]*models.Identity),
		byEmail: make(map[string]id.UserID),
	}
}

// Save inserts or replaces a user. Emails are unique case-insensitively.
func (s *InMemoryStore) Save(_ context.Context, user *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if owner, ok := s.byEmail[email]; ok && owner != user.ID {
		return sentinel.ErrAlreadyUsed
	}
	if prev, ok := s.users[user.ID]; ok {
		delete(s.byEmail, strings.ToLower(prev.Email))
	}
	u := *user
	s.users[user.ID] = &u
	s.byEmail[email] = user.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *s.users[userID]
	return &found, nil
}

// SetActive flips the active flag, e.g. when an admin deactivates a volunteer.
func (s *InMemoryStore) SetActive(_ context.Context, userID id.UserID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.Active = active
	return nil
}
