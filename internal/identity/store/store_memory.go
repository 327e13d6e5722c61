package store

import (
	"context"
	"strings"
	"sync"

	"foodbridge/internal/identity/models"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
)

// InMemoryUserStore keeps accounts in process memory, indexed by id and by
// lowercased email.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[domain.UserID]*models.User
	byEmail map[string]*models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:    make(map[domain.UserID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	key := emailKey(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
	}

	stored := *user
	s.byID[stored.ID] = &stored
	s.byEmail[key] = &stored
	return nil
}

func (s *InMemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryUserStore) GetByID(_ context.Context, id domain.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
	}
	copied := *user
	return &copied, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
