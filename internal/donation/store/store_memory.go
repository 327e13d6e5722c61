package store

import (
	"context"
	"sync"

	"foodbridge/internal/donation/models"
)

// InMemoryStore keeps the snapshot in process memory. Used by unit tests and
// by standalone mode, where persistence ends with the process.
type InMemoryStore struct {
	mu        sync.RWMutex
	donations []models.Donation
	// failNext makes the next Save fail, for exercising rollback paths.
	failNext error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(_ context.Context) ([]models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Donation, len(s.donations))
	for i := range s.donations {
		out[i] = s.donations[i].Clone()
	}
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, donations []models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	saved := make([]models.Donation, len(donations))
	for i := range donations {
		saved[i] = donations[i].Clone()
	}
	s.donations = saved
	return nil
}

// FailNextSave arms a one-shot Save failure.
func (s *InMemoryStore) FailNextSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}
