package session

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	expiry   map[string]time.Time
}

// NewMemoryStore is a Store for tests and single-process setups without Redis.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]*Session),
		expiry:   make(map[string]time.Time),
	}
}

func (s *memoryStore) Create(_ context.Context, sess *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sessions[sess.ID] = &copied
	s.expiry[sess.ID] = time.Now().Add(ttl)
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || time.Now().After(s.expiry[id]) {
		return nil, ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.expiry, id)
	return nil
}
