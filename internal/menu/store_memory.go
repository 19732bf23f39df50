package menu

import (
	"context"
	"sync"
)

// InMemoryStore is a process-local Store for tests and single-node runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	menus map[string]*EphemeralMenu
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{menus: make(map[string]*EphemeralMenu)}
}

func (s *InMemoryStore) Save(_ context.Context, m *EphemeralMenu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[m.SessionID] = m
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string) (*EphemeralMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menus[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m, nil
}

func (s *InMemoryStore) Expire(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.menus, sessionID)
	return nil
}
