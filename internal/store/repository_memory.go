package store

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{stores: make(map[string]*Store)}
}

func (r *InMemoryRepository) Add(s *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[s.ID] = s
}

func (r *InMemoryRepository) ResolveOrCreateDefault(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[DefaultStoreID]; !ok {
		r.stores[DefaultStoreID] = &Store{
			ID:        DefaultStoreID,
			Name:      "Non-cooperative store",
			IsDefault: true,
			CreatedAt: time.Now().UTC(),
		}
	}
	return DefaultStoreID, nil
}

func (r *InMemoryRepository) Exists(_ context.Context, storeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stores[storeID]
	return ok, nil
}

func (r *InMemoryRepository) Get(_ context.Context, storeID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[storeID]
	if !ok {
		return nil, ErrStoreNotFound
	}
	return s, nil
}
