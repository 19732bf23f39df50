package order

import (
	"context"
	"sync"
)

// InMemoryRepository mirrors the postgres repository's contract for tests,
// including the session_id uniqueness that decides duplicate submissions.
type InMemoryRepository struct {
	mu        sync.Mutex
	orders    map[string]*Order
	summaries map[string]*DualSummary
	sessions  map[string]string

	createErr error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders:    make(map[string]*Order),
		summaries: make(map[string]*DualSummary),
		sessions:  make(map[string]string),
	}
}

// FailNextCreate makes every CreateOrder return err until reset.
func (r *InMemoryRepository) FailNextCreate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
}

func (r *InMemoryRepository) CreateOrder(_ context.Context, o *Order, s *DualSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.sessions[o.SessionID]; exists {
		return ErrDuplicateSubmission
	}

	cp := *o
	cp.Lines = append([]OrderLine(nil), o.Lines...)
	sCp := *s

	r.orders[o.ID] = &cp
	r.summaries[o.ID] = &sCp
	r.sessions[o.SessionID] = o.ID
	return nil
}

func (r *InMemoryRepository) GetOrder(_ context.Context, orderID string) (*Order, *DualSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, nil, ErrOrderNotFound
	}
	return o, r.summaries[orderID], nil
}

func (r *InMemoryRepository) SetAudioURL(_ context.Context, orderID string, audioURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.summaries[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	s.AudioURL = audioURL
	return nil
}
