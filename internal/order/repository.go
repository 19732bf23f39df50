package order

import "context"

// Repository is the persistence adapter for reconciled orders. CreateOrder
// writes the order, its lines, and its summary atomically; the unique
// constraint on session_id decides duplicate-submission races
// (ErrDuplicateSubmission for the loser).
type Repository interface {
	CreateOrder(ctx context.Context, o *Order, s *DualSummary) error
	GetOrder(ctx context.Context, orderID string) (*Order, *DualSummary, error)
	SetAudioURL(ctx context.Context, orderID string, audioURL string) error
}
