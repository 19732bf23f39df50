package store

import "context"

// Repository is the store directory: lookup for supplied store ids and the
// explicit default-store escape hatch for sessions with no store context.
type Repository interface {
	ResolveOrCreateDefault(ctx context.Context) (string, error)
	Exists(ctx context.Context, storeID string) (bool, error)
	Get(ctx context.Context, storeID string) (*Store, error)
}
