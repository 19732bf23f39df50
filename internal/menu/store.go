package menu

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("ocr session not found")

// Store keeps one ephemeral menu per OCR session for the session's
// lifetime. Menus are write-once: Save publishes, Get reads, Expire
// reclaims. Sessions never share menus, so implementations need no
// cross-session coordination.
type Store interface {
	Save(ctx context.Context, m *EphemeralMenu) error
	Get(ctx context.Context, sessionID string) (*EphemeralMenu, error)
	Expire(ctx context.Context, sessionID string) error
}
