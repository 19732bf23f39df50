package ocr

import (
	"context"
)

// Engine extracts dish candidates from one menu photo and translates the
// names into travelerLang. Implementations may fail outright; callers treat
// any failure as "zero extracted items", never as a fatal pipeline error.
type Engine interface {
	Extract(ctx context.Context, image []byte, mimeType string, travelerLang string) ([]RawDishRecord, error)
}
