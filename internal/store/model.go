package store

import "time"

// DefaultStoreID is the sentinel store for sessions started without any
// store context. Provisioned idempotently on first use.
const DefaultStoreID = "store_default"

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
