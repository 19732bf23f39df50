package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrStoreNotFound = errors.New("store not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ResolveOrCreateDefault upserts the sentinel store under its well-known
// id, so concurrent callers all land on the same row.
func (r *PostgresRepository) ResolveOrCreateDefault(ctx context.Context) (string, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stores (id, name, is_default, created_at)
		VALUES ($1, 'Non-cooperative store', TRUE, now())
		ON CONFLICT (id) DO NOTHING
	`, DefaultStoreID)
	if err != nil {
		return "", err
	}
	return DefaultStoreID, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, storeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)
	`, storeID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) Get(ctx context.Context, storeID string) (*Store, error) {
	s := &Store{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_default, created_at
		FROM stores
		WHERE id = $1
	`, storeID).Scan(&s.ID, &s.Name, &s.IsDefault, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s, nil
}
