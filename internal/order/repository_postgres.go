package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// CREATE ORDER (ATOMIC: order + lines + summary)
// --------------------------------------------------
func (r *PostgresRepository) CreateOrder(ctx context.Context, o *Order, s *DualSummary) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, session_id, store_id, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.SessionID, o.StoreID, o.TotalAmount, o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubmission
		}
		return err
	}

	for i, line := range o.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (
				order_id, line_no, temp_id,
				name_origin, name_traveler,
				unit_price, quantity, subtotal
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, o.ID, i, line.TempID,
			line.Name.Origin, line.Name.Traveler,
			line.UnitPrice, line.Quantity, line.Subtotal)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_summaries (
			order_id, origin_text, traveler_text,
			traveler_lang, voice_script, audio_url
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, s.OriginText, s.TravelerText, s.TravelerLang, s.VoiceScript, s.AudioURL)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// GET ORDER (lines in submission order)
// --------------------------------------------------
func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*Order, *DualSummary, error) {
	o := &Order{ID: orderID}

	err := r.db.QueryRow(ctx, `
		SELECT session_id, store_id, total_amount, created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&o.SessionID, &o.StoreID, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT temp_id, name_origin, name_traveler, unit_price, quantity, subtotal
		FROM order_lines
		WHERE order_id = $1
		ORDER BY line_no
	`, orderID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(
			&line.TempID,
			&line.Name.Origin,
			&line.Name.Traveler,
			&line.UnitPrice,
			&line.Quantity,
			&line.Subtotal,
		); err != nil {
			return nil, nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	s := &DualSummary{OrderID: orderID}
	err = r.db.QueryRow(ctx, `
		SELECT origin_text, traveler_text, traveler_lang, voice_script, audio_url
		FROM order_summaries
		WHERE order_id = $1
	`, orderID).Scan(&s.OriginText, &s.TravelerText, &s.TravelerLang, &s.VoiceScript, &s.AudioURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, nil, nil
		}
		return nil, nil, err
	}

	return o, s, nil
}

// --------------------------------------------------
// SET AUDIO URL (best-effort post-persist update)
// --------------------------------------------------
func (r *PostgresRepository) SetAudioURL(ctx context.Context, orderID string, audioURL string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE order_summaries
		SET audio_url = $1
		WHERE order_id = $2
	`, audioURL, orderID)
	return err
}
