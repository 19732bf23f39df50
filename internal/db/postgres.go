package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// STORES
	// -------------------------------
	storesSQL := `
		CREATE TABLE IF NOT EXISTS stores (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, storesSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	// session_id is UNIQUE: the constraint decides which of two racing
	// submissions for the same OCR session wins.
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL UNIQUE,
			store_id VARCHAR(64) NOT NULL REFERENCES stores(id),
			total_amount INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDER LINES (submission order via line_no)
	// -------------------------------
	orderLinesSQL := `
		CREATE TABLE IF NOT EXISTS order_lines (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			line_no INTEGER NOT NULL,
			temp_id VARCHAR(128) NOT NULL,
			name_origin TEXT NOT NULL,
			name_traveler TEXT NOT NULL,
			unit_price INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			subtotal INTEGER NOT NULL,
			PRIMARY KEY (order_id, line_no)
		)
	`
	if _, err := db.Exec(ctx, orderLinesSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDER SUMMARIES
	// -------------------------------
	summariesSQL := `
		CREATE TABLE IF NOT EXISTS order_summaries (
			order_id UUID PRIMARY KEY REFERENCES orders(id) ON DELETE CASCADE,
			origin_text TEXT NOT NULL,
			traveler_text TEXT NOT NULL,
			traveler_lang VARCHAR(16) NOT NULL,
			voice_script TEXT NOT NULL,
			audio_url TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := db.Exec(ctx, summariesSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
