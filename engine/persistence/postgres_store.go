package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// highScoreKey is the single row the arena reads and writes
const highScoreKey = "arena"

// PostgresStore keeps the high score in a PostgreSQL table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the table exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS high_scores (
		key TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// LoadHighScore returns the stored score
func (ps *PostgresStore) LoadHighScore() (int, error) {
	var score int
	err := ps.db.QueryRow(`SELECT score FROM high_scores WHERE key = $1`, highScoreKey).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoScore
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load high score: %w", err)
	}
	return score, nil
}

// SaveHighScore upserts score. A lower score never replaces a higher one.
func (ps *PostgresStore) SaveHighScore(score int) error {
	query := `
	INSERT INTO high_scores (key, score)
	VALUES ($1, $2)
	ON CONFLICT (key)
	DO UPDATE SET
		score = GREATEST(high_scores.score, EXCLUDED.score),
		updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, highScoreKey, score); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
