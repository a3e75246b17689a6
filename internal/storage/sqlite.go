// Package storage provides SQLite-based persistence for finished sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is a single finished (or abandoned) session.
type Match struct {
	ID          int64
	Variant     string
	Score       int
	Kills       int
	Bots        int
	DamageDealt int
	DamageTaken int
	Elapsed     float64 // seconds
	Outcome     string  // "dead", "cleared" or "quit"
	Seed        int64
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			bots INTEGER NOT NULL DEFAULT 0,
			damage_dealt INTEGER NOT NULL DEFAULT 0,
			damage_taken INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_variant ON matches(variant);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(variant, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a session result and returns the inserted row ID.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.Variant == "" {
		return 0, errors.New("storage: match variant is required")
	}
	result, err := s.db.Exec(
		`INSERT INTO matches
		 (variant, score, kills, bots, damage_dealt, damage_taken, elapsed, outcome, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Variant, m.Score, m.Kills, m.Bots, m.DamageDealt, m.DamageTaken, m.Elapsed, m.Outcome, m.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, variant, score, kills, bots, damage_dealt, damage_taken, elapsed, outcome, seed, created_at`

// TopMatches retrieves the best N matches for the given variant.
// An empty variant covers every variant. Results are ordered by score descending.
func (s *Store) TopMatches(variant string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{}
	if variant != "" {
		query += ` WHERE variant = ?`
		args = append(args, variant)
	}
	query += ` ORDER BY score DESC, elapsed ASC LIMIT ?`
	args = append(args, limit)

	return s.queryMatches(query, args...)
}

// RecentMatches retrieves the most recently recorded matches across variants.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+` FROM matches ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var createdAt any
		if err := rows.Scan(
			&m.ID, &m.Variant, &m.Score, &m.Kills, &m.Bots,
			&m.DamageDealt, &m.DamageTaken, &m.Elapsed, &m.Outcome, &m.Seed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// BestScore returns the highest score for the given variant.
// Returns 0 if no matches exist.
func (s *Store) BestScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM matches WHERE variant = ?",
		variant,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearMatches deletes all matches for the given variant.
func (s *Store) ClearMatches(variant string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	Variant    string
	Matches    int
	Clears     int
	Deaths     int
	BestScore  int
	AvgScore   float64
	TotalKills int64
	LongestRun float64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for every variant that has been played.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'dead' THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), SUM(kills), MAX(elapsed), MAX(created_at)
		 FROM matches
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var v VariantStats
		var lastPlayed any
		if err := rows.Scan(
			&v.Variant, &v.Matches, &v.Clears, &v.Deaths,
			&v.BestScore, &v.AvgScore, &v.TotalKills, &v.LongestRun, &lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.LastPlayed = parseTime(lastPlayed)
		stats[v.Variant] = &v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
