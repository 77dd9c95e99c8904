// Package storage provides SQLite-based persistence for finished runs.
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

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed" // Final portal reached
	OutcomeHalted    Outcome = "halted"    // Next level could not be loaded
	OutcomeQuit      Outcome = "quit"      // Player left before the end
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single finished run.
type Run struct {
	ID        int64
	GameID    string
	Score     int
	Level     int
	Outcome   Outcome
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.GameID == "" {
		return 0, errors.New("storage: cannot save run: empty game id")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, score, level, outcome) VALUES (?, ?, ?, ?)",
		run.GameID, run.Score, run.Level, string(run.Outcome),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given game, ordered by score
// and then by level reached.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, level, outcome, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, level DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Level, &outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given game.
// ok is false if no runs exist; scores may be negative.
func (s *Store) HighScore(gameID string) (score int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics for a game.
type Stats struct {
	GameID     string
	Runs       int
	Completed  int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	LastPlayed time.Time
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	stats := &Stats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		string(OutcomeCompleted), gameID,
	).Scan(&stats.Runs, &stats.Completed, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
