// Package storage keeps the session ledger: one row per run and one row per
// finished level, in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory ledger that lives as long as the Store.
const MemoryPath = ":memory:"

// Run outcomes besides the simulation's terminal phases.
const (
	OutcomeInProgress = "PLAYING"
	OutcomeAbandoned  = "ABANDONED"
)

// ErrUnknownRun is returned when a run ID is not in the ledger.
var ErrUnknownRun = errors.New("storage: unknown run")

// Store manages the SQLite database connection for the ledger.
type Store struct {
	db *sql.DB
}

// Run is one play-through from start to a terminal phase or quit.
type Run struct {
	ID         string
	GameID     string
	Seed       int64
	Difficulty string
	Score      int
	Level      int
	Outcome    string
	StartedAt  time.Time
	EndedAt    time.Time // Zero while the run is in progress
}

// LevelResult records the state at the end of one level of a run.
type LevelResult struct {
	ID        int64
	RunID     string
	Level     int
	Score     int
	Outcome   string // LEVELCLEAR, GAMEOVER or ALIENSWIN
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// MemoryPath gives a ledger that disappears on Close.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

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
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			outcome TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
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

// StartRun opens a new run and returns its ID.
func (s *Store) StartRun(gameID string, seed int64, difficulty string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, game_id, seed, difficulty, outcome) VALUES (?, ?, ?, ?, ?)",
		id, gameID, seed, difficulty, OutcomeInProgress,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// RecordLevel appends a level result to a run and updates the run's score and level.
func (s *Store) RecordLevel(runID string, level, score int, outcome string) (int64, error) {
	if err := s.updateRun(runID, score, level, ""); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		"INSERT INTO level_results (run_id, level, score, outcome) VALUES (?, ?, ?, ?)",
		runID, level, score, outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record level: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with its final score, level and outcome.
// Finishing an already finished run is a no-op.
func (s *Store) FinishRun(runID string, score, level int, outcome string) error {
	return s.updateRun(runID, score, level, outcome)
}

func (s *Store) updateRun(runID string, score, level int, outcome string) error {
	var (
		res sql.Result
		err error
	)
	if outcome == "" {
		res, err = s.db.Exec(
			"UPDATE runs SET score = ?, level = ? WHERE id = ?",
			score, level, runID,
		)
	} else {
		res, err = s.db.Exec(
			`UPDATE runs SET score = ?, level = ?, outcome = ?, ended_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND ended_at IS NULL`,
			score, level, outcome, runID,
		)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}
	if n == 0 {
		if _, err := s.RunByID(runID); err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `id, game_id, seed, difficulty, score, level, outcome, started_at, ended_at`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	var startedAt, endedAt any
	err := row.Scan(&r.ID, &r.GameID, &r.Seed, &r.Difficulty, &r.Score, &r.Level, &r.Outcome, &startedAt, &endedAt)
	if err != nil {
		return r, err
	}
	r.StartedAt = parseTime(startedAt)
	r.EndedAt = parseTime(endedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes; NULL gives the zero time.
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

// RunByID returns one run or ErrUnknownRun.
func (s *Store) RunByID(runID string) (Run, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// TopRuns retrieves the best N runs for the given game.
// Results are ordered by score descending, then by level reached.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, level DESC, started_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the most recent runs across all games.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// Levels returns the level results of a run in the order they were recorded.
func (s *Store) Levels(runID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level, score, outcome, created_at
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var lr LevelResult
		var createdAt any
		if err := rows.Scan(&lr.ID, &lr.RunID, &lr.Level, &lr.Score, &lr.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		lr.CreatedAt = parseTime(createdAt)
		results = append(results, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no runs exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs and their level results for the given game.
func (s *Store) ClearRuns(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		"DELETE FROM level_results WHERE run_id IN (SELECT id FROM runs WHERE game_id = ?)",
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats holds aggregated ledger statistics for a single game.
type GameStats struct {
	GameID    string
	Runs      int
	HighScore int
	AvgScore  float64
	BestLevel int
	Cleared   int // Levels cleared across all runs
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(level), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.BestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM level_results l JOIN runs r ON r.id = l.run_id
		 WHERE r.game_id = ? AND l.outcome = 'LEVELCLEAR'`,
		gameID,
	).Scan(&stats.Cleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count cleared levels: %w", err)
	}

	return stats, nil
}
