// Package storage provides SQLite-based persistence for finished games and
// best scores. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/session"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry represents a single recorded game.
type ResultEntry struct {
	ID        int64
	SessionID string
	BoardSize int
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			board_size INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_size ON results(board_size);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(board_size, score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			board_size INTEGER PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// AddResult records a game. Returns the ID of the inserted record.
func (s *Store) AddResult(e ResultEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO results (session_id, board_size, score, max_tile, moves, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.BoardSize, e.Score, e.MaxTile, e.Moves, e.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveResult implements session.ResultRecorder.
// The result also raises the best score for its board size.
func (s *Store) SaveResult(r session.Result) error {
	_, err := s.AddResult(ResultEntry{
		SessionID: r.SessionID,
		BoardSize: r.BoardSize,
		Score:     r.Score,
		MaxTile:   r.MaxTile,
		Moves:     r.Moves,
		Won:       r.Won,
	})
	if err != nil {
		return err
	}
	return s.SetBestScore(r.BoardSize, r.Score)
}

var _ session.ResultRecorder = (*Store)(nil)

// TopResults retrieves the top N results for the given board size.
// Results are ordered by score descending.
func (s *Store) TopResults(boardSize, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, board_size, score, max_tile, moves, won, created_at
		 FROM results
		 WHERE board_size = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		boardSize, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.BoardSize, &e.Score, &e.MaxTile, &e.Moves, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the best score for the given board size.
// Returns 0 if none is stored.
func (s *Store) BestScore(boardSize int) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE board_size = ?",
		boardSize,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	return score, nil
}

// SetBestScore raises the best score for the board size to score.
// A lower score leaves the stored one in place.
func (s *Store) SetBestScore(boardSize, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (board_size, score) VALUES (?, ?)
		 ON CONFLICT(board_size) DO UPDATE SET
			score = MAX(score, excluded.score),
			updated_at = CURRENT_TIMESTAMP`,
		boardSize, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// BoardSizes returns the board sizes that have recorded results, ascending.
func (s *Store) BoardSizes() ([]int, error) {
	rows, err := s.db.Query("SELECT DISTINCT board_size FROM results ORDER BY board_size")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board sizes: %w", err)
	}
	defer rows.Close()

	var sizes []int
	for rows.Next() {
		var size int
		if err := rows.Scan(&size); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sizes = append(sizes, size)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sizes, nil
}

// ClearResults deletes all results and the best score for the board size.
func (s *Store) ClearResults(boardSize int) error {
	if _, err := s.db.Exec("DELETE FROM results WHERE board_size = ?", boardSize); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM best_scores WHERE board_size = ?", boardSize); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for one board size.
type GameStats struct {
	BoardSize  int
	GamesCount int
	Wins       int
	HighScore  int
	AvgScore   float64
	MaxTile    int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a board size.
func (s *Store) Stats(boardSize int) (*GameStats, error) {
	stats := &GameStats{BoardSize: boardSize}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(MAX(max_tile), 0), MAX(created_at)
		 FROM results WHERE board_size = ?`,
		boardSize,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.MaxTile, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime converts a DATETIME column, which the driver may return
// as either time.Time or string.
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

// BestScores adapts a Store to session.BestScoreStore for one board size.
type BestScores struct {
	Store *Store
	Size  int
}

// Load returns the stored best score.
func (b BestScores) Load() (int, error) {
	return b.Store.BestScore(b.Size)
}

// Save raises the stored best score.
func (b BestScores) Save(score int) error {
	return b.Store.SetBestScore(b.Size, score)
}

var _ session.BestScoreStore = BestScores{}
