// Package storage persists leaderboards in SQLite.
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

// LeaderboardLimit is how many rows a leaderboard shows.
const LeaderboardLimit = 10

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one player's best score for a game.
type ScoreEntry struct {
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveResult reports what a submission did to the board.
type SaveResult struct {
	Best     int  // best score on record after the save
	Improved bool // the submission beat the previous best
	Rank     int  // 1-based position, 0 when outside the leaderboard
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
	// One writer; the web and SSH hosts share the store across goroutines.
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (game_id, name)
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
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

// SaveScore records score for name, keeping only the player's best.
// Game ids are canonicalized and names trimmed first.
func (s *Store) SaveScore(gameID, name string, score int) (SaveResult, error) {
	gameID = CanonicalGameID(gameID)
	name, err := NormalizeName(name)
	if err != nil {
		return SaveResult{}, err
	}
	if score < 0 {
		return SaveResult{}, fmt.Errorf("storage: negative score %d", score)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SaveResult{}, fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var prev sql.NullInt64
	err = tx.QueryRow("SELECT score FROM scores WHERE game_id = ? AND name = ?", gameID, name).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return SaveResult{}, fmt.Errorf("storage: cannot read score: %w", err)
	}

	res := SaveResult{Best: score, Improved: !prev.Valid || int64(score) > prev.Int64}
	if res.Improved {
		_, err = tx.Exec(
			`INSERT INTO scores (game_id, name, score) VALUES (?, ?, ?)
			 ON CONFLICT(game_id, name) DO UPDATE
			 SET score = excluded.score, updated_at = CURRENT_TIMESTAMP`,
			gameID, name, score,
		)
		if err != nil {
			return SaveResult{}, fmt.Errorf("storage: cannot save score: %w", err)
		}
	} else {
		res.Best = int(prev.Int64)
	}

	var better int
	err = tx.QueryRow("SELECT COUNT(*) FROM scores WHERE game_id = ? AND score > ?", gameID, res.Best).Scan(&better)
	if err != nil {
		return SaveResult{}, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	if better < LeaderboardLimit {
		res.Rank = better + 1
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return res, nil
}

// TopScores retrieves the top N scores for the given game.
// Ties keep the earlier entry first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = LeaderboardLimit
	}

	rows, err := s.db.Query(
		`SELECT game_id, name, score, created_at, updated_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, updated_at ASC, id ASC
		 LIMIT ?`,
		CanonicalGameID(gameID), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.GameID, &e.Name, &e.Score, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game, 0 if none.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		CanonicalGameID(gameID),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Qualifies reports whether score would make the leaderboard.
func (s *Store) Qualifies(gameID string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	top, err := s.TopScores(gameID, LeaderboardLimit)
	if err != nil {
		return false, err
	}
	if len(top) < LeaderboardLimit {
		return true, nil
	}
	return score > top[len(top)-1].Score, nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", CanonicalGameID(gameID))
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: CanonicalGameID(gameID)}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(updated_at)
		 FROM scores WHERE game_id = ?`,
		stats.GameID,
	).Scan(&stats.Players, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllGamesStats retrieves statistics for every game with scores.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), MAX(updated_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Players, &gs.HighScore, &gs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both driver-decoded times and raw SQLite strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
