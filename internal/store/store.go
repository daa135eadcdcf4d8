// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/siriwatk/sornpim/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for per-user level results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS level_results (
			user_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			total_errors INTEGER NOT NULL,
			grade TEXT NOT NULL,
			score INTEGER NOT NULL,
			play_count INTEGER NOT NULL,
			last_played TEXT NOT NULL,
			PRIMARY KEY (user_id, level_id)
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			total_errors INTEGER NOT NULL,
			grade TEXT NOT NULL,
			score INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			timed_out INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_finished ON attempts(user_id, finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetLatestResult fetches the latest stats for a (user, level) pair, or nil
// when the user has never finished the level.
func (s *Store) GetLatestResult(ctx context.Context, userID, levelID string) (*model.LevelStats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT wpm, accuracy, total_errors, grade, score, play_count, last_played
		 FROM level_results WHERE user_id = ? AND level_id = ?`,
		userID, levelID,
	)
	stats, err := scanLevelStats(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// UpsertResult stores the result of a finished session: the latest stats
// row is overwritten with playCount incremented, and an immutable attempt
// row is appended for history.
func (s *Store) UpsertResult(ctx context.Context, userID, levelID string, result model.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	playCount := 0
	row := tx.QueryRowContext(ctx,
		`SELECT play_count FROM level_results WHERE user_id = ? AND level_id = ?`,
		userID, levelID,
	)
	if err = row.Scan(&playCount); err != nil && err != sql.ErrNoRows {
		return err
	}
	err = nil

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO level_results (user_id, level_id, wpm, accuracy, total_errors, grade, score, play_count, last_played)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, level_id) DO UPDATE SET
			wpm = excluded.wpm,
			accuracy = excluded.accuracy,
			total_errors = excluded.total_errors,
			grade = excluded.grade,
			score = excluded.score,
			play_count = excluded.play_count,
			last_played = excluded.last_played`,
		userID, levelID,
		result.WPM, result.Accuracy, result.TotalErrors, result.Grade, result.Score,
		playCount+1, result.FinishedAt.Format(time.RFC3339Nano),
	); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (user_id, level_id, wpm, accuracy, total_errors, grade, score, elapsed_seconds, timed_out, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, levelID,
		result.WPM, result.Accuracy, result.TotalErrors, result.Grade, result.Score,
		result.ElapsedSeconds, boolToInt(result.TimedOut), result.FinishedAt.Format(time.RFC3339Nano),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ListProgress loads the full level-progress map for a user.
func (s *Store) ListProgress(ctx context.Context, userID string) (map[string]model.LevelStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level_id, wpm, accuracy, total_errors, grade, score, play_count, last_played
		 FROM level_results WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	progress := map[string]model.LevelStats{}
	for rows.Next() {
		var levelID string
		var stats model.LevelStats
		var lastPlayed string
		if err := rows.Scan(&levelID, &stats.WPM, &stats.Accuracy, &stats.TotalErrors, &stats.Grade, &stats.Score, &stats.PlayCount, &lastPlayed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastPlayed)
		if err != nil {
			return nil, err
		}
		stats.LastPlayed = parsed
		progress[levelID] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progress, nil
}

// ListAttempts returns a user's attempt history in finish order, optionally
// filtered to one level.
func (s *Store) ListAttempts(ctx context.Context, userID string, cfg model.StatsConfig) ([]model.Attempt, error) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}
	if cfg.Level != "" {
		clauses = append(clauses, "level_id = ?")
		args = append(args, cfg.Level)
	}
	query := fmt.Sprintf(`SELECT id, level_id, wpm, accuracy, total_errors, grade, score, elapsed_seconds, timed_out, finished_at
		FROM attempts
		WHERE %s
		ORDER BY finished_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var timedOut int
		var finishedAt string
		if err := rows.Scan(&a.ID, &a.LevelID, &a.WPM, &a.Accuracy, &a.TotalErrors, &a.Grade, &a.Score, &a.ElapsedSeconds, &timedOut, &finishedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		a.TimedOut = timedOut != 0
		a.FinishedAt = parsed
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	return attempts, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLevelStats(row rowScanner) (model.LevelStats, error) {
	var stats model.LevelStats
	var lastPlayed string
	if err := row.Scan(&stats.WPM, &stats.Accuracy, &stats.TotalErrors, &stats.Grade, &stats.Score, &stats.PlayCount, &lastPlayed); err != nil {
		return model.LevelStats{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, lastPlayed)
	if err != nil {
		return model.LevelStats{}, err
	}
	stats.LastPlayed = parsed
	return stats, nil
}
