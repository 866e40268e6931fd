package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"birdquiz/internal/quiz"
)

const defaultRecentLimit = 20

// SessionResult is one finished quiz session as persisted for the "recent
// games" view.
type SessionResult struct {
	ID         string                `json:"id"`
	Mode       string                `json:"mode"`
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percent    int                   `json:"percent"`
	Message    string                `json:"message"`
	FinishedAt time.Time             `json:"finished_at"`
	Answers    []quiz.AnswerLogEntry `json:"answers,omitempty"`
}

// Store persists finished session results in SQLite. History is strictly
// optional: the quiz itself never reads from it.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "birdquiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	// The answer log is stored as a JSON blob: history rows are write-once
	// and only ever read back whole, so a relational answers table would buy
	// nothing.
	stmt := `CREATE TABLE IF NOT EXISTS session_results (
		session_id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percent INTEGER NOT NULL,
		message TEXT NOT NULL,
		finished_at_unix INTEGER NOT NULL,
		answers_json TEXT NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_session_results_finished_at ON session_results(finished_at_unix DESC);`)
	return err
}

// SaveResult inserts a finished session. Saving the same session twice
// overwrites the earlier row.
func (s *Store) SaveResult(ctx context.Context, result SessionResult) error {
	if result.ID == "" {
		return errors.New("session id is required")
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now().UTC()
	}

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_results
			(session_id, mode, score, total, percent, message, finished_at_unix, answers_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			mode = excluded.mode,
			score = excluded.score,
			total = excluded.total,
			percent = excluded.percent,
			message = excluded.message,
			finished_at_unix = excluded.finished_at_unix,
			answers_json = excluded.answers_json`,
		result.ID, result.Mode, result.Score, result.Total, result.Percent,
		result.Message, result.FinishedAt.Unix(), string(answersJSON),
	)
	return err
}

// RecentResults returns the most recently finished sessions, newest first.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, mode, score, total, percent, message, finished_at_unix, answers_json
		FROM session_results
		ORDER BY finished_at_unix DESC, session_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]SessionResult, 0, limit)
	for rows.Next() {
		var (
			result       SessionResult
			finishedUnix int64
			answersJSON  string
		)
		if err := rows.Scan(&result.ID, &result.Mode, &result.Score, &result.Total,
			&result.Percent, &result.Message, &finishedUnix, &answersJSON); err != nil {
			return nil, err
		}
		result.FinishedAt = time.Unix(finishedUnix, 0).UTC()
		if err := json.Unmarshal([]byte(answersJSON), &result.Answers); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
