package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"agentgauge/pkg/core"
)

// ErrNotFound is returned when an evaluation id has no stored record.
var ErrNotFound = errors.New("store: evaluation not found")

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    evaluation_id    TEXT PRIMARY KEY,
    agent_id         TEXT NOT NULL,
    timestamp        TEXT NOT NULL,
    overall_score    REAL NOT NULL,
    passed           INTEGER NOT NULL,
    test_cases_count INTEGER NOT NULL,
    duration_seconds REAL NOT NULL,
    payload          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_agent ON evaluations(agent_id);
CREATE INDEX IF NOT EXISTS idx_evaluations_timestamp ON evaluations(timestamp);
`

// Summary is one row of evaluation history without the full result payload.
type Summary struct {
	EvaluationID   string  `json:"evaluation_id"`
	AgentID        string  `json:"agent_id"`
	Timestamp      string  `json:"timestamp"`
	OverallScore   float64 `json:"overall_score"`
	Passed         bool    `json:"passed"`
	TestCasesCount int     `json:"test_cases_count"`
}

// Store persists evaluation results in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path and runs migrations. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a result, replacing any existing record with the same id.
func (s *Store) Save(result *core.EvaluationResult) error {
	payload, err := result.ToJSON()
	if err != nil {
		return fmt.Errorf("store: encode result: %w", err)
	}

	passed := 0
	if result.Passed {
		passed = 1
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO evaluations
		 (evaluation_id, agent_id, timestamp, overall_score, passed, test_cases_count, duration_seconds, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.EvaluationID, result.AgentID, result.Timestamp,
		result.OverallScore, passed, result.TestCasesCount, result.DurationSeconds,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("store: insert evaluation: %w", err)
	}
	return nil
}

// Get loads a full evaluation result by id.
func (s *Store) Get(evaluationID string) (*core.EvaluationResult, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM evaluations WHERE evaluation_id = ?`, evaluationID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, evaluationID)
	}
	if err != nil {
		return nil, fmt.Errorf("store: query evaluation: %w", err)
	}

	var result core.EvaluationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("store: decode result: %w", err)
	}
	return &result, nil
}

// List returns the most recent evaluations, newest first. A limit of zero or
// less means no limit.
func (s *Store) List(limit int) ([]Summary, error) {
	query := `SELECT evaluation_id, agent_id, timestamp, overall_score, passed, test_cases_count
	          FROM evaluations ORDER BY timestamp DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list evaluations: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var passed int
		if err := rows.Scan(&s.EvaluationID, &s.AgentID, &s.Timestamp, &s.OverallScore, &passed, &s.TestCasesCount); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		s.Passed = passed != 0
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
