// Package store handles SQLite persistence of quiz history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/konjug/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for quiz history.
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
		`CREATE TABLE IF NOT EXISTS quizzes (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			verb TEXT NOT NULL,
			total_questions INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_ended_at ON quizzes(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_quizzes_verb ON quizzes(verb);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertQuiz stores a completed quiz run.
func (s *Store) InsertQuiz(ctx context.Context, stats model.QuizStats) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (started_at, ended_at, verb, total_questions, correct, incorrect)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Verb,
		stats.TotalQuestions,
		stats.Correct,
		stats.Incorrect,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListQuizzes returns stored quizzes filtered by stats config, oldest first.
func (s *Store) ListQuizzes(ctx context.Context, cfg model.StatsConfig) ([]model.QuizAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Verb != "" {
		clauses = append(clauses, "verb = ?")
		args = append(args, cfg.Verb)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, verb, total_questions, correct, incorrect
		FROM quizzes
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
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

	var quizzes []model.QuizAggregate
	for rows.Next() {
		var agg model.QuizAggregate
		var endedAt string
		if err := rows.Scan(&agg.QuizID, &endedAt, &agg.Verb, &agg.TotalQuestions, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		quizzes = append(quizzes, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(quizzes) > cfg.Last {
		quizzes = quizzes[len(quizzes)-cfg.Last:]
	}
	return quizzes, nil
}

// AggregateByVerb aggregates quiz results per verb.
func (s *Store) AggregateByVerb(ctx context.Context) ([]model.VerbAggregate, error) {
	query := `SELECT verb, COUNT(*) AS quizzes, SUM(total_questions) AS questions,
		SUM(correct) AS correct, SUM(incorrect) AS incorrect, MAX(ended_at) AS last_at
		FROM quizzes
		GROUP BY verb
		ORDER BY verb ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.VerbAggregate
	for rows.Next() {
		var agg model.VerbAggregate
		var lastAt string
		if err := rows.Scan(&agg.Verb, &agg.Quizzes, &agg.Questions, &agg.Correct, &agg.Incorrect, &lastAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastAt)
		if err != nil {
			return nil, err
		}
		agg.LastAt = parsed
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
