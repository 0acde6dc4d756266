package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/conorfennell/sqlgroups/internal/domain"
)

// MemoryDSN keeps the answer log in process memory only.
const MemoryDSN = ":memory:"

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db, now: time.Now}, nil
}

// OpenMemory opens an answer log that lives only as long as the process.
func OpenMemory() (*DB, error) {
	return Open(MemoryDSN)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Answer is one recorded quiz answer.
type Answer struct {
	ID         string
	Command    string
	Expected   domain.Key
	Guess      domain.Key
	Correct    bool
	AnsweredAt time.Time
}

// InsertAnswer stores a. ID and AnsweredAt are filled in when empty.
func (db *DB) InsertAnswer(ctx context.Context, a Answer) (Answer, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = db.now()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO answers (id, command, expected, guess, correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.Command,
		string(a.Expected),
		string(a.Guess),
		a.Correct,
		a.AnsweredAt.UTC(),
	)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to insert answer %s: %w", a.ID, err)
	}
	return a, nil
}

// RecentAnswers returns up to limit answers, newest first.
func (db *DB) RecentAnswers(ctx context.Context, limit int) ([]Answer, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, command, expected, guess, correct, answered_at
		FROM answers
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		var expected, guess string
		if err := rows.Scan(&a.ID, &a.Command, &expected, &guess, &a.Correct, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		a.Expected = domain.Key(expected)
		a.Guess = domain.Key(guess)
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read answer rows: %w", err)
	}
	return answers, nil
}

// CategoryStats counts questions asked about one category.
type CategoryStats struct {
	Key     domain.Key
	Asked   int
	Correct int
}

// Stats summarizes every recorded answer.
type Stats struct {
	Asked      int
	Correct    int
	ByCategory []CategoryStats // in table order, zero rows included
}

// Accuracy returns the share of correct answers in [0, 1].
func (s Stats) Accuracy() float64 {
	if s.Asked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked)
}

// Stats aggregates the answer log per expected category.
func (db *DB) Stats(ctx context.Context) (Stats, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT expected, COUNT(*), SUM(correct)
		FROM answers
		GROUP BY expected
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate answers: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Key]CategoryStats)
	for rows.Next() {
		var key string
		var cs CategoryStats
		if err := rows.Scan(&key, &cs.Asked, &cs.Correct); err != nil {
			return Stats{}, fmt.Errorf("failed to scan stats row: %w", err)
		}
		cs.Key = domain.Key(key)
		counts[cs.Key] = cs
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("failed to read stats rows: %w", err)
	}

	var st Stats
	for _, k := range domain.Keys() {
		cs, ok := counts[k]
		if !ok {
			cs = CategoryStats{Key: k}
		}
		st.Asked += cs.Asked
		st.Correct += cs.Correct
		st.ByCategory = append(st.ByCategory, cs)
	}
	return st, nil
}
