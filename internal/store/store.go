// Package store keeps a history of check runs in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/tigersem/internal/diagnostics"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	file        TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	error_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	code    TEXT NOT NULL,
	line    INTEGER NOT NULL,
	col     INTEGER NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Run is one recorded check of a file.
type Run struct {
	ID         uuid.UUID
	File       string
	StartedAt  time.Time
	ErrorCount int
}

// Diagnostic is a diagnostic as recorded for a run.
type Diagnostic struct {
	Seq     int
	Code    diagnostics.ErrorCode
	Line    int
	Column  int
	Message string
}

// Store is a handle to the run database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	// One connection: sqlite has a single writer and ":memory:" databases
	// are private to a connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store %s: %w", path, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a check of file together with its diagnostics and returns
// the new run id.
func (s *Store) RecordRun(ctx context.Context, file string, diags []*diagnostics.DiagnosticError) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating run id: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}
	defer tx.Rollback()

	started := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, started_at, error_count) VALUES (?, ?, ?, ?)`,
		id.String(), file, started, len(diags)); err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}

	for i, d := range diags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, code, line, col, message) VALUES (?, ?, ?, ?, ?, ?)`,
			id.String(), i, string(d.Code), d.Token.Line, d.Token.Column, d.Message); err != nil {
			return uuid.Nil, fmt.Errorf("recording diagnostic %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file, started_at, error_count FROM runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a single run.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file, started_at, error_count FROM runs WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// RunDiagnostics returns the diagnostics of a run in recorded order.
func (s *Store) RunDiagnostics(ctx context.Context, id uuid.UUID) ([]Diagnostic, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, code, line, col, message FROM diagnostics WHERE run_id = ? ORDER BY seq`, id.String())
	if err != nil {
		return nil, fmt.Errorf("reading diagnostics of %s: %w", id, err)
	}
	defer rows.Close()

	var out []Diagnostic
	for rows.Next() {
		var d Diagnostic
		var code string
		if err := rows.Scan(&d.Seq, &code, &d.Line, &d.Column, &d.Message); err != nil {
			return nil, fmt.Errorf("reading diagnostics of %s: %w", id, err)
		}
		d.Code = diagnostics.ErrorCode(code)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading diagnostics of %s: %w", id, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var id, started string
	if err := row.Scan(&id, &r.File, &started, &r.ErrorCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("reading run: %w", err)
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("reading run: bad id %q: %w", id, err)
	}
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("reading run %s: bad timestamp %q: %w", id, started, err)
	}
	return r, nil
}
