// Package statuslog keeps a local history of API connection transitions in SQLite.
package statuslog

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matttelliott/bookmarker-ai/internal/events"
	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
)

// DefaultLimit is used by Recent when limit <= 0.
const DefaultLimit = 20

// Store is a SQLite-backed transition log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private in-memory log.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr(err, "open sqlite database", path)
	}
	// SQLite serializes writers; one connection also keeps :memory: a single database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, storageErr(err, "initialize schema", path)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transitions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		connected INTEGER NOT NULL,
		service TEXT NOT NULL DEFAULT '',
		at_ms INTEGER NOT NULL,
		detail TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at_ms);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores t. Appending the same id twice is an already-exists error.
func (s *Store) Append(ctx context.Context, t events.Transition) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transitions (id, connected, service, at_ms, detail) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.Connected, t.Service, t.At.UnixMilli(), t.Detail,
	)
	if err != nil {
		var exists int
		if qerr := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM transitions WHERE id = ?", t.ID).Scan(&exists); qerr == nil && exists > 0 {
			return derrors.NewError(derrors.CategoryAlreadyExists, "transition already recorded").
				WithCause(err).
				WithContext("id", t.ID).
				Build()
		}
		return derrors.WrapError(err, derrors.CategoryStorage, "insert transition").
			WithContext("id", t.ID).
			Build()
	}
	return nil
}

// Recent returns up to limit transitions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]events.Transition, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, connected, service, at_ms, detail FROM transitions ORDER BY at_ms DESC, seq DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryStorage, "query transitions").Build()
	}
	defer rows.Close()

	var out []events.Transition
	for rows.Next() {
		var (
			t    events.Transition
			atMS int64
		)
		if err := rows.Scan(&t.ID, &t.Connected, &t.Service, &atMS, &t.Detail); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryStorage, "scan transition").Build()
		}
		t.At = time.UnixMilli(atMS).UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryStorage, "iterate transitions").Build()
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func storageErr(err error, msg, path string) error {
	return derrors.WrapError(err, derrors.CategoryStorage, msg).
		WithContext("path", path).
		Build()
}
