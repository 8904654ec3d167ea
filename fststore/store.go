// Package fststore: the SQLite-backed transducer catalog.

package fststore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvlfst/fst"
	"github.com/katalvlaran/lvlfst/semiring"
)

// ErrNotFound reports a name with no stored transducer.
var ErrNotFound = errors.New("fststore: fst not found")

// Options configures a Store.
type Options struct {
	// Logger receives read-path diagnostics. Defaults to a discarding
	// logger.
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger routes diagnostics to the given logger.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{Logger: logr.Discard()}
}

// Store is a named catalog of serialized transducers backed by one
// SQLite database file. Use a real file path even in tests: the
// database/sql connection pool may open extra connections, and each
// ":memory:" connection sees its own empty database.
type Store struct {
	db  *sql.DB
	log logr.Logger
}

// Entry describes one stored transducer.
type Entry struct {
	Name      string
	FstType   string
	ArcType   string
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS fsts (
	name       TEXT PRIMARY KEY,
	fst_type   TEXT NOT NULL,
	arc_type   TEXT NOT NULL,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// Open connects to (creating if needed) the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("fststore: open %q: %w", path, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("fststore: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("fststore: init schema: %w", err)
	}

	return &Store{db: db, log: cfg.Logger}, nil
}

// Close releases the database handle. Nil-safe.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// List returns every stored entry, sorted by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, fst_type, arc_type, updated_at FROM fsts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("fststore: list: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var updated string
		if err = rows.Scan(&e.Name, &e.FstType, &e.ArcType, &updated); err != nil {
			return nil, fmt.Errorf("fststore: list: %w", err)
		}
		if e.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, fmt.Errorf("fststore: list: bad timestamp for %q: %w", e.Name, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("fststore: list: %w", err)
	}

	return entries, nil
}

// Delete removes the named transducer. Deleting an absent name returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fsts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("fststore: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("fststore: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

// Save serializes f and upserts it under name. Generic functions rather
// than methods because methods cannot introduce the weight type
// parameter.
func Save[W semiring.Weight[W]](ctx context.Context, s *Store, name string, f fst.Expanded[W]) error {
	var buf bytes.Buffer
	if err := fst.Write(&buf, f); err != nil {
		return fmt.Errorf("fststore: save %q: %w", name, err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fsts (name, fst_type, arc_type, data, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			fst_type = excluded.fst_type,
			arc_type = excluded.arc_type,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		name, f.Type(), fst.ArcType[W](), buf.Bytes(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("fststore: save %q: %w", name, err)
	}

	return nil
}

// Load deserializes the named transducer through reg. The stored
// arc_type column is checked before decoding so a weight-type mismatch
// fails without touching the blob.
func Load[W semiring.Weight[W]](ctx context.Context, s *Store, name string, reg *fst.Registry[W]) (fst.Fst[W], error) {
	var arcType string
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT arc_type, data FROM fsts WHERE name = ?`, name).Scan(&arcType, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("fststore: load %q: %w", name, err)
	}
	if want := fst.ArcType[W](); arcType != want {
		return nil, fmt.Errorf("%w: stored %q, expected %q", fst.ErrArcTypeMismatch, arcType, want)
	}

	return fst.Read(bytes.NewReader(data), reg,
		fst.WithSource("fststore:"+name), fst.WithLogger(s.log))
}
