// Package storage keeps a ledger of finished runs in SQLite.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Faultbox/sandrunner/internal/config"
)

// timeLayout has a fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID         string // playthrough id
	Motion     string
	Ticks      uint64
	Landings   uint64 // contacts started, not ticks of overlap
	Lethal     uint64
	Halted     bool
	Regression string // empty when not computed
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path. A leading ~ is
// expanded, parent directories are created and the schema is migrated.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandPath(dbPath)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			motion TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			landings INTEGER NOT NULL DEFAULT 0,
			lethal INTEGER NOT NULL DEFAULT 0,
			halted INTEGER NOT NULL DEFAULT 0,
			regression TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_regression ON runs(regression);
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

// SaveRun records a finished run. A zero CreatedAt is set to now.
func (s *Store) SaveRun(r Run) error {
	if r.ID == "" {
		return fmt.Errorf("storage: run without id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, motion, ticks, landings, lethal, halted, regression, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Motion, int64(r.Ticks), int64(r.Landings), int64(r.Lethal), r.Halted, r.Regression,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, motion, ticks, landings, lethal, halted, regression, created_at
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsWithRegression returns every run that produced the given regression id.
func (s *Store) RunsWithRegression(regression string) ([]Run, error) {
	return s.query(
		`SELECT id, motion, ticks, landings, lethal, halted, regression, created_at
		 FROM runs
		 WHERE regression = ?
		 ORDER BY created_at DESC`,
		regression,
	)
}

func (s *Store) query(q string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                       Run
			ticks, landings, lethal int64
			createdAt               string
		)
		if err := rows.Scan(&r.ID, &r.Motion, &ticks, &landings, &lethal, &r.Halted, &r.Regression, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks, r.Landings, r.Lethal = uint64(ticks), uint64(landings), uint64(lethal)
		if parsed, err := time.Parse(timeLayout, createdAt); err == nil {
			r.CreatedAt = parsed
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
