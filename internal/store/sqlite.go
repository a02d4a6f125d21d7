// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Saving runs and their histogram buckets in one transaction.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-sim/assets"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/sim"
)

// timeLayout is fixed-width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type sqliteStore struct {
	db *sql.DB
}

/**
 * OpenSQLite opens (and creates if missing) a SQLite database file and
 * applies pending migrations.
 *
 * - Ensures parent directory exists for relative paths (e.g. ./data/sim.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func OpenSQLite(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// One connection keeps PRAGMAs and :memory: databases consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

/**
 * migrate applies the embedded sql/*.sql scripts.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each script in lexical order inside its own transaction.
 * - Skips scripts already applied.
 */
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Save inserts or replaces a run and its histogram.
func (s *sqliteStore) Save(ctx context.Context, r *Run) error {
	if err := r.validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_rounds WHERE run_id=?`, r.ID); err != nil {
		return fmt.Errorf("clear rounds: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT OR REPLACE INTO runs
            (id, seed, trials, workers, words, started_at, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, strconv.FormatUint(r.Seed, 10), r.Trials, r.Workers, r.Words,
		r.StartedAt.UTC().Format(timeLayout), r.Elapsed.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, rounds := range r.Histogram.Rounds() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_rounds (run_id, rounds, trials) VALUES (?, ?, ?)`,
			r.ID, rounds, r.Histogram[rounds],
		); err != nil {
			return fmt.Errorf("insert rounds: %w", err)
		}
	}
	return tx.Commit()
}

// Get loads one run with its histogram.
func (s *sqliteStore) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, seed, trials, workers, words, started_at, elapsed_ms
        FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if r.Histogram, err = s.histogram(ctx, r.ID); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns up to limit runs, newest first.
func (s *sqliteStore) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, seed, trials, workers, words, started_at, elapsed_ms
        FROM runs
        ORDER BY started_at DESC, id ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for _, r := range out {
		if r.Histogram, err = s.histogram(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func (s *sqliteStore) histogram(ctx context.Context, id string) (sim.Histogram, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rounds, trials FROM run_rounds WHERE run_id=? ORDER BY rounds`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	h := make(sim.Histogram)
	for rows.Next() {
		var rounds, trials int
		if err := rows.Scan(&rounds, &trials); err != nil {
			return nil, err
		}
		h[rounds] = trials
	}
	return h, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		r         Run
		seed      string
		started   string
		elapsedMs int64
	)
	if err := row.Scan(&r.ID, &seed, &r.Trials, &r.Workers, &r.Words, &started, &elapsedMs); err != nil {
		return nil, err
	}
	var err error
	if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("run %s: bad seed %q: %w", r.ID, seed, err)
	}
	r.StartedAt, _ = time.Parse(timeLayout, started)
	r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &r, nil
}
