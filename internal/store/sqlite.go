package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nwgo/networth-simulator/internal/domain"
	"github.com/nwgo/networth-simulator/internal/simulation"
)

const defaultListLimit = 50

// SQLiteStore persists runs in a SQLite database. Safe for concurrent use;
// writes are serialized through a mutex since SQLite allows one writer.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the HTTP API can read while a run is being saved.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			seed       INTEGER NOT NULL,
			n_paths    INTEGER NOT NULL,
			horizon    INTEGER NOT NULL,
			scenario   TEXT NOT NULL,
			summary    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

// SaveRun persists a completed run and returns the stored record.
func (s *SQLiteStore) SaveRun(ctx context.Context, name string, sc *domain.ScenarioConfig, summary simulation.RunSummary) (*RunRecord, error) {
	rec := &RunRecord{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Name:           name,
		Seed:           summary.Seed,
		NumSimulations: summary.NumSimulations,
		HorizonYears:   summary.HorizonYears,
		Scenario:       sc,
		Summary:        summary,
	}

	scenarioBlob, err := json.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	summaryBlob, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, name, seed, n_paths, horizon, scenario, summary)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.ID, rec.CreatedAt.UnixMilli(), rec.Name,
		rec.Seed, rec.NumSimulations, rec.HorizonYears,
		string(scenarioBlob), string(summaryBlob),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

// GetRun fetches one run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, name, seed, n_paths, horizon, scenario, summary
		FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, name, seed, n_paths, horizon, scenario, summary
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteRun removes a run by id.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanRun decodes one runs row via the given Scan function.
func scanRun(scan func(dest ...any) error) (*RunRecord, error) {
	var rec RunRecord
	var createdMillis int64
	var scenarioBlob, summaryBlob string

	if err := scan(&rec.ID, &createdMillis, &rec.Name, &rec.Seed,
		&rec.NumSimulations, &rec.HorizonYears, &scenarioBlob, &summaryBlob); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.UnixMilli(createdMillis).UTC()

	if err := json.Unmarshal([]byte(scenarioBlob), &rec.Scenario); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := json.Unmarshal([]byte(summaryBlob), &rec.Summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &rec, nil
}
