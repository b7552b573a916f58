package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("validation run not found")

// Run is one recorded validation outcome.
type Run struct {
	ID          string    `json:"id"`
	AppName     string    `json:"app_name"`
	Fingerprint string    `json:"fingerprint"`
	NodeCount   int       `json:"node_count"`
	Valid       bool      `json:"valid"`
	Detail      string    `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record appends a validation run. A missing ID is filled with a fresh
// UUID and a zero CreatedAt with the current UTC time; both are written
// back to the passed-in run.
func (r *Registry) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO validation_runs
		(id, app_name, fingerprint, node_count, valid, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.AppName,
		run.Fingerprint,
		run.NodeCount,
		run.Valid,
		run.Detail,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record validation run: %w", err)
	}

	return nil
}

// List returns all runs, newest first. Ties on created_at break on id for
// deterministic output.
//
// Returns an empty slice (not nil) when no runs exist.
func (r *Registry) List(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, app_name, fingerprint, node_count, valid, detail, created_at
		FROM validation_runs
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query validation runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validation runs: %w", err)
	}

	return runs, nil
}

// Get returns the run with the given ID, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, app_name, fingerprint, node_count, valid, detail, created_at
		FROM validation_runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var createdAt string
	err := s.Scan(
		&run.ID,
		&run.AppName,
		&run.Fingerprint,
		&run.NodeCount,
		&run.Valid,
		&run.Detail,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return run, nil
}
