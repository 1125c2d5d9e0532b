package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

// ErrNotFound is returned when a saved job does not exist.
var ErrNotFound = errors.New("saved job not found")

const savedColumns = `id, title, company, date, link, notes, status, created_at, updated_at`

// Store persists saved jobs in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// List returns all saved jobs, newest first.
func (s *Store) List(ctx context.Context) ([]model.SavedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+savedColumns+` FROM saved_jobs ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}
	defer rows.Close()
	return scanSaved(rows)
}

// ListByStatus returns saved jobs with the given status. The feed uses
// status "saved" to build its dedup membership set.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]model.SavedJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+savedColumns+` FROM saved_jobs WHERE status = $1 ORDER BY created_at DESC, id`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs by status: %w", err)
	}
	defer rows.Close()
	return scanSaved(rows)
}

// Create inserts a new saved job and returns the stored row.
func (s *Store) Create(ctx context.Context, sj model.SavedJob) (model.SavedJob, error) {
	var out model.SavedJob
	err := s.pool.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, title, company, date, link, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+savedColumns,
		uuid.NewString(), sj.Title, sj.Company, sj.Date, sj.Link, sj.Notes,
		NormalizeStatus(sj.Status),
	).Scan(
		&out.ID, &out.Title, &out.Company, &out.Date, &out.Link,
		&out.Notes, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return model.SavedJob{}, fmt.Errorf("create saved job: %w", err)
	}
	return out, nil
}

// Update sets status and/or notes on a saved job. Nil fields are left
// untouched. Returns ErrNotFound for an unknown id.
func (s *Store) Update(ctx context.Context, id string, status, notes *string) (model.SavedJob, error) {
	var out model.SavedJob
	err := s.pool.QueryRow(ctx,
		`UPDATE saved_jobs
		 SET status     = COALESCE($1, status),
		     notes      = COALESCE($2, notes),
		     updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+savedColumns,
		status, notes, id,
	).Scan(
		&out.ID, &out.Title, &out.Company, &out.Date, &out.Link,
		&out.Notes, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SavedJob{}, ErrNotFound
	}
	if err != nil {
		return model.SavedJob{}, fmt.Errorf("update saved job %s: %w", id, err)
	}
	return out, nil
}

// Delete removes a saved job. Returns ErrNotFound for an unknown id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saved job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSaved(rows pgx.Rows) ([]model.SavedJob, error) {
	out := make([]model.SavedJob, 0)
	for rows.Next() {
		var sj model.SavedJob
		if err := rows.Scan(
			&sj.ID, &sj.Title, &sj.Company, &sj.Date, &sj.Link,
			&sj.Notes, &sj.Status, &sj.CreatedAt, &sj.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan saved job: %w", err)
		}
		out = append(out, sj)
	}
	return out, rows.Err()
}
