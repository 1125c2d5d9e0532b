// Package resume owns resume persistence and text extraction.
//
// There is exactly one "current" resume at any instant: the row with the
// latest update timestamp. Matching always runs against that single resume.
package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

// ErrNoResume is returned when no resume has been uploaded yet. Read paths
// surface it as an explicit "no resume" indicator, never as a failure.
var ErrNoResume = errors.New("no resume uploaded")

// Store persists resumes in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Upsert stores a resume. Filename is the identity: re-uploading the same
// filename replaces the stored text and bumps the update timestamp, which
// makes it the current resume.
func (s *Store) Upsert(ctx context.Context, filename, fileType, rawText string) (model.Resume, error) {
	var r model.Resume
	err := s.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, filename, file_type, raw_text, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (filename) DO UPDATE SET
			file_type  = EXCLUDED.file_type,
			raw_text   = EXCLUDED.raw_text,
			updated_at = NOW()
		 RETURNING id, filename, file_type, raw_text, updated_at`,
		uuid.NewString(), filename, fileType, rawText,
	).Scan(&r.ID, &r.Filename, &r.FileType, &r.RawText, &r.UpdatedAt)
	if err != nil {
		return model.Resume{}, fmt.Errorf("upsert resume %q: %w", filename, err)
	}
	return r, nil
}

// Current resolves the single current resume. Callers capture the returned
// id once at the start of an operation and thread it through explicitly.
func (s *Store) Current(ctx context.Context) (model.Resume, error) {
	var r model.Resume
	err := s.pool.QueryRow(ctx,
		`SELECT id, filename, file_type, raw_text, updated_at
		 FROM resumes
		 ORDER BY updated_at DESC
		 LIMIT 1`,
	).Scan(&r.ID, &r.Filename, &r.FileType, &r.RawText, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Resume{}, ErrNoResume
	}
	if err != nil {
		return model.Resume{}, fmt.Errorf("current resume query: %w", err)
	}
	return r, nil
}
