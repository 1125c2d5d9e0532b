package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are idempotent — every statement is IF NOT EXISTS, so Migrate
// is safe to run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS job_listings (
		id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		external_job_id   TEXT NOT NULL UNIQUE,
		title             TEXT NOT NULL DEFAULT '',
		company           TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		employment_type   TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		summary           TEXT,
		apply_link        TEXT NOT NULL DEFAULT '',
		is_remote         BOOLEAN NOT NULL DEFAULT FALSE,
		posted_date       TEXT NOT NULL DEFAULT '',
		posted_at         TIMESTAMPTZ,
		salary_min        DOUBLE PRECISION,
		salary_max        DOUBLE PRECISION,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status            TEXT NOT NULL DEFAULT 'active',
		expiration_method TEXT NOT NULL DEFAULT 'never',
		expires_at        TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_listings_status_created
		ON job_listings (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_job_listings_active_expiry
		ON job_listings (expires_at) WHERE status = 'active'`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		id         UUID PRIMARY KEY,
		title      TEXT NOT NULL,
		company    TEXT NOT NULL DEFAULT '',
		date       TEXT NOT NULL DEFAULT '',
		link       TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'saved',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id         UUID PRIMARY KEY,
		filename   TEXT NOT NULL UNIQUE,
		file_type  TEXT NOT NULL,
		raw_text   TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_matches (
		id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		resume_id      UUID NOT NULL,
		job_id         BIGINT NOT NULL REFERENCES job_listings(id) ON DELETE CASCADE,
		score          INT NOT NULL,
		breakdown      JSONB NOT NULL DEFAULT '{}',
		matched_skills JSONB NOT NULL DEFAULT '[]',
		missing_skills JSONB NOT NULL DEFAULT '[]',
		calculated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (resume_id, job_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_matches_resume
		ON job_matches (resume_id)`,
}

// Migrate applies the schema. Statements run one by one so a failure names
// the statement that broke.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
