// Package matchcache persists one weighted match score per (resume, job)
// pair and keeps those rows consistent with exactly one resume — the most
// recently uploaded — at any instant.
package matchcache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

// Store persists job_matches rows. It reads listings and resumes through
// their own stores and never mutates them.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// DeleteForResume removes every match row belonging to a resume.
func (s *Store) DeleteForResume(ctx context.Context, resumeID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM job_matches WHERE resume_id = $1`, resumeID,
	); err != nil {
		return fmt.Errorf("delete matches for resume %s: %w", resumeID, err)
	}
	return nil
}

// Put writes the match row for (resume, job), replacing any existing one.
func (s *Store) Put(ctx context.Context, m model.JobMatch) error {
	breakdown, _ := json.Marshal(m.Breakdown)
	matched, _ := json.Marshal(emptyNotNull(m.MatchedSkills))
	missing, _ := json.Marshal(emptyNotNull(m.MissingSkills))

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO job_matches
			(resume_id, job_id, score, breakdown, matched_skills, missing_skills, calculated_at)
		 VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, NOW())
		 ON CONFLICT (resume_id, job_id) DO UPDATE SET
			score          = EXCLUDED.score,
			breakdown      = EXCLUDED.breakdown,
			matched_skills = EXCLUDED.matched_skills,
			missing_skills = EXCLUDED.missing_skills,
			calculated_at  = NOW()`,
		m.ResumeID, m.JobID, m.Score,
		string(breakdown), string(matched), string(missing),
	); err != nil {
		return fmt.Errorf("put match (%s, %d): %w", m.ResumeID, m.JobID, err)
	}
	return nil
}

// MatchesFor returns every match row for a resume, keyed by listing id.
func (s *Store) MatchesFor(ctx context.Context, resumeID string) (map[int64]model.JobMatch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, resume_id, job_id, score, breakdown, matched_skills,
		        missing_skills, calculated_at
		 FROM job_matches
		 WHERE resume_id = $1`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("matchesFor query: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]model.JobMatch)
	for rows.Next() {
		var (
			m                           model.JobMatch
			breakdown, matched, missing []byte
		)
		if err := rows.Scan(
			&m.ID, &m.ResumeID, &m.JobID, &m.Score,
			&breakdown, &matched, &missing, &m.CalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("matchesFor scan: %w", err)
		}
		if err := json.Unmarshal(breakdown, &m.Breakdown); err != nil {
			return nil, fmt.Errorf("matchesFor breakdown: %w", err)
		}
		if err := json.Unmarshal(matched, &m.MatchedSkills); err != nil {
			return nil, fmt.Errorf("matchesFor matched skills: %w", err)
		}
		if err := json.Unmarshal(missing, &m.MissingSkills); err != nil {
			return nil, fmt.Errorf("matchesFor missing skills: %w", err)
		}
		out[m.JobID] = m
	}
	return out, rows.Err()
}

// emptyNotNull keeps JSON columns as [] instead of null.
func emptyNotNull(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
