// Package listing owns JobListing persistence and the ingestion/expiration
// lifecycle. No other package writes job_listings rows.
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

const listingColumns = `id, external_job_id, title, company, location, employment_type,
	description, summary, apply_link, is_remote, posted_date, posted_at,
	salary_min, salary_max, created_at, status, expiration_method, expires_at`

// Store persists job listings in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ExistingSummary reports whether a row for externalID exists and returns
// its cached summary (nil when absent). Used before upsert to decide
// whether the summarizer needs to be invoked at all.
func (s *Store) ExistingSummary(ctx context.Context, externalID string) (*string, bool, error) {
	var summary *string
	err := s.pool.QueryRow(ctx,
		`SELECT summary FROM job_listings WHERE external_job_id = $1`,
		externalID,
	).Scan(&summary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("existingSummary query: %w", err)
	}
	return summary, true, nil
}

// Upsert inserts the listing or overwrites the existing row with the same
// external id. created_at and status are never overwritten (status only
// moves active → expired via MarkExpired), and an existing non-null summary
// wins over the incoming value. Returns the row id and whether the row was
// newly inserted.
func (s *Store) Upsert(ctx context.Context, l model.JobListing) (int64, bool, error) {
	var (
		id       int64
		inserted bool
	)
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_listings (
			external_job_id, title, company, location, employment_type,
			description, summary, apply_link, is_remote, posted_date,
			posted_at, salary_min, salary_max, status, expiration_method, expires_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,'active',$14,$15)
		 ON CONFLICT (external_job_id) DO UPDATE SET
			title             = EXCLUDED.title,
			company           = EXCLUDED.company,
			location          = EXCLUDED.location,
			employment_type   = EXCLUDED.employment_type,
			description       = EXCLUDED.description,
			summary           = COALESCE(job_listings.summary, EXCLUDED.summary),
			apply_link        = EXCLUDED.apply_link,
			is_remote         = EXCLUDED.is_remote,
			posted_date       = EXCLUDED.posted_date,
			posted_at         = EXCLUDED.posted_at,
			salary_min        = EXCLUDED.salary_min,
			salary_max        = EXCLUDED.salary_max,
			expiration_method = EXCLUDED.expiration_method,
			expires_at        = EXCLUDED.expires_at
		 RETURNING id, (xmax = 0)`,
		l.ExternalJobID, l.Title, l.Company, l.Location, l.EmploymentType,
		l.Description, l.Summary, l.ApplyLink, l.IsRemote, l.PostedDate,
		l.PostedAt, l.SalaryMin, l.SalaryMax, l.ExpirationMethod, l.ExpiresAt,
	).Scan(&id, &inserted)
	if err != nil {
		return 0, false, fmt.Errorf("upsert listing %q: %w", l.ExternalJobID, err)
	}
	return id, inserted, nil
}

// MarkExpired flips every active row whose expiry has passed to expired in
// one bulk update. Idempotent and monotonic: a later now only ever expires
// more rows.
func (s *Store) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_listings
		 SET status = 'expired'
		 WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("markExpired update: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Filters narrows List results. Zero values mean "no constraint".
type Filters struct {
	Query          string // substring match over title/company/description
	EmploymentType string
	IsRemote       *bool
	Location       string
	SalaryMin      *float64
	PostedSince    *time.Time // resolved from the posted_date bucket
	Status         string
	Limit          int // capped at 100, default 20
	Offset         int
}

// List returns listings newest first under the given filters, plus the
// total row count matching them (ignoring limit/offset).
func (s *Store) List(ctx context.Context, f Filters) ([]model.JobListing, int, error) {
	conds := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.Query != "" {
		p := arg(f.Query)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE '%%'||%s||'%%' OR company ILIKE '%%'||%s||'%%' OR description ILIKE '%%'||%s||'%%')",
			p, p, p))
	}
	if f.EmploymentType != "" {
		conds = append(conds, "employment_type ILIKE "+arg(f.EmploymentType))
	}
	if f.IsRemote != nil {
		conds = append(conds, "is_remote = "+arg(*f.IsRemote))
	}
	if f.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE '%%'||%s||'%%'", arg(f.Location)))
	}
	if f.SalaryMin != nil {
		p := arg(*f.SalaryMin)
		conds = append(conds, fmt.Sprintf("(salary_max >= %s OR salary_min >= %s)", p, p))
	}
	if f.PostedSince != nil {
		conds = append(conds, "COALESCE(posted_at, created_at) >= "+arg(*f.PostedSince))
	}
	where := strings.Join(conds, " AND ")

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_listings WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list count query: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM job_listings WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $%d OFFSET $%d`, listingColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ActiveBatch returns one batch of active listings ordered by ingestion
// time descending, for the feed assembler.
func (s *Store) ActiveBatch(ctx context.Context, limit, offset int) ([]model.JobListing, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM job_listings
		 WHERE status = 'active'
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`, listingColumns),
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("activeBatch query: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

// ActiveScorable returns id/title/description of every active listing with
// a non-empty description, for bulk match recalculation.
func (s *Store) ActiveScorable(ctx context.Context) ([]model.JobListing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description FROM job_listings
		 WHERE status = 'active' AND description <> ''
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("activeScorable query: %w", err)
	}
	defer rows.Close()

	var out []model.JobListing
	for rows.Next() {
		var l model.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description); err != nil {
			return nil, fmt.Errorf("activeScorable scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountDisplayable counts active listings excluding those whose normalized
// (title, company) pair matches a saved-status tracker entry. This is the
// same anti-join the feed applies client-side, done set-based so the
// displayed total stays consistent with page content.
func (s *Store) CountDisplayable(ctx context.Context) (int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_listings j
		 WHERE j.status = 'active'
		   AND NOT EXISTS (
			SELECT 1 FROM saved_jobs sv
			WHERE sv.status = $1
			  AND LOWER(TRIM(sv.title))   = LOWER(TRIM(j.title))
			  AND LOWER(TRIM(sv.company)) = LOWER(TRIM(j.company))
		 )`,
		tracker.StatusSaved,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("countDisplayable query: %w", err)
	}
	return total, nil
}

// StatusStats returns listing counts grouped by status.
func (s *Store) StatusStats(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM job_listings GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("statusStats query: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("statusStats scan: %w", err)
		}
		stats[status] = n
	}
	return stats, rows.Err()
}

func scanListings(rows pgx.Rows) ([]model.JobListing, error) {
	var out []model.JobListing
	for rows.Next() {
		var l model.JobListing
		if err := rows.Scan(
			&l.ID, &l.ExternalJobID, &l.Title, &l.Company, &l.Location,
			&l.EmploymentType, &l.Description, &l.Summary, &l.ApplyLink,
			&l.IsRemote, &l.PostedDate, &l.PostedAt, &l.SalaryMin,
			&l.SalaryMax, &l.CreatedAt, &l.Status, &l.ExpirationMethod,
			&l.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
