// Package model defines the shared data structures of the job tracker.
package model

import "time"

// Listing status values. A listing only ever moves active → expired.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// Expiration methods record which timestamp the expiry was derived from.
const (
	ExpireByPostedDate = "posted_date"
	ExpireByCreatedAt  = "created_at"
	ExpireNever        = "never"
)

// JobListing is one posting ingested from the external search provider.
// ExternalJobID is the upsert key and stays stable across re-ingestion.
type JobListing struct {
	ID               int64      `json:"id"`
	ExternalJobID    string     `json:"external_job_id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	EmploymentType   string     `json:"employment_type"`
	Description      string     `json:"description"`
	Summary          *string    `json:"summary"`
	ApplyLink        string     `json:"apply_link"`
	IsRemote         bool       `json:"is_remote"`
	PostedDate       string     `json:"posted_date"`         // raw provider value, may be unparseable
	PostedAt         *time.Time `json:"posted_at,omitempty"` // parsed form of PostedDate, nil when invalid
	SalaryMin        *float64   `json:"salary_min"`
	SalaryMax        *float64   `json:"salary_max"`
	CreatedAt        time.Time  `json:"created_at"`
	Status           string     `json:"status"`
	ExpirationMethod string     `json:"expiration_method"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

// SavedJob is a user-curated tracker entry. For dedup against the live feed
// it is identified by its normalized (title, company) pair, not by listing id.
type SavedJob struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Date      string    `json:"date"`
	Link      string    `json:"link"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resume is an uploaded resume. Filename is unique — re-uploading the same
// filename replaces the row. The "current" resume is the one with the latest
// UpdatedAt.
type Resume struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	RawText   string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoreBreakdown holds the per-axis scores behind a final match score.
type ScoreBreakdown struct {
	Technical  int `json:"technical"`
	SoftSkills int `json:"soft_skills"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
}

// JobMatch caches one weighted score for a (resume, listing) pair.
// At most one row exists per pair.
type JobMatch struct {
	ID            int64          `json:"id"`
	ResumeID      string         `json:"resume_id"`
	JobID         int64          `json:"job_id"`
	Score         int            `json:"score"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	MatchedSkills []string       `json:"matched_skills"`
	MissingSkills []string       `json:"missing_skills"`
	CalculatedAt  time.Time      `json:"calculated_at"`
}
