package matchcache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math"

	"github.com/EthanJ-prog/jobTracker/internal/match"
	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/resume"
)

// MatchStore is the persistence surface of the cache.
type MatchStore interface {
	DeleteForResume(ctx context.Context, resumeID string) error
	Put(ctx context.Context, m model.JobMatch) error
}

// ListingSource supplies the active, scorable listings.
type ListingSource interface {
	ActiveScorable(ctx context.Context) ([]model.JobListing, error)
}

// ResumeSource resolves the current resume.
type ResumeSource interface {
	Current(ctx context.Context) (model.Resume, error)
}

// Summary is the aggregate outcome of a full recalculation.
type Summary struct {
	JobsProcessed int `json:"jobsProcessed"`
	AverageScore  int `json:"averageScore"`
}

// Cache recomputes and stores match scores. The resume id is always
// captured up front and threaded through explicitly — it is never
// re-resolved mid-operation.
type Cache struct {
	store    MatchStore
	listings ListingSource
	resumes  ResumeSource
	scorer   *match.Scorer
}

// New constructs a Cache.
func New(store MatchStore, listings ListingSource, resumes ResumeSource, scorer *match.Scorer) *Cache {
	return &Cache{store: store, listings: listings, resumes: resumes, scorer: scorer}
}

// RecalculateAll wipes the matches for resumeID and rescores every active
// listing with a non-empty description against resumeText. Per-row write
// failures are logged and skipped — they are excluded from both the
// processed count and the average.
func (c *Cache) RecalculateAll(ctx context.Context, resumeID, resumeText string) (Summary, error) {
	if err := c.store.DeleteForResume(ctx, resumeID); err != nil {
		return Summary{}, err
	}

	listings, err := c.listings.ActiveScorable(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load scorable listings: %w", err)
	}

	var (
		processed int
		sum       int
	)
	for _, l := range listings {
		if l.Description == "" {
			continue
		}
		r := c.scorer.Score(resumeText, l.Description, l.Title)
		err := c.store.Put(ctx, model.JobMatch{
			ResumeID:      resumeID,
			JobID:         l.ID,
			Score:         r.Score,
			Breakdown:     r.Breakdown,
			MatchedSkills: r.MatchedSkills,
			MissingSkills: r.MissingSkills,
		})
		if err != nil {
			log.Printf("[matchcache] store match for job %d failed: %v — continuing", l.ID, err)
			continue
		}
		processed++
		sum += r.Score
	}

	avg := 0
	if processed > 0 {
		avg = int(math.Round(float64(sum) / float64(processed)))
	}
	return Summary{JobsProcessed: processed, AverageScore: avg}, nil
}

// RecalculateOne rescores a single listing against the current resume,
// replacing any existing row for that pair. Missing resume or empty
// description is a logged no-op, not an error.
func (c *Cache) RecalculateOne(ctx context.Context, jobID int64, title, description string) error {
	if description == "" {
		return nil
	}

	cur, err := c.resumes.Current(ctx)
	if errors.Is(err, resume.ErrNoResume) {
		slog.Warn("match recalculation skipped: no current resume", "jobId", jobID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve current resume: %w", err)
	}

	r := c.scorer.Score(cur.RawText, description, title)
	return c.store.Put(ctx, model.JobMatch{
		ResumeID:      cur.ID,
		JobID:         jobID,
		Score:         r.Score,
		Breakdown:     r.Breakdown,
		MatchedSkills: r.MatchedSkills,
		MissingSkills: r.MissingSkills,
	})
}
