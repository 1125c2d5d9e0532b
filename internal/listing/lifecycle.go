package listing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

// ExpiryWindow is how long a listing stays active after its posted date
// (or, when that is unparseable, after ingestion).
const ExpiryWindow = 14 * 24 * time.Hour

// postedDateLayouts are tried in order when parsing the provider's raw
// posted date.
var postedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ListingStore is the persistence surface the manager needs.
type ListingStore interface {
	ExistingSummary(ctx context.Context, externalID string) (*string, bool, error)
	Upsert(ctx context.Context, l model.JobListing) (int64, bool, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// Summarizer produces an optional short summary for a listing description.
type Summarizer interface {
	Summarize(ctx context.Context, key, text string) (string, error)
}

// Recalculator recomputes the cached match for one listing after ingestion.
type Recalculator interface {
	RecalculateOne(ctx context.Context, jobID int64, title, description string) error
}

// Manager implements the listing lifecycle: deterministic upserts with
// expiry computation and summary preservation, plus the expiration sweep.
type Manager struct {
	store      ListingStore
	summarizer Summarizer
	recalc     Recalculator
	now        func() time.Time

	// serializes upserts per external id so two concurrent ingestions of
	// the same posting cannot interleave summary lookup and write.
	locks sync.Map // external id → *sync.Mutex
}

// NewManager constructs a Manager. summarizer and recalc may be nil.
func NewManager(store ListingStore, summarizer Summarizer, recalc Recalculator) *Manager {
	return &Manager{
		store:      store,
		summarizer: summarizer,
		recalc:     recalc,
		now:        time.Now,
	}
}

// Upsert ingests one raw posting: computes its expiry, resolves its summary
// (preserving a previously cached one), writes the row, and triggers a
// targeted match recalculation. The listing is not visible to matching or
// the feed until the write has committed.
func (m *Manager) Upsert(ctx context.Context, p provider.Posting) (model.JobListing, bool, error) {
	unlock := m.lock(p.ExternalID)
	defer unlock()

	now := m.now().UTC()
	postedAt, method, expiresAt := computeExpiry(p.ExternalID, p.PostedAt, now)

	existing, exists, err := m.store.ExistingSummary(ctx, p.ExternalID)
	if err != nil {
		return model.JobListing{}, false, err
	}

	var summary *string
	switch {
	case exists && existing != nil:
		// Cached summary wins; the summarizer is not invoked again.
		summary = existing
	case m.summarizer != nil && p.Description != "":
		s, err := m.summarizer.Summarize(ctx, p.ExternalID, p.Description)
		if err != nil {
			slog.Warn("summarizer failed, storing null summary",
				"externalJobId", p.ExternalID, "err", err)
		} else if s != "" {
			summary = &s
		}
	}

	l := model.JobListing{
		ExternalJobID:    p.ExternalID,
		Title:            p.Title,
		Company:          p.Company,
		Location:         p.Location,
		EmploymentType:   p.EmploymentType,
		Description:      p.Description,
		Summary:          summary,
		ApplyLink:        p.ApplyLink,
		IsRemote:         p.IsRemote,
		PostedDate:       p.PostedAt,
		PostedAt:         postedAt,
		SalaryMin:        p.SalaryMin,
		SalaryMax:        p.SalaryMax,
		Status:           model.StatusActive,
		ExpirationMethod: method,
		ExpiresAt:        expiresAt,
	}

	id, inserted, err := m.store.Upsert(ctx, l)
	if err != nil {
		return model.JobListing{}, false, err
	}
	l.ID = id

	if m.recalc != nil && l.Description != "" {
		if err := m.recalc.RecalculateOne(ctx, id, l.Title, l.Description); err != nil {
			slog.Warn("single-listing match recalculation failed",
				"jobId", id, "err", err)
		}
	}

	return l, inserted, nil
}

// MarkExpired runs the bulk expiration sweep and returns the number of
// listings transitioned. Safe to call on a schedule.
func (m *Manager) MarkExpired(ctx context.Context) (int64, error) {
	count, err := m.store.MarkExpired(ctx, m.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark expired: %w", err)
	}
	return count, nil
}

func (m *Manager) lock(externalID string) func() {
	v, _ := m.locks.LoadOrStore(externalID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// computeExpiry derives the expiration method and timestamp. The posted
// date is preferred; an unparseable value is logged and falls through to
// the ingestion time; a zero ingestion time yields a never-expiring row.
func computeExpiry(externalID, rawPosted string, createdAt time.Time) (postedAt *time.Time, method string, expiresAt *time.Time) {
	if rawPosted != "" {
		for _, layout := range postedDateLayouts {
			if t, err := time.Parse(layout, rawPosted); err == nil {
				t = t.UTC()
				exp := t.Add(ExpiryWindow)
				return &t, model.ExpireByPostedDate, &exp
			}
		}
		slog.Warn("unparseable posted date, falling back to ingestion time",
			"externalJobId", externalID, "postedDate", rawPosted)
	}

	if !createdAt.IsZero() {
		exp := createdAt.Add(ExpiryWindow)
		return nil, model.ExpireByCreatedAt, &exp
	}

	return nil, model.ExpireNever, nil
}
