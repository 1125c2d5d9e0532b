// Package pagefeed assembles stable pages of unsaved active listings.
//
// Saved jobs are filtered client-side against a live (title, company)
// membership set rather than excluded in the backing query, so a listing
// disappears from the feed the instant it is saved. Naive LIMIT/OFFSET over
// the raw table would silently shrink pages as users save jobs; instead the
// assembler over-fetches batches and filters, keeping page size stable at
// the cost of extra round trips.
package pagefeed

import (
	"context"
	"fmt"
	"strings"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

const (
	// batchMultiplier sizes each fetch relative to the page so the common
	// case is a single round trip.
	batchMultiplier = 5
	// maxFetches bounds the loop against a pathological save-everything
	// feed.
	maxFetches = 20
)

// ListingSource supplies active listings ordered by ingestion time
// descending.
type ListingSource interface {
	ActiveBatch(ctx context.Context, limit, offset int) ([]model.JobListing, error)
}

// SavedSource supplies the tracker entries currently in saved status.
type SavedSource interface {
	ListByStatus(ctx context.Context, status string) ([]model.SavedJob, error)
}

// Assembler produces feed pages.
type Assembler struct {
	listings ListingSource
	saved    SavedSource
}

// New constructs an Assembler.
func New(listings ListingSource, saved SavedSource) *Assembler {
	return &Assembler{listings: listings, saved: saved}
}

// Page returns page (1-based) of pageSize unsaved active listings. The
// membership set is resolved once at the start of the call.
func (a *Assembler) Page(ctx context.Context, page, pageSize int) ([]model.JobListing, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	savedSet, err := a.savedSet(ctx)
	if err != nil {
		return nil, err
	}

	need := page * pageSize
	requestSize := pageSize * batchMultiplier

	var collected []model.JobListing
	offset := 0
	for fetches := 0; len(collected) < need && fetches < maxFetches; fetches++ {
		batch, err := a.listings.ActiveBatch(ctx, requestSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch batch at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}
		for _, l := range batch {
			if !savedSet[dedupKey(l.Title, l.Company)] {
				collected = append(collected, l)
			}
		}
		offset += requestSize
		if len(batch) < requestSize {
			break
		}
	}

	start := (page - 1) * pageSize
	if start >= len(collected) {
		return []model.JobListing{}, nil
	}
	end := start + pageSize
	if end > len(collected) {
		end = len(collected)
	}
	return collected[start:end], nil
}

func (a *Assembler) savedSet(ctx context.Context) (map[string]bool, error) {
	saved, err := a.saved.ListByStatus(ctx, tracker.StatusSaved)
	if err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}
	set := make(map[string]bool, len(saved))
	for _, s := range saved {
		set[dedupKey(s.Title, s.Company)] = true
	}
	return set, nil
}

// dedupKey normalizes the (title, company) identity used to match tracker
// entries against live listings. Two distinct postings with identical
// title+company collapse deliberately, for compatibility with existing
// saved data.
func dedupKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
}
