package pagefeed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

type memListings struct {
	all     []model.JobListing
	fetches int
}

func (m *memListings) ActiveBatch(_ context.Context, limit, offset int) ([]model.JobListing, error) {
	m.fetches++
	if offset >= len(m.all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.all) {
		end = len(m.all)
	}
	return m.all[offset:end], nil
}

type memSaved struct {
	saved []model.SavedJob
}

func (m *memSaved) ListByStatus(_ context.Context, status string) ([]model.SavedJob, error) {
	var out []model.SavedJob
	for _, s := range m.saved {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func listings(n int) []model.JobListing {
	out := make([]model.JobListing, n)
	for i := range out {
		out[i] = model.JobListing{
			ID:      int64(i + 1),
			Title:   fmt.Sprintf("Job %d", i+1),
			Company: fmt.Sprintf("Company %d", i+1),
		}
	}
	return out
}

func TestPageFiltersSavedCaseAndWhitespaceInsensitive(t *testing.T) {
	src := &memListings{all: []model.JobListing{
		{ID: 1, Title: "engineer", Company: "ACME "},
		{ID: 2, Title: "Designer", Company: "Beta"},
	}}
	saved := &memSaved{saved: []model.SavedJob{
		{Title: "Engineer", Company: "Acme", Status: "saved"},
	}}
	a := New(src, saved)

	page, err := a.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].ID)
}

func TestPageIgnoresNonSavedStatuses(t *testing.T) {
	src := &memListings{all: []model.JobListing{
		{ID: 1, Title: "Engineer", Company: "Acme"},
	}}
	saved := &memSaved{saved: []model.SavedJob{
		{Title: "Engineer", Company: "Acme", Status: "applied"},
	}}
	a := New(src, saved)

	page, err := a.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 1, "only saved-status entries filter the feed")
}

func TestAllPagesCoverExactlyUnsavedListings(t *testing.T) {
	all := listings(47)
	saved := &memSaved{}
	for i := 0; i < 47; i += 5 { // save every 5th listing
		saved.saved = append(saved.saved, model.SavedJob{
			Title:   all[i].Title,
			Company: all[i].Company,
			Status:  "saved",
		})
	}
	a := New(&memListings{all: all}, saved)

	const pageSize = 7
	seen := make(map[int64]bool)
	total := 0
	for page := 1; ; page++ {
		got, err := a.Page(context.Background(), page, pageSize)
		require.NoError(t, err)
		if len(got) == 0 {
			break
		}
		for _, l := range got {
			assert.False(t, seen[l.ID], "listing %d appeared twice", l.ID)
			seen[l.ID] = true
		}
		total += len(got)
	}

	assert.Equal(t, 47-10, total, "every unsaved listing appears exactly once")
}

func TestPageStaysFullDespiteSavedHoles(t *testing.T) {
	all := listings(30)
	saved := &memSaved{}
	for i := 0; i < 8; i++ { // first 8 are all saved
		saved.saved = append(saved.saved, model.SavedJob{
			Title: all[i].Title, Company: all[i].Company, Status: "saved",
		})
	}
	a := New(&memListings{all: all}, saved)

	page, err := a.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 10, "page stays full even when the head of the feed is saved")
	assert.Equal(t, int64(9), page[0].ID)
}

func TestPageBeyondEndIsEmpty(t *testing.T) {
	a := New(&memListings{all: listings(3)}, &memSaved{})

	page, err := a.Page(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestFetchLoopIsBounded(t *testing.T) {
	// Everything is saved: the assembler never accumulates a page and must
	// stop at the safety cap instead of walking the table forever.
	all := listings(10000)
	saved := &memSaved{}
	for _, l := range all {
		saved.saved = append(saved.saved, model.SavedJob{
			Title: l.Title, Company: l.Company, Status: "saved",
		})
	}
	src := &memListings{all: all}
	a := New(src, saved)

	page, err := a.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.LessOrEqual(t, src.fetches, maxFetches)
}

func TestCommonCaseIsSingleFetch(t *testing.T) {
	src := &memListings{all: listings(100)}
	a := New(src, &memSaved{})

	page, err := a.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)
	assert.Equal(t, 1, src.fetches)
}
