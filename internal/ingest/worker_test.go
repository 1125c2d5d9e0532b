package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

type fakeSearcher struct {
	postings []provider.Posting
	err      error
}

func (f *fakeSearcher) Query(_ context.Context, _ string, _ int, _, _ string) ([]provider.Posting, error) {
	return f.postings, f.err
}

type fakeUpserter struct {
	failOn map[string]bool
	seen   []string
}

func (f *fakeUpserter) Upsert(_ context.Context, p provider.Posting) (model.JobListing, bool, error) {
	if f.failOn[p.ExternalID] {
		return model.JobListing{}, false, errors.New("write failed")
	}
	f.seen = append(f.seen, p.ExternalID)
	return model.JobListing{ExternalJobID: p.ExternalID}, true, nil
}

func TestRunProviderFailureAbortsCycle(t *testing.T) {
	w := NewWorker(&fakeSearcher{err: provider.ErrUnavailable}, &fakeUpserter{}, nil)

	_, _, err := w.Run(context.Background(), "go developer", 1, "us", "week")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestRunIsolatesPerRowFailures(t *testing.T) {
	search := &fakeSearcher{postings: []provider.Posting{
		{ExternalID: "a"},
		{ExternalID: "bad"},
		{ExternalID: "c"},
		{ExternalID: ""}, // no upsert key, skipped
	}}
	up := &fakeUpserter{failOn: map[string]bool{"bad": true}}
	w := NewWorker(search, up, nil)

	listings, out, err := w.Run(context.Background(), "q", 1, "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, up.seen)
	assert.Len(t, listings, 2)
	assert.Equal(t, Outcome{Fetched: 4, Upserted: 2, Inserted: 2, Failed: 1, Skipped: 1}, out)
}

func TestRunAllContinuesPastFailingQuery(t *testing.T) {
	calls := 0
	search := &flakySearcher{failFirst: true, calls: &calls}
	w := NewWorker(search, &fakeUpserter{}, nil)

	out := w.RunAll(context.Background(), []string{"first", "second"}, "us", "week")

	assert.Equal(t, 2, calls, "second query must still run")
	assert.Equal(t, 1, out.Upserted)
}

type flakySearcher struct {
	failFirst bool
	calls     *int
}

func (f *flakySearcher) Query(_ context.Context, _ string, _ int, _, _ string) ([]provider.Posting, error) {
	*f.calls++
	if f.failFirst && *f.calls == 1 {
		return nil, errors.New("boom")
	}
	return []provider.Posting{{ExternalID: "x"}}, nil
}
