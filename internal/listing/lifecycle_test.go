package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

// fakeStore records upserts and serves canned summary lookups.
type fakeStore struct {
	summary  *string
	exists   bool
	upserted []model.JobListing
	nextID   int64
}

func (f *fakeStore) ExistingSummary(_ context.Context, _ string) (*string, bool, error) {
	return f.summary, f.exists, nil
}

func (f *fakeStore) Upsert(_ context.Context, l model.JobListing) (int64, bool, error) {
	f.nextID++
	f.upserted = append(f.upserted, l)
	return f.nextID, !f.exists, nil
}

func (f *fakeStore) MarkExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeSummarizer counts invocations.
type fakeSummarizer struct {
	out   string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.out, f.err
}

// fakeRecalc records which job ids were recalculated.
type fakeRecalc struct {
	jobIDs []int64
}

func (f *fakeRecalc) RecalculateOne(_ context.Context, jobID int64, _, _ string) error {
	f.jobIDs = append(f.jobIDs, jobID)
	return nil
}

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestComputeExpiryFromPostedDate(t *testing.T) {
	created := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	postedAt, method, expiresAt := computeExpiry("j1", "2024-01-01T00:00:00Z", created)

	require.NotNil(t, postedAt)
	require.NotNil(t, expiresAt)
	assert.Equal(t, model.ExpireByPostedDate, method)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *postedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *expiresAt)
}

func TestComputeExpiryDateOnlyLayout(t *testing.T) {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, method, expiresAt := computeExpiry("j1", "2024-01-01", created)

	assert.Equal(t, model.ExpireByPostedDate, method)
	require.NotNil(t, expiresAt)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *expiresAt)
}

func TestComputeExpiryUnparseableFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	postedAt, method, expiresAt := computeExpiry("j1", "3 days ago", created)

	assert.Nil(t, postedAt)
	assert.Equal(t, model.ExpireByCreatedAt, method)
	require.NotNil(t, expiresAt)
	assert.Equal(t, created.Add(ExpiryWindow), *expiresAt)
}

func TestComputeExpiryNever(t *testing.T) {
	postedAt, method, expiresAt := computeExpiry("j1", "", time.Time{})

	assert.Nil(t, postedAt)
	assert.Nil(t, expiresAt)
	assert.Equal(t, model.ExpireNever, method)
}

func TestUpsertPreservesCachedSummary(t *testing.T) {
	cached := "previously generated summary"
	store := &fakeStore{summary: &cached, exists: true}
	sum := &fakeSummarizer{out: "fresh summary"}
	m := NewManager(store, sum, nil)

	l, inserted, err := m.Upsert(context.Background(), provider.Posting{
		ExternalID:  "job-1",
		Title:       "Engineer",
		Description: "Build things with Go",
	})

	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 0, sum.calls, "summarizer must not run when a summary is cached")
	require.NotNil(t, l.Summary)
	assert.Equal(t, cached, *l.Summary)
}

func TestUpsertRequestsSummaryForNewListing(t *testing.T) {
	store := &fakeStore{}
	sum := &fakeSummarizer{out: "a short summary"}
	m := NewManager(store, sum, nil)

	l, inserted, err := m.Upsert(context.Background(), provider.Posting{
		ExternalID:  "job-2",
		Description: "Python role",
	})

	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, 1, sum.calls)
	require.NotNil(t, l.Summary)
	assert.Equal(t, "a short summary", *l.Summary)
}

func TestUpsertSummarizerFailureDegradesToNull(t *testing.T) {
	store := &fakeStore{}
	sum := &fakeSummarizer{err: errors.New("model offline")}
	m := NewManager(store, sum, nil)

	l, _, err := m.Upsert(context.Background(), provider.Posting{
		ExternalID:  "job-3",
		Description: "some description",
	})

	require.NoError(t, err, "summarizer failure must not fail the upsert")
	assert.Nil(t, l.Summary)
	require.Len(t, store.upserted, 1)
}

func TestUpsertTriggersRecalcOnlyWithDescription(t *testing.T) {
	store := &fakeStore{}
	rc := &fakeRecalc{}
	m := NewManager(store, nil, rc)

	_, _, err := m.Upsert(context.Background(), provider.Posting{
		ExternalID: "with-desc", Description: "desc",
	})
	require.NoError(t, err)

	_, _, err = m.Upsert(context.Background(), provider.Posting{
		ExternalID: "no-desc",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, rc.jobIDs)
}

func TestUpsertSetsExpiryFields(t *testing.T) {
	store := &fakeStore{}
	m := NewManager(store, nil, nil)
	m.now = fixedNow(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	l, _, err := m.Upsert(context.Background(), provider.Posting{
		ExternalID: "job-4",
		PostedAt:   "not a date",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, l.Status)
	assert.Equal(t, model.ExpireByCreatedAt, l.ExpirationMethod)
	require.NotNil(t, l.ExpiresAt)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), *l.ExpiresAt)
}
