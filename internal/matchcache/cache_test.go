package matchcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanJ-prog/jobTracker/internal/match"
	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/resume"
	"github.com/EthanJ-prog/jobTracker/internal/taxonomy"
)

type memStore struct {
	deleted []string
	rows    map[string]map[int64]model.JobMatch
	failOn  map[int64]bool
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]map[int64]model.JobMatch)}
}

func (m *memStore) DeleteForResume(_ context.Context, resumeID string) error {
	m.deleted = append(m.deleted, resumeID)
	delete(m.rows, resumeID)
	return nil
}

func (m *memStore) Put(_ context.Context, jm model.JobMatch) error {
	if m.failOn[jm.JobID] {
		return errors.New("write failed")
	}
	if m.rows[jm.ResumeID] == nil {
		m.rows[jm.ResumeID] = make(map[int64]model.JobMatch)
	}
	m.rows[jm.ResumeID][jm.JobID] = jm
	return nil
}

type memListings struct {
	listings []model.JobListing
}

func (m *memListings) ActiveScorable(_ context.Context) ([]model.JobListing, error) {
	return m.listings, nil
}

type memResumes struct {
	current model.Resume
	err     error
}

func (m *memResumes) Current(_ context.Context) (model.Resume, error) {
	return m.current, m.err
}

func newCache(store MatchStore, listings ListingSource, resumes ResumeSource) *Cache {
	scorer := match.NewScorer(match.NewExtractor(taxonomy.New()))
	return New(store, listings, resumes, scorer)
}

func TestRecalculateAllWipesAndRescores(t *testing.T) {
	store := newMemStore()
	store.rows["res-1"] = map[int64]model.JobMatch{99: {JobID: 99}} // stale row
	listings := &memListings{listings: []model.JobListing{
		{ID: 1, Title: "Python Developer", Description: "Python and Docker required"},
		{ID: 2, Title: "Accountant", Description: "Excel bookkeeping"},
	}}
	c := newCache(store, listings, &memResumes{})

	sum, err := c.RecalculateAll(context.Background(), "res-1", "Python engineer with Docker")
	require.NoError(t, err)

	assert.Equal(t, []string{"res-1"}, store.deleted)
	assert.Equal(t, 2, sum.JobsProcessed)
	assert.Len(t, store.rows["res-1"], 2)
	assert.NotContains(t, store.rows["res-1"], int64(99))

	got := store.rows["res-1"][1]
	assert.Equal(t, "res-1", got.ResumeID)
	assert.Equal(t, 100, got.Breakdown.Technical)
}

func TestRecalculateAllIsolatesRowFailures(t *testing.T) {
	store := newMemStore()
	store.failOn = map[int64]bool{2: true}
	listings := &memListings{listings: []model.JobListing{
		{ID: 1, Description: "Python"},
		{ID: 2, Description: "Go"},
		{ID: 3, Description: "Python"},
	}}
	c := newCache(store, listings, &memResumes{})

	sum, err := c.RecalculateAll(context.Background(), "res-1", "Python developer")
	require.NoError(t, err)

	// Failed row is excluded from both count and average.
	assert.Equal(t, 2, sum.JobsProcessed)
	assert.Len(t, store.rows["res-1"], 2)
}

func TestRecalculateAllEmptyIsZero(t *testing.T) {
	c := newCache(newMemStore(), &memListings{}, &memResumes{})

	sum, err := c.RecalculateAll(context.Background(), "res-1", "whatever")
	require.NoError(t, err)
	assert.Equal(t, Summary{JobsProcessed: 0, AverageScore: 0}, sum)
}

func TestRecalculateAllAverageRounds(t *testing.T) {
	store := newMemStore()
	// Job 1 fully matches the resume's only technical skill; job 2 shares
	// nothing. The average of the two stored scores must be the rounded
	// mean, whatever the exact per-job weighting yields.
	listings := &memListings{listings: []model.JobListing{
		{ID: 1, Description: "Python needed"},
		{ID: 2, Description: "Rust and Kubernetes, senior, phd"},
	}}
	c := newCache(store, listings, &memResumes{})

	sum, err := c.RecalculateAll(context.Background(), "res-1", "Python")
	require.NoError(t, err)

	s1 := store.rows["res-1"][1].Score
	s2 := store.rows["res-1"][2].Score
	want := (s1 + s2 + 1) / 2 // rounded mean of two ints
	assert.Equal(t, want, sum.AverageScore)
}

func TestRecalculateOneNoResumeIsNoop(t *testing.T) {
	store := newMemStore()
	c := newCache(store, &memListings{}, &memResumes{err: resume.ErrNoResume})

	err := c.RecalculateOne(context.Background(), 7, "Title", "Python work")
	require.NoError(t, err)
	assert.Empty(t, store.rows)
}

func TestRecalculateOneEmptyDescriptionIsNoop(t *testing.T) {
	store := newMemStore()
	c := newCache(store, &memListings{}, &memResumes{current: model.Resume{ID: "res-1"}})

	err := c.RecalculateOne(context.Background(), 7, "Title", "")
	require.NoError(t, err)
	assert.Empty(t, store.rows)
}

func TestRecalculateOneReplacesPair(t *testing.T) {
	store := newMemStore()
	resumes := &memResumes{current: model.Resume{ID: "res-1", RawText: "Python developer"}}
	c := newCache(store, &memListings{}, resumes)

	require.NoError(t, c.RecalculateOne(context.Background(), 7, "Job", "Go required"))
	first := store.rows["res-1"][7].Score

	require.NoError(t, c.RecalculateOne(context.Background(), 7, "Job", "Python required"))
	second := store.rows["res-1"][7].Score

	assert.Len(t, store.rows["res-1"], 1)
	assert.Greater(t, second, first)
}
