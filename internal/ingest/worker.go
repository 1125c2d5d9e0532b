// Package ingest runs ingestion cycles: fetch postings from the search
// provider and feed them through the listing lifecycle one by one.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

// Searcher is the external search provider contract.
type Searcher interface {
	Query(ctx context.Context, text string, page int, country, datePosted string) ([]provider.Posting, error)
}

// Upserter is the listing lifecycle contract the worker feeds into.
type Upserter interface {
	Upsert(ctx context.Context, p provider.Posting) (model.JobListing, bool, error)
}

// Outcome aggregates one ingestion run. Per-row failures are isolated:
// one bad posting is logged and skipped, the rest of the batch proceeds.
type Outcome struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// Worker runs ingestion cycles against the provider.
type Worker struct {
	search    Searcher
	lifecycle Upserter
	rdb       *redis.Client // optional event publishing
}

// NewWorker constructs a Worker. rdb may be nil.
func NewWorker(search Searcher, lifecycle Upserter, rdb *redis.Client) *Worker {
	return &Worker{search: search, lifecycle: lifecycle, rdb: rdb}
}

// Run executes one ingestion cycle for a single query/page. A provider
// failure aborts the whole cycle; upsert failures only skip that posting.
func (w *Worker) Run(ctx context.Context, query string, page int, country, datePosted string) ([]model.JobListing, Outcome, error) {
	postings, err := w.search.Query(ctx, query, page, country, datePosted)
	if err != nil {
		return nil, Outcome{}, fmt.Errorf("query %q page %d: %w", query, page, err)
	}

	out := Outcome{Fetched: len(postings)}
	listings := make([]model.JobListing, 0, len(postings))

	for _, p := range postings {
		if p.ExternalID == "" {
			out.Skipped++
			continue
		}
		l, inserted, err := w.lifecycle.Upsert(ctx, p)
		if err != nil {
			log.Printf("[ingest] upsert %q failed: %v — continuing", p.ExternalID, err)
			out.Failed++
			continue
		}
		if inserted {
			out.Inserted++
		}
		out.Upserted++
		listings = append(listings, l)
	}

	w.publish(ctx, query, out)
	return listings, out, nil
}

// RunAll runs one cycle per query, continuing past per-query failures, and
// returns the summed outcome. Used by the scheduler.
func (w *Worker) RunAll(ctx context.Context, queries []string, country, datePosted string) Outcome {
	var total Outcome
	for _, q := range queries {
		_, out, err := w.Run(ctx, q, 1, country, datePosted)
		if err != nil {
			log.Printf("[ingest] cycle for %q failed: %v — continuing", q, err)
			continue
		}
		total.Fetched += out.Fetched
		total.Upserted += out.Upserted
		total.Inserted += out.Inserted
		total.Failed += out.Failed
		total.Skipped += out.Skipped
	}
	return total
}

// publish emits EVENT_JOBS_INGESTED for SSE forwarding. Non-fatal.
func (w *Worker) publish(ctx context.Context, query string, out Outcome) {
	if w.rdb == nil || out.Upserted == 0 {
		return
	}
	event, _ := json.Marshal(map[string]any{
		"type":     "EVENT_JOBS_INGESTED",
		"query":    query,
		"fetched":  out.Fetched,
		"upserted": out.Upserted,
	})
	if err := w.rdb.Publish(ctx, "EVENT_JOBS_INGESTED", event).Err(); err != nil {
		slog.Warn("publish EVENT_JOBS_INGESTED failed", "err", err)
	}
}
