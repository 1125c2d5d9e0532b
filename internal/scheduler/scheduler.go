// Package scheduler wires up the cron jobs that periodically ingest fresh
// postings and expire listings past their window.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/EthanJ-prog/jobTracker/internal/ingest"
	"github.com/EthanJ-prog/jobTracker/internal/listing"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

// Scheduler wraps robfig/cron and manages the ingest and expiry loops.
type Scheduler struct {
	cron      *cron.Cron
	worker    *ingest.Worker
	lifecycle *listing.Manager
	search    *provider.Client
	queries   []string
	country   string
	spec      string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler whose ingest cycle fires every intervalHours hours.
func New(worker *ingest.Worker, lifecycle *listing.Manager, search *provider.Client, queries []string, country string, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		worker:    worker,
		lifecycle: lifecycle,
		search:    search,
		queries:   queries,
		country:   country,
		spec:      fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the jobs and starts the scheduler. Also runs one expiry
// sweep immediately so stale listings don't linger until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.runIngest(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc ingest: %w", err)
	}

	if _, err := s.cron.AddFunc("@every 1h", func() {
		s.runExpiry(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc expiry: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — ingest spec: %s, expiry spec: @every 1h", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runExpiry(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runIngest pulls one page of postings for each configured query.
func (s *Scheduler) runIngest(ctx context.Context) {
	if !s.search.HasCredentials() {
		log.Println("[scheduler] No search API key configured — skipping ingest cycle")
		return
	}
	if len(s.queries) == 0 {
		log.Println("[scheduler] No ingest queries configured — nothing to fetch")
		return
	}

	log.Printf("[scheduler] Ingest cycle started for %d quer(ies)", len(s.queries))
	out := s.worker.RunAll(ctx, s.queries, s.country, "week")
	log.Printf("[scheduler] Ingest cycle complete: fetched=%d upserted=%d inserted=%d failed=%d skipped=%d",
		out.Fetched, out.Upserted, out.Inserted, out.Failed, out.Skipped)
}

// runExpiry marks listings whose expiry window has passed.
func (s *Scheduler) runExpiry(ctx context.Context) {
	count, err := s.lifecycle.MarkExpired(ctx)
	if err != nil {
		log.Printf("[scheduler] MarkExpired error: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[scheduler] Expiry sweep marked %d listing(s) expired", count)
	}
}
