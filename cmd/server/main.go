// jobTracker server
//
// Job listing lifecycle and resume matching service:
//   - ingests postings from the search provider on a schedule
//   - applies the 14-day expiry window (active → expired, never back)
//   - scores every active listing against the current resume
//   - serves a stable paginated feed with saved jobs filtered out
//
// Publishes EVENT_JOBS_INGESTED, EVENT_JOBS_EXPIRED, EVENT_RESUME_UPLOADED
// and EVENT_JOB_SAVED to Redis for downstream consumers.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EthanJ-prog/jobTracker/internal/api"
	"github.com/EthanJ-prog/jobTracker/internal/config"
	"github.com/EthanJ-prog/jobTracker/internal/db"
	"github.com/EthanJ-prog/jobTracker/internal/ingest"
	"github.com/EthanJ-prog/jobTracker/internal/listing"
	"github.com/EthanJ-prog/jobTracker/internal/match"
	"github.com/EthanJ-prog/jobTracker/internal/matchcache"
	"github.com/EthanJ-prog/jobTracker/internal/pagefeed"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
	"github.com/EthanJ-prog/jobTracker/internal/resume"
	"github.com/EthanJ-prog/jobTracker/internal/scheduler"
	"github.com/EthanJ-prog/jobTracker/internal/summarizer"
	"github.com/EthanJ-prog/jobTracker/internal/taxonomy"
	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[server] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[server] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[server] PostgreSQL connected ✓")

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("[server] Migrations: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[server] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[server] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[server] Redis connected ✓")

	// ── Domain wiring ────────────────────────────────────────────────────────
	scorer := match.NewScorer(match.NewExtractor(taxonomy.New()))

	listings := listing.NewStore(pool)
	resumes := resume.NewStore(pool)
	matches := matchcache.NewStore(pool)
	savedStore := tracker.NewStore(pool)

	cache := matchcache.New(matches, listings, resumes, scorer)

	var summaries listing.Summarizer
	if sc := summarizer.NewClient(cfg.SummarizerURL, cfg.SummarizerModel); sc.Enabled() {
		summaries = sc
	} else {
		log.Println("[server] Summarizer not configured — listings will store null summaries")
	}
	lifecycle := listing.NewManager(listings, summaries, cache)

	search := provider.NewClient(cfg.SearchAPIKey, cfg.SearchCountry)
	worker := ingest.NewWorker(search, lifecycle, rdb)
	feed := pagefeed.New(listings, savedStore)
	saved := tracker.NewService(savedStore, rdb)

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(worker, lifecycle, search, cfg.IngestQueries, cfg.SearchCountry, cfg.IngestIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[server] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	h := api.NewHandler(listings, lifecycle, worker, feed, resumes, resume.Extractor{}, matches, cache, saved, rdb)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[server] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[server] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] Shutdown error: %v", err)
	}
	log.Println("[server] Stopped.")
}
