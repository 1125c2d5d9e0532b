// Package api implements the HTTP surface of the job service.
//
// Routes:
//
//	GET    /health                     → liveness probe
//	GET    /api/jobs                   → filtered listing query
//	GET    /api/jobs/count             → count of displayable active jobs
//	GET    /api/jobs/feed              → paginated feed (saved jobs hidden)
//	GET    /api/jobs/search            → fetch from provider and upsert
//	POST   /api/jobs/mark-expired      → expire listings past their window
//	GET    /api/matches                → cached scores for the current resume
//	GET    /api/resume                 → current resume metadata
//	POST   /api/resume                 → multipart upload, rescore all jobs
//	GET    /api/saved-jobs             → list saved jobs
//	POST   /api/saved-jobs             → save a job
//	PATCH  /api/saved-jobs/{id}        → update status/notes
//	DELETE /api/saved-jobs/{id}        → remove a saved job
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/EthanJ-prog/jobTracker/internal/ingest"
	"github.com/EthanJ-prog/jobTracker/internal/listing"
	"github.com/EthanJ-prog/jobTracker/internal/matchcache"
	"github.com/EthanJ-prog/jobTracker/internal/pagefeed"
	"github.com/EthanJ-prog/jobTracker/internal/resume"
	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

// Version is reported by /health.
const Version = "1.0.0"

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	listings  *listing.Store
	lifecycle *listing.Manager
	worker    *ingest.Worker
	feed      *pagefeed.Assembler
	resumes   *resume.Store
	extractor resume.TextExtractor
	matches   *matchcache.Store
	cache     *matchcache.Cache
	saved     *tracker.Service
	rdb       *redis.Client // optional event publishing
}

// NewHandler returns a configured Handler.
func NewHandler(
	listings *listing.Store,
	lifecycle *listing.Manager,
	worker *ingest.Worker,
	feed *pagefeed.Assembler,
	resumes *resume.Store,
	extractor resume.TextExtractor,
	matches *matchcache.Store,
	cache *matchcache.Cache,
	saved *tracker.Service,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		listings:  listings,
		lifecycle: lifecycle,
		worker:    worker,
		feed:      feed,
		resumes:   resumes,
		extractor: extractor,
		matches:   matches,
		cache:     cache,
		saved:     saved,
		rdb:       rdb,
	}
}

// RegisterRoutes mounts all service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/api/jobs", h.handleJobs)
	mux.HandleFunc("/api/jobs/count", h.handleJobCount)
	mux.HandleFunc("/api/jobs/feed", h.handleFeed)
	mux.HandleFunc("/api/jobs/search", h.handleSearch)
	mux.HandleFunc("/api/jobs/mark-expired", h.handleMarkExpired)
	mux.HandleFunc("/api/matches", h.handleMatches)
	mux.HandleFunc("/api/resume", h.handleResume)
	mux.HandleFunc("/api/saved-jobs", h.handleSavedJobs)
	mux.HandleFunc("/api/saved-jobs/", h.handleSavedJobByID)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "jobtracker",
		"version": Version,
	})
}

// handleJobs handles GET /api/jobs
func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.listJobs(w, r)
}

// handleJobCount handles GET /api/jobs/count
func (h *Handler) handleJobCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.countJobs(w, r)
}

// handleFeed handles GET /api/jobs/feed
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.feedPage(w, r)
}

// handleSearch handles GET /api/jobs/search
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.searchJobs(w, r)
}

// handleMarkExpired handles POST /api/jobs/mark-expired
func (h *Handler) handleMarkExpired(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.markExpired(w, r)
}

// handleMatches handles GET /api/matches
func (h *Handler) handleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.listMatches(w, r)
}

// handleResume handles GET|POST /api/resume
func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getResume(w, r)
	case http.MethodPost:
		h.uploadResume(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSavedJobs handles GET|POST /api/saved-jobs
func (h *Handler) handleSavedJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSavedJobs(w, r)
	case http.MethodPost:
		h.createSavedJob(w, r)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleSavedJobByID handles PATCH|DELETE /api/saved-jobs/{id}
func (h *Handler) handleSavedJobByID(w http.ResponseWriter, r *http.Request) {
	// Parse /api/saved-jobs/{id}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] == "" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	id := parts[2]

	switch r.Method {
	case http.MethodPatch:
		h.updateSavedJob(w, r, id)
	case http.MethodDelete:
		h.deleteSavedJob(w, r, id)
	default:
		jsonError(w, fmt.Sprintf("method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	}
}
