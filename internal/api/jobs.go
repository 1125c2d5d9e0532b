package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/EthanJ-prog/jobTracker/internal/listing"
	"github.com/EthanJ-prog/jobTracker/internal/provider"
)

// ─── Job listing handlers ─────────────────────────────────────────────────────

// listJobs runs a filtered query over stored listings.
//
// Query params: q, employment_type, is_remote, location, salary_min,
// posted_date (day|3days|week|month), status, limit, offset.
func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := listing.Filters{
		Query:          q.Get("q"),
		EmploymentType: q.Get("employment_type"),
		Location:       q.Get("location"),
		Status:         q.Get("status"),
	}

	if v := q.Get("is_remote"); v != "" {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "is_remote must be a boolean", http.StatusBadRequest)
			return
		}
		f.IsRemote = &remote
	}
	if v := q.Get("salary_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			jsonError(w, "salary_min must be a number", http.StatusBadRequest)
			return
		}
		f.SalaryMin = &min
	}
	if v := q.Get("posted_date"); v != "" {
		since, ok := postedSince(v, time.Now().UTC())
		if !ok {
			jsonError(w, "posted_date must be one of day, 3days, week, month", http.StatusBadRequest)
			return
		}
		f.PostedSince = &since
	}
	f.Limit = intParam(q.Get("limit"), 0)
	f.Offset = intParam(q.Get("offset"), 0)

	jobs, count, err := h.listings.List(r.Context(), f)
	if err != nil {
		log.Printf("[api] listJobs query error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"jobs":  jobs,
		"count": count,
	})
}

// countJobs reports the number of active listings not hidden by a saved
// job, plus the overall status distribution.
func (h *Handler) countJobs(w http.ResponseWriter, r *http.Request) {
	total, err := h.listings.CountDisplayable(r.Context())
	if err != nil {
		log.Printf("[api] countJobs query error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	stats, err := h.listings.StatusStats(r.Context())
	if err != nil {
		log.Printf("[api] countJobs stats error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"total":    total,
		"statuses": stats,
	})
}

// feedPage assembles one stable page of the active feed with saved
// jobs filtered out.
func (h *Handler) feedPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("page_size"), 10)

	jobs, err := h.feed.Page(r.Context(), page, pageSize)
	if err != nil {
		log.Printf("[api] feedPage error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	total, err := h.listings.CountDisplayable(r.Context())
	if err != nil {
		log.Printf("[api] feedPage count error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"jobs":     jobs,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

// searchJobs pulls fresh postings from the provider and upserts them.
func (h *Handler) searchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}
	page := intParam(q.Get("page"), 1)
	country := q.Get("country")
	datePosted := q.Get("date_posted")

	jobs, out, err := h.worker.Run(r.Context(), query, page, country, datePosted)
	if err != nil {
		if errors.Is(err, provider.ErrUnavailable) {
			log.Printf("[api] searchJobs provider error: %v", err)
			jsonError(w, "search provider unavailable", http.StatusBadGateway)
			return
		}
		log.Printf("[api] searchJobs error: %v", err)
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"jobs":    jobs,
		"outcome": out,
	})
}

// markExpired sweeps listings whose expiry window has passed.
func (h *Handler) markExpired(w http.ResponseWriter, r *http.Request) {
	count, err := h.lifecycle.MarkExpired(r.Context())
	if err != nil {
		log.Printf("[api] markExpired error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	if count > 0 && h.rdb != nil {
		event, _ := json.Marshal(map[string]any{
			"type":         "EVENT_JOBS_EXPIRED",
			"expiredCount": count,
		})
		if err := h.rdb.Publish(r.Context(), "EVENT_JOBS_EXPIRED", event).Err(); err != nil {
			log.Printf("[api] publish EVENT_JOBS_EXPIRED failed: %v", err)
		}
	}

	jsonOK(w, map[string]int64{"expired_count": count})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// postedSince maps a posted_date bucket onto a cutoff timestamp.
func postedSince(bucket string, now time.Time) (time.Time, bool) {
	switch bucket {
	case "day":
		return now.Add(-24 * time.Hour), true
	case "3days":
		return now.Add(-3 * 24 * time.Hour), true
	case "week":
		return now.Add(-7 * 24 * time.Hour), true
	case "month":
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
