package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/resume"
)

// maxResumeBytes bounds the multipart upload size.
const maxResumeBytes = 10 << 20

// ─── Resume handlers ──────────────────────────────────────────────────────────

func (h *Handler) getResume(w http.ResponseWriter, r *http.Request) {
	res, err := h.resumes.Current(r.Context())
	if err != nil {
		if errors.Is(err, resume.ErrNoResume) {
			// A missing resume is an explicit null, not an error.
			jsonOK(w, nil)
			return
		}
		log.Printf("[api] getResume error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, res)
}

// uploadResume accepts a PDF or DOCX under the multipart field "resume",
// stores its extracted text and rescores every active listing against it.
func (h *Handler) uploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		jsonError(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		jsonError(w, `multipart field "resume" is required`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := resume.MimeFromFilename(header.Filename)
	if mimeType == "" {
		jsonError(w, "only PDF and DOCX resumes are supported", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		log.Printf("[api] uploadResume read error: %v", err)
		jsonError(w, "could not read upload", http.StatusInternalServerError)
		return
	}

	text, err := h.extractor.Extract(data, mimeType)
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedType) {
			jsonError(w, "only PDF and DOCX resumes are supported", http.StatusBadRequest)
			return
		}
		log.Printf("[api] uploadResume extract error: %v", err)
		jsonError(w, "could not extract text from file", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, "no text could be extracted from file", http.StatusBadRequest)
		return
	}

	res, err := h.resumes.Upsert(r.Context(), header.Filename, mimeType, text)
	if err != nil {
		log.Printf("[api] uploadResume store error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	// Rescore against the id we just stored, not a re-resolved current.
	summary, err := h.cache.RecalculateAll(r.Context(), res.ID, text)
	if err != nil {
		log.Printf("[api] uploadResume rescore error: %v", err)
		jsonError(w, "match recalculation failed", http.StatusInternalServerError)
		return
	}

	if h.rdb != nil {
		event, _ := json.Marshal(map[string]any{
			"type":          "EVENT_RESUME_UPLOADED",
			"resumeId":      res.ID,
			"filename":      res.Filename,
			"jobsProcessed": summary.JobsProcessed,
		})
		if err := h.rdb.Publish(r.Context(), "EVENT_RESUME_UPLOADED", event).Err(); err != nil {
			log.Printf("[api] publish EVENT_RESUME_UPLOADED failed: %v", err)
		}
	}

	jsonOK(w, map[string]any{
		"resume":        res,
		"jobsProcessed": summary.JobsProcessed,
		"averageScore":  summary.AverageScore,
	})
}

// listMatches returns the cached scores for the current resume. A missing
// resume is an empty result, never an error.
func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	res, err := h.resumes.Current(r.Context())
	if err != nil {
		if errors.Is(err, resume.ErrNoResume) {
			jsonOK(w, map[string]any{
				"matches": map[int64]model.JobMatch{},
				"resume":  nil,
			})
			return
		}
		log.Printf("[api] listMatches resume error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	matches, err := h.matches.MatchesFor(r.Context(), res.ID)
	if err != nil {
		log.Printf("[api] listMatches query error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"matches": matches,
		"resume":  res,
	})
}
