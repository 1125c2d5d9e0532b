package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/EthanJ-prog/jobTracker/internal/model"
	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

// ─── Saved job handlers ───────────────────────────────────────────────────────

func (h *Handler) listSavedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.saved.List(r.Context())
	if err != nil {
		log.Printf("[api] listSavedJobs query error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, jobs)
}

func (h *Handler) createSavedJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Company string `json:"company"`
		Date    string `json:"date"`
		Link    string `json:"link"`
		Notes   string `json:"notes"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Company) == "" {
		jsonError(w, "title and company are required", http.StatusBadRequest)
		return
	}

	sj, err := h.saved.Save(r.Context(), model.SavedJob{
		Title:   body.Title,
		Company: body.Company,
		Date:    body.Date,
		Link:    body.Link,
		Notes:   body.Notes,
		Status:  body.Status,
	})
	if err != nil {
		log.Printf("[api] createSavedJob error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonWith(w, http.StatusCreated, sj)
}

func (h *Handler) updateSavedJob(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Status == nil && body.Notes == nil {
		jsonError(w, "body must contain status or notes", http.StatusBadRequest)
		return
	}

	sj, err := h.saved.Update(r.Context(), id, body.Status, body.Notes)
	if err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			jsonError(w, "saved job not found", http.StatusNotFound)
			return
		}
		log.Printf("[api] updateSavedJob error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, sj)
}

func (h *Handler) deleteSavedJob(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.saved.Delete(r.Context(), id); err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			jsonError(w, "saved job not found", http.StatusNotFound)
			return
		}
		log.Printf("[api] deleteSavedJob error: %v", err)
		jsonError(w, "database error", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]string{"deleted": id})
}
