package tracker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/EthanJ-prog/jobTracker/internal/model"
)

// Service wraps the store with event publishing. It has no dependency on
// net/http — any transport can use it.
type Service struct {
	store *Store
	rdb   *redis.Client
}

// NewService returns a configured Service. rdb may be nil.
func NewService(store *Store, rdb *redis.Client) *Service {
	return &Service{store: store, rdb: rdb}
}

// List returns all saved jobs, newest first.
func (s *Service) List(ctx context.Context) ([]model.SavedJob, error) {
	return s.store.List(ctx)
}

// Save creates a tracker entry. Once stored with saved status, the entry's
// (title, company) immediately hides matching listings from the feed.
func (s *Service) Save(ctx context.Context, sj model.SavedJob) (model.SavedJob, error) {
	out, err := s.store.Create(ctx, sj)
	if err != nil {
		return model.SavedJob{}, err
	}

	// Publish for SSE forwarding (non-fatal). Only saved-status entries
	// are "saved job" events; direct creations in later workflow states
	// are not.
	if s.rdb != nil && IsSaved(out.Status) {
		event, _ := json.Marshal(map[string]string{
			"type":    "EVENT_JOB_SAVED",
			"id":      out.ID,
			"title":   out.Title,
			"company": out.Company,
		})
		if err := s.rdb.Publish(ctx, "EVENT_JOB_SAVED", event).Err(); err != nil {
			slog.Warn("publish EVENT_JOB_SAVED failed", "err", err)
		}
	}
	return out, nil
}

// Update changes status and/or notes on an entry.
func (s *Service) Update(ctx context.Context, id string, status, notes *string) (model.SavedJob, error) {
	if status != nil {
		normalized := NormalizeStatus(*status)
		status = &normalized
	}
	return s.store.Update(ctx, id, status, notes)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
