package registration

// service.go owns the participant cache.
//
// The cache holds the last successfully loaded, deduplicated list together
// with the category-set key it was loaded for. Reloads for the same key are
// collapsed through singleflight so two dashboards refreshing at once cannot
// run overlapping fetch passes against the backend.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// OrganizationCache is the collaborating organization service: loaded on
// demand before the cross-reference pass and cleared together with the
// participant cache.
type OrganizationCache interface {
	OrganizationDirectory
	EnsureLoaded(ctx context.Context) error
	ClearCache()
}

// Service loads, normalizes and caches participants.
type Service struct {
	api     RegistrationAPI
	orgs    OrganizationCache
	perPage int

	flight singleflight.Group

	mu        sync.Mutex
	cached    []Participant
	cachedKey string
}

// NewService creates a participant service. perPage is the page size
// requested from the backend; values below 1 fall back to 100.
func NewService(api RegistrationAPI, orgs OrganizationCache, perPage int) *Service {
	if perPage < 1 {
		perPage = 100
	}
	return &Service{api: api, orgs: orgs, perPage: perPage}
}

// LoadParticipants returns the participant list for the requested
// categories. A nil or full category set is equivalent to loading
// everything. The cached list is served unless force is set or the
// requested category set differs from the cached one.
//
// Failures never propagate: the previous cache contents (possibly empty)
// are returned instead, so callers treat short or empty results as the
// normal unhappy path.
func (s *Service) LoadParticipants(ctx context.Context, categories []Category, force bool) []Participant {
	key := categoryKey(categories)

	s.mu.Lock()
	if !force && len(s.cached) > 0 && s.cachedKey == key {
		cached := s.cached
		s.mu.Unlock()
		slog.Debug("participant cache hit", "categories", key, "count", len(cached))
		return cached
	}
	s.mu.Unlock()

	v, err, shared := s.flight.Do(key, func() (any, error) {
		return s.reload(ctx, categories, key), nil
	})
	if err != nil {
		// The reload path swallows its own failures; this guards the
		// singleflight contract only.
		slog.Error("participant load failed, serving previous cache", "categories", key, "error", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.cached
	}
	if shared {
		slog.Debug("participant load shared with concurrent caller", "categories", key)
	}
	return v.([]Participant)
}

// reload runs the full pipeline: fetch, map, deduplicate, load
// organizations, cross-reference, store.
func (s *Service) reload(ctx context.Context, categories []Category, key string) []Participant {
	session := uuid.New().String()
	logger := slog.With("load_session", session, "categories", key)
	start := time.Now()

	parts := s.FetchRegistrations(ctx, categories)
	raw := len(parts)
	parts = Deduplicate(parts)

	if err := s.orgs.EnsureLoaded(ctx); err != nil {
		logger.Warn("organizations unavailable, cross-reference will be skipped", "error", err)
	}
	crossReference(parts, s.orgs)

	s.mu.Lock()
	s.cached = parts
	s.cachedKey = key
	s.mu.Unlock()

	logger.Info("participants loaded",
		"raw", raw,
		"deduplicated", len(parts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return parts
}

// Cached returns the current cache contents without triggering a load.
func (s *Service) Cached() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}

// ClearCache resets the participant cache and the collaborating
// organization cache.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.cachedKey = ""
	s.mu.Unlock()
	s.orgs.ClearCache()
	slog.Info("participant and organization caches cleared")
}
