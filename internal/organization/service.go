package organization

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fanaf-events/backoffice/internal/eventapi"
)

// maxPages caps the organization pagination loop.
const maxPages = 100

// API is the slice of the remote client this service depends on.
type API interface {
	GetOrganizations(ctx context.Context, p eventapi.ListParams) (eventapi.Page, error)
}

// Service caches the organization list and serves id and name lookups.
type Service struct {
	api     API
	perPage int

	mu     sync.RWMutex
	cache  []Organization
	byID   map[string]Organization
	byName map[string]string
}

// NewService creates an organization service. perPage below 1 falls back
// to 100.
func NewService(api API, perPage int) *Service {
	if perPage < 1 {
		perPage = 100
	}
	return &Service{api: api, perPage: perPage}
}

// LoadOrganizations returns the cached organization list, fetching it from
// the backend when the cache is empty or force is set. Page-level failures
// end the loop early; whatever was accumulated is kept.
func (s *Service) LoadOrganizations(ctx context.Context, force bool) []Organization {
	s.mu.RLock()
	if !force && len(s.cache) > 0 {
		cached := s.cache
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	orgs := s.fetchAll(ctx)

	byID := make(map[string]Organization, len(orgs))
	byName := make(map[string]string, len(orgs))
	deduped := orgs[:0]
	for _, org := range orgs {
		if org.ID == "" {
			continue
		}
		if _, dup := byID[org.ID]; dup {
			continue
		}
		byID[org.ID] = org
		if org.Nom != "" {
			if _, taken := byName[org.Nom]; !taken {
				byName[org.Nom] = org.ID
			}
		}
		deduped = append(deduped, org)
	}

	s.mu.Lock()
	s.cache = deduped
	s.byID = byID
	s.byName = byName
	s.mu.Unlock()

	slog.Info("organizations loaded", "count", len(deduped))
	return deduped
}

// fetchAll pages through the organizations endpoint.
func (s *Service) fetchAll(ctx context.Context) []Organization {
	perPage := s.perPage
	fetched := 0
	var out []Organization

	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		page, err := s.api.GetOrganizations(ctx, eventapi.ListParams{PerPage: perPage, Page: pageNum})
		if err != nil {
			slog.Warn("organization page fetch failed, keeping partial results",
				"page", pageNum,
				"error", err,
			)
			break
		}

		for _, rec := range page.Records {
			out = append(out, mapOrganization(rec))
		}

		n := len(page.Records)
		fetched += n

		if pag := page.Pagination; pag != nil {
			if pag.PerPage > 0 && pag.PerPage != perPage {
				perPage = pag.PerPage
			}
			if pag.Total > 0 && fetched >= pag.Total {
				break
			}
			if pag.LastPage > 0 && pageNum >= pag.LastPage {
				break
			}
			if n == 0 {
				break
			}
		} else if n < perPage {
			break
		}
	}

	return out
}

// EnsureLoaded loads the directory if the cache is empty. It reports an
// error only when a load was attempted and produced nothing, so callers can
// decide whether to skip organization-dependent work.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := len(s.cache) > 0
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	if orgs := s.LoadOrganizations(ctx, false); len(orgs) == 0 {
		return fmt.Errorf("organization directory is empty after load")
	}
	return nil
}

// Count returns the number of cached organizations.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// HasID reports whether an organization with the given id is cached.
func (s *Service) HasID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// IDForName resolves an exact, case-sensitive organization name to its id.
func (s *Service) IDForName(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[name]
	return id, ok
}

// ClearCache drops the cached directory and lookup indexes.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache = nil
	s.byID = nil
	s.byName = nil
	s.mu.Unlock()
}
