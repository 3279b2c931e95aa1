package registration

// fetcher.go drives the paginated registration fetch.
//
// A proper subset of categories triggers one pagination loop per category;
// an empty or full set collapses into a single unfiltered pass so the same
// records are not fetched once per category. Page-level failures terminate
// only the loop they occur in: the fetch always returns whatever it managed
// to accumulate.

import (
	"context"
	"log/slog"

	"github.com/fanaf-events/backoffice/internal/eventapi"
)

// maxPagesPerCategory is the hard safety cap on pagination, guarding
// against backends that keep reporting more pages.
const maxPagesPerCategory = 100

// RegistrationAPI is the slice of the remote client the fetcher depends on.
type RegistrationAPI interface {
	GetRegistrations(ctx context.Context, p eventapi.RegistrationParams) (eventapi.Page, error)
}

// FetchRegistrations fetches and maps all registrations for the requested
// categories, bypassing the cache. The result is flat, in fetch order, and
// not yet deduplicated.
func (s *Service) FetchRegistrations(ctx context.Context, categories []Category) []Participant {
	passes := fetchPasses(categories)

	var all []Participant
	for _, category := range passes {
		all = append(all, s.fetchCategory(ctx, category)...)
	}
	return all
}

// fetchPasses decides which pagination loops to run: one per category for a
// proper subset, a single unfiltered pass ("" category) otherwise.
func fetchPasses(categories []Category) []string {
	if categoryKey(categories) == "all" {
		return []string{""}
	}
	seen := make(map[Category]bool, len(categories))
	var passes []string
	for _, c := range categories {
		if _, ok := ParseCategory(string(c)); !ok {
			slog.Warn("ignoring unknown registration category", "category", c)
			continue
		}
		if !seen[c] {
			seen[c] = true
			passes = append(passes, string(c))
		}
	}
	return passes
}

// fetchCategory runs one pagination loop. Stops when a short page arrives
// without pagination metadata, when the reported total is reached, or at the
// page cap. Errors end the loop early but never propagate.
func (s *Service) fetchCategory(ctx context.Context, category string) []Participant {
	perPage := s.perPage
	fetched := 0
	var out []Participant

	for pageNum := 1; pageNum <= maxPagesPerCategory; pageNum++ {
		page, err := s.api.GetRegistrations(ctx, eventapi.RegistrationParams{
			Category: category,
			PerPage:  perPage,
			Page:     pageNum,
		})
		if err != nil {
			slog.Warn("registration page fetch failed, keeping partial results",
				"category", category,
				"page", pageNum,
				"error", err,
			)
			break
		}

		for _, rec := range page.Records {
			p := MapRegistration(rec)
			if p.ID == "" || p.Email == "" {
				slog.Warn("mapped participant is missing identity fields",
					"id", p.ID,
					"email", p.Email,
					"reference", p.Reference,
					"raw", rec,
				)
			}
			out = append(out, p)
		}

		n := len(page.Records)
		fetched += n

		if pag := page.Pagination; pag != nil {
			// The backend may honor a smaller page size than requested;
			// adopt it so the short-page checks stay correct.
			if pag.PerPage > 0 && pag.PerPage != perPage {
				slog.Debug("adopting backend page size", "requested", perPage, "actual", pag.PerPage)
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

	slog.Debug("category fetch complete", "category", category, "records", len(out))
	return out
}
