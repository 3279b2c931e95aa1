package registration

// crossref.go repairs organization references after both caches are loaded.
//
// Older registration forms stored the free-text company name in the field
// that should hold an organization id. Once organizations are available,
// this pass rewrites those names to real ids in place; values that resolve
// to nothing are left untouched and reported in aggregate.

import "log/slog"

// OrganizationDirectory is the read-only organization view the
// cross-reference pass consults.
type OrganizationDirectory interface {
	Count() int
	HasID(id string) bool
	IDForName(name string) (string, bool)
}

// unresolvedSampleSize bounds the sample logged for unresolved references.
const unresolvedSampleSize = 5

// crossReference corrects organisationId values that are organization names
// rather than ids. Name matching is case-sensitive and exact. The pass
// mutates parts in place; with an empty directory it warns and does nothing.
func crossReference(parts []Participant, dir OrganizationDirectory) {
	if dir == nil || dir.Count() == 0 {
		slog.Warn("organization cache is empty, skipping cross-reference pass")
		return
	}

	corrected := 0
	unresolved := 0
	var sample []string

	for i := range parts {
		ref := parts[i].OrganisationID
		if ref == "" || dir.HasID(ref) {
			continue
		}
		if id, ok := dir.IDForName(ref); ok {
			parts[i].OrganisationID = id
			corrected++
			continue
		}
		unresolved++
		if len(sample) < unresolvedSampleSize {
			sample = append(sample, ref)
		}
	}

	if corrected > 0 {
		slog.Info("cross-referenced organization names to ids", "corrected", corrected)
	}
	if unresolved > 0 {
		slog.Warn("unresolved organization references",
			"count", unresolved,
			"sample", sample,
		)
	}
}
