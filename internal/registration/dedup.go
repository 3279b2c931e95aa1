package registration

// dedup.go collapses participants accumulated across pages and categories.
//
// Processing order defines precedence: the first participant holding a given
// email or reference wins, later duplicates sharing either key are dropped.
// The pass also guarantees a non-empty, unique id for every survivor, so the
// result satisfies the load invariants regardless of how messy the input was.

import (
	"fmt"
	"log/slog"
	"strings"
)

// Deduplicate returns the input list with at most one entry per distinct
// non-empty email (case-insensitive, trimmed) and per distinct non-empty
// reference. It is idempotent: deduplicating an already-deduplicated list
// yields the same list.
func Deduplicate(parts []Participant) []Participant {
	out := make([]Participant, 0, len(parts))
	seenEmail := make(map[string]bool, len(parts))
	seenRef := make(map[string]bool, len(parts))
	seenID := make(map[string]bool, len(parts))

	for _, p := range parts {
		email := strings.ToLower(strings.TrimSpace(p.Email))
		ref := strings.TrimSpace(p.Reference)

		if email != "" && seenEmail[email] {
			slog.Debug("dropping duplicate participant", "key", "email", "email", email, "reference", ref)
			continue
		}
		if ref != "" && seenRef[ref] {
			slog.Debug("dropping duplicate participant", "key", "reference", "reference", ref, "email", email)
			continue
		}

		if p.ID == "" || seenID[p.ID] {
			p.ID = uniqueID(p, seenID)
		}
		seenID[p.ID] = true
		if email != "" {
			seenEmail[email] = true
		}
		if ref != "" {
			seenRef[ref] = true
		}
		out = append(out, p)
	}

	return out
}

// uniqueID regenerates an id for a surviving participant whose id is empty
// or already taken: from the reference, then the email, then a hash of the
// name and status, suffixed with _1, _2, ... until unique.
func uniqueID(p Participant, seen map[string]bool) string {
	var base string
	switch {
	case strings.TrimSpace(p.Reference) != "":
		base = hashID(strings.TrimSpace(p.Reference))
	case strings.TrimSpace(p.Email) != "":
		base = hashID(strings.ToLower(strings.TrimSpace(p.Email)))
	default:
		base = hashID(p.Nom + "|" + p.Prenom + "|" + string(p.Statut))
	}

	id := base
	for n := 1; seen[id]; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}
