// Package registration implements the participant reconciliation pipeline:
// paginated fetching from the remote registration API, normalization of
// heterogeneous payloads into the canonical Participant record,
// deduplication across pages and categories, organization cross-referencing
// and a per-category-set cache.
package registration

import (
	"sort"
	"strings"
)

// Category is a backend-side registration classification used as a fetch
// filter.
type Category string

const (
	CategoryMember    Category = "member"
	CategoryNotMember Category = "not_member"
	CategoryVIP       Category = "vip"
)

// AllCategories returns the full category set, in canonical order.
func AllCategories() []Category {
	return []Category{CategoryMember, CategoryNotMember, CategoryVIP}
}

// ParseCategory validates a raw category tag.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.TrimSpace(strings.ToLower(s))) {
	case CategoryMember:
		return CategoryMember, true
	case CategoryNotMember:
		return CategoryNotMember, true
	case CategoryVIP:
		return CategoryVIP, true
	}
	return "", false
}

// Statut is the participant's membership status.
type Statut string

const (
	StatutMembre    Statut = "membre"
	StatutNonMembre Statut = "non-membre"
	StatutVIP       Statut = "vip"
	StatutSpeaker   Statut = "speaker"
)

// StatutInscription is the registration completion status.
type StatutInscription string

const (
	InscriptionFinalisee    StatutInscription = "finalisée"
	InscriptionNonFinalisee StatutInscription = "non-finalisée"
)

// Participant is the canonical normalized registration record consumed by
// every dashboard. Field names follow the application's French vocabulary.
type Participant struct {
	ID                string            `json:"id"`
	Nom               string            `json:"nom"`
	Prenom            string            `json:"prenom"`
	Reference         string            `json:"reference"`
	Email             string            `json:"email"`
	Telephone         string            `json:"telephone,omitempty"`
	Pays              string            `json:"pays,omitempty"`
	Fonction          string            `json:"fonction,omitempty"`
	OrganisationID    string            `json:"organisationId,omitempty"`
	Statut            Statut            `json:"statut"`
	StatutInscription StatutInscription `json:"statutInscription"`
	DateInscription   string            `json:"dateInscription"`
	DatePaiement      string            `json:"datePaiement,omitempty"`
	ModePaiement      string            `json:"modePaiement,omitempty"`
	CanalEncaissement string            `json:"canalEncaissement,omitempty"`
	Caissier          string            `json:"caissier,omitempty"`
	BadgeGenere       bool              `json:"badgeGenere"`
	BadgeURL          string            `json:"badgeUrl,omitempty"`
	CheckIn           bool              `json:"checkIn"`
	CheckInDate       string            `json:"checkInDate,omitempty"`
	GroupeID          string            `json:"groupeId,omitempty"`
	NomGroupe         string            `json:"nomGroupe,omitempty"`
	Type              string            `json:"type,omitempty"`
}

// categoryKey normalizes a requested category set into a cache key.
// nil, empty and the full three-category set are equivalent: all of them
// mean one unfiltered fetch pass.
func categoryKey(categories []Category) string {
	seen := make(map[Category]bool, len(categories))
	var cats []string
	for _, c := range categories {
		if _, ok := ParseCategory(string(c)); !ok {
			continue
		}
		if !seen[c] {
			seen[c] = true
			cats = append(cats, string(c))
		}
	}
	if len(cats) == 0 || len(cats) == len(AllCategories()) {
		return "all"
	}
	sort.Strings(cats)
	return strings.Join(cats, ",")
}
