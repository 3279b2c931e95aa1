// Package organization loads and caches the organization directory that the
// registration pipeline cross-references participants against.
package organization

import (
	"github.com/fanaf-events/backoffice/internal/eventapi"
)

// Organization is a member company or institution attending the conference.
type Organization struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Pays      string `json:"pays,omitempty"`
	Secteur   string `json:"secteur,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`
}

// Alias chains for organization payload fields, in lookup priority order.
var (
	idAliases      = []string{"id", "_id", "organisation_id", "organization_id", "code"}
	nomAliases     = []string{"nom", "name", "raison_sociale", "company_name", "libelle"}
	paysAliases    = []string{"pays", "country", "country_name"}
	secteurAliases = []string{"secteur", "sector", "secteur_activite", "activity"}
	contactAliases = []string{"contact", "contact_name", "responsable", "representant"}
	emailAliases   = []string{"email", "mail", "contact_email"}
	telAliases     = []string{"telephone", "phone", "tel", "contact_phone"}
)

// mapOrganization converts one raw API record into an Organization.
// Records without any id fall back to the name so lookups stay possible.
func mapOrganization(rec eventapi.Record) Organization {
	org := Organization{
		ID:        rec.FirstString(idAliases...),
		Nom:       rec.FirstString(nomAliases...),
		Pays:      rec.FirstString(paysAliases...),
		Secteur:   rec.FirstString(secteurAliases...),
		Contact:   rec.FirstString(contactAliases...),
		Email:     rec.FirstString(emailAliases...),
		Telephone: rec.FirstString(telAliases...),
	}
	if org.ID == "" {
		org.ID = org.Nom
	}
	return org
}
