// Package export renders participant and organization lists as CSV for the
// desk operators and the admin dashboards.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fanaf-events/backoffice/internal/organization"
	"github.com/fanaf-events/backoffice/internal/registration"
)

var participantHeader = []string{
	"id", "nom", "prenom", "reference", "email", "telephone", "pays",
	"fonction", "organisation_id", "statut", "statut_inscription",
	"date_inscription", "date_paiement", "mode_paiement",
	"canal_encaissement", "caissier", "badge_genere", "badge_url",
	"check_in", "check_in_date", "groupe_id", "nom_groupe",
}

// WriteParticipantsCSV writes the participant list as CSV, header first.
func WriteParticipantsCSV(w io.Writer, parts []registration.Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(participantHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range parts {
		record := []string{
			p.ID, p.Nom, p.Prenom, p.Reference, p.Email, p.Telephone, p.Pays,
			p.Fonction, p.OrganisationID, string(p.Statut), string(p.StatutInscription),
			p.DateInscription, p.DatePaiement, p.ModePaiement,
			p.CanalEncaissement, p.Caissier, strconv.FormatBool(p.BadgeGenere), p.BadgeURL,
			strconv.FormatBool(p.CheckIn), p.CheckInDate, p.GroupeID, p.NomGroupe,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var organizationHeader = []string{
	"id", "nom", "pays", "secteur", "contact", "email", "telephone",
}

// WriteOrganizationsCSV writes the organization directory as CSV.
func WriteOrganizationsCSV(w io.Writer, orgs []organization.Organization) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(organizationHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, org := range orgs {
		record := []string{
			org.ID, org.Nom, org.Pays, org.Secteur, org.Contact, org.Email, org.Telephone,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
