package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/fanaf-events/backoffice/internal/organization"
	"github.com/fanaf-events/backoffice/internal/registration"
)

func TestWriteParticipantsCSV(t *testing.T) {
	parts := []registration.Participant{
		{
			ID:                "r1",
			Nom:               "Kouassi",
			Prenom:            "Jean Paul",
			Reference:         "FANAF-2026-042",
			Email:             "jp@assurx.ci",
			Pays:              "Côte d'Ivoire",
			OrganisationID:    "org-1",
			Statut:            registration.StatutMembre,
			StatutInscription: registration.InscriptionFinalisee,
			DateInscription:   "2026-01-15T09:30:00Z",
			BadgeGenere:       true,
			CheckIn:           false,
		},
		{
			ID:     "r2",
			Nom:    "Diop, dite \"Awa\"",
			Email:  "awa@teranga.sn",
			Statut: registration.StatutVIP,
		},
	}

	var buf bytes.Buffer
	if err := WriteParticipantsCSV(&buf, parts); err != nil {
		t.Fatalf("WriteParticipantsCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][9] != "statut" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "r1" || rows[1][9] != "membre" || rows[1][16] != "true" || rows[1][18] != "false" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != `Diop, dite "Awa"` {
		t.Errorf("quoting broken: %q", rows[2][1])
	}
}

func TestWriteParticipantsCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteParticipantsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteParticipantsCSV() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(rows) != 1 {
		t.Errorf("rows = %d (err %v), want header only", len(rows), err)
	}
}

func TestWriteOrganizationsCSV(t *testing.T) {
	orgs := []organization.Organization{
		{ID: "org-1", Nom: "AssurX", Pays: "Côte d'Ivoire", Email: "contact@assurx.ci"},
	}

	var buf bytes.Buffer
	if err := WriteOrganizationsCSV(&buf, orgs); err != nil {
		t.Fatalf("WriteOrganizationsCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[1][0] != "org-1" || rows[1][1] != "AssurX" {
		t.Errorf("row = %v", rows[1])
	}
}
