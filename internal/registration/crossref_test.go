package registration

import "testing"

func TestCrossReference_RewritesNamesToIDs(t *testing.T) {
	dir := &fakeOrgCache{
		ids:    map[string]bool{"org-1": true, "org-2": true},
		byName: map[string]string{"AssurX": "org-1", "Téranga Assurances": "org-2"},
	}
	parts := []Participant{
		{ID: "r1", OrganisationID: "AssurX"},
		{ID: "r2", OrganisationID: "org-2"},
		{ID: "r3", OrganisationID: "Compagnie Inconnue"},
		{ID: "r4", OrganisationID: ""},
	}

	crossReference(parts, dir)

	if parts[0].OrganisationID != "org-1" {
		t.Errorf("name not rewritten: %q", parts[0].OrganisationID)
	}
	if parts[1].OrganisationID != "org-2" {
		t.Errorf("valid id mangled: %q", parts[1].OrganisationID)
	}
	if parts[2].OrganisationID != "Compagnie Inconnue" {
		t.Errorf("unresolved reference rewritten: %q", parts[2].OrganisationID)
	}
	if parts[3].OrganisationID != "" {
		t.Errorf("empty reference touched: %q", parts[3].OrganisationID)
	}
}

func TestCrossReference_CaseSensitiveMatch(t *testing.T) {
	dir := &fakeOrgCache{
		ids:    map[string]bool{"org-1": true},
		byName: map[string]string{"AssurX": "org-1"},
	}
	parts := []Participant{{ID: "r1", OrganisationID: "assurx"}}

	crossReference(parts, dir)

	if parts[0].OrganisationID != "assurx" {
		t.Errorf("case-insensitive rewrite happened: %q", parts[0].OrganisationID)
	}
}

func TestCrossReference_EmptyDirectoryNoOp(t *testing.T) {
	parts := []Participant{{ID: "r1", OrganisationID: "AssurX"}}

	crossReference(parts, &fakeOrgCache{})

	if parts[0].OrganisationID != "AssurX" {
		t.Errorf("pass ran against empty directory: %q", parts[0].OrganisationID)
	}
}
