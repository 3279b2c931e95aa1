package registration

// mapper.go converts one raw API record into a canonical Participant.
//
// The registration backend has gone through several naming schemes, so every
// logical attribute is resolved through an ordered alias chain; the first
// usable value wins and every chain terminates in a safe default. Mapping is
// a pure function: no I/O, no randomness, and ids are derived
// deterministically so repeated mappings of the same record agree.

import (
	"strings"
	"time"

	"github.com/fanaf-events/backoffice/internal/eventapi"
)

// Alias chains per attribute, in lookup priority order.
var (
	idAliases              = []string{"id", "_id", "participant_id", "registration_id"}
	referenceAliases       = []string{"reference", "ref", "registration_reference", "numero_reference", "code_inscription"}
	nomAliases             = []string{"nom", "last_name", "lastname", "surname", "family_name"}
	prenomAliases          = []string{"prenom", "first_name", "firstname", "given_name"}
	fullNameAliases        = []string{"full_name", "name", "nom_complet", "nom_prenom"}
	emailAliases           = []string{"email", "mail", "courriel", "email_address", "adresse_email"}
	telephoneAliases       = []string{"telephone", "phone", "tel", "phone_number", "mobile", "contact_phone"}
	paysAliases            = []string{"pays", "country", "country_name", "nationalite"}
	fonctionAliases        = []string{"fonction", "function", "job_title", "titre", "poste", "position"}
	orgAliases             = []string{"organisation_id", "organization_id", "organisation", "organization", "compagnie", "company", "company_name", "societe", "structure"}
	statutAliases          = []string{"statut", "categorie", "category", "member_type", "type_membre", "membership", "status"}
	inscriptionAliases     = []string{"statut_inscription", "status_inscription", "registration_status", "etat_inscription"}
	dateInscriptionAliases = []string{"date_inscription", "registration_date", "created_at", "createdAt", "date_creation"}
	datePaiementAliases    = []string{"date_paiement", "payment_date", "paid_at", "date_reglement"}
	modePaiementAliases    = []string{"mode_paiement", "payment_method", "payment_mode", "moyen_paiement"}
	canalAliases           = []string{"canal_encaissement", "payment_channel", "canal"}
	caissierAliases        = []string{"caissier", "cashier", "cashier_name", "encaisse_par"}
	badgeFlagAliases       = []string{"badge_genere", "badge_generated", "has_badge", "badge_printed"}
	badgeURLAliases        = []string{"badge_url", "badgeUrl", "url_badge", "badge_link"}
	checkInAliases         = []string{"check_in", "checked_in", "checkin", "is_present", "present"}
	checkInDateAliases     = []string{"check_in_date", "checkin_date", "date_check_in", "checked_in_at"}
	groupeIDAliases        = []string{"groupe_id", "group_id", "id_groupe"}
	nomGroupeAliases       = []string{"nom_groupe", "group_name", "groupe"}
)

// Layouts accepted for inbound dates, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// MapRegistration converts one raw API registration record into the
// canonical Participant.
func MapRegistration(rec eventapi.Record) Participant {
	nom := rec.FirstString(nomAliases...)
	prenom := rec.FirstString(prenomAliases...)
	if nom == "" && prenom == "" {
		prenom, nom = splitFullName(rec.FirstString(fullNameAliases...))
	}

	reference := rec.FirstString(referenceAliases...)
	email := rec.FirstString(emailAliases...)
	datePaiement := rec.FirstString(datePaiementAliases...)
	badgeURL := cleanBadgeURL(rec.FirstString(badgeURLAliases...))

	p := Participant{
		ID:                deriveID(rec, reference, email, nom, prenom),
		Nom:               nom,
		Prenom:            prenom,
		Reference:         reference,
		Email:             email,
		Telephone:         rec.FirstString(telephoneAliases...),
		Pays:              rec.FirstString(paysAliases...),
		Fonction:          rec.FirstString(fonctionAliases...),
		OrganisationID:    rec.FirstString(orgAliases...),
		Statut:            normalizeStatut(rec.FirstString(statutAliases...)),
		StatutInscription: resolveInscription(rec, datePaiement),
		DateInscription:   normalizeDate(rec.FirstString(dateInscriptionAliases...)),
		DatePaiement:      datePaiement,
		ModePaiement:      rec.FirstString(modePaiementAliases...),
		CanalEncaissement: rec.FirstString(canalAliases...),
		Caissier:          rec.FirstString(caissierAliases...),
		BadgeGenere:       rec.FirstBool(badgeFlagAliases...) || badgeURL != "",
		BadgeURL:          badgeURL,
		CheckIn:           rec.FirstBool(checkInAliases...),
		CheckInDate:       rec.FirstString(checkInDateAliases...),
	}

	if groupeID := rec.FirstString(groupeIDAliases...); groupeID != "" {
		p.GroupeID = groupeID
		p.NomGroupe = rec.FirstString(nomGroupeAliases...)
		p.Type = "group"
	}

	return p
}

// deriveID picks the participant id: a native id field when present,
// otherwise a stable hash of the strongest identity signal available
// (reference, then email+name, then email, then name, then the raw
// descriptive fields). Collisions are resolved later by the deduplicator.
func deriveID(rec eventapi.Record, reference, email, nom, prenom string) string {
	if id := rec.FirstString(idAliases...); id != "" {
		return id
	}

	fullName := strings.TrimSpace(prenom + " " + nom)
	lowEmail := strings.ToLower(email)
	switch {
	case reference != "":
		return hashID(reference)
	case email != "" && fullName != "":
		return hashID(lowEmail + "|" + fullName)
	case email != "":
		return hashID(lowEmail)
	case fullName != "":
		return hashID(fullName)
	default:
		return hashID(strings.Join([]string{
			rec.FirstString(telephoneAliases...),
			rec.FirstString(paysAliases...),
			rec.FirstString(orgAliases...),
			rec.FirstString(statutAliases...),
		}, "|"))
	}
}

// splitFullName splits a single full-name field: the last whitespace token
// is the surname, everything before it is the given name. A single token is
// treated entirely as a given name.
func splitFullName(full string) (prenom, nom string) {
	tokens := strings.Fields(full)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}

// normalizeStatut maps the many historical status spellings onto the four
// canonical values. Unrecognized input defaults to non-membre.
func normalizeStatut(raw string) Statut {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_") {
	case "membre", "member", "adherent", "adhérent":
		return StatutMembre
	case "vip":
		return StatutVIP
	case "speaker", "intervenant", "conferencier", "conférencier":
		return StatutSpeaker
	default:
		return StatutNonMembre
	}
}

// resolveInscription determines the registration completion status via an
// ordered fallback: an explicit status field, then the embedded
// registration sub-status, then the presence of a payment date.
func resolveInscription(rec eventapi.Record, datePaiement string) StatutInscription {
	if raw := rec.FirstString(inscriptionAliases...); raw != "" {
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-") {
		case "finalisée", "finalisee", "completed", "complete", "paid", "validée", "validee":
			return InscriptionFinalisee
		case "non-finalisée", "non-finalisee", "pending", "incomplete", "en-attente":
			return InscriptionNonFinalisee
		}
	}

	switch strings.ToLower(rec.NestedString("registration", "status")) {
	case "completed":
		return InscriptionFinalisee
	case "pending", "incomplete":
		return InscriptionNonFinalisee
	}

	if datePaiement != "" {
		return InscriptionFinalisee
	}
	return InscriptionNonFinalisee
}

// normalizeDate renders an inbound date as RFC 3339 UTC. Absent or
// unparseable input defaults to the current time.
func normalizeDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// Sentinels the backend uses where a badge URL should be.
var badgeURLSentinels = map[string]bool{
	"non disponible": true,
	"n/a":            true,
	"aucun":          true,
}

// cleanBadgeURL accepts a badge URL only when it is syntactically a URL or
// an absolute path and not a placeholder sentinel.
func cleanBadgeURL(raw string) string {
	if raw == "" || badgeURLSentinels[strings.ToLower(raw)] {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "/") {
		return raw
	}
	return ""
}
