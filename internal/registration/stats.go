package registration

// Stats summarizes a participant list for the dashboards.
type Stats struct {
	Total                int                       `json:"total"`
	ParStatut            map[Statut]int            `json:"parStatut"`
	ParStatutInscription map[StatutInscription]int `json:"parStatutInscription"`
	CheckIns             int                       `json:"checkIns"`
	BadgesGeneres        int                       `json:"badgesGeneres"`
	Groupes              int                       `json:"groupes"`
}

// ComputeStats aggregates counts by status, registration status, check-in,
// badge state and distinct group.
func ComputeStats(parts []Participant) Stats {
	stats := Stats{
		Total:                len(parts),
		ParStatut:            make(map[Statut]int),
		ParStatutInscription: make(map[StatutInscription]int),
	}
	groups := make(map[string]bool)

	for _, p := range parts {
		stats.ParStatut[p.Statut]++
		stats.ParStatutInscription[p.StatutInscription]++
		if p.CheckIn {
			stats.CheckIns++
		}
		if p.BadgeGenere {
			stats.BadgesGeneres++
		}
		if p.GroupeID != "" {
			groups[p.GroupeID] = true
		}
	}
	stats.Groupes = len(groups)
	return stats
}
