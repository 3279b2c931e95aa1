package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fanaf-events/backoffice/internal/export"
	"github.com/fanaf-events/backoffice/internal/logging"
	"github.com/fanaf-events/backoffice/internal/registration"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// participantsResponse is the payload for participant listings.
type participantsResponse struct {
	Count        int                        `json:"count"`
	Categories   []registration.Category    `json:"categories,omitempty"`
	Participants []registration.Participant `json:"participants"`
}

// handleParticipants serves the (cached) participant list.
//
// Query parameters:
//   - categories: comma-separated subset of member,not_member,vip
//     (absent or complete means everything)
//   - reload: force a refetch even on a cache hit
//
// Degraded loads surface as shorter or empty lists, never as errors.
func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	categories, ok := parseCategories(r.URL.Query().Get("categories"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, "BAD_CATEGORY",
			"categories must be a comma-separated subset of member,not_member,vip")
		return
	}
	force := parseBoolParam(r.URL.Query().Get("reload"))

	parts := s.participants.LoadParticipants(r.Context(), categories, force)

	logging.FromContext(r.Context()).Debug("participants served",
		"count", len(parts),
		"force", force,
	)
	writeJSON(w, http.StatusOK, participantsResponse{
		Count:        len(parts),
		Categories:   categories,
		Participants: parts,
	})
}

// handleParticipantStats serves aggregate counts for the dashboards.
func (s *Server) handleParticipantStats(w http.ResponseWriter, r *http.Request) {
	parts := s.participants.LoadParticipants(r.Context(), nil, false)
	writeJSON(w, http.StatusOK, registration.ComputeStats(parts))
}

// handleOrganizations serves the cached organization directory.
func (s *Server) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	force := parseBoolParam(r.URL.Query().Get("reload"))
	orgs := s.orgs.LoadOrganizations(r.Context(), force)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":         len(orgs),
		"organisations": orgs,
	})
}

// handleExportParticipants streams the participant list as CSV.
func (s *Server) handleExportParticipants(w http.ResponseWriter, r *http.Request) {
	categories, ok := parseCategories(r.URL.Query().Get("categories"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, "BAD_CATEGORY",
			"categories must be a comma-separated subset of member,not_member,vip")
		return
	}

	parts := s.participants.LoadParticipants(r.Context(), categories, false)

	filename := "participants-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteParticipantsCSV(w, parts); err != nil {
		// Headers are out by now; log and give up on this response.
		logging.FromContext(r.Context()).Error("csv export failed", "error", err)
		return
	}

	s.trail.Record(r.Context(), "export_participants",
		"rows="+strconv.Itoa(len(parts)), operator(r), r.RemoteAddr)
}

// handleAudit serves the most recent audit entries.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if !s.trail.Enabled() {
		respondError(w, r, http.StatusNotFound, "AUDIT_DISABLED", "audit trail is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.trail.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "AUDIT_QUERY", "failed to read audit trail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

// handleClearCache resets the participant and organization caches.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.participants.ClearCache()
	s.trail.Record(r.Context(), "clear_cache", "", operator(r), r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// parseCategories converts a comma-separated query value into category tags.
// Empty input means the full set. Unknown tags are rejected.
func parseCategories(raw string) ([]registration.Category, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}

	var categories []registration.Category
	for _, tag := range strings.Split(raw, ",") {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		c, ok := registration.ParseCategory(tag)
		if !ok {
			return nil, false
		}
		categories = append(categories, c)
	}
	return categories, true
}

// parseBoolParam treats "1", "true", "yes" (any case) as true.
func parseBoolParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// operator identifies the desk operator for audit purposes, when the
// dashboard supplies it.
func operator(r *http.Request) string {
	return r.Header.Get("X-Operator")
}
