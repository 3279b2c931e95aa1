package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fanaf-events/backoffice/internal/config"
	"github.com/fanaf-events/backoffice/internal/organization"
	"github.com/fanaf-events/backoffice/internal/registration"
)

type fakeParticipants struct {
	parts      []registration.Participant
	lastCats   []registration.Category
	lastForce  bool
	loadCalls  int
	clearCalls int
}

func (f *fakeParticipants) LoadParticipants(_ context.Context, categories []registration.Category, force bool) []registration.Participant {
	f.loadCalls++
	f.lastCats = categories
	f.lastForce = force
	return f.parts
}

func (f *fakeParticipants) ClearCache() {
	f.clearCalls++
}

type fakeOrgs struct {
	orgs []organization.Organization
}

func (f *fakeOrgs) LoadOrganizations(context.Context, bool) []organization.Organization {
	return f.orgs
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: 10 * time.Second,
		},
		Rate: config.RateLimitConfig{Enabled: false},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func newTestServer(parts *fakeParticipants, orgs *fakeOrgs, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = testConfig()
	}
	return NewServer(parts, orgs, nil, cfg)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeParticipants{}, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestHandleParticipants(t *testing.T) {
	parts := &fakeParticipants{parts: []registration.Participant{
		{ID: "r1", Nom: "Diop", Email: "a@x.com"},
		{ID: "r2", Nom: "Mensah", Email: "b@x.com"},
	}}
	srv := newTestServer(parts, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/participants?categories=vip,member&reload=1", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count        int                        `json:"count"`
		Participants []registration.Participant `json:"participants"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 || len(resp.Participants) != 2 {
		t.Errorf("count = %d, participants = %d", resp.Count, len(resp.Participants))
	}
	if len(parts.lastCats) != 2 || !parts.lastForce {
		t.Errorf("service called with categories = %v, force = %v", parts.lastCats, parts.lastForce)
	}
}

func TestHandleParticipants_BadCategory(t *testing.T) {
	parts := &fakeParticipants{}
	srv := newTestServer(parts, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/participants?categories=sponsor", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "BAD_CATEGORY") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if parts.loadCalls != 0 {
		t.Errorf("service called %d times for a rejected request", parts.loadCalls)
	}
}

func TestHandleParticipantStats(t *testing.T) {
	parts := &fakeParticipants{parts: []registration.Participant{
		{ID: "r1", Statut: registration.StatutMembre, CheckIn: true},
		{ID: "r2", Statut: registration.StatutVIP},
	}}
	srv := newTestServer(parts, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/participants/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats registration.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if stats.Total != 2 || stats.CheckIns != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHandleOrganizations(t *testing.T) {
	orgs := &fakeOrgs{orgs: []organization.Organization{{ID: "org-1", Nom: "AssurX"}}}
	srv := newTestServer(&fakeParticipants{}, orgs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/organisations", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestHandleExportParticipants(t *testing.T) {
	parts := &fakeParticipants{parts: []registration.Participant{
		{ID: "r1", Nom: "Diop", Email: "a@x.com"},
	}}
	srv := newTestServer(parts, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/export/participants.csv", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "participants-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("csv lines = %d, want header + 1", len(lines))
	}
}

func TestHandleAudit_Disabled(t *testing.T) {
	srv := newTestServer(&fakeParticipants{}, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/audit", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AUDIT_DISABLED") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleClearCache(t *testing.T) {
	parts := &fakeParticipants{}
	srv := newTestServer(parts, &fakeOrgs{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if parts.clearCalls != 1 {
		t.Errorf("clearCalls = %d, want 1", parts.clearCalls)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"sekret"}
	srv := newTestServer(&fakeParticipants{}, &fakeOrgs{}, cfg)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"valid key", "sekret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/participants", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthSkipsAPIKeyAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"sekret"}
	srv := newTestServer(&fakeParticipants{}, &fakeOrgs{}, cfg)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request should be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other clients should not be affected")
	}
}

func TestParseCategoriesParam(t *testing.T) {
	tests := []struct {
		raw    string
		wantN  int
		wantOK bool
	}{
		{"", 0, true},
		{"vip", 1, true},
		{"vip, member", 2, true},
		{"vip,,member", 2, true},
		{"sponsor", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseCategories(tt.raw)
		if ok != tt.wantOK || len(got) != tt.wantN {
			t.Errorf("parseCategories(%q) = %v, %v, want %d categories, %v", tt.raw, got, ok, tt.wantN, tt.wantOK)
		}
	}
}
