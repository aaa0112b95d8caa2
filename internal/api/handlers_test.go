package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mukul601/TacticalScout/internal/grid"
)

type stubSource struct {
	team      grid.Team
	nodes     []map[string]any
	err       error
	lastLimit int
}

func (s *stubSource) FetchTeamSeries(ctx context.Context, teamName string, limit int) (grid.Team, []map[string]any, error) {
	s.lastLimit = limit
	return s.team, s.nodes, s.err
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func seriesNode(id string) map[string]any {
	return map[string]any{
		"id": id,
		"teams": []any{
			map[string]any{"id": "t1", "name": "Alpha", "result": "win"},
			map[string]any{"id": "t2", "name": "Beta", "result": "loss"},
		},
		"draft_picks": []any{
			map[string]any{"team_id": "t1", "pick_order": 1.0, "selection": "Ahri"},
			map[string]any{"team_id": "t2", "pick_order": 1.0, "selection": "Zed"},
		},
		"player_stats": []any{
			map[string]any{"player_id": "p1", "team_id": "t1", "champion": "Ahri", "kills": 5.0, "deaths": 1.0},
		},
		"objective_timings": []any{
			map[string]any{"type": "dragon", "time_seconds": 400.0, "team_id": "t1"},
		},
	}
}

func TestHealth(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeBody(t, rec)["status"]; got != "ok" {
		t.Errorf("status = %v, want ok", got)
	}
}

func TestScoutingReportWithoutSource(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	rec := postJSON(t, handler, "/generate-scouting-report", `{"team_name": "Alpha", "match_limit": 5}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if detail := decodeBody(t, rec)["detail"]; detail != "GRID_API_KEY environment variable is not set" {
		t.Errorf("detail = %v", detail)
	}
}

func TestScoutingReportUpstreamFailure(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("connection refused")}
	handler := NewServer(ServerConfig{Source: source}).Handler()
	rec := postJSON(t, handler, "/generate-scouting-report", `{"team_name": "Alpha", "match_limit": 5}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if detail := decodeBody(t, rec)["detail"]; detail != "GRID request failed." {
		t.Errorf("detail = %v", detail)
	}
}

func TestScoutingReportFromGridData(t *testing.T) {
	source := &stubSource{
		team:  grid.Team{ID: "t1", Name: "Alpha"},
		nodes: []map[string]any{seriesNode("s1"), seriesNode("s2")},
	}
	handler := NewServer(ServerConfig{Source: source}).Handler()
	rec := postJSON(t, handler, "/generate-scouting-report", `{"team_name": "Alpha", "match_limit": 10}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	if body["matches_analyzed"] != 2.0 {
		t.Errorf("matches_analyzed = %v, want 2", body["matches_analyzed"])
	}
	if body["sample_data_used"] != false {
		t.Errorf("sample_data_used = %v, want false", body["sample_data_used"])
	}
	team, _ := body["team"].(map[string]any)
	if team["id"] != "t1" || team["name"] != "Alpha" {
		t.Errorf("team = %v", team)
	}
	for _, key := range []string{"team_strategy", "player_tendencies", "team_compositions", "counter_strategies"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
}

func TestScoutingReportSampleFallback(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("no series: %w", grid.ErrNotFound)}
	handler := NewServer(ServerConfig{Source: source}).Handler()
	rec := postJSON(t, handler, "/generate-scouting-report", `{"team_name": "Alpha", "match_limit": 3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	if body["sample_data_used"] != true {
		t.Errorf("sample_data_used = %v, want true", body["sample_data_used"])
	}
	if body["matches_analyzed"] != 3.0 {
		t.Errorf("matches_analyzed = %v, want 3", body["matches_analyzed"])
	}
	team, _ := body["team"].(map[string]any)
	if team["id"] != "mock" || team["name"] != "Alpha" {
		t.Errorf("team = %v", team)
	}
}

func TestScoutingReportLimitClamped(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 1},
		{-5, 1},
		{500, 50},
		{25, 25},
	}

	for _, tt := range tests {
		source := &stubSource{err: grid.ErrNotFound}
		handler := NewServer(ServerConfig{Source: source}).Handler()
		body := fmt.Sprintf(`{"team_name": "Alpha", "match_limit": %d}`, tt.limit)
		postJSON(t, handler, "/generate-scouting-report", body)
		if source.lastLimit != tt.want {
			t.Errorf("limit %d clamped to %d, want %d", tt.limit, source.lastLimit, tt.want)
		}
	}
}

func TestScoutingReportBadRequests(t *testing.T) {
	handler := NewServer(ServerConfig{Source: &stubSource{}}).Handler()

	rec := postJSON(t, handler, "/generate-scouting-report", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, handler, "/generate-scouting-report", `{"match_limit": 5}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing team_name: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/generate-scouting-report", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rec.Code)
	}
}

func TestDraftRiskAnalysis(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	rec := postJSON(t, handler, "/draft-risk-analysis",
		`{"draft": ["Vayne", {"champion": "Thresh"}, "Amumu", "Ahri", "Unknown1"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	roleCoverage, _ := body["role_coverage"].(map[string]any)
	if roleCoverage["status"] != "incomplete" {
		t.Errorf("role status = %v, want incomplete", roleCoverage["status"])
	}
	picks, _ := body["picks"].([]any)
	if len(picks) != 5 {
		t.Errorf("got %d picks, want 5", len(picks))
	}
	if _, ok := body["risk_alerts"]; !ok {
		t.Error("response missing risk_alerts")
	}
}

func TestDraftRiskEmptyDraft(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	rec := postJSON(t, handler, "/draft-risk-analysis", `{"draft": []}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	roleCoverage, _ := body["role_coverage"].(map[string]any)
	if roleCoverage["status"] != "complete" {
		t.Errorf("empty draft role status = %v, want complete via fallback", roleCoverage["status"])
	}
}

func TestCoachChatWithoutKey(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	rec := postJSON(t, handler, "/coach-chat", `{"question": "How do we win?", "scouting_report": {}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with error payload", rec.Code)
	}
	body := decodeBody(t, rec)
	errMsg, _ := body["error"].(string)
	if !strings.Contains(errMsg, "No chat API key set") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestCoachChatRequiresQuestion(t *testing.T) {
	handler := NewServer(ServerConfig{}).Handler()
	rec := postJSON(t, handler, "/coach-chat", `{"scouting_report": {}}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewServer(ServerConfig{CORSOrigins: []string{"http://localhost:3000"}}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/generate-scouting-report", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}

	// Unlisted origins get no CORS headers.
	req = httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want empty", got)
	}
}

func TestWildcardOrigin(t *testing.T) {
	handler := NewServer(ServerConfig{CORSOrigins: []string{"*"}}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
		t.Errorf("allow-origin = %q, want echoed origin", got)
	}
}
