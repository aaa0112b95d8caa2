package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Mukul601/TacticalScout/internal/draft"
	"github.com/Mukul601/TacticalScout/internal/grid"
	"github.com/Mukul601/TacticalScout/internal/match"
	"github.com/Mukul601/TacticalScout/internal/scout"
)

const (
	minMatchLimit = 1
	maxMatchLimit = 50
)

type scoutingReportRequest struct {
	TeamName   string `json:"team_name"`
	MatchLimit int    `json:"match_limit"`
}

type draftRiskRequest struct {
	Draft []draft.Pick `json:"draft"`
}

type coachChatRequest struct {
	Question       string `json:"question"`
	ScoutingReport any    `json:"scouting_report"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScoutingReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req scoutingReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TeamName == "" {
		writeError(w, http.StatusBadRequest, "team_name is required")
		return
	}
	if req.MatchLimit < minMatchLimit {
		req.MatchLimit = minMatchLimit
	}
	if req.MatchLimit > maxMatchLimit {
		req.MatchLimit = maxMatchLimit
	}

	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "GRID_API_KEY environment variable is not set")
		return
	}

	team, nodes, err := s.source.FetchTeamSeries(r.Context(), req.TeamName, req.MatchLimit)
	if err != nil && !errors.Is(err, grid.ErrNotFound) {
		log.Printf("scouting: grid fetch failed: %v", err)
		writeError(w, http.StatusBadGateway, "GRID request failed.")
		return
	}

	var matches []match.Record
	for _, node := range nodes {
		matches = append(matches, match.Normalize(map[string]any{"node": node}))
	}

	teamInfo := map[string]any{"id": team.ID, "name": team.Name}
	sampleUsed := false
	if len(matches) == 0 {
		n := req.MatchLimit
		if n > 5 {
			n = 5
		}
		matches = grid.SampleMatches(req.TeamName, n)
		if team.ID == "" {
			teamInfo = map[string]any{"id": "mock", "name": req.TeamName}
		}
		sampleUsed = true
		log.Printf("scouting: no GRID matches for %q, using %d sample matches", req.TeamName, len(matches))
	}

	strategy := s.analyzer.TeamStrategy(matches)
	tendencies := s.analyzer.PlayerTendencies(matches)
	compositions := s.analyzer.TeamCompositions(matches)
	counters := s.analyzer.CounterStrategies(scout.Combined{
		TeamStrategy:     &strategy,
		PlayerTendencies: &tendencies,
		TeamCompositions: &compositions,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"team":               teamInfo,
		"matches_analyzed":   len(matches),
		"sample_data_used":   sampleUsed,
		"team_strategy":      strategy,
		"player_tendencies":  tendencies,
		"team_compositions":  compositions,
		"counter_strategies": counters,
	})
}

func (s *Server) handleDraftRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req draftRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.evaluator.Evaluate(req.Draft))
}

func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req coachChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	writeJSON(w, http.StatusOK, s.chat.Explain(r.Context(), req.Question, req.ScoutingReport))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
