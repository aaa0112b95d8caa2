package api

import (
	"context"
	"net/http"

	"github.com/Mukul601/TacticalScout/internal/chat"
	"github.com/Mukul601/TacticalScout/internal/draft"
	"github.com/Mukul601/TacticalScout/internal/grid"
	"github.com/Mukul601/TacticalScout/internal/scout"
)

// MatchSource fetches recent series nodes for a team. Satisfied by
// *grid.Client; stubbed in tests.
type MatchSource interface {
	FetchTeamSeries(ctx context.Context, teamName string, limit int) (grid.Team, []map[string]any, error)
}

// ServerConfig carries the dependencies for a Server. Source may be nil when
// no GRID key is configured; scouting requests then answer 503.
type ServerConfig struct {
	Source      MatchSource
	Analyzer    *scout.Analyzer
	Evaluator   *draft.Evaluator
	Chat        *chat.Engine
	CORSOrigins []string
}

// Server exposes the scouting, draft, and coach-chat endpoints.
type Server struct {
	source      MatchSource
	analyzer    *scout.Analyzer
	evaluator   *draft.Evaluator
	chat        *chat.Engine
	corsOrigins []string
}

func NewServer(cfg ServerConfig) *Server {
	if cfg.Analyzer == nil {
		cfg.Analyzer = scout.New(scout.Config{})
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = draft.NewEvaluator(nil)
	}
	if cfg.Chat == nil {
		cfg.Chat = chat.NewEngine(nil)
	}
	return &Server{
		source:      cfg.Source,
		analyzer:    cfg.Analyzer,
		evaluator:   cfg.Evaluator,
		chat:        cfg.Chat,
		corsOrigins: cfg.CORSOrigins,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/generate-scouting-report", s.handleScoutingReport)
	mux.HandleFunc("/draft-risk-analysis", s.handleDraftRisk)
	mux.HandleFunc("/coach-chat", s.handleCoachChat)
	return s.cors(mux)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.corsOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
