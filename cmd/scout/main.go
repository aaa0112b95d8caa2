package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Mukul601/TacticalScout/internal/draft"
	"github.com/Mukul601/TacticalScout/internal/match"
	"github.com/Mukul601/TacticalScout/internal/scout"
)

func main() {
	godotenv.Load()

	input := flag.String("input", "", "Path to JSON file of raw match payloads (list of matches or a GRID response)")
	analysis := flag.String("analysis", "", "Path to a combined-analysis JSON file to turn into counter strategies")
	draftList := flag.String("draft", "", "Comma-separated champion names to evaluate as a draft")
	champions := flag.String("champions", "", "Path to TOML champion metadata (optional)")
	output := flag.String("output", "", "Write the report to this file instead of stdout")
	flag.Parse()

	if *input == "" && *analysis == "" && *draftList == "" {
		log.Fatal("Provide --input with raw match data, --analysis with a combined analysis, and/or --draft with champion names")
	}

	report := map[string]any{}

	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
		matches, err := decodeMatches(data)
		if err != nil {
			log.Fatalf("Failed to parse input file: %v", err)
		}

		analyzer := scout.New(scout.Config{})
		strategy := analyzer.TeamStrategy(matches)
		tendencies := analyzer.PlayerTendencies(matches)
		compositions := analyzer.TeamCompositions(matches)
		counters := analyzer.CounterStrategies(scout.Combined{
			TeamStrategy:     &strategy,
			PlayerTendencies: &tendencies,
			TeamCompositions: &compositions,
		})

		report["matches_analyzed"] = len(matches)
		report["team_strategy"] = strategy
		report["player_tendencies"] = tendencies
		report["team_compositions"] = compositions
		report["counter_strategies"] = counters
	}

	if *analysis != "" {
		data, err := os.ReadFile(*analysis)
		if err != nil {
			log.Fatalf("Failed to read analysis file: %v", err)
		}
		combined, err := scout.ParseCombined(data)
		if err != nil {
			log.Fatalf("Failed to parse analysis file: %v", err)
		}
		report["counter_strategies"] = scout.New(scout.Config{}).CounterStrategies(combined)
	}

	if *draftList != "" {
		var picks []draft.Pick
		for _, name := range strings.Split(*draftList, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				picks = append(picks, draft.Pick{Champion: name})
			}
		}
		evaluator := draft.NewEvaluator(draft.LoadTable(*champions))
		report["draft_evaluation"] = evaluator.Evaluate(picks)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	out = append(out, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		return
	}
	os.Stdout.Write(out)
}

// decodeMatches accepts either a JSON list of raw matches or a GRID GraphQL
// response carrying data.allSeries.edges.
func decodeMatches(data []byte) ([]match.Record, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		if d, ok := v["data"].(map[string]any); ok {
			if s, ok := d["allSeries"].(map[string]any); ok {
				if edges, ok := s["edges"].([]any); ok {
					items = edges
				}
			}
		}
		if items == nil {
			items = []any{v}
		}
	}

	var matches []match.Record
	for _, item := range items {
		matches = append(matches, match.Normalize(item))
	}
	return matches, nil
}
