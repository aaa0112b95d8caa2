package scout

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Strategy is one counter-strategy recommendation: deterministic text, the
// metrics it was derived from, and a confidence in [0,100].
type Strategy struct {
	StrategyText    string         `json:"strategy_text"`
	SupportingData  map[string]any `json:"supporting_data"`
	ConfidenceScore float64        `json:"confidence_score"`
}

// StrategyReport is the output of CounterStrategies.
type StrategyReport struct {
	Strategies []Strategy `json:"strategies"`
}

// Combined bundles the three analyzer outputs for counter-strategy synthesis.
// Any part may be nil.
type Combined struct {
	TeamStrategy     *StrategyProfile   `json:"team_strategy"`
	PlayerTendencies *TendencyReport    `json:"player_tendencies"`
	TeamCompositions *CompositionReport `json:"team_compositions"`
}

// ParseCombined decodes a combined-analysis document, accepting both the
// nested shape ({team_strategy, player_tendencies, team_compositions}) and a
// flattened one where the parts' own keys sit at the top level.
func ParseCombined(data []byte) (Combined, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Combined{}, fmt.Errorf("decode combined analysis: %w", err)
	}

	var c Combined
	if raw, ok := probe["team_strategy"]; ok {
		var ts StrategyProfile
		if err := json.Unmarshal(raw, &ts); err == nil {
			c.TeamStrategy = &ts
		}
	} else if hasAny(probe, "early_aggression", "objective_contest_rate", "average_game_length", "risk_volatility") {
		var ts StrategyProfile
		if err := json.Unmarshal(data, &ts); err == nil {
			c.TeamStrategy = &ts
		}
	}

	if raw, ok := probe["player_tendencies"]; ok {
		var pt TendencyReport
		if err := json.Unmarshal(raw, &pt); err == nil {
			c.PlayerTendencies = &pt
		}
	} else if _, ok := probe["players"]; ok {
		var pt TendencyReport
		if err := json.Unmarshal(data, &pt); err == nil {
			c.PlayerTendencies = &pt
		}
	}

	if raw, ok := probe["team_compositions"]; ok {
		var tc CompositionReport
		if err := json.Unmarshal(raw, &tc); err == nil {
			c.TeamCompositions = &tc
		}
	} else if _, ok := probe["compositions"]; ok {
		var tc CompositionReport
		if err := json.Unmarshal(data, &tc); err == nil {
			c.TeamCompositions = &tc
		}
	}
	return c, nil
}

func hasAny(probe map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := probe[k]; ok {
			return true
		}
	}
	return false
}

// CounterStrategies synthesizes ranked textual recommendations from the
// combined analyzer outputs. Output is deterministic: team-strategy rules fire
// in a fixed order, then players in ascending id order, then the top ten
// compositions in report order.
func (a *Analyzer) CounterStrategies(c Combined) StrategyReport {
	strategies := []Strategy{}
	strategies = append(strategies, teamStrategyRules(c.TeamStrategy)...)
	strategies = append(strategies, playerRules(c.PlayerTendencies)...)
	strategies = append(strategies, compositionRules(c.TeamCompositions)...)

	for i := range strategies {
		strategies[i].ConfidenceScore = round1(clamp(strategies[i].ConfidenceScore, 0, 100))
	}
	return StrategyReport{Strategies: strategies}
}

func teamStrategyRules(ts *StrategyProfile) []Strategy {
	if ts == nil {
		return nil
	}
	var out []Strategy

	ea := ts.EarlyAggression
	if ea.Classification == "low" && ea.Score < 30 {
		out = append(out, Strategy{
			StrategyText:    "Opponent shows low early aggression. Apply early pressure: invade, secure early objectives, and force skirmishes before they scale.",
			SupportingData:  map[string]any{"metric": "early_aggression", "score": ea.Score, "classification": ea.Classification},
			ConfidenceScore: round1(70 + (30-ea.Score)/30*20),
		})
	} else if ea.Classification == "high" && ea.Score >= 60 {
		out = append(out, Strategy{
			StrategyText:    "Opponent is highly aggressive early. Play safe in the early phase, avoid unnecessary fights, and prioritize scaling or counter-engage.",
			SupportingData:  map[string]any{"metric": "early_aggression", "score": ea.Score, "classification": ea.Classification},
			ConfidenceScore: round1(65 + math.Min(ea.Score-60, 30)/30*15),
		})
	}

	oc := ts.ObjectiveContestRate
	if oc.Classification == "low" && oc.Score < 40 {
		out = append(out, Strategy{
			StrategyText:    "Opponent has low objective contest rate. Contest every major objective; they are unlikely to commit fully, giving you control of map and tempo.",
			SupportingData:  map[string]any{"metric": "objective_contest_rate", "score": oc.Score, "classification": oc.Classification},
			ConfidenceScore: round1(72 + (40-oc.Score)/40*18),
		})
	}

	rv := ts.RiskVolatility
	if (rv.Classification == "high" || rv.Classification == "medium") && rv.Score >= 30 {
		out = append(out, Strategy{
			StrategyText:    "Opponent shows high performance volatility. They are inconsistent game-to-game; apply sustained pressure when they are behind and avoid overcommitting when they are ahead.",
			SupportingData:  map[string]any{"metric": "risk_volatility", "score": rv.Score, "classification": rv.Classification},
			ConfidenceScore: round1(60 + math.Min(rv.Score, 40)/40*25),
		})
	}

	gl := ts.AverageGameLength
	switch gl.Classification {
	case "short":
		out = append(out, Strategy{
			StrategyText:    "Opponent tends to win in short games. Either match their tempo with early power or drag the game out and scale to deny their preferred timeline.",
			SupportingData:  map[string]any{"metric": "average_game_length", "average_minutes": gl.AverageMinutes, "classification": gl.Classification},
			ConfidenceScore: 68,
		})
	case "long":
		out = append(out, Strategy{
			StrategyText:    "Opponent excels in long games. Push for an early lead and close before late game; avoid extended stall if you are not a scaling comp.",
			SupportingData:  map[string]any{"metric": "average_game_length", "average_minutes": gl.AverageMinutes, "classification": gl.Classification},
			ConfidenceScore: 70,
		})
	}
	return out
}

func playerRules(pt *TendencyReport) []Strategy {
	if pt == nil || len(pt.Players) == 0 {
		return nil
	}
	ids := make([]string, 0, len(pt.Players))
	for pid := range pt.Players {
		ids = append(ids, pid)
	}
	sort.Strings(ids)

	var out []Strategy
	for _, pid := range ids {
		p := pt.Players[pid]
		if p == nil {
			continue
		}
		name := p.PlayerName
		if name == "" {
			name = pid
		}

		early := p.EarlyDeathFrequency
		if early.Classification == "high" || early.Rate >= 60 {
			out = append(out, Strategy{
				StrategyText:    fmt.Sprintf("Target player %s early; they have a high early-death frequency and are likely to give leads if pressured.", name),
				SupportingData:  map[string]any{"player_id": pid, "player_name": name, "early_death_frequency": early},
				ConfidenceScore: round1(65 + math.Min(early.Rate-60, 30)/30*20),
			})
		}

		if wr := p.MatchupWinrate.Overall; wr != nil && *wr < 45 {
			out = append(out, Strategy{
				StrategyText:    fmt.Sprintf("Player %s has a below-average win rate in the sample. Continue to deny them resources and priority; they underperform under pressure.", name),
				SupportingData:  map[string]any{"player_id": pid, "player_name": name, "matchup_winrate": *wr},
				ConfidenceScore: round1(55 + (45-*wr)/45*25),
			})
		}
	}
	return out
}

func compositionRules(tc *CompositionReport) []Strategy {
	if tc == nil {
		return nil
	}
	comps := tc.Compositions
	if len(comps) > 10 {
		comps = comps[:10]
	}

	var out []Strategy
	for _, c := range comps {
		if c == nil {
			continue
		}
		var text string
		var confidence float64
		switch c.Classification {
		case "scaling":
			text = "Opponent frequently plays scaling compositions. End the game early, secure objectives on spawn, and avoid letting them reach late-game power spikes."
			confidence = pickConfidence(c.Games, 75, 60)
		case "pick":
			text = "Opponent favors pick/skirmish comps. Stay grouped, ward flanks, and avoid isolated members; force teamfights where their pick potential is reduced."
			confidence = pickConfidence(c.Games, 72, 58)
		case "teamfight":
			text = "Opponent relies on teamfight comps. Either match with a stronger teamfight, split the map to avoid 5v5, or engage on your terms with pick or tempo advantages."
			confidence = pickConfidence(c.Games, 68, 55)
		case "split_push":
			text = "Opponent uses split-push comps. Group for objectives and force 5v4 or 5v3 when their splitter is away; control vision and punish overextension."
			confidence = pickConfidence(c.Games, 70, 57)
		default:
			// unknown/mixed comps produce no rule
			continue
		}
		out = append(out, Strategy{
			StrategyText: text,
			SupportingData: map[string]any{
				"composition":    c.Composition,
				"classification": c.Classification,
				"win_rate":       c.WinRate,
				"games":          c.Games,
			},
			ConfidenceScore: confidence,
		})
	}
	return out
}

// pickConfidence is higher when a composition has been observed often enough
// to trust the sample.
func pickConfidence(games int, seasoned, sparse float64) float64 {
	if games >= 3 {
		return seasoned
	}
	return sparse
}
