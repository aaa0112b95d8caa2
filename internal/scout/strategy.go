package scout

import "github.com/Mukul601/TacticalScout/internal/match"

const (
	// EarlyPhaseSeconds bounds the "early game" window (15 minutes).
	EarlyPhaseSeconds = 900

	earlyAggressionHigh   = 60
	earlyAggressionMedium = 30
	objectiveContestHigh  = 70
	objectiveContestMed   = 40
	gameLengthShortMaxMin = 25
	gameLengthLongMinMin  = 35
	riskVolatilityHigh    = 60
	riskVolatilityMedium  = 30

	// Per-match (kills - deaths) std devs above this are treated as maximal
	// volatility when scaling to 0-100.
	volatilityStdCap = 20
)

// Metric is a 0-100 score with its threshold classification.
type Metric struct {
	Score          float64 `json:"score"`
	Classification string  `json:"classification"`
}

// GameLength reports average match duration.
type GameLength struct {
	AverageSeconds float64 `json:"average_seconds"`
	AverageMinutes float64 `json:"average_minutes"`
	Classification string  `json:"classification"`
}

// StrategyProfile aggregates team tempo and volatility metrics over a match
// sequence.
type StrategyProfile struct {
	EarlyAggression      Metric     `json:"early_aggression"`
	ObjectiveContestRate Metric     `json:"objective_contest_rate"`
	AverageGameLength    GameLength `json:"average_game_length"`
	RiskVolatility       Metric     `json:"risk_volatility"`
	MatchesAnalyzed      int        `json:"matches_analyzed"`
}

// TeamStrategy computes the aggregate strategy profile for a sequence of
// matches. Empty input yields zero scores at their lowest classifications.
func (a *Analyzer) TeamStrategy(matches []match.Record) StrategyProfile {
	return StrategyProfile{
		EarlyAggression:      earlyAggressionMetric(earlyAggressionScore(matches)),
		ObjectiveContestRate: objectiveContestMetric(objectiveContestScore(matches)),
		AverageGameLength:    gameLengthMetric(averageDurationSeconds(matches)),
		RiskVolatility:       riskVolatilityMetric(riskVolatilityScore(matches)),
		MatchesAnalyzed:      len(matches),
	}
}

// earlyAggressionScore is the mean, over matches with at least one objective,
// of the share of objectives taken inside the early window.
func earlyAggressionScore(matches []match.Record) float64 {
	var ratios []float64
	for _, m := range matches {
		early, total := 0, 0
		for _, o := range m.ObjectiveTimings {
			if o.TimeSeconds == nil {
				continue
			}
			total++
			if *o.TimeSeconds <= EarlyPhaseSeconds {
				early++
			}
		}
		if total > 0 {
			ratios = append(ratios, 100*float64(early)/float64(total))
		}
	}
	return clamp(mean(ratios), 0, 100)
}

// objectiveContestScore is the percentage of matches where at least two
// distinct teams appear among objective events.
func objectiveContestScore(matches []match.Record) float64 {
	if len(matches) == 0 {
		return 0
	}
	contested := 0
	for _, m := range matches {
		teams := map[string]bool{}
		for _, o := range m.ObjectiveTimings {
			if o.TeamID != "" {
				teams[o.TeamID] = true
			}
		}
		if len(teams) >= 2 {
			contested++
		}
	}
	return clamp(100*float64(contested)/float64(len(matches)), 0, 100)
}

// averageDurationSeconds means per-match durations, skipping matches with no
// derivable duration.
func averageDurationSeconds(matches []match.Record) float64 {
	var durations []float64
	for _, m := range matches {
		if d, ok := durationSeconds(m); ok && d > 0 {
			durations = append(durations, d)
		}
	}
	d := mean(durations)
	if d < 0 {
		return 0
	}
	return d
}

// durationSeconds prefers an explicit duration, then falls back to the latest
// objective timestamp.
func durationSeconds(m match.Record) (float64, bool) {
	if m.DurationSeconds != nil {
		return *m.DurationSeconds, true
	}
	best, found := 0.0, false
	for _, o := range m.ObjectiveTimings {
		if o.TimeSeconds != nil && (!found || *o.TimeSeconds > best) {
			best, found = *o.TimeSeconds, true
		}
	}
	return best, found
}

// riskVolatilityScore is the sample std dev, across matches, of total
// (kills - deaths) summed over all players, scaled so a std dev of
// volatilityStdCap maps to 100.
func riskVolatilityScore(matches []match.Record) float64 {
	var perMatch []float64
	for _, m := range matches {
		kills, deaths := 0.0, 0.0
		for _, p := range m.PlayerStats {
			kills += numOr(p.Kills, 0)
			deaths += numOr(p.Deaths, 0)
		}
		perMatch = append(perMatch, kills-deaths)
	}
	std := sampleStd(perMatch)
	if std == 0 {
		return 0
	}
	return clamp(std/volatilityStdCap*100, 0, 100)
}

func earlyAggressionMetric(score float64) Metric {
	label := "low"
	switch {
	case score >= earlyAggressionHigh:
		label = "high"
	case score >= earlyAggressionMedium:
		label = "medium"
	}
	return Metric{Score: round2(score), Classification: label}
}

func objectiveContestMetric(score float64) Metric {
	label := "low"
	switch {
	case score >= objectiveContestHigh:
		label = "high"
	case score >= objectiveContestMed:
		label = "medium"
	}
	return Metric{Score: round2(score), Classification: label}
}

func gameLengthMetric(avgSeconds float64) GameLength {
	minutes := avgSeconds / 60
	label := "long"
	switch {
	case minutes < gameLengthShortMaxMin:
		label = "short"
	case minutes <= gameLengthLongMinMin:
		label = "medium"
	}
	return GameLength{
		AverageSeconds: round2(avgSeconds),
		AverageMinutes: round2(minutes),
		Classification: label,
	}
}

func riskVolatilityMetric(score float64) Metric {
	label := "low"
	switch {
	case score >= riskVolatilityHigh:
		label = "high"
	case score >= riskVolatilityMedium:
		label = "medium"
	}
	return Metric{Score: round2(score), Classification: label}
}
