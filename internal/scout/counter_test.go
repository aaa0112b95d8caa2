package scout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategyTexts(report StrategyReport) []string {
	texts := make([]string, 0, len(report.Strategies))
	for _, s := range report.Strategies {
		texts = append(texts, s.StrategyText)
	}
	return texts
}

func TestCounterStrategiesEmptyInput(t *testing.T) {
	report := New(Config{}).CounterStrategies(Combined{})
	assert.NotNil(t, report.Strategies)
	assert.Empty(t, report.Strategies)
}

func TestCounterStrategiesTeamStrategyRules(t *testing.T) {
	ts := &StrategyProfile{
		EarlyAggression:      Metric{Score: 20, Classification: "low"},
		ObjectiveContestRate: Metric{Score: 20, Classification: "low"},
		RiskVolatility:       Metric{Score: 50, Classification: "medium"},
		AverageGameLength:    GameLength{AverageMinutes: 22, Classification: "short"},
	}

	report := New(Config{}).CounterStrategies(Combined{TeamStrategy: ts})
	require.Len(t, report.Strategies, 4)

	aggression := report.Strategies[0]
	assert.Contains(t, aggression.StrategyText, "low early aggression")
	// 70 + (30-20)/30*20
	assert.Equal(t, 76.7, aggression.ConfidenceScore)
	assert.Equal(t, "early_aggression", aggression.SupportingData["metric"])

	contest := report.Strategies[1]
	assert.Contains(t, contest.StrategyText, "low objective contest rate")
	// 72 + (40-20)/40*18
	assert.Equal(t, 81.0, contest.ConfidenceScore)

	volatility := report.Strategies[2]
	assert.Contains(t, volatility.StrategyText, "performance volatility")
	// 60 + min(50,40)/40*25
	assert.Equal(t, 85.0, volatility.ConfidenceScore)

	tempo := report.Strategies[3]
	assert.Contains(t, tempo.StrategyText, "short games")
	assert.Equal(t, 68.0, tempo.ConfidenceScore)
}

func TestCounterStrategiesHighAggressionAndLongGames(t *testing.T) {
	ts := &StrategyProfile{
		EarlyAggression:      Metric{Score: 80, Classification: "high"},
		ObjectiveContestRate: Metric{Score: 90, Classification: "high"},
		RiskVolatility:       Metric{Score: 10, Classification: "low"},
		AverageGameLength:    GameLength{AverageMinutes: 38, Classification: "long"},
	}

	report := New(Config{}).CounterStrategies(Combined{TeamStrategy: ts})
	require.Len(t, report.Strategies, 2)

	// 65 + min(80-60,30)/30*15
	assert.Contains(t, report.Strategies[0].StrategyText, "highly aggressive early")
	assert.Equal(t, 75.0, report.Strategies[0].ConfidenceScore)

	assert.Contains(t, report.Strategies[1].StrategyText, "long games")
	assert.Equal(t, 70.0, report.Strategies[1].ConfidenceScore)
}

func TestCounterStrategiesPlayerRulesSortedByID(t *testing.T) {
	pt := &TendencyReport{
		Players: map[string]*PlayerProfile{
			"zed_player": {
				PlayerID:            "zed_player",
				PlayerName:          "Zeta",
				EarlyDeathFrequency: EarlyDeathFrequency{Rate: 80, Classification: "high"},
				MatchupWinrate:      MatchupWinrate{Overall: f(55)},
			},
			"ace_player": {
				PlayerID:            "ace_player",
				PlayerName:          "Ace",
				EarlyDeathFrequency: EarlyDeathFrequency{Rate: 10, Classification: "low"},
				MatchupWinrate:      MatchupWinrate{Overall: f(40)},
			},
		},
	}

	report := New(Config{}).CounterStrategies(Combined{PlayerTendencies: pt})
	require.Len(t, report.Strategies, 2)

	// Ascending player-id order: ace_player before zed_player.
	winrate := report.Strategies[0]
	assert.Contains(t, winrate.StrategyText, "Ace")
	assert.Contains(t, winrate.StrategyText, "below-average win rate")
	// 55 + (45-40)/45*25
	assert.Equal(t, 57.8, winrate.ConfidenceScore)

	target := report.Strategies[1]
	assert.Contains(t, target.StrategyText, "Target player Zeta early")
	// 65 + min(80-60,30)/30*20
	assert.Equal(t, 78.3, target.ConfidenceScore)
}

func TestCounterStrategiesCompositionRules(t *testing.T) {
	tc := &CompositionReport{
		Compositions: []*CompositionEntry{
			{Composition: []string{"Kayle", "Nasus"}, Games: 3, WinRate: 66.67, Classification: "scaling"},
			{Composition: []string{"Ahri", "Zed"}, Games: 1, WinRate: 100, Classification: "pick"},
			{Composition: []string{"Xerath"}, Games: 5, Classification: "unknown"},
			{Composition: []string{"Amumu", "Ahri"}, Games: 2, Classification: "mixed"},
		},
	}

	report := New(Config{}).CounterStrategies(Combined{TeamCompositions: tc})
	require.Len(t, report.Strategies, 2)

	scaling := report.Strategies[0]
	assert.Contains(t, scaling.StrategyText, "scaling compositions")
	assert.Equal(t, 75.0, scaling.ConfidenceScore) // 3+ games observed
	assert.Equal(t, 3, scaling.SupportingData["games"])

	pick := report.Strategies[1]
	assert.Contains(t, pick.StrategyText, "pick/skirmish comps")
	assert.Equal(t, 58.0, pick.ConfidenceScore) // sparse sample
}

func TestCounterStrategiesDeterministic(t *testing.T) {
	analyzer := New(Config{})
	combined := Combined{
		TeamStrategy: &StrategyProfile{
			EarlyAggression:   Metric{Score: 10, Classification: "low"},
			AverageGameLength: GameLength{Classification: "short"},
		},
		PlayerTendencies: &TendencyReport{
			Players: map[string]*PlayerProfile{
				"a": {PlayerID: "a", MatchupWinrate: MatchupWinrate{Overall: f(10)}},
				"b": {PlayerID: "b", MatchupWinrate: MatchupWinrate{Overall: f(20)}},
				"c": {PlayerID: "c", MatchupWinrate: MatchupWinrate{Overall: f(30)}},
			},
		},
	}

	first := strategyTexts(analyzer.CounterStrategies(combined))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, strategyTexts(analyzer.CounterStrategies(combined)))
	}
}

func TestParseCombinedNested(t *testing.T) {
	analyzer := New(Config{})
	payload, err := json.Marshal(map[string]any{
		"team_strategy": StrategyProfile{
			EarlyAggression: Metric{Score: 10, Classification: "low"},
		},
		"player_tendencies": TendencyReport{
			Players: map[string]*PlayerProfile{
				"p1": {PlayerID: "p1", MatchupWinrate: MatchupWinrate{Overall: f(30)}},
			},
		},
		"team_compositions": CompositionReport{
			Compositions: []*CompositionEntry{
				{Composition: []string{"Kayle"}, Games: 4, Classification: "scaling"},
			},
		},
	})
	require.NoError(t, err)

	combined, err := ParseCombined(payload)
	require.NoError(t, err)
	require.NotNil(t, combined.TeamStrategy)
	require.NotNil(t, combined.PlayerTendencies)
	require.NotNil(t, combined.TeamCompositions)

	report := analyzer.CounterStrategies(combined)
	assert.Len(t, report.Strategies, 3)
}

func TestParseCombinedFlattened(t *testing.T) {
	payload := []byte(`{
		"early_aggression": {"score": 15, "classification": "low"},
		"objective_contest_rate": {"score": 80, "classification": "high"},
		"average_game_length": {"average_minutes": 30, "classification": "medium"},
		"risk_volatility": {"score": 5, "classification": "low"},
		"players": {"p1": {"player_id": "p1", "matchup_winrate": {"overall": 20}}},
		"compositions": [{"composition": ["Fiora"], "games": 2, "classification": "split_push"}]
	}`)

	combined, err := ParseCombined(payload)
	require.NoError(t, err)
	require.NotNil(t, combined.TeamStrategy)
	assert.Equal(t, 15.0, combined.TeamStrategy.EarlyAggression.Score)
	require.NotNil(t, combined.PlayerTendencies)
	require.NotNil(t, combined.TeamCompositions)

	report := New(Config{}).CounterStrategies(combined)
	texts := strategyTexts(report)
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "low early aggression")
	assert.Contains(t, texts[1], "below-average win rate")
	assert.Contains(t, texts[2], "split-push comps")
}

func TestCounterStrategiesSkipsAbsentWinrate(t *testing.T) {
	payload := []byte(`{
		"players": {
			"p1": {"player_id": "p1", "player_name": "NoData"},
			"p2": {"player_id": "p2", "matchup_winrate": {"overall": 0}}
		}
	}`)

	combined, err := ParseCombined(payload)
	require.NoError(t, err)
	require.NotNil(t, combined.PlayerTendencies)

	// p1 carries no winrate at all and must not read as 0%; p2 has an
	// explicit 0% and does.
	report := New(Config{}).CounterStrategies(combined)
	require.Len(t, report.Strategies, 1)
	assert.Contains(t, report.Strategies[0].StrategyText, "p2")
	assert.Contains(t, report.Strategies[0].StrategyText, "below-average win rate")
}

func TestParseCombinedRejectsNonObject(t *testing.T) {
	_, err := ParseCombined([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
}
