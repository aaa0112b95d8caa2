package scout

import (
	"sort"

	"github.com/Mukul601/TacticalScout/internal/match"
)

const (
	earlyDeathHigh   = 60 // % of games with 2+ deaths
	earlyDeathMedium = 40
	perfVarianceHigh = 15 // std dev of (kills - deaths) across games
	perfVarianceMed  = 8
)

// ChampionGames is one entry of a player's most-played list.
type ChampionGames struct {
	Champion string `json:"champion"`
	Games    int    `json:"games"`
}

// EarlyDeathFrequency reports how often a player records 2+ deaths.
type EarlyDeathFrequency struct {
	Rate                  float64 `json:"rate"`
	Classification        string  `json:"classification"`
	MatchesWithEarlyDeath int     `json:"matches_with_early_death"`
	TotalMatches          int     `json:"total_matches"`
}

// PerformanceVariance reports game-to-game consistency of (kills - deaths).
type PerformanceVariance struct {
	Variance       float64 `json:"variance"`
	StdDev         float64 `json:"std_dev"`
	Classification string  `json:"classification"`
}

// OpponentRecord is a player's record against one opponent team.
type OpponentRecord struct {
	Wins    int     `json:"wins"`
	Games   int     `json:"games"`
	WinRate float64 `json:"win_rate"`
}

// MatchupWinrate is a player's overall and per-opponent win rate. Overall is
// nil when an externally supplied document omitted it; the analyzer always
// sets it.
type MatchupWinrate struct {
	Overall    *float64                   `json:"overall"`
	Wins       int                        `json:"wins"`
	Games      int                        `json:"games"`
	ByOpponent map[string]*OpponentRecord `json:"by_opponent"`
}

// PlayerProfile is one player's behavioral profile over the input sequence.
type PlayerProfile struct {
	PlayerID            string              `json:"player_id"`
	PlayerName          string              `json:"player_name"`
	MostPlayedChampions []ChampionGames     `json:"most_played_champions"`
	EarlyDeathFrequency EarlyDeathFrequency `json:"early_death_frequency"`
	PerformanceVariance PerformanceVariance `json:"performance_variance"`
	MatchupWinrate      MatchupWinrate      `json:"matchup_winrate"`
}

// TendencyReport is the output of PlayerTendencies.
type TendencyReport struct {
	Players         map[string]*PlayerProfile `json:"players"`
	MatchesAnalyzed int                       `json:"matches_analyzed"`
}

// playerContext is one player's view of one match.
type playerContext struct {
	opponentTeamID string
	won            bool
	kills          float64
	deaths         float64
	champion       string
}

// PlayerTendencies builds per-player behavioral profiles across all matches
// each player appears in.
func (a *Analyzer) PlayerTendencies(matches []match.Record) TendencyReport {
	report := TendencyReport{
		Players:         map[string]*PlayerProfile{},
		MatchesAnalyzed: len(matches),
	}

	contexts := map[string][]playerContext{}
	names := map[string]string{}

	for _, m := range matches {
		winner := m.WinLoss.Winner
		var teamIDs []string
		for _, t := range m.Teams {
			if t.ID != "" {
				teamIDs = append(teamIDs, t.ID)
			}
		}
		champions := playerChampions(m)

		for _, p := range m.PlayerStats {
			if p.PlayerID == "" {
				continue
			}
			if p.PlayerName != "" || names[p.PlayerID] == "" {
				name := p.PlayerName
				if name == "" {
					name = p.PlayerID
				}
				names[p.PlayerID] = name
			}
			opponent := ""
			for _, tid := range teamIDs {
				if tid != p.TeamID {
					opponent = tid
					break
				}
			}
			contexts[p.PlayerID] = append(contexts[p.PlayerID], playerContext{
				opponentTeamID: opponent,
				won:            winner != "" && winner == p.TeamID,
				kills:          numOr(p.Kills, 0),
				deaths:         numOr(p.Deaths, 0),
				champion:       champions[p.PlayerID],
			})
		}
	}

	for pid, ctxs := range contexts {
		report.Players[pid] = buildProfile(pid, names[pid], ctxs)
	}
	return report
}

func buildProfile(pid, name string, ctxs []playerContext) *PlayerProfile {
	total := len(ctxs)

	// Most-played champions: frequency desc, ties by first-seen order,
	// capped at 10. Unattributed games count as "unknown".
	counts := map[string]int{}
	var order []string
	for _, ctx := range ctxs {
		champ := ctx.champion
		if champ == "" {
			champ = "unknown"
		}
		if counts[champ] == 0 {
			order = append(order, champ)
		}
		counts[champ]++
	}
	mostPlayed := make([]ChampionGames, 0, len(order))
	for _, champ := range order {
		mostPlayed = append(mostPlayed, ChampionGames{Champion: champ, Games: counts[champ]})
	}
	sort.SliceStable(mostPlayed, func(i, j int) bool {
		return mostPlayed[i].Games > mostPlayed[j].Games
	})
	if len(mostPlayed) > 10 {
		mostPlayed = mostPlayed[:10]
	}

	earlyDeaths := 0
	perf := make([]float64, 0, total)
	wins := 0
	byOpponent := map[string]*OpponentRecord{}
	for _, ctx := range ctxs {
		if ctx.deaths >= 2 {
			earlyDeaths++
		}
		perf = append(perf, ctx.kills-ctx.deaths)
		if ctx.won {
			wins++
		}
		if ctx.opponentTeamID != "" {
			rec := byOpponent[ctx.opponentTeamID]
			if rec == nil {
				rec = &OpponentRecord{}
				byOpponent[ctx.opponentTeamID] = rec
			}
			rec.Games++
			if ctx.won {
				rec.Wins++
			}
		}
	}
	for _, rec := range byOpponent {
		if rec.Games > 0 {
			rec.WinRate = round2(100 * float64(rec.Wins) / float64(rec.Games))
		}
	}

	earlyRate := 0.0
	overall := 0.0
	if total > 0 {
		earlyRate = 100 * float64(earlyDeaths) / float64(total)
		overall = 100 * float64(wins) / float64(total)
	}
	earlyLabel := "low"
	switch {
	case earlyRate >= earlyDeathHigh:
		earlyLabel = "high"
	case earlyRate >= earlyDeathMedium:
		earlyLabel = "medium"
	}

	std := sampleStd(perf)
	perfLabel := "low"
	switch {
	case std >= perfVarianceHigh:
		perfLabel = "high"
	case std >= perfVarianceMed:
		perfLabel = "medium"
	}

	return &PlayerProfile{
		PlayerID:            pid,
		PlayerName:          name,
		MostPlayedChampions: mostPlayed,
		EarlyDeathFrequency: EarlyDeathFrequency{
			Rate:                  round2(earlyRate),
			Classification:        earlyLabel,
			MatchesWithEarlyDeath: earlyDeaths,
			TotalMatches:          total,
		},
		PerformanceVariance: PerformanceVariance{
			Variance:       round2(std * std),
			StdDev:         round2(std),
			Classification: perfLabel,
		},
		MatchupWinrate: MatchupWinrate{
			Overall:    fptr(round2(overall)),
			Wins:       wins,
			Games:      total,
			ByOpponent: byOpponent,
		},
	}
}

// playerChampions maps player id -> champion for one match. It prefers an
// explicit champion on the stat row; when no row carries one it infers by
// zipping each team's picks (sorted by pick order) against that team's
// players (sorted by id). The inference is best-effort and may mis-attribute
// when pick and roster orderings diverge; it never fails.
func playerChampions(m match.Record) map[string]string {
	out := map[string]string{}
	for _, p := range m.PlayerStats {
		if p.PlayerID != "" && p.Champion != "" {
			out[p.PlayerID] = p.Champion
		}
	}
	if len(out) > 0 {
		return out
	}

	picksByTeam := map[string][]match.DraftPick{}
	for _, pick := range m.DraftPicks {
		if pick.TeamID != "" {
			picksByTeam[pick.TeamID] = append(picksByTeam[pick.TeamID], pick)
		}
	}
	for _, picks := range picksByTeam {
		sort.SliceStable(picks, func(i, j int) bool {
			return numOr(picks[i].PickOrder, 0) < numOr(picks[j].PickOrder, 0)
		})
	}

	playersByTeam := map[string][]match.PlayerStat{}
	for _, p := range m.PlayerStats {
		if p.TeamID != "" {
			playersByTeam[p.TeamID] = append(playersByTeam[p.TeamID], p)
		}
	}
	for tid, players := range playersByTeam {
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].PlayerID < players[j].PlayerID
		})
		picks := picksByTeam[tid]
		for i, p := range players {
			if p.PlayerID == "" || i >= len(picks) {
				continue
			}
			if picks[i].Selection != "" {
				out[p.PlayerID] = picks[i].Selection
			}
		}
	}
	return out
}
