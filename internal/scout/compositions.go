package scout

import (
	"sort"
	"strings"

	"github.com/Mukul601/TacticalScout/internal/match"
)

// CompositionEntry aggregates the outcomes of one canonical composition (the
// case-insensitively sorted champion set one team fielded).
type CompositionEntry struct {
	Composition    []string `json:"composition"`
	Games          int      `json:"games"`
	Wins           int      `json:"wins"`
	WinRate        float64  `json:"win_rate"`
	Classification string   `json:"classification"`
}

// CompositionReport is the output of TeamCompositions: entries sorted by games
// played descending, plus a lookup keyed by the canonical composition string.
type CompositionReport struct {
	Compositions    []*CompositionEntry          `json:"compositions"`
	ByComp          map[string]*CompositionEntry `json:"by_comp"`
	MatchesAnalyzed int                          `json:"matches_analyzed"`
}

// TeamCompositions derives each team's composition per match from draft picks
// and aggregates win rates on the canonical (sorted) champion set, so the same
// five champions in a different pick order merge into one entry.
func (a *Analyzer) TeamCompositions(matches []match.Record) CompositionReport {
	report := CompositionReport{
		Compositions:    []*CompositionEntry{},
		ByComp:          map[string]*CompositionEntry{},
		MatchesAnalyzed: len(matches),
	}

	type outcome struct {
		games int
		wins  int
	}
	outcomes := map[string]*outcome{}
	comps := map[string][]string{}
	var keyOrder []string

	for _, m := range matches {
		winner := m.WinLoss.Winner
		teamIDs := matchTeamIDs(m)

		for _, tid := range teamIDs {
			comp := teamComposition(m, tid)
			if len(comp) == 0 {
				continue
			}
			key := strings.Join(comp, " | ")
			o := outcomes[key]
			if o == nil {
				o = &outcome{}
				outcomes[key] = o
				comps[key] = comp
				keyOrder = append(keyOrder, key)
			}
			o.games++
			if winner != "" && winner == tid {
				o.wins++
			}
		}
	}

	for _, key := range keyOrder {
		o := outcomes[key]
		winRate := 0.0
		if o.games > 0 {
			winRate = 100 * float64(o.wins) / float64(o.games)
		}
		entry := &CompositionEntry{
			Composition:    comps[key],
			Games:          o.games,
			Wins:           o.wins,
			WinRate:        round2(winRate),
			Classification: a.classifyComposition(comps[key]),
		}
		report.Compositions = append(report.Compositions, entry)
		report.ByComp[key] = entry
	}
	sort.SliceStable(report.Compositions, func(i, j int) bool {
		return report.Compositions[i].Games > report.Compositions[j].Games
	})
	return report
}

// matchTeamIDs lists the match's team ids, falling back to the distinct team
// ids referenced by draft picks when the teams list is empty.
func matchTeamIDs(m match.Record) []string {
	var ids []string
	for _, t := range m.Teams {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) > 0 {
		return ids
	}
	seen := map[string]bool{}
	for _, p := range m.DraftPicks {
		if p.TeamID != "" && !seen[p.TeamID] {
			seen[p.TeamID] = true
			ids = append(ids, p.TeamID)
		}
	}
	return ids
}

// teamComposition returns the case-insensitively sorted champion names one
// team picked in one match.
func teamComposition(m match.Record, teamID string) []string {
	var champs []string
	for _, p := range m.DraftPicks {
		if p.TeamID != teamID || p.Selection == "" {
			continue
		}
		champs = append(champs, strings.TrimSpace(p.Selection))
	}
	sort.Slice(champs, func(i, j int) bool {
		return strings.ToLower(champs[i]) < strings.ToLower(champs[j])
	})
	return champs
}

// classifyComposition maps a composition to its majority archetype. Fewer than
// half the champions mapping yields "unknown"; a tie between the two most
// frequent archetypes yields "mixed".
func (a *Analyzer) classifyComposition(champs []string) string {
	if len(champs) == 0 {
		return "unknown"
	}
	counts := map[string]int{}
	for _, ch := range champs {
		key := strings.ToLower(ch)
		arch := a.archetypes[key]
		if arch == "" {
			arch = a.archetypes[strings.ReplaceAll(key, " ", "")]
		}
		if arch != "" {
			counts[arch]++
		}
	}
	if len(counts) == 0 {
		return "unknown"
	}
	totalMapped := 0
	for _, c := range counts {
		totalMapped += c
	}
	if float64(totalMapped) < float64(len(champs))/2 {
		return "unknown"
	}

	best, bestCount, tied := "", 0, false
	for arch, c := range counts {
		switch {
		case c > bestCount:
			best, bestCount, tied = arch, c, false
		case c == bestCount:
			tied = true
		}
	}
	if bestCount == totalMapped {
		return best
	}
	if tied {
		return "mixed"
	}
	return best
}
