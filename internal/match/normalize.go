package match

import (
	"strconv"
	"strings"
)

// Normalize converts one raw, arbitrarily-shaped match payload into a Record.
// It is a total function: nil or non-object input yields Empty(). It tolerates
// GraphQL edge/node wrappers, camelCase vs snake_case keys, and collections
// encoded as plain lists, {edges: [{node: ...}]}, or {items: [...]}.
func Normalize(raw any) Record {
	obj := asMap(raw)
	if obj == nil {
		return Empty()
	}

	// Unwrap a single GraphQL edge node if present.
	if node := asMap(obj["node"]); node != nil {
		obj = node
	}

	rec := Empty()
	rec.MatchID = asString(firstOf(obj, "id", "matchId", "match_id"))
	if rec.MatchID == "" {
		// Some payloads nest the match under a "match" object or list.
		if m := asMap(obj["match"]); m != nil {
			rec.MatchID = asString(firstOf(m, "id", "matchId"))
		} else if l, ok := obj["match"].([]any); ok && len(l) > 0 {
			if m := asMap(l[0]); m != nil {
				rec.MatchID = asString(firstOf(m, "id", "matchId"))
			}
		}
	}

	contestants := listOf(firstOf(obj, "contestants", "teams", "teamsList", "teamList"))
	rec.Teams = normalizeTeams(contestants)
	rec.DraftPicks = normalizeDraftPicks(obj)
	rec.PlayerStats = normalizePlayerStats(obj)
	rec.ObjectiveTimings = normalizeObjectives(obj)
	rec.KillParticipation = normalizeKillParticipation(obj)
	rec.WinLoss = normalizeWinLoss(obj, contestants)
	rec.DurationSeconds = asFloatPtr(firstOf(obj, "duration_seconds", "durationSeconds", "duration", "game_length"))
	return rec
}

func normalizeTeams(contestants []any) []Team {
	teams := make([]Team, 0, len(contestants))
	for _, c := range contestants {
		cm := asMap(c)
		if cm == nil {
			continue
		}
		node := cm
		if n := asMap(cm["node"]); n != nil {
			node = n
		}
		team := node
		if t := asMap(node["team"]); t != nil {
			team = t
		}
		teams = append(teams, Team{
			ID:    asString(firstOf(team, "id", "teamId", "team_id")),
			Name:  asString(firstOf(team, "name", "teamName", "slug")),
			Side:  asString(firstOf(node, "side"), firstOf(cm, "side")),
			Score: asFloatPtr(firstOf(node, "score"), firstOf(cm, "score")),
		})
	}
	return teams
}

func normalizeDraftPicks(obj map[string]any) []DraftPick {
	drafts := firstOf(obj, "draft", "draftPicks", "draft_picks", "picks")
	if dm := asMap(drafts); dm != nil {
		if inner := firstOf(dm, "picks", "selections"); inner != nil {
			drafts = inner
		}
	}
	items := listOf(drafts)
	picks := make([]DraftPick, 0, len(items))
	for _, item := range items {
		im := asMap(item)
		if im == nil {
			continue
		}
		node := im
		if n := asMap(im["node"]); n != nil {
			node = n
		}
		picks = append(picks, DraftPick{
			PickOrder: asFloatPtr(firstOf(node, "order", "pickOrder", "pick_order"), firstOf(im, "order")),
			TeamID:    asString(firstOf(node, "teamId", "team_id"), firstOf(im, "teamId")),
			Selection: asString(firstOf(node, "selection", "hero", "champion"), firstOf(im, "selection")),
			Phase:     asString(firstOf(node, "phase"), firstOf(im, "phase")),
		})
	}
	return picks
}

func normalizePlayerStats(obj map[string]any) []PlayerStat {
	rows := listOf(firstOf(obj, "playerStats", "player_stats", "players", "members", "rosters"))
	stats := make([]PlayerStat, 0, len(rows))
	for _, r := range rows {
		rm := asMap(r)
		if rm == nil {
			continue
		}
		node := rm
		if n := asMap(rm["node"]); n != nil {
			node = n
		}
		player := node
		if p := asMap(node["player"]); p != nil {
			player = p
		}
		stats = append(stats, PlayerStat{
			PlayerID:   asString(firstOf(player, "id", "playerId", "player_id")),
			PlayerName: asString(firstOf(player, "name", "nickname", "player_name")),
			TeamID:     asString(firstOf(node, "teamId", "team_id"), firstOf(player, "teamId")),
			Champion:   asString(firstOf(node, "champion", "selection", "hero", "pick")),
			Kills:      asFloatPtr(firstOf(node, "kills", "k")),
			Deaths:     asFloatPtr(firstOf(node, "deaths", "d")),
			Assists:    asFloatPtr(firstOf(node, "assists", "a")),
			Damage:     asFloatPtr(firstOf(node, "damage", "damageDealt")),
			Gold:       asFloatPtr(firstOf(node, "gold", "goldEarned")),
			CS:         asFloatPtr(firstOf(node, "cs", "creepScore", "minionsKilled")),
		})
	}
	return stats
}

func normalizeObjectives(obj map[string]any) []Objective {
	rows := listOf(firstOf(obj, "objectives", "objectiveTimings", "objective_timings", "events"))
	objectives := make([]Objective, 0, len(rows))
	for _, r := range rows {
		rm := asMap(r)
		if rm == nil {
			continue
		}
		node := rm
		if n := asMap(rm["node"]); n != nil {
			node = n
		}
		objectives = append(objectives, Objective{
			Type:        asString(firstOf(node, "type", "objectiveType"), firstOf(rm, "type")),
			TimeSeconds: asFloatPtr(firstOf(node, "time", "timeSeconds", "time_seconds", "timestamp"), firstOf(rm, "time")),
			TeamID:      asString(firstOf(node, "teamId", "team_id"), firstOf(rm, "teamId")),
			Position:    asString(firstOf(node, "position"), firstOf(rm, "position")),
		})
	}
	return objectives
}

func normalizeKillParticipation(obj map[string]any) map[string]float64 {
	out := map[string]float64{}
	kp := firstOf(obj, "killParticipation", "kill_participation", "kp")
	switch v := kp.(type) {
	case map[string]any:
		for k, raw := range v {
			if f, ok := asFloat(raw); ok {
				out[k] = f
			}
		}
	case []any:
		for _, item := range v {
			im := asMap(item)
			if im == nil {
				continue
			}
			pid := asString(firstOf(im, "playerId", "player_id", "id"))
			if pid == "" {
				continue
			}
			if f, ok := asFloat(firstOf(im, "percentage", "kp", "value")); ok {
				out[pid] = f
			}
		}
	}
	return out
}

// normalizeWinLoss prefers an explicit winner/loser field; failing that it
// derives the winner by scanning per-contestant result flags.
func normalizeWinLoss(obj map[string]any, contestants []any) WinLoss {
	var wl WinLoss

	// Already-normalized payloads carry a win_loss object.
	if inner := asMap(firstOf(obj, "win_loss", "winLoss")); inner != nil {
		obj = inner
		wl.WinnerSide = asString(firstOf(inner, "winner_side", "winnerSide"))
	}

	winner := firstOf(obj, "winner", "winnerId", "winner_id")
	loser := firstOf(obj, "loser", "loserId", "loser_id")
	result := firstOf(obj, "result", "outcome", "status")
	if rm := asMap(result); rm != nil {
		winner = firstOf(rm, "winner", "winnerId")
		loser = firstOf(rm, "loser", "loserId")
		result = nil
	}

	// Side-relative flags on each contestant fill in whatever the payload
	// did not state outright.
	for _, c := range contestants {
		cm := asMap(c)
		if cm == nil {
			continue
		}
		node := cm
		if n := asMap(cm["node"]); n != nil {
			node = n
		}
		res := firstOf(node, "result", "outcome")
		switch {
		case isWinFlag(res) && wl.Winner == "":
			wl.Winner = teamRef(node)
			wl.WinnerSide = asString(node["side"])
		case isLossFlag(res) && wl.Loser == "":
			wl.Loser = teamRef(node)
		}
	}

	if s := refID(winner); s != "" {
		wl.Winner = s
	}
	if s := refID(loser); s != "" {
		wl.Loser = s
	}
	if s := asString(result); s != "" {
		wl.Result = s
	}
	return wl
}

// teamRef resolves a contestant's team reference, which may be a bare id, a
// nested team object, or the contestant's own id.
func teamRef(node map[string]any) string {
	return refID(firstOf(node, "teamId", "team_id", "team", "id"))
}

// refID turns either a bare identifier or an {id: ...} object into a string id.
func refID(v any) string {
	if m := asMap(v); m != nil {
		return asString(m["id"])
	}
	return asString(v)
}

func isWinFlag(v any) bool {
	if f, ok := v.(float64); ok {
		return f == 1
	}
	switch s, _ := v.(string); s {
	case "win", "won", "victory", "1":
		return true
	}
	return false
}

func isLossFlag(v any) bool {
	if f, ok := v.(float64); ok {
		return f == 0
	}
	switch s, _ := v.(string); s {
	case "loss", "lost", "defeat", "0":
		return true
	}
	return false
}

// firstOf returns the first present, non-nil value among alternate key
// spellings. This is the single field-resolution primitive every extraction
// in this package goes through.
func firstOf(m map[string]any, keys ...string) any {
	if m == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// listOf reduces a collection in any supported encoding to a plain slice:
// a direct list, {edges: [{node: ...}, ...]}, or {items: [...]}.
func listOf(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		raw := t["edges"]
		if raw == nil {
			raw = t["items"]
		}
		list, ok := raw.([]any)
		if !ok {
			return nil
		}
		out := make([]any, 0, len(list))
		for _, e := range list {
			if em, ok := e.(map[string]any); ok {
				if node := asMap(em["node"]); node != nil {
					out = append(out, node)
					continue
				}
			}
			out = append(out, e)
		}
		return out
	}
	return nil
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString coerces strings and JSON numbers to a string id; the first
// non-empty candidate wins.
func asString(candidates ...any) string {
	for _, v := range candidates {
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// asFloatPtr returns the first coercible numeric candidate, or nil.
func asFloatPtr(candidates ...any) *float64 {
	for _, v := range candidates {
		if f, ok := asFloat(v); ok {
			return &f
		}
	}
	return nil
}
