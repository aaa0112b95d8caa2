package match

// Record is the canonical form of one match. Every field is always present:
// missing data normalizes to empty slices, empty strings, or nil numerics, so
// consumers only ever branch on emptiness.
type Record struct {
	MatchID           string             `json:"match_id"`
	Teams             []Team             `json:"teams"`
	DraftPicks        []DraftPick        `json:"draft_picks"`
	PlayerStats       []PlayerStat       `json:"player_stats"`
	ObjectiveTimings  []Objective        `json:"objective_timings"`
	KillParticipation map[string]float64 `json:"kill_participation"`
	WinLoss           WinLoss            `json:"win_loss"`

	// DurationSeconds is set when the payload carried an explicit duration.
	// Analyzers fall back to the latest objective timestamp when nil.
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

// Team is one side of a match.
type Team struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Side  string   `json:"side"`
	Score *float64 `json:"score"`
}

// DraftPick is a single champion selection during draft.
type DraftPick struct {
	PickOrder *float64 `json:"pick_order"`
	TeamID    string   `json:"team_id"`
	Selection string   `json:"selection"`
	Phase     string   `json:"phase"`
}

// PlayerStat holds one player's line for one match. Numeric fields stay nil
// when the source omitted them.
type PlayerStat struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	TeamID     string   `json:"team_id"`
	Champion   string   `json:"champion,omitempty"`
	Kills      *float64 `json:"kills"`
	Deaths     *float64 `json:"deaths"`
	Assists    *float64 `json:"assists"`
	Damage     *float64 `json:"damage"`
	Gold       *float64 `json:"gold"`
	CS         *float64 `json:"cs"`
}

// Objective is one timed objective event (dragon, baron, turret, ...).
type Objective struct {
	Type        string   `json:"type"`
	TimeSeconds *float64 `json:"time_seconds"`
	TeamID      string   `json:"team_id"`
	Position    string   `json:"position"`
}

// WinLoss records the match outcome. Empty strings mean unknown.
type WinLoss struct {
	Winner     string `json:"winner"`
	Loser      string `json:"loser"`
	WinnerSide string `json:"winner_side"`
	Result     string `json:"result"`
}

// Empty returns a Record with all collections initialized.
func Empty() Record {
	return Record{
		Teams:             []Team{},
		DraftPicks:        []DraftPick{},
		PlayerStats:       []PlayerStat{},
		ObjectiveTimings:  []Objective{},
		KillParticipation: map[string]float64{},
	}
}
