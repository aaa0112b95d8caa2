package grid

import (
	"fmt"

	"github.com/Mukul601/TacticalScout/internal/match"
)

// SampleMatches returns a canned match set used when GRID yields no data, so
// a scouting report can still be produced end to end. Wins alternate so the
// scouted team lands at roughly a 2/3 win rate.
func SampleMatches(teamName string, n int) []match.Record {
	const (
		teamA = "mock_team_a"
		teamB = "mock_team_b"
	)
	if teamName == "" {
		teamName = "Team A"
	}
	if n > 5 {
		n = 5
	}

	var matches []match.Record
	for i := 0; i < n; i++ {
		teamAWins := i%3 != 1
		winner, loser, side, result := teamA, teamB, "blue", "win"
		scoreA, scoreB := 1.0, 0.0
		if !teamAWins {
			winner, loser, side, result = teamB, teamA, "red", "loss"
			scoreA, scoreB = 0.0, 1.0
		}

		rec := match.Record{
			MatchID: fmt.Sprintf("mock_match_%d", i+1),
			Teams: []match.Team{
				{ID: teamA, Name: teamName, Side: "blue", Score: fptr(scoreA)},
				{ID: teamB, Name: "Opponent", Side: "red", Score: fptr(scoreB)},
			},
			ObjectiveTimings: []match.Objective{
				{Type: "dragon", TimeSeconds: fptr(float64(360 + i*120)), TeamID: teamA},
				{Type: "dragon", TimeSeconds: fptr(float64(480 + i*120)), TeamID: teamB},
				{Type: "baron", TimeSeconds: fptr(float64(1200 + i*180)), TeamID: winner},
			},
			PlayerStats: []match.PlayerStat{
				{PlayerID: fmt.Sprintf("p1_%d", i), PlayerName: "Player 1", TeamID: teamA, Champion: "Ahri", Kills: fptr(float64(4 + i)), Deaths: fptr(2), Assists: fptr(5)},
				{PlayerID: fmt.Sprintf("p2_%d", i), PlayerName: "Player 2", TeamID: teamA, Champion: "Amumu", Kills: fptr(3), Deaths: fptr(3), Assists: fptr(8)},
				{PlayerID: fmt.Sprintf("p3_%d", i), PlayerName: "Player 3", TeamID: teamA, Champion: "Vayne", Kills: fptr(6), Deaths: fptr(1), Assists: fptr(4)},
				{PlayerID: fmt.Sprintf("p4_%d", i), PlayerName: "Player 4", TeamID: teamB, Champion: "Zed", Kills: fptr(2), Deaths: fptr(4), Assists: fptr(3)},
				{PlayerID: fmt.Sprintf("p5_%d", i), PlayerName: "Player 5", TeamID: teamB, Champion: "Kayle", Kills: fptr(3), Deaths: fptr(5), Assists: fptr(2)},
			},
			DraftPicks: []match.DraftPick{
				{TeamID: teamA, PickOrder: fptr(1), Selection: "Ahri"},
				{TeamID: teamA, PickOrder: fptr(2), Selection: "Amumu"},
				{TeamID: teamB, PickOrder: fptr(1), Selection: "Zed"},
				{TeamID: teamB, PickOrder: fptr(2), Selection: "Kayle"},
				{TeamID: teamA, PickOrder: fptr(3), Selection: "Vayne"},
			},
			KillParticipation: map[string]float64{},
			WinLoss: match.WinLoss{
				Winner:     winner,
				Loser:      loser,
				WinnerSide: side,
				Result:     result,
			},
		}
		matches = append(matches, rec)
	}
	return matches
}

func fptr(v float64) *float64 { return &v }
