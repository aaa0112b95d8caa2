package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukul601/TacticalScout/internal/match"
)

func compMatch(winner string, picksA, picksB []string) match.Record {
	rec := match.Record{
		Teams:   []match.Team{{ID: "a"}, {ID: "b"}},
		WinLoss: match.WinLoss{Winner: winner},
	}
	for i, champ := range picksA {
		rec.DraftPicks = append(rec.DraftPicks, match.DraftPick{TeamID: "a", PickOrder: f(float64(i + 1)), Selection: champ})
	}
	for i, champ := range picksB {
		rec.DraftPicks = append(rec.DraftPicks, match.DraftPick{TeamID: "b", PickOrder: f(float64(i + 1)), Selection: champ})
	}
	return rec
}

func TestTeamCompositionsEmptyInput(t *testing.T) {
	report := New(Config{}).TeamCompositions(nil)
	assert.Equal(t, 0, report.MatchesAnalyzed)
	assert.Empty(t, report.Compositions)
}

func TestTeamCompositionsPickOrderInsensitive(t *testing.T) {
	// The same five champions in reversed pick order must merge into one
	// entry with two games.
	m1 := compMatch("a", []string{"Ahri", "Zed", "Amumu", "Vayne", "Thresh"}, nil)
	m2 := compMatch("b", []string{"Thresh", "Vayne", "Amumu", "Zed", "Ahri"}, nil)

	report := New(Config{}).TeamCompositions([]match.Record{m1, m2})
	require.Len(t, report.Compositions, 1)
	entry := report.Compositions[0]
	assert.Equal(t, []string{"Ahri", "Amumu", "Thresh", "Vayne", "Zed"}, entry.Composition)
	assert.Equal(t, 2, entry.Games)
	assert.Equal(t, 1, entry.Wins)
	assert.Equal(t, 50.0, entry.WinRate)
}

func TestTeamCompositionsSortedByGames(t *testing.T) {
	common := []string{"Ahri", "Zed"}
	rare := []string{"Kayle", "Nasus"}
	matches := []match.Record{
		compMatch("a", rare, nil),
		compMatch("a", common, nil),
		compMatch("b", common, nil),
	}

	report := New(Config{}).TeamCompositions(matches)
	require.Len(t, report.Compositions, 2)
	assert.Equal(t, 2, report.Compositions[0].Games)
	assert.Equal(t, []string{"Ahri", "Zed"}, report.Compositions[0].Composition)
	assert.Equal(t, 1, report.Compositions[1].Games)
}

func TestTeamCompositionsByCompLookup(t *testing.T) {
	report := New(Config{}).TeamCompositions([]match.Record{
		compMatch("a", []string{"Zed", "Ahri"}, nil),
	})
	entry, ok := report.ByComp["Ahri | Zed"]
	require.True(t, ok)
	assert.Equal(t, 1, entry.Games)
}

func TestTeamCompositionsTeamIDsFromDraftFallback(t *testing.T) {
	rec := match.Record{
		DraftPicks: []match.DraftPick{
			{TeamID: "x", Selection: "Ahri"},
			{TeamID: "y", Selection: "Amumu"},
		},
		WinLoss: match.WinLoss{Winner: "y"},
	}

	report := New(Config{}).TeamCompositions([]match.Record{rec})
	require.Len(t, report.Compositions, 2)
	assert.Equal(t, 1, report.ByComp["Amumu"].Wins)
	assert.Equal(t, 0, report.ByComp["Ahri"].Wins)
}

func TestTeamCompositionsCustomArchetypes(t *testing.T) {
	a := New(Config{Archetypes: map[string]string{
		"homebrew": "split_push",
	}})

	report := a.TeamCompositions([]match.Record{
		compMatch("a", []string{"Homebrew"}, nil),
	})
	require.Len(t, report.Compositions, 1)
	assert.Equal(t, "split_push", report.Compositions[0].Classification)
}

func TestClassifyComposition(t *testing.T) {
	tests := []struct {
		name   string
		champs []string
		want   string
	}{
		{"no picks", nil, "unknown"},
		{"all one archetype", []string{"Ahri", "Zed", "Thresh"}, "pick"},
		{"majority archetype", []string{"Ahri", "Zed", "Amumu"}, "pick"},
		{"tied archetypes", []string{"Ahri", "Zed", "Amumu", "Orianna"}, "mixed"},
		{"mostly unmapped", []string{"Ahri", "Nobody1", "Nobody2", "Nobody3"}, "unknown"},
		{"none mapped", []string{"Nobody1", "Nobody2"}, "unknown"},
		{"case insensitive", []string{"AHRI", "zed"}, "pick"},
	}

	a := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.classifyComposition(tt.champs))
		})
	}
}
