package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

func testTable() *Table {
	return &Table{
		Rosters: map[string][]string{
			"Slick Dartos":  {"Alice Smith", "Carol Danes", "Tony Marks"},
			"The Bullseyes": {"Bob Jones", "Dan White", "Chris Field"},
		},
		Aliases: map[string]string{
			"allice smith": "Alice Smith",
		},
	}
}

func TestResolve(t *testing.T) {
	table := testTable()
	assert.Equal(t, "Alice Smith", table.Resolve("Allice Smith"))
	assert.Equal(t, "Alice Smith", table.Resolve("  ALLICE SMITH  "))
	assert.Equal(t, "Bob Jones", table.Resolve("Bob Jones"), "non-aliased names pass through")
}

func TestSideFor(t *testing.T) {
	table := testTable()

	tests := []struct {
		player   string
		wantSide models.Side
		wantOK   bool
	}{
		{"Alice Smith", models.SideHome, true},
		{"Bob Jones", models.SideAway, true},
		{"Allice Smith", models.SideHome, true},
		{"Alice S", models.SideHome, true},
		{"Alice Smith Jr", models.SideHome, true},
		{"Nobody Known", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.player, func(t *testing.T) {
			side, ok := table.SideFor(tt.player, "Slick Dartos", "The Bullseyes")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSide, side)
		})
	}
}

func TestMapSides(t *testing.T) {
	table := testTable()

	// The report's columns are swapped: Bob (away team) parsed as positional
	// home, Alice as positional away.
	leg := &models.Leg{
		Format: models.Format501,
		Throws: []models.Throw{
			{Round: 1, Side: models.SideHome, Player: "Bob Jones", Score: 60},
			{Round: 1, Side: models.SideAway, Player: "Alice Smith", Score: 58},
		},
		PlayerStats: map[string]models.PlayerLegStats{
			"Bob Jones":   {Side: models.SideHome, Darts: 3, Points: 60},
			"Alice Smith": {Side: models.SideAway, Darts: 3, Points: 58},
		},
	}
	section := &models.MatchSection{
		Games: []*models.Game{{GameNumber: 1, Legs: []*models.Leg{leg}}},
	}

	table.MapSides(section, "Slick Dartos", "The Bullseyes")

	assert.Equal(t, models.SideAway, leg.PlayerStats["Bob Jones"].Side)
	assert.Equal(t, models.SideHome, leg.PlayerStats["Alice Smith"].Side)
	assert.Equal(t, models.SideAway, leg.Throws[0].Side)
	assert.Equal(t, models.SideHome, leg.Throws[1].Side)
}

func TestMapSidesRemapsCricketWinner(t *testing.T) {
	table := testTable()

	leg := &models.Leg{
		Format: models.FormatCricket,
		PlayerStats: map[string]models.PlayerLegStats{
			"Bob Jones":   {Side: models.SideHome, Darts: 12, Marks: 9},
			"Alice Smith": {Side: models.SideAway, Darts: 12, Marks: 7},
		},
		// Positional home closed the leg, but that column belongs to the
		// away team.
		Winner: models.WinnerResult{Side: models.SideHome, Determined: true},
	}
	section := &models.MatchSection{
		Games: []*models.Game{{GameNumber: 1, Legs: []*models.Leg{leg}}},
	}

	table.MapSides(section, "Slick Dartos", "The Bullseyes")

	require.True(t, leg.Winner.Determined)
	assert.Equal(t, models.SideAway, leg.Winner.Side)
}

func TestMapSidesKeepsUnknownPlayers(t *testing.T) {
	table := testTable()

	leg := &models.Leg{
		Format: models.Format501,
		PlayerStats: map[string]models.PlayerLegStats{
			"Mystery Guest": {Side: models.SideHome, Darts: 3},
		},
	}
	section := &models.MatchSection{
		Games: []*models.Game{{GameNumber: 1, Legs: []*models.Leg{leg}}},
	}

	table.MapSides(section, "Slick Dartos", "The Bullseyes")
	assert.Equal(t, models.SideHome, leg.PlayerStats["Mystery Guest"].Side,
		"roster misses keep the positional side")
}

func gameWith(players ...string) *models.Game {
	stats := map[string]models.PlayerLegStats{}
	for _, p := range players {
		stats[p] = models.PlayerLegStats{}
	}
	return &models.Game{Legs: []*models.Leg{{PlayerStats: stats}}}
}

func TestReorderGames(t *testing.T) {
	table := testTable()

	games := []*models.Game{
		gameWith("Carol Danes", "Dan White"),
		gameWith("Alice Smith", "Bob Jones"),
		gameWith("Tony Marks", "Chris Field"),
	}

	out := table.ReorderGames(games, []string{"alice/bob", "tony/chris", "carol/dan"})
	require.Len(t, out, 3)
	assert.Contains(t, out[0].Legs[0].PlayerStats, "Alice Smith")
	assert.Contains(t, out[1].Legs[0].PlayerStats, "Tony Marks")
	assert.Contains(t, out[2].Legs[0].PlayerStats, "Carol Danes")

	// Sequential renumbering follows the requested order.
	assert.Equal(t, 1, out[0].GameNumber)
	assert.Equal(t, 2, out[1].GameNumber)
	assert.Equal(t, 3, out[2].GameNumber)
}

func TestReorderGamesDropsUnmatched(t *testing.T) {
	table := testTable()

	games := []*models.Game{
		gameWith("Alice Smith", "Bob Jones"),
		gameWith("Tony Marks", "Chris Field"),
	}

	out := table.ReorderGames(games, []string{"tony/chris"})
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Legs[0].PlayerStats, "Tony Marks")
}

func TestReorderGamesRequiresAllParticipantsMatched(t *testing.T) {
	table := testTable()

	games := []*models.Game{
		gameWith("Alice Smith", "Bob Jones"),
	}

	// "alice" alone leaves Bob unmatched, so the combo must not claim the
	// game.
	out := table.ReorderGames(games, []string{"alice"})
	assert.Empty(t, out)
}
