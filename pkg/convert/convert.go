// Package convert turns parsed match data into the upload payload the
// league's importMatchData cloud function accepts. It expects sides to be
// already mapped to true teams (roster.MapSides); everything here keys off
// Side alone.
package convert

import (
	"sort"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
	"github.com/donniepagel-arch/brdc-match-import/pkg/parser"
)

// SideThrow is one side's entry within a round.
type SideThrow struct {
	Player    string `json:"player"`
	Score     int    `json:"score"`
	Remaining int    `json:"remaining,omitempty"`
	Hit       string `json:"hit,omitempty"`
	Marks     int    `json:"marks,omitempty"`
}

// RoundEntry pairs both sides' throws for one round; a side that never
// threw that round stays nil.
type RoundEntry struct {
	Round int        `json:"round"`
	Home  *SideThrow `json:"home"`
	Away  *SideThrow `json:"away"`
}

// PlayerStats is the payload form of one player's leg stats.
type PlayerStats struct {
	Side         string  `json:"side"`
	Darts        int     `json:"darts"`
	Points       int     `json:"points,omitempty"`
	ThreeDartAvg float64 `json:"three_dart_avg,omitempty"`
	Marks        int     `json:"marks,omitempty"`
	MPR          float64 `json:"mpr,omitempty"`
}

// SideStats rolls a side's players up for one leg.
type SideStats struct {
	Darts         int     `json:"darts"`
	Points        int     `json:"points,omitempty"`
	Marks         int     `json:"marks,omitempty"`
	ThreeDartAvg  float64 `json:"three_dart_avg,omitempty"`
	MPR           float64 `json:"mpr,omitempty"`
	Checkout      int     `json:"checkout,omitempty"`
	CheckoutDarts int     `json:"checkout_darts,omitempty"`
}

// LegData is one leg of the payload.
type LegData struct {
	LegNumber   int                    `json:"leg_number"`
	Format      string                 `json:"format"`
	Winner      string                 `json:"winner,omitempty"`
	HomeStats   SideStats              `json:"home_stats"`
	AwayStats   SideStats              `json:"away_stats"`
	PlayerStats map[string]PlayerStats `json:"player_stats"`
	Throws      []RoundEntry           `json:"throws"`
}

// LegResult tallies legs won within a set.
type LegResult struct {
	HomeLegs int `json:"home_legs"`
	AwayLegs int `json:"away_legs"`
}

// GameData is one set of the payload.
type GameData struct {
	GameNumber  int       `json:"game_number"`
	Set         int       `json:"set"`
	Format      string    `json:"format"`
	HomePlayers []string  `json:"home_players"`
	AwayPlayers []string  `json:"away_players"`
	Result      LegResult `json:"result"`
	Winner      string    `json:"winner"`
	Status      string    `json:"status"`
	Legs        []LegData `json:"legs"`
}

// Score is a home/away tally.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchData is the full importMatchData payload body.
type MatchData struct {
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	Games      []GameData `json:"games"`
	FinalScore Score      `json:"final_score"`
	TotalDarts int        `json:"total_darts"`
	TotalLegs  int        `json:"total_legs"`
}

// FromGames builds the upload payload from parsed (and side-mapped) games.
func FromGames(games []*models.Game, homeTeam, awayTeam string) *MatchData {
	// Some exports label every set "Game 1.x"; renumber sequentially so
	// sets stay distinct downstream.
	allSame := len(games) > 1
	for _, g := range games {
		if g.GameNumber != games[0].GameNumber {
			allSame = false
			break
		}
	}
	if allSame {
		for i, g := range games {
			g.GameNumber = i + 1
		}
	}

	data := &MatchData{HomeTeam: homeTeam, AwayTeam: awayTeam}

	for _, g := range games {
		gd := GameData{
			GameNumber: g.GameNumber,
			Set:        g.GameNumber,
			Status:     "completed",
		}
		homePlayers := map[string]struct{}{}
		awayPlayers := map[string]struct{}{}

		for _, leg := range g.Legs {
			data.TotalLegs++
			ld := LegData{
				LegNumber:   leg.LegNumber,
				Format:      leg.Format,
				PlayerStats: make(map[string]PlayerStats, len(leg.PlayerStats)),
				Throws:      groupThrowsByRound(leg.Throws),
			}

			for name, s := range leg.PlayerStats {
				data.TotalDarts += s.Darts
				ld.PlayerStats[name] = PlayerStats{
					Side:         string(s.Side),
					Darts:        s.Darts,
					Points:       s.Points,
					ThreeDartAvg: s.ThreeDartAvg,
					Marks:        s.Marks,
					MPR:          s.MPR,
				}
				side := &ld.HomeStats
				playerSet := homePlayers
				if s.Side == models.SideAway {
					side = &ld.AwayStats
					playerSet = awayPlayers
				}
				side.Darts += s.Darts
				side.Points += s.Points
				side.Marks += s.Marks
				playerSet[name] = struct{}{}
			}
			fillSideAverages(&ld.HomeStats, leg.Format)
			fillSideAverages(&ld.AwayStats, leg.Format)

			if winner, ok := LegWinner(leg); ok {
				ld.Winner = string(winner)
				if winner == models.SideHome {
					gd.Result.HomeLegs++
				} else {
					gd.Result.AwayLegs++
				}
				if leg.Format == models.Format501 {
					fillCheckout(&ld, leg, winner)
				}
			}

			gd.Legs = append(gd.Legs, ld)
		}

		if len(gd.Legs) > 0 {
			gd.Format = gd.Legs[0].Format
		}
		gd.HomePlayers = sortedNames(homePlayers)
		gd.AwayPlayers = sortedNames(awayPlayers)

		switch {
		case gd.Result.HomeLegs > gd.Result.AwayLegs:
			gd.Winner = string(models.SideHome)
			data.FinalScore.Home++
		case gd.Result.AwayLegs > gd.Result.HomeLegs:
			gd.Winner = string(models.SideAway)
			data.FinalScore.Away++
		default:
			gd.Winner = "tie"
		}

		data.Games = append(data.Games, gd)
	}

	return data
}

// LegWinner determines which side took a leg, trying in order: the 501
// checkout throw, a side's points summing to exactly 501, the cricket
// winner inference, the closing throw, and finally the latest round where
// only one side threw (the leg ended mid-round). False means unknown, and
// stays unknown - no side is ever defaulted in.
func LegWinner(leg *models.Leg) (models.Side, bool) {
	if leg.Format == models.Format501 {
		for _, t := range leg.Throws {
			if t.IsCheckout && t.Remaining == 0 {
				return t.Side, true
			}
		}
		points := map[models.Side]int{}
		for _, s := range leg.PlayerStats {
			points[s.Side] += s.Points
		}
		if points[models.SideHome] == 501 {
			return models.SideHome, true
		}
		if points[models.SideAway] == 501 {
			return models.SideAway, true
		}
	} else {
		if leg.Winner.Determined {
			return leg.Winner.Side, true
		}
		for _, t := range leg.Throws {
			if t.IsClosingThrow {
				return t.Side, true
			}
		}
	}

	byRound := map[int]map[models.Side]bool{}
	maxRound := 0
	for _, t := range leg.Throws {
		if byRound[t.Round] == nil {
			byRound[t.Round] = map[models.Side]bool{}
		}
		byRound[t.Round][t.Side] = true
		if t.Round > maxRound {
			maxRound = t.Round
		}
	}
	for r := maxRound; r >= 1; r-- {
		sides := byRound[r]
		if len(sides) != 1 {
			continue
		}
		for side := range sides {
			return side, true
		}
	}
	return "", false
}

// groupThrowsByRound folds the throw list into one entry per round with
// both sides side by side, sorted by round.
func groupThrowsByRound(throws []models.Throw) []RoundEntry {
	byRound := map[int]*RoundEntry{}
	for _, t := range throws {
		e := byRound[t.Round]
		if e == nil {
			e = &RoundEntry{Round: t.Round}
			byRound[t.Round] = e
		}
		st := &SideThrow{
			Player:    t.Player,
			Score:     t.Score,
			Remaining: t.Remaining,
			Hit:       t.Hit,
			Marks:     t.Marks,
		}
		if t.Side == models.SideHome {
			e.Home = st
		} else {
			e.Away = st
		}
	}

	entries := make([]RoundEntry, 0, len(byRound))
	for _, e := range byRound {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Round < entries[b].Round })
	return entries
}

func fillSideAverages(s *SideStats, format string) {
	if s.Darts == 0 {
		return
	}
	if format == models.Format501 {
		s.ThreeDartAvg = parser.Round2(float64(s.Points) / float64(s.Darts) * 3)
	} else {
		s.MPR = parser.Round2(float64(s.Marks) / float64(s.Darts) * 3)
	}
}

func fillCheckout(ld *LegData, leg *models.Leg, winner models.Side) {
	for _, t := range leg.Throws {
		if !t.IsCheckout || t.Remaining != 0 || t.Side != winner {
			continue
		}
		stats := &ld.HomeStats
		if winner == models.SideAway {
			stats = &ld.AwayStats
		}
		stats.Checkout = t.Score
		stats.CheckoutDarts = t.CheckoutDarts
		return
	}
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
