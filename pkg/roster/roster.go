// Package roster maps the parser's positional home/away sides onto real
// league teams.
//
// The parser assigns "home" and "away" by column position in the report
// table, and DartConnect swaps columns freely between exports; the league's
// notion of the home team for a week is something the report cannot know.
// This package is the second, separate stage: given the league's rosters
// and an alias table for the report's spelling habits, it rewrites every
// throw and stat line to the true team side.
package roster

import (
	"sort"
	"strings"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

// Table holds caller-supplied team rosters and name aliases.
type Table struct {
	// Rosters maps a team label to its player names.
	Rosters map[string][]string
	// Aliases maps a lowercased report spelling to the canonical name
	// ("Dillon Ullises" -> "Dillon Ulisses").
	Aliases map[string]string
}

// Resolve returns the canonical form of a raw report name.
func (t *Table) Resolve(name string) string {
	name = strings.TrimSpace(name)
	if canon, ok := t.Aliases[strings.ToLower(name)]; ok {
		return canon
	}
	return name
}

// SideFor reports which side of the given pairing the named player plays
// for. Matching is case-insensitive containment in both directions, which
// tolerates the report's habit of truncating names ("Dillon U" for
// "Dillon Ulisses"). The second return is false when neither roster
// matches.
func (t *Table) SideFor(player, homeTeam, awayTeam string) (models.Side, bool) {
	name := strings.ToLower(t.Resolve(player))
	if name == "" {
		return "", false
	}
	if rosterHas(t.Rosters[homeTeam], name) {
		return models.SideHome, true
	}
	if rosterHas(t.Rosters[awayTeam], name) {
		return models.SideAway, true
	}
	return "", false
}

func rosterHas(roster []string, name string) bool {
	for _, p := range roster {
		p = strings.ToLower(p)
		if strings.Contains(name, p) || strings.Contains(p, name) {
			return true
		}
	}
	return false
}

// MapSides rewrites every throw's and player's side in the match from the
// report's positional home/away to the true team side, and remaps each
// cricket leg's winner the same way. Players with no roster hit keep their
// positional side, so an incomplete roster degrades gracefully instead of
// dropping data.
func (t *Table) MapSides(m *models.MatchSection, homeTeam, awayTeam string) {
	for _, g := range m.Games {
		for _, leg := range g.Legs {
			positional := make(map[string]models.Side, len(leg.PlayerStats))

			names := make([]string, 0, len(leg.PlayerStats))
			for name := range leg.PlayerStats {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				s := leg.PlayerStats[name]
				positional[name] = s.Side
				if side, ok := t.SideFor(name, homeTeam, awayTeam); ok {
					s.Side = side
					leg.PlayerStats[name] = s
				}
			}
			for i := range leg.Throws {
				if side, ok := t.SideFor(leg.Throws[i].Player, homeTeam, awayTeam); ok {
					leg.Throws[i].Side = side
				}
			}

			// The winner was inferred against positional sides; carry it
			// over via any player who sat on that side.
			if leg.Winner.Determined {
				for _, name := range names {
					if positional[name] != leg.Winner.Side {
						continue
					}
					if side, ok := t.SideFor(name, homeTeam, awayTeam); ok {
						leg.Winner.Side = side
					}
					break
				}
			}
		}
	}
}

// ReorderGames lines parsed games up with the known play order when an
// export lists sets out of sequence. Each entry of expectedOrder is a
// player combo such as "tony/chris": slash-separated name fragments where
// every fragment must match a distinct game participant by containment and
// no participant may go unmatched. Games matching no entry are dropped -
// the caller asked for a specific card, and a leftover game means the
// combo list and the export disagree.
func (t *Table) ReorderGames(games []*models.Game, expectedOrder []string) []*models.Game {
	used := make([]bool, len(games))
	var out []*models.Game
	for _, combo := range expectedOrder {
		for i, g := range games {
			if used[i] || !t.gameMatchesCombo(g, combo) {
				continue
			}
			used[i] = true
			g.GameNumber = len(out) + 1
			out = append(out, g)
			break
		}
	}
	return out
}

func (t *Table) gameMatchesCombo(g *models.Game, combo string) bool {
	var frags []string
	for _, f := range strings.Split(strings.ToLower(combo), "/") {
		if f = strings.TrimSpace(f); f != "" {
			frags = append(frags, f)
		}
	}
	players := t.gamePlayers(g)
	if len(frags) == 0 || len(players) == 0 {
		return false
	}

	for _, f := range frags {
		matched := false
		for _, p := range players {
			if strings.Contains(p, f) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, p := range players {
		matched := false
		for _, f := range frags {
			if strings.Contains(p, f) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (t *Table) gamePlayers(g *models.Game) []string {
	set := map[string]struct{}{}
	for _, leg := range g.Legs {
		for name := range leg.PlayerStats {
			set[strings.ToLower(t.Resolve(name))] = struct{}{}
		}
	}
	players := make([]string, 0, len(set))
	for p := range set {
		players = append(players, p)
	}
	sort.Strings(players)
	return players
}
