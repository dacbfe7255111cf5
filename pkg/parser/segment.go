package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

// gameHeaderRe matches the "Game 2.1 - 501 SIDO" / "Game 2.1 - Cricket"
// leg headers. The format in each header governs that leg alone; legs of
// different formats appear under one game number.
var gameHeaderRe = regexp.MustCompile(`(?i)Game\s+(\d+)\.(\d+)\s*-\s*(501|Cricket)\s*(SIDO|DIDO)?`)

const doublesMark = "(Doubles)"

// literalMatcher builds a matcher for a literal string that tolerates
// arbitrary whitespace between its characters. RTF re-wrapping can split a
// marker like "More Darts!" anywhere, so matching the bare literal is not
// enough; keeping the tolerance in one recognizer keeps the brittleness in
// one place.
func literalMatcher(lit string) *regexp.Regexp {
	var parts []string
	for _, r := range lit {
		if unicode.IsSpace(r) {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile(`(?i)` + strings.Join(parts, `\s*`))
}

// matchSeparatorRe recognizes the footer DartConnect prints between the
// matches bundled into one export file.
var matchSeparatorRe = literalMatcher("More Darts!")

// splitMatchBlocks splits normalized text into per-match line blocks,
// dropping any block that declares no games.
func splitMatchBlocks(text string) [][]string {
	var blocks [][]string
	for _, section := range matchSeparatorRe.Split(text, -1) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		lines := strings.Split(section, "\n")
		for _, l := range lines {
			if gameHeaderRe.MatchString(l) {
				blocks = append(blocks, lines)
				break
			}
		}
	}
	return blocks
}

// parseGames walks one match block's lines, buffering each leg's body
// until the next header (or the end of the block) closes it.
func parseGames(lines []string) []*models.Game {
	var games []*models.Game
	var game *models.Game
	var leg *models.Leg
	var legLines []string

	finalize := func() {
		if leg == nil || len(legLines) == 0 {
			return
		}
		finishLeg(leg, legLines)
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if m := gameHeaderRe.FindStringSubmatch(line); m != nil {
			finalize()

			gameNum := atoi(m[1])
			format := models.Format501
			if !strings.EqualFold(m[3], "501") {
				format = models.FormatCricket
			}
			label := m[3]
			if m[4] != "" {
				label += " " + m[4]
			}

			if game == nil || game.GameNumber != gameNum {
				game = &models.Game{GameNumber: gameNum, Type: label}
				games = append(games, game)
			}
			leg = &models.Leg{LegNumber: atoi(m[2]), Format: format}
			game.Legs = append(game.Legs, leg)
			legLines = nil
			continue
		}

		if leg != nil {
			if strings.Contains(line, doublesMark) {
				leg.IsDoubles = true
				game.IsDoubles = true
			}
			legLines = append(legLines, raw)
		}
	}
	// The last leg has no trailing header to close it.
	finalize()

	return games
}

func finishLeg(leg *models.Leg, lines []string) {
	if leg.Format == models.Format501 {
		res := parse501Leg(lines)
		leg.Throws = res.throws
		leg.PlayerStats = finalizeStats(res.stats, models.Format501)
		leg.CheckoutDarts = res.checkoutDarts
		return
	}
	res := parseCricketLeg(lines, CricketOptions{})
	leg.Throws = res.throws
	leg.PlayerStats = finalizeStats(res.stats, models.FormatCricket)
	leg.Winner = res.winner
}
