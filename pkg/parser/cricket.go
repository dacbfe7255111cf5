package parser

import (
	"strings"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

// CricketOptions carries caller-side knowledge the report alone cannot
// provide: which side closed the leg and with how many darts. Zero values
// mean "unknown" and leave the parsed totals untouched.
type CricketOptions struct {
	Winner        models.Side
	CloseoutDarts int
}

type cricketResult struct {
	throws    []models.Throw
	stats     accMap
	winner    models.WinnerResult
	homeFinal int
	awayFinal int
}

// parseCricketLeg reconstructs the hit-notation rows of a cricket leg body.
//
// Row layout mirrors 501 with hits instead of remaining totals: home
// player, home hit, home score, round, away score, away hit, away player.
// Ahead of the column header, the leg summary lists each side's final point
// total on its own line; those decide the winner (cricket scores cannot go
// down, so the higher total closed or was ahead at close).
func parseCricketLeg(lines []string, opts CricketOptions) cricketResult {
	res := cricketResult{stats: accMap{}}

	homeFinal, awayFinal, foundFinals := 0, 0, 0
	for i := 0; i < len(lines) && i < 10; i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || l == "-" {
			continue
		}
		if strings.Contains(l, "Player") || strings.Contains(l, "!") {
			break
		}
		if pureNumberRe.MatchString(l) {
			switch foundFinals {
			case 0:
				homeFinal = atoi(l)
			case 1:
				awayFinal = atoi(l)
			}
			foundFinals++
			if foundFinals == 2 {
				break
			}
		}
	}

	inTable := false
	lastRound := 0
	var homePlayer, awayPlayer string
	var lastHomeThrow, lastAwayThrow *closeTrack

	for _, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := strings.TrimSpace(tabPadRe.ReplaceAllString(raw, "\t"))

		if strings.Contains(line, "Player") && (strings.Contains(line, "Rnd") || strings.Contains(line, "!")) {
			inTable = true
			continue
		}
		if strings.Contains(line, "3 Dart Avg") || strings.Contains(line, "MPR") {
			break
		}
		if !inTable {
			continue
		}

		cells := splitRow(line)
		if len(cells) < 3 {
			continue
		}

		// Winner-only closing row: round, score, hit, player - the losing
		// side never got its turn, so the normal column layout collapses.
		if len(cells) <= 6 && pureNumberRe.MatchString(cells[0]) {
			round := atoi(cells[0])
			if round > lastRound && round <= maxRoundCricket {
				var hit, player string
				for _, c := range cells[2:] {
					if isHitNotation(c) || c == noThrowMark {
						hit = c
					} else if isPlayerName(c) {
						player = c
					}
				}
				if player != "" && hit != "" {
					lastRound = round
					marks := HitMarks(hit)
					side := models.SideAway
					if a, known := res.stats[player]; known {
						side = a.side
					}
					res.throws = append(res.throws, models.Throw{
						Round:          round,
						Side:           side,
						Player:         player,
						Hit:            hit,
						Marks:          marks,
						Score:          atoi(cells[1]),
						IsClosingThrow: true,
					})
					a := res.stats.get(player, side)
					a.marks += marks
					a.darts += 3
					track := &closeTrack{player: player, darts: 3}
					if side == models.SideHome {
						lastHomeThrow = track
					} else {
						lastAwayThrow = track
					}
					continue
				}
			}
		}

		if len(cells) < 4 {
			continue
		}

		var candidates []numCell
		for i := 1; i < len(cells)-1; i++ {
			if pureNumberRe.MatchString(cells[i]) {
				candidates = append(candidates, numCell{value: atoi(cells[i]), index: i})
			}
		}
		scoreFlanked := func(c numCell) bool {
			return isScoreCell(cells[c.index-1]) && isScoreCell(cells[c.index+1])
		}
		roundCell, ok := pickRoundCell(candidates, lastRound+1, maxRoundCricket, scoreFlanked)
		if !ok {
			continue
		}

		round := roundCell.value
		lastRound = round
		homeScore := 0
		if cells[roundCell.index-1] != "Start" {
			homeScore = atoi(cells[roundCell.index-1])
		}
		awayScore := atoi(cells[roundCell.index+1])

		// Home section: rightmost-to-be-found name left of the home score,
		// with its hit in the very next cell.
		var homeHit, awayHit string
		for i := 0; i < roundCell.index-1; i++ {
			if isPlayerName(cells[i]) {
				homePlayer = cells[i]
				if i+1 < roundCell.index-1 && (isHitNotation(cells[i+1]) || cells[i+1] == noThrowMark) {
					homeHit = cells[i+1]
				}
				break
			}
		}
		for i := len(cells) - 1; i > roundCell.index+1; i-- {
			if isPlayerName(cells[i]) {
				awayPlayer = cells[i]
				if i > roundCell.index+2 && (isHitNotation(cells[i-1]) || cells[i-1] == noThrowMark) {
					awayHit = cells[i-1]
				}
				break
			}
		}

		// A turn is three darts whatever it scored; zero marks still burns
		// a full turn.
		if homePlayer != "" {
			marks := HitMarks(homeHit)
			res.throws = append(res.throws, models.Throw{
				Round: round, Side: models.SideHome, Player: homePlayer,
				Hit: homeHit, Marks: marks, Score: homeScore,
			})
			a := res.stats.get(homePlayer, models.SideHome)
			a.marks += marks
			a.darts += 3
			lastHomeThrow = &closeTrack{player: homePlayer, darts: 3}
		}
		if awayPlayer != "" {
			marks := HitMarks(awayHit)
			res.throws = append(res.throws, models.Throw{
				Round: round, Side: models.SideAway, Player: awayPlayer,
				Hit: awayHit, Marks: marks, Score: awayScore,
			})
			a := res.stats.get(awayPlayer, models.SideAway)
			a.marks += marks
			a.darts += 3
			lastAwayThrow = &closeTrack{player: awayPlayer, darts: 3}
		}
	}

	if opts.Winner != "" && opts.CloseoutDarts >= 1 && opts.CloseoutDarts < 3 {
		track := lastHomeThrow
		if opts.Winner == models.SideAway {
			track = lastAwayThrow
		}
		if track != nil && track.darts == 3 {
			if a, known := res.stats[track.player]; known {
				a.darts -= 3 - opts.CloseoutDarts
			}
		}
	}

	res.homeFinal, res.awayFinal = homeFinal, awayFinal
	res.winner = cricketWinner(homeFinal, awayFinal, foundFinals >= 2, res.throws)
	return res
}

type closeTrack struct {
	player string
	darts  int
}

// cricketWinner decides the leg winner: differing final scores pick the
// higher side; on a tie (or missing scores) the closing throw's side wins;
// otherwise the result stays undetermined rather than defaulting.
func cricketWinner(homeFinal, awayFinal int, haveFinals bool, throws []models.Throw) models.WinnerResult {
	if haveFinals {
		if homeFinal > awayFinal {
			return models.WinnerResult{Side: models.SideHome, Determined: true}
		}
		if awayFinal > homeFinal {
			return models.WinnerResult{Side: models.SideAway, Determined: true}
		}
	}
	for _, t := range throws {
		if t.IsClosingThrow {
			return models.WinnerResult{Side: t.Side, Determined: true}
		}
	}
	return models.WinnerResult{}
}

// isScoreCell reports whether a cell can sit beside the round counter: a
// running point total or the leg-opening "Start" placeholder.
func isScoreCell(s string) bool {
	return s == "Start" || pureNumberRe.MatchString(s)
}

// isHitNotation reports whether a cell holds cricket hit shorthand.
func isHitNotation(s string) bool {
	switch s {
	case "", noThrowMark, bustMark, "Start":
		return false
	}
	return hitPrefixRe.MatchString(s) || bullPrefixRe.MatchString(s) ||
		(strings.Contains(s, ",") && anyHitRe.MatchString(s))
}

// HitMarks decodes hit shorthand into a mark count: trebles score 3, the
// double ring and double bull 2, singles and the single bull 1, each times
// the trailing xN repeat. "T20, S19x2" is 3+2 = 5 marks; a turn is capped
// at 9 by the three darts themselves, not by this function.
func HitMarks(hit string) int {
	switch hit {
	case "", noThrowMark, bustMark, "-":
		return 0
	}
	marks := 0
	for _, h := range strings.Split(hit, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		mult := 1
		if m := hitMultRe.FindStringSubmatch(h); m != nil {
			mult = atoi(m[1])
			h = strings.TrimSuffix(h, m[0])
		}
		switch {
		case strings.HasPrefix(h, "T"):
			marks += 3 * mult
		case h == "DB":
			marks += 2 * mult
		case h == "SB":
			marks += mult
		case strings.HasPrefix(h, "D"):
			marks += 2 * mult
		case strings.HasPrefix(h, "S"):
			marks += mult
		}
	}
	return marks
}
