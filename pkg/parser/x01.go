package parser

import (
	"sort"
	"strings"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

type x01Result struct {
	throws        []models.Throw
	stats         accMap
	checkoutDarts int // annotated DO(n) value, 0 when no annotation appeared
}

// parse501Leg reconstructs the alternating-turn rows of a 501 leg body.
//
// A data row holds, left to right: home player, home score, home remaining,
// round number, away remaining, away score, away player - but any cell may
// be a bust (X) or no-throw marker, names are often omitted on later rows,
// and either side's group may be missing entirely on the final row. The
// round cell anchors everything: home values are read backward from it,
// away values forward.
func parse501Leg(lines []string) x01Result {
	res := x01Result{stats: accMap{}}

	inTable := false
	lastRound := 0
	checkoutDarts := 3
	checkoutAnnotated := false
	var homePlayer, awayPlayer string

	for _, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := strings.TrimSpace(tabPadRe.ReplaceAllString(raw, "\t"))

		if strings.Contains(line, "Player\tTurn") || strings.Contains(line, "!\tPlayer") {
			inTable = true
			continue
		}
		// The per-player summary below the table ends the throw data.
		if strings.Contains(line, "3 Dart Avg") ||
			(strings.Contains(line, "Darts:") && !strings.Contains(line, "Player")) {
			break
		}
		if !inTable {
			continue
		}

		doMatch := doMarkerRe.FindStringSubmatch(raw)
		if doMatch != nil {
			// DO(n): darts used on the double-out. Sticks for the rest of
			// the leg in case a later checkout row is unannotated.
			checkoutDarts = atoi(doMatch[1])
			checkoutAnnotated = true
		}

		cells := splitRow(line)
		if len(cells) < 4 {
			continue
		}

		var players []nameCell
		var numbers, values []numCell
		for i, c := range cells {
			switch {
			case isPlayerName(c):
				players = append(players, nameCell{c, i})
			case pureNumberRe.MatchString(c):
				n := numCell{value: atoi(c), index: i}
				numbers = append(numbers, n)
				values = append(values, n)
			case c == bustMark || c == noThrowMark:
				// Scoreless turn: zero for arithmetic, marker kept for type.
				values = append(values, numCell{index: i, marker: c})
			}
		}
		if len(players) == 0 || len(values) < 3 {
			continue
		}
		sort.Slice(values, func(a, b int) bool { return values[a].index < values[b].index })

		flanked := func(c numCell) bool {
			before, after := 0, 0
			for _, v := range values {
				if v.index < c.index {
					before++
				} else if v.index > c.index {
					after++
				}
			}
			return before > 0 && after > 0
		}

		roundCell, ok := pickRoundCell(numbers, lastRound+1, maxRound501, flanked)
		if !ok {
			// Checkout-only row: the winner closed before the opponent's
			// turn, so only one side appears and the round cell leads the
			// row with nothing before it. Format: round, remaining, score,
			// player, DO(n).
			if len(players) == 1 && len(numbers) >= 2 && doMatch != nil {
				round := numbers[0].value
				remaining := numbers[1].value
				score := 0
				if len(numbers) > 2 {
					score = numbers[2].value
				}
				if remaining == 0 || round > lastRound {
					name := players[0].name
					side := models.SideAway
					if a, known := res.stats[name]; known {
						side = a.side
					}
					res.throws = append(res.throws, models.Throw{
						Round:               round,
						Side:                side,
						Player:              name,
						Score:               score,
						Remaining:           0,
						IsCheckout:          true,
						CheckoutDarts:       checkoutDarts,
						OpponentDidNotThrow: true,
					})
					a := res.stats.get(name, side)
					a.points += score
					a.darts += checkoutDarts
					res.checkoutDarts = checkoutDarts
					lastRound = round
				}
			}
			continue
		}

		round := roundCell.value
		lastRound = round

		var before, after []numCell
		for _, v := range values {
			if v.index < roundCell.index {
				before = append(before, v)
			} else if v.index > roundCell.index {
				after = append(after, v)
			}
		}
		// Nearest to the round cell is the remaining total, next out is the
		// turn's score.
		sort.Slice(before, func(a, b int) bool { return before[a].index > before[b].index })

		for _, p := range players {
			if p.index < roundCell.index {
				homePlayer = p.name
				break
			}
		}
		for i := len(players) - 1; i >= 0; i-- {
			if players[i].index > roundCell.index {
				awayPlayer = players[i].name
				break
			}
		}

		if homePlayer != "" && len(before) >= 2 {
			recordX01Throw(&res, models.SideHome, homePlayer, round,
				before[1].value, before[0].value, checkoutDarts, checkoutAnnotated)
		}
		if awayPlayer != "" && len(after) >= 1 {
			score := 0
			if len(after) >= 2 {
				score = after[1].value
			}
			recordX01Throw(&res, models.SideAway, awayPlayer, round,
				score, after[0].value, checkoutDarts, checkoutAnnotated)
		}
	}

	return res
}

func recordX01Throw(res *x01Result, side models.Side, player string, round, score, remaining, checkoutDarts int, annotated bool) {
	t := models.Throw{
		Round:     round,
		Side:      side,
		Player:    player,
		Score:     score,
		Remaining: remaining,
	}
	a := res.stats.get(player, side)
	a.points += score

	if remaining == 0 {
		t.IsCheckout = true
		if annotated {
			t.CheckoutDarts = checkoutDarts
			a.darts += checkoutDarts
			res.checkoutDarts = checkoutDarts
		} else {
			t.CheckoutDarts = 3
			a.darts += 3
		}
	} else {
		a.darts += 3
	}
	res.throws = append(res.throws, t)
}
