package parser

import (
	"math"
	"sort"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

// playerAcc accumulates one player's raw totals while scanning a leg.
type playerAcc struct {
	side   models.Side
	darts  int
	points int
	marks  int
}

type accMap map[string]*playerAcc

func (m accMap) get(player string, side models.Side) *playerAcc {
	if a, ok := m[player]; ok {
		return a
	}
	a := &playerAcc{side: side}
	m[player] = a
	return a
}

// finalizeStats folds raw accumulators into per-player leg stats with the
// derived average for the leg's format: three-dart average for 501,
// marks-per-round for cricket. Zero darts yields a zero average.
func finalizeStats(acc accMap, format string) map[string]models.PlayerLegStats {
	out := make(map[string]models.PlayerLegStats, len(acc))
	for name, a := range acc {
		s := models.PlayerLegStats{Side: a.side, Darts: a.darts}
		if format == models.Format501 {
			s.Points = a.points
			if a.darts > 0 {
				s.ThreeDartAvg = Round2(float64(a.points) / float64(a.darts) * 3)
			}
		} else {
			s.Marks = a.marks
			if a.darts > 0 {
				s.MPR = Round2(float64(a.marks) / float64(a.darts) * 3)
			}
		}
		out[name] = s
	}
	return out
}

// AdjustCloseoutDarts corrects a leg's dart totals once the true closeout
// dart count is known; a cricket report does not state how many darts the
// closing turn took, so this arrives from the caller (score sheet, config
// override). Exactly one winning-side player is adjusted - lowest name
// first for determinism. In doubles the report cannot say which partner
// threw the closing darts, so which player absorbs the correction is an
// acknowledged imprecision, not something the parser guesses at.
func AdjustCloseoutDarts(stats map[string]models.PlayerLegStats, winner models.Side, closeoutDarts int) map[string]models.PlayerLegStats {
	if stats == nil || winner == "" || closeoutDarts < 1 || closeoutDarts >= 3 {
		return stats
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats[name]
		if s.Side != winner {
			continue
		}
		s.Darts -= 3 - closeoutDarts
		if s.Darts > 0 {
			if s.Marks > 0 || s.MPR > 0 {
				s.MPR = Round2(float64(s.Marks) / float64(s.Darts) * 3)
			}
			if s.Points > 0 || s.ThreeDartAvg > 0 {
				s.ThreeDartAvg = Round2(float64(s.Points) / float64(s.Darts) * 3)
			}
		}
		stats[name] = s
		break
	}
	return stats
}

// Round2 rounds half-up to two decimals, the rounding every derived
// average in a report uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
