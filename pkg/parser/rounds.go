package parser

// Round-number ceilings per format. A 501 leg beyond 30 turns or a cricket
// leg beyond 50 does not occur in league play; anything larger is a score.
const (
	maxRound501     = 30
	maxRoundCricket = 50
)

// numCell is a numeric cell (or a bust/no-throw marker counted as zero)
// located at a column position within a split row.
type numCell struct {
	value  int
	index  int
	marker string // bustMark, noThrowMark, or "" for a plain number
}

// nameCell is a player-name cell at a column position.
type nameCell struct {
	name  string
	index int
}

// pickRoundCell selects which of a row's numeric cells is the round
// counter. The cells are inherently ambiguous - the round is just one small
// number among scores - so the choice leans on the round sequence: turns
// advance by one, so a cell equal to expected wins outright; when the
// export skips rows, the smallest candidate within [expected, max] is used
// instead. valid reports whether a cell's surroundings look like score
// columns for that position, which both leg formats define differently.
func pickRoundCell(candidates []numCell, expected, max int, valid func(numCell) bool) (numCell, bool) {
	for _, c := range candidates {
		if c.value == expected && valid(c) {
			return c, true
		}
	}

	var best numCell
	found := false
	for _, c := range candidates {
		if c.value < expected || c.value > max || c.value < 1 || !valid(c) {
			continue
		}
		if !found || c.value < best.value {
			best = c
			found = true
		}
	}
	return best, found
}
