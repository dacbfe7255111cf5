package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Row-level markers used by the exporter.
const (
	bustMark    = "X" // 501 bust: turn scored nothing
	noThrowMark = "∅" // side never threw this turn
)

var (
	pureNumberRe = regexp.MustCompile(`^\d+$`)
	tabPadRe     = regexp.MustCompile(`\s*\t\s*`)
	hasLetterRe  = regexp.MustCompile(`[a-zA-Z]`)

	doMarkerRe = regexp.MustCompile(`DO\s*\((\d+)\)`)
	doCellRe   = regexp.MustCompile(`(?i)^DO\s*\(\d+\)$`)

	// Cricket hit shorthand: T20, S19x2, DB/SB bulls, "5M"/"3B" notable tags.
	hitPrefixRe  = regexp.MustCompile(`^[TDS]\d+`)
	bullPrefixRe = regexp.MustCompile(`^[TDS]B`)
	notableRe    = regexp.MustCompile(`^\d+[MBTDS]`)
	anyHitRe     = regexp.MustCompile(`[TDS]\d+`)
	hitMultRe    = regexp.MustCompile(`x(\d+)$`)
)

// splitRow normalizes a report line's tab padding and returns its non-empty
// cells in column order.
func splitRow(line string) []string {
	line = strings.TrimSpace(tabPadRe.ReplaceAllString(line, "\t"))
	var cells []string
	for _, c := range strings.Split(line, "\t") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// isPlayerName reports whether a cell plausibly holds a player name rather
// than a score, marker, column header, or cricket hit notation.
func isPlayerName(s string) bool {
	if s == "" || pureNumberRe.MatchString(s) || doCellRe.MatchString(s) {
		return false
	}
	switch s {
	case bustMark, noThrowMark, "-", "!":
		return false
	case "Start", "Player", "Turn", "Score", "Rnd":
		return false
	}
	if hitPrefixRe.MatchString(s) || bullPrefixRe.MatchString(s) || notableRe.MatchString(s) {
		return false
	}
	if strings.Contains(s, ",") && anyHitRe.MatchString(s) {
		return false
	}
	return hasLetterRe.MatchString(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
