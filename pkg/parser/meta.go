package parser

import (
	"regexp"
	"strings"
)

// Preamble lines that can never hold a team label.
var metaSkipTokens = []string{
	"All Games", "AGP", "Opponents", "Score", "Select Report",
	"Game Detail", "Disclaimer", "Date:", "Start:", "End:",
	"Learn More", "Summary",
}

var startsWithLetterRe = regexp.MustCompile(`^[A-Za-z]`)

// extractMatchMeta recovers the two competing player/team labels from a
// match section's summary preamble. Best effort over an unstructured
// export: either label may come back empty, and callers must supply team
// identity themselves when that happens.
//
// First pass: a summary-table row opens with the name and follows it with
// numeric stat columns on the same tab-split line. Second pass, when the
// table was not found: the standings block prints "WIN" on its own line
// with the two labels shortly after.
func extractMatchMeta(lines []string) (home, away string, doubles bool) {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if skipMetaLine(line) {
			continue
		}

		parts := splitRow(line)
		if len(parts) < 3 {
			continue
		}
		first := parts[0]
		if !startsWithLetterRe.MatchString(first) ||
			strings.Contains(first, "Game") ||
			strings.Contains(first, "WIN") ||
			strings.Contains(first, ":") {
			continue
		}
		if !hasNumericStat(parts[1:]) {
			continue
		}

		if home == "" {
			home = first
		} else if away == "" && first != home {
			away = first
			break
		}
	}

	if home == "" || away == "" {
		for i, raw := range lines {
			if strings.TrimSpace(raw) != "WIN" {
				continue
			}
			found := 0
			for j := i + 1; j < len(lines) && j < i+10 && found < 2; j++ {
				l := strings.TrimSpace(lines[j])
				if l == "" || strings.Contains(l, "Game") || strings.Contains(l, "-") ||
					pureNumberRe.MatchString(l) || !startsWithLetterRe.MatchString(l) {
					continue
				}
				if found == 0 {
					if home == "" {
						home = l
					}
				} else if away == "" {
					away = l
				}
				found++
			}
			break
		}
	}

	// A pair separator in either label marks a doubles event.
	doubles = strings.Contains(home, "&") || strings.Contains(away, "&")
	return home, away, doubles
}

func skipMetaLine(line string) bool {
	for _, tok := range metaSkipTokens {
		if strings.Contains(line, tok) {
			return true
		}
	}
	return false
}

var numericStatRe = regexp.MustCompile(`^[\d,]+$`)

func hasNumericStat(cells []string) bool {
	for _, c := range cells {
		if numericStatRe.MatchString(c) {
			return true
		}
	}
	return false
}
