// Package parser recovers structured match data from DartConnect match
// report exports: games, legs, per-round throws, and per-player stats for
// 501 and Cricket.
//
// The parser is deliberately permissive. The export format is loosely
// structured, whitespace- and tab-delimited, and was never meant for
// machines; lines that fit no known shape are skipped, missing metadata
// comes back empty, and no input ever produces an error from the parsing
// core itself.
package parser

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
	"github.com/donniepagel-arch/brdc-match-import/pkg/rtf"
)

// ParseMatch parses one export's text - raw RTF or already-plain text -
// and returns every match section it contains. An export usually holds a
// single match, but DartConnect bundles several when they were scored in
// one sitting, separated by its "More Darts!" footer. Sides in the result
// are positional (report columns); use the roster package to map them to
// real teams.
func ParseMatch(text string) []*models.MatchSection {
	plain := rtf.ToText(text)

	var matches []*models.MatchSection
	for _, lines := range splitMatchBlocks(plain) {
		games := parseGames(lines)
		if len(games) == 0 {
			continue
		}
		home, away, doubles := extractMatchMeta(lines)
		matches = append(matches, &models.MatchSection{
			MatchIndex: len(matches) + 1,
			HomeTeam:   home,
			AwayTeam:   away,
			IsDoubles:  doubles,
			Games:      games,
		})
	}
	return matches
}

// Parse501Leg parses one 501 leg body on its own, for callers that carve
// up a report themselves. ParseMatch does this per leg internally.
func Parse501Leg(lines []string) *models.Leg {
	res := parse501Leg(lines)
	return &models.Leg{
		Format:        models.Format501,
		Throws:        res.throws,
		PlayerStats:   finalizeStats(res.stats, models.Format501),
		CheckoutDarts: res.checkoutDarts,
	}
}

// ParseCricketLeg parses one cricket leg body on its own. The options
// carry the closeout hint when the caller already knows the winner and the
// closing turn's dart count; AdjustCloseoutDarts applies the same
// correction after the fact.
func ParseCricketLeg(lines []string, opts CricketOptions) *models.Leg {
	res := parseCricketLeg(lines, opts)
	return &models.Leg{
		Format:      models.FormatCricket,
		Throws:      res.throws,
		PlayerStats: finalizeStats(res.stats, models.FormatCricket),
		Winner:      res.winner,
	}
}

// ReadPDFText reads a PDF export and returns its text content. DartConnect
// offers the same report as PDF; the extracted text feeds the same
// pipeline as the RTF form.
func ReadPDFText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}

	return string(bytes), nil
}
