// Package main is the entry point for the brdc-match-import application
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/donniepagel-arch/brdc-match-import/internal/utils"
	"github.com/donniepagel-arch/brdc-match-import/pkg/config"
	"github.com/donniepagel-arch/brdc-match-import/pkg/convert"
	"github.com/donniepagel-arch/brdc-match-import/pkg/importer"
	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
	"github.com/donniepagel-arch/brdc-match-import/pkg/parser"
	"github.com/donniepagel-arch/brdc-match-import/pkg/roster"
	"github.com/donniepagel-arch/brdc-match-import/pkg/scraper"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	// Define command-line flags
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configFlag := flag.String("config", "league.yaml", "Path to the league config file")
	matchFlag := flag.String("match", "", "Configured match name or ID to import (default: all configured matches)")
	fileFlag := flag.String("file", "", "Import a single report file or URL directly, bypassing the config match list")
	homeFlag := flag.String("home", "", "Home team label for -file imports")
	awayFlag := flag.String("away", "", "Away team label for -file imports")
	dryRunFlag := flag.Bool("dry-run", false, "Parse and display only, do not upload")
	outputFlag := flag.String("output", "", "Output directory for CSV stat files (default: no CSV output)")
	flag.Parse()

	// Print version and exit if requested
	if *versionFlag {
		fmt.Printf("brdc-match-import version %s\n", version)
		return
	}

	// Setup logging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("BRDC Match Importer starting...")
	log.Printf("Version: %s", version)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *outputFlag != "" {
		if err := os.MkdirAll(*outputFlag, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		log.Printf("Using output directory: %s", *outputFlag)
	}

	table := &roster.Table{Rosters: cfg.Rosters, Aliases: cfg.Aliases}

	var matches []config.MatchConfig
	switch {
	case *fileFlag != "":
		matches = []config.MatchConfig{{
			Name:     filepath.Base(*fileFlag),
			File:     *fileFlag,
			HomeTeam: *homeFlag,
			AwayTeam: *awayFlag,
		}}
	case *matchFlag != "":
		m, ok := cfg.Match(*matchFlag)
		if !ok {
			log.Fatalf("No configured match named %q", *matchFlag)
		}
		matches = []config.MatchConfig{*m}
	default:
		matches = cfg.Matches
	}
	log.Printf("Will import %d match(es)", len(matches))

	client := importer.NewClient(cfg.Endpoints.ImportURL, cfg.Endpoints.StatsURL,
		cfg.LeagueID, time.Duration(cfg.Endpoints.Timeout))

	imported := 0
	for i, m := range matches {
		log.Printf("Processing match %d of %d: %s", i+1, len(matches), m.Name)

		text, err := loadReport(m.File)
		if err != nil {
			log.Printf("Error reading report %s: %v", m.File, err)
			continue
		}

		sections := parser.ParseMatch(text)
		if len(sections) == 0 {
			log.Printf("No match data found in %s", m.File)
			continue
		}
		log.Printf("Parsed %d match section(s) from %s", len(sections), m.File)

		homeTeam, awayTeam := m.HomeTeam, m.AwayTeam
		if homeTeam == "" {
			homeTeam = sections[0].HomeTeam
		}
		if awayTeam == "" {
			awayTeam = sections[0].AwayTeam
		}

		// Map positional sides to real teams and apply any closeout
		// corrections before stats are read off.
		var games []*models.Game
		for _, section := range sections {
			table.MapSides(section, homeTeam, awayTeam)
			applyCloseoutOverrides(section, m.CloseoutOverrides)
			utils.DisplayMatchSummary(section)
			games = append(games, section.Games...)
		}

		if len(m.ReorderByPlayers) > 0 {
			before := len(games)
			games = table.ReorderGames(games, m.ReorderByPlayers)
			log.Printf("Reordered games by player combos: %d of %d matched", len(games), before)
		}

		data := convert.FromGames(games, homeTeam, awayTeam)
		utils.DisplayMatchData(data)

		if *outputFlag != "" {
			name := safeName(m.Name)
			textFilename := filepath.Join(*outputFlag, "report_"+name+".txt")
			if err := scraper.SaveContentToFile(textFilename, text); err != nil {
				log.Printf("Error saving report text: %v", err)
			} else {
				log.Printf("Saved report text to %s", textFilename)
			}

			csvFilename := filepath.Join(*outputFlag, "leg_stats_"+name+".csv")
			if err := utils.SaveLegStatsToCSV(sections, csvFilename); err != nil {
				log.Printf("Error saving CSV file: %v", err)
			} else {
				log.Printf("Saved leg stats to %s", csvFilename)
			}
		}

		if *dryRunFlag {
			log.Printf("Dry run: skipping upload for %s", m.Name)
			continue
		}
		if cfg.Endpoints.ImportURL == "" {
			log.Printf("No import endpoint configured, skipping upload for %s", m.Name)
			continue
		}

		result, err := client.ImportMatch(m.MatchID, data)
		if err != nil {
			log.Printf("Error importing match %s: %v", m.Name, err)
			continue
		}
		log.Printf("Imported match %s: %v", m.Name, result)
		imported++

		if cfg.Endpoints.StatsURL != "" {
			if _, err := client.RefreshStats(m.MatchID); err != nil {
				log.Printf("Error refreshing stats for %s: %v", m.Name, err)
			} else {
				log.Printf("Refreshed league stats for %s", m.Name)
			}
		}
	}

	log.Printf("Import complete: %d match(es) imported", imported)
}

// loadReport reads a report from a local path or URL. A URL that is not a
// direct export file is treated as a match recap page: fetch it, pull the
// export links out of the HTML, and download the first one. PDF exports go
// through text extraction; anything else is fed to the parser as-is, which
// handles both raw RTF and plain text.
func loadReport(src string) (string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if !isExportURL(src) {
			exportURL, err := findExportLink(src)
			if err != nil {
				return "", err
			}
			src = exportURL
		}
		local := filepath.Join(os.TempDir(), filepath.Base(src))
		if err := scraper.DownloadFile(src, local); err != nil {
			return "", err
		}
		src = local
	}

	if strings.EqualFold(filepath.Ext(src), ".pdf") {
		return parser.ReadPDFText(src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("error reading report file: %w", err)
	}
	return string(data), nil
}

func isExportURL(u string) bool {
	lower := strings.ToLower(u)
	return strings.HasSuffix(lower, ".rtf") || strings.HasSuffix(lower, ".pdf")
}

// findExportLink fetches a recap page and resolves its first export link
// against the page URL.
func findExportLink(pageURL string) (string, error) {
	html, err := scraper.FetchURL(pageURL)
	if err != nil {
		return "", err
	}
	links := scraper.ExtractExportLinks(html)
	if len(links) == 0 {
		return "", fmt.Errorf("no export links found at %s", pageURL)
	}
	return scraper.ResolveRelativeURL(pageURL, links[0]), nil
}

func applyCloseoutOverrides(section *models.MatchSection, overrides []config.CloseoutOverride) {
	for _, o := range overrides {
		for _, game := range section.Games {
			if game.GameNumber != o.Game {
				continue
			}
			for _, leg := range game.Legs {
				if leg.LegNumber != o.Leg || leg.Format != models.FormatCricket {
					continue
				}
				winner := models.Side(o.Winner)
				leg.PlayerStats = parser.AdjustCloseoutDarts(leg.PlayerStats, winner, o.Darts)
				leg.Winner = models.WinnerResult{Side: winner, Determined: true}
				log.Printf("Applied closeout override: game %d leg %d, %s closed in %d darts",
					o.Game, o.Leg, o.Winner, o.Darts)
			}
		}
	}
}

func safeName(matchName string) string {
	name := strings.ToLower(strings.TrimSpace(matchName))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
