// Package utils provides display and export helpers for the match importer
package utils

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/donniepagel-arch/brdc-match-import/pkg/convert"
	"github.com/donniepagel-arch/brdc-match-import/pkg/models"
)

// DisplayMatchSummary prints one parsed match section with per-leg player
// stats, the way the report itself lays them out
func DisplayMatchSummary(section *models.MatchSection) {
	title := fmt.Sprintf("MATCH %d", section.MatchIndex)
	if section.HomeTeam != "" || section.AwayTeam != "" {
		title = fmt.Sprintf("MATCH %d: %s vs %s", section.MatchIndex, section.HomeTeam, section.AwayTeam)
	}
	fmt.Printf("\n=========== %s ===========\n", title)

	for _, game := range section.Games {
		label := game.Type
		if game.IsDoubles {
			label += " (Doubles)"
		}
		fmt.Printf("\nGame %d - %s\n", game.GameNumber, label)

		for _, leg := range game.Legs {
			winner := "undecided"
			if w, ok := convert.LegWinner(leg); ok {
				winner = string(w)
			}
			fmt.Printf("  Leg %d (%s) - winner: %s\n", leg.LegNumber, leg.Format, winner)

			names := make([]string, 0, len(leg.PlayerStats))
			for name := range leg.PlayerStats {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				s := leg.PlayerStats[name]
				if leg.Format == models.Format501 {
					fmt.Printf("    %-26s | %-4s | %3d darts | %3d pts | %6.2f 3DA\n",
						name, s.Side, s.Darts, s.Points, s.ThreeDartAvg)
				} else {
					fmt.Printf("    %-26s | %-4s | %3d darts | %3d marks | %5.2f MPR\n",
						name, s.Side, s.Darts, s.Marks, s.MPR)
				}
			}
		}
	}

	fmt.Println(strings.Repeat("=", 50))
}

// DisplayMatchData prints the converted payload's set and leg results
func DisplayMatchData(data *convert.MatchData) {
	fmt.Printf("\n=========== %s vs %s ===========\n", data.HomeTeam, data.AwayTeam)
	for _, g := range data.Games {
		fmt.Printf("Set %d (%s): %s vs %s - %d:%d (%s)\n",
			g.Set, g.Format,
			strings.Join(g.HomePlayers, " & "), strings.Join(g.AwayPlayers, " & "),
			g.Result.HomeLegs, g.Result.AwayLegs, g.Winner)
	}
	fmt.Printf("Final score: %d:%d over %d legs, %d darts thrown\n",
		data.FinalScore.Home, data.FinalScore.Away, data.TotalLegs, data.TotalDarts)
	fmt.Println(strings.Repeat("=", 50))
}

// SaveLegStatsToCSV writes every leg's per-player stats to a CSV file
func SaveLegStatsToCSV(sections []*models.MatchSection, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "Match,Game,Leg,Format,Player,Side,Darts,Points,3DA,Marks,MPR\n")
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, section := range sections {
		for _, game := range section.Games {
			for _, leg := range game.Legs {
				names := make([]string, 0, len(leg.PlayerStats))
				for name := range leg.PlayerStats {
					names = append(names, name)
				}
				sort.Strings(names)

				for _, name := range names {
					s := leg.PlayerStats[name]
					_, err = fmt.Fprintf(f, "%d,%d,%d,%s,%s,%s,%d,%d,%.2f,%d,%.2f\n",
						section.MatchIndex, game.GameNumber, leg.LegNumber, leg.Format,
						name, s.Side, s.Darts, s.Points, s.ThreeDartAvg, s.Marks, s.MPR)
					if err != nil {
						return fmt.Errorf("failed to write player data: %w", err)
					}
				}
			}
		}
	}

	return nil
}
