package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/memory"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player statistics",
	Long:  `Shows the player profile and aggregated statistics for every mode.`,
	Run:   runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store := mustOpenStore(loadConfig())
	defer store.Close()

	profile, err := store.Profile()
	if err != nil {
		fail("%v", err)
	}
	stats, err := store.GetAllModeStats()
	if err != nil {
		fail("%v", err)
	}

	name := profile.Username
	if name == "" {
		name = "(no username)"
	}
	fmt.Printf("Player:        %s\n", name)
	fmt.Printf("Games played:  %d\n", profile.GamesPlayed)
	fmt.Printf("Day streak:    %d\n", profile.StreakDays)
	if !profile.LastPlayed.IsZero() {
		fmt.Printf("Last played:   %s\n", profile.LastPlayed.Format("2006-01-02"))
	}
	fmt.Println()

	fmt.Printf("  %-8s  %-5s  %-6s  %-5s  %-7s  %s\n", "Mode", "Games", "Best", "Level", "Average", "Last played")
	fmt.Printf("  %-8s  %-5s  %-6s  %-5s  %-7s  %s\n", "----", "-----", "----", "-----", "-------", "-----------")
	for _, m := range memory.Modes() {
		s, ok := stats[m.String()]
		if !ok || s.GamesCount == 0 {
			fmt.Printf("  %-8s  %-5d  %-6s  %-5s  %-7s  %s\n", m.Title(), 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-8s  %-5d  %-6d  %-5d  %-7.1f  %s\n",
			m.Title(), s.GamesCount, s.HighScore, s.BestLevel, s.AvgScore, s.LastPlayed.Format("2006-01-02"))
	}
}
