package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/memory"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows every game mode with its playback speed and score multiplier.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	fmt.Println("Game modes:")
	fmt.Println()

	fmt.Printf("  %-8s  %-6s  %-5s  %-8s  %s\n", "Mode", "Speed", "Score", "Board", "Description")
	fmt.Printf("  %-8s  %-6s  %-5s  %-8s  %s\n", "----", "-----", "-----", "-----", "-----------")

	for _, m := range memory.Modes() {
		fmt.Printf("  %-8s  %-6s  x%-4.1f  %-8s  %s\n",
			m.String(), m.PlaybackSpeed(), m.ScoreMultiplier(), m.LeaderboardCategory(), m.Description())
	}

	fmt.Println()
	fmt.Println("Run 'tapsy play <mode>' to play.")
}
