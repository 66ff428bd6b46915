package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/memory"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode, or every mode's best and the
leaderboard when no mode is given.

Examples:
  tapsy scores
  tapsy scores classic
  tapsy scores speed --limit 20
  tapsy scores zen --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		if flagScoresClear {
			fail("--clear needs a mode")
		}
		runScoresSummary()
		return
	}

	mode, err := memory.ParseMode(args[0])
	if err != nil {
		fail("%v\nRun 'tapsy modes' to see available modes.", err)
	}

	store := mustOpenStore(loadConfig())
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode.String()); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared %s scores.\n", mode.Title())
		return
	}

	scores, err := store.TopScores(mode.String(), flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tapsy play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		player := entry.Username
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Level, player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runScoresSummary() {
	store := mustOpenStore(loadConfig())
	defer store.Close()

	profile, err := store.Profile()
	if err != nil {
		fail("loading profile: %v", err)
	}
	best, err := store.BestScores(profile.Username)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("Your Best Scores")
	fmt.Println()
	for _, m := range memory.Modes() {
		fmt.Printf("  %-8s  %d\n", m.Title(), best[m.String()])
	}

	rankings, err := store.Rankings(flagScoresLimit)
	if err != nil {
		fail("retrieving leaderboard: %v", err)
	}

	fmt.Println()
	fmt.Println("Leaderboard")
	fmt.Println()
	if len(rankings) == 0 {
		fmt.Println("No leaderboard entries yet. Set a username with 'tapsy settings --username'.")
		return
	}
	fmt.Printf("  %-4s  %-12s  %-7s  %-7s  %-7s  %s\n", "Rank", "Player", "Classic", "Reverse", "Hard", "Total")
	fmt.Printf("  %-4s  %-12s  %-7s  %-7s  %-7s  %s\n", "----", "------", "-------", "-------", "----", "-----")
	for i, e := range rankings {
		fmt.Printf("  %-4d  %-12s  %-7d  %-7d  %-7d  %d\n", i+1, e.Name, e.Classic, e.Reverse, e.Hard, e.Combined)
	}
}
