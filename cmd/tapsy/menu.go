package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/audio"
	"github.com/vovakirdan/tapsy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tapsy with a mode picker menu",
	Long: `Start tapsy in interactive menu mode.

Use arrow keys or j/k to navigate, Enter or 1-4 to pick a mode.
Press B after a game ends to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/1-4    - Play mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tapsy menu
  tapsy menu --db ./tapsy.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := playLogger()
	defer closeLog()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	// One player for the whole session so the speaker is opened once
	player := audio.NewPlayer(cfg.AudioOptions(), nil, logger)
	rt := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rt.ScreenW = menuResult.Config.ScreenW
		rt.ScreenH = menuResult.Config.ScreenH

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return // User quit from scoreboard
		}

		backToMenu, err := tui.RunGame(tui.GameOptions{
			Mode:     menuResult.Mode,
			Store:    store,
			Audio:    player,
			Settings: cfg,
			Runtime:  rt,
			Logger:   logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
