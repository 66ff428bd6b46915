package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/audio"
	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (classic if omitted).

Controls:
  1-4 / mouse  - Tap a tile
  P/Esc        - Pause
  H            - Toggle hints
  R/Enter      - Play again (after game over)
  B            - Back (when paused or after game over)
  Q/Ctrl+C     - Quit

Examples:
  tapsy play
  tapsy play speed
  tapsy play reverse --seed 42
  tapsy play zen --config ./my-tapsy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := memory.DefaultMode
	if len(args) == 1 {
		m, err := memory.ParseMode(args[0])
		if err != nil {
			fail("%v\nRun 'tapsy modes' to see available modes.", err)
		}
		mode = m
	}

	cfg := loadConfig()
	logger, closeLog := playLogger()
	store := openStore(cfg)

	_, runErr := tui.RunGame(tui.GameOptions{
		Mode:     mode,
		Store:    store,
		Audio:    audio.NewPlayer(cfg.AudioOptions(), nil, logger),
		Settings: cfg,
		Runtime:  runtimeConfig(),
		Logger:   logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
