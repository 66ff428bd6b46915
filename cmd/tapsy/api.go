package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/leaderboard"
)

var (
	flagAPIAddr        string
	flagAllowOrigin    string
	flagRequestTimeout time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the leaderboard HTTP API",
	Long: `Serve the leaderboard over HTTP as JSON.

Routes:
  GET    /health
  GET    /leaderboard?limit=N
  POST   /leaderboard/scores      {"name", "mode", "score"}
  GET    /leaderboard/{name}
  DELETE /leaderboard/{name}
  GET    /usernames/{name}/available

Examples:
  tapsy api
  tapsy api --addr :9090 --allow-origin https://example.com`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
	apiCmd.Flags().StringVar(&flagAllowOrigin, "allow-origin", "", "CORS origin to allow (empty disables CORS)")
	apiCmd.Flags().DurationVar(&flagRequestTimeout, "request-timeout", 10*time.Second, "Per-request timeout")
}

func runAPI(_ *cobra.Command, _ []string) {
	store := mustOpenStore(loadConfig())
	defer store.Close()

	srv := leaderboard.New(store, leaderboard.Options{
		Logger:         newLogger(os.Stderr, "tapsy-api"),
		AllowOrigin:    flagAllowOrigin,
		RequestTimeout: flagRequestTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Leaderboard API listening on %s\n", flagAPIAddr)
	if err := srv.ListenAndServe(ctx, flagAPIAddr); err != nil {
		store.Close()
		fail("server: %v", err)
	}
}
