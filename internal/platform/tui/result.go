package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

// Result is a finished run as shown on the game-over screen.
type Result struct {
	RunID        string
	Mode         memory.GameMode
	Level        int
	Score        int
	PreviousBest int
	NewBest      bool
	Submitted    bool // Sent to the leaderboard
	Profile      storage.Profile
}

// RecordResult stores a finished run: the score row with the games-played
// and streak counters, and, for a new personal best under a username, the
// leaderboard entry for the mode's category. Bests are per player. A nil store records nothing.
//
// A non-empty guest records the run for a remote player instead: the local
// profile is left alone and the guest's leaderboard entry is the best to beat.
func RecordResult(store *storage.Store, ev memory.GameOver, now time.Time, guest string) (Result, error) {
	res := Result{
		RunID: ev.RunID,
		Mode:  ev.Mode,
		Level: ev.Level,
		Score: ev.Score,
	}
	if store == nil {
		return res, nil
	}
	if guest != "" {
		return recordGuest(store, res, storage.NormalizeName(guest))
	}

	current, err := store.Profile()
	if err != nil {
		return res, fmt.Errorf("record result: %w", err)
	}
	prev, err := store.HighScore(ev.Mode.String(), current.Username)
	if err != nil {
		return res, fmt.Errorf("record result: %w", err)
	}
	res.PreviousBest = prev
	res.NewBest = ev.Score > prev

	profile, err := store.RecordGame(storage.ScoreEntry{
		Mode:  ev.Mode.String(),
		Score: ev.Score,
		Level: ev.Level,
		RunID: ev.RunID,
	}, now)
	if err != nil {
		return res, fmt.Errorf("record result: %w", err)
	}
	res.Profile = profile

	if res.NewBest && profile.Username != "" {
		if _, _, err := store.SubmitScore(ev.Mode.LeaderboardCategory(), ev.Score, profile.Username); err != nil {
			return res, fmt.Errorf("record result: submit: %w", err)
		}
		res.Submitted = true
	}
	return res, nil
}

func recordGuest(store *storage.Store, res Result, name string) (Result, error) {
	category := res.Mode.LeaderboardCategory()
	entry, err := store.LeaderboardEntry(name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return res, fmt.Errorf("record result: %w", err)
	default:
		res.PreviousBest = entry.Score(category)
	}
	res.NewBest = res.Score > res.PreviousBest
	res.Profile.Username = name

	if _, err := store.SaveScore(storage.ScoreEntry{
		Mode:     res.Mode.String(),
		Score:    res.Score,
		Level:    res.Level,
		RunID:    res.RunID,
		Username: name,
	}); err != nil {
		return res, fmt.Errorf("record result: %w", err)
	}

	if res.NewBest {
		_, changed, err := store.SubmitScore(category, res.Score, name)
		if err != nil {
			return res, fmt.Errorf("record result: submit: %w", err)
		}
		res.Submitted = changed
	}
	return res, nil
}
