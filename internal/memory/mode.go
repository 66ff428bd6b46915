// Package memory implements the sequence-memory game engine: sequence
// generation, timed playback, input validation, scoring and level progression.
//
// The package holds no global state. Each Session owns its state and is
// driven from a single logical thread through a clock.Scheduler.
package memory

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GameMode selects playback speed, score multiplier and input ordering.
type GameMode uint8

const (
	ModeClassic GameMode = iota
	ModeSpeed
	ModeReverse
	ModeZen

	modeCount
)

// DefaultMode is used when a session is reset without an explicit mode.
const DefaultMode = ModeClassic

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown game mode")

// ModeConfig is the static configuration of a game mode.
type ModeConfig struct {
	Name          string
	Title         string
	Description   string
	PlaybackSpeed time.Duration // How long each tile stays lit during playback
	MultiplierPct int           // Score multiplier in percent (150 = x1.5)
	ReversedInput bool          // Player repeats the sequence back to front
	Category      string        // Leaderboard bucket
}

// modeTable is indexed by GameMode.
var modeTable = [...]ModeConfig{
	ModeClassic: {
		Name:          "classic",
		Title:         "Classic",
		Description:   "Repeat the sequence in order",
		PlaybackSpeed: 600 * time.Millisecond,
		MultiplierPct: 100,
		Category:      "classic",
	},
	ModeSpeed: {
		Name:          "speed",
		Title:         "Speed",
		Description:   "Faster playback, x1.5 points",
		PlaybackSpeed: 400 * time.Millisecond,
		MultiplierPct: 150,
		Category:      "hard",
	},
	ModeReverse: {
		Name:          "reverse",
		Title:         "Reverse",
		Description:   "Repeat the sequence backwards",
		PlaybackSpeed: 600 * time.Millisecond,
		MultiplierPct: 100,
		ReversedInput: true,
		Category:      "reverse",
	},
	ModeZen: {
		Name:          "zen",
		Title:         "Zen",
		Description:   "Slow and relaxed playback",
		PlaybackSpeed: 800 * time.Millisecond,
		MultiplierPct: 100,
		Category:      "classic",
	},
}

// Compile-time check that every mode has a table entry.
var _ = [1]struct{}{}[len(modeTable)-int(modeCount)]

// Modes returns all game modes in menu order.
func Modes() []GameMode {
	modes := make([]GameMode, 0, modeCount)
	for m := GameMode(0); m < modeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

// ParseMode resolves a mode by name (case-insensitive).
func ParseMode(name string) (GameMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m := GameMode(0); m < modeCount; m++ {
		if modeTable[m].Name == key {
			return m, nil
		}
	}
	return DefaultMode, fmt.Errorf("memory: %w %q", ErrUnknownMode, name)
}

// Valid reports whether m is one of the defined modes.
func (m GameMode) Valid() bool {
	return m < modeCount
}

// Config returns the static configuration for m.
// Panics on an undefined mode; callers obtain modes from ParseMode or Modes.
func (m GameMode) Config() ModeConfig {
	if !m.Valid() {
		panic(fmt.Sprintf("memory: undefined game mode %d", m))
	}
	return modeTable[m]
}

// String returns the mode's identifier (e.g. "classic").
func (m GameMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", m)
	}
	return modeTable[m].Name
}

// Title returns the display name.
func (m GameMode) Title() string {
	return m.Config().Title
}

// Description returns a one-line summary for menus.
func (m GameMode) Description() string {
	return m.Config().Description
}

// PlaybackSpeed returns how long each tile stays lit during playback.
func (m GameMode) PlaybackSpeed() time.Duration {
	return m.Config().PlaybackSpeed
}

// ScoreMultiplier returns the multiplier applied to level scores.
func (m GameMode) ScoreMultiplier() float64 {
	return float64(m.Config().MultiplierPct) / 100
}

// ReversedInput reports whether the player repeats the sequence backwards.
func (m GameMode) ReversedInput() bool {
	return m.Config().ReversedInput
}

// LeaderboardCategory returns the leaderboard bucket the mode submits to.
// Speed scores are ranked as "hard"; zen shares the classic board.
func (m GameMode) LeaderboardCategory() string {
	return m.Config().Category
}

// LevelScore returns the points awarded for completing level in mode m:
// floor(level * 10 * multiplier).
func LevelScore(m GameMode, level int) int {
	if level <= 0 {
		return 0
	}
	return level * 10 * m.Config().MultiplierPct / 100
}

// TotalScore returns the score after completing levels 1..levels in mode m.
func TotalScore(m GameMode, levels int) int {
	total := 0
	for l := 1; l <= levels; l++ {
		total += LevelScore(m, l)
	}
	return total
}
