package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tapsy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Pacing: PacingConfig{
			InitialSettle: 150 * time.Millisecond,
			InterTileGap:  200 * time.Millisecond,
			SameTileExtra: 200 * time.Millisecond,
			LastTileHold:  250 * time.Millisecond,
			ClearLag:      50 * time.Millisecond,
		},
		Flow: FlowConfig{
			StartDelay:       time.Second,
			CelebrationDelay: time.Second,
			LevelBanner:      1500 * time.Millisecond,
			GameOverDelay:    1500 * time.Millisecond,
		},
		Settings: SettingsConfig{
			Sound: true,
			Hints: false,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			ToneLength: 300 * time.Millisecond,
			Volume:     0.4,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
