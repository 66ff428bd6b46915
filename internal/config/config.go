// Package config provides YAML-based configuration loading for tapsy:
// playback pacing, round flow delays, default player settings and audio.
package config

import "time"

// Config is the complete tapsy configuration.
type Config struct {
	Pacing   PacingConfig   `yaml:"pacing"`
	Flow     FlowConfig     `yaml:"flow"`
	Settings SettingsConfig `yaml:"settings"`
	Audio    AudioConfig    `yaml:"audio"`
}

// PacingConfig defines the mode-independent playback timings.
// Durations use Go syntax in YAML ("150ms", "1.5s").
type PacingConfig struct {
	InitialSettle time.Duration `yaml:"initial_settle"`
	InterTileGap  time.Duration `yaml:"inter_tile_gap"`
	SameTileExtra time.Duration `yaml:"same_tile_extra"` // Added when a tile repeats
	LastTileHold  time.Duration `yaml:"last_tile_hold"`
	ClearLag      time.Duration `yaml:"clear_lag"`
}

// FlowConfig defines the delays around playback in a round.
type FlowConfig struct {
	StartDelay       time.Duration `yaml:"start_delay"`
	CelebrationDelay time.Duration `yaml:"celebration_delay"`
	LevelBanner      time.Duration `yaml:"level_banner"`
	GameOverDelay    time.Duration `yaml:"game_over_delay"`
}

// SettingsConfig holds the defaults for a fresh player profile.
type SettingsConfig struct {
	Sound bool `yaml:"sound"`
	Hints bool `yaml:"hints"`
}

// AudioConfig defines tone synthesis parameters.
type AudioConfig struct {
	SampleRate int           `yaml:"sample_rate"`
	ToneLength time.Duration `yaml:"tone_length"`
	Volume     float64       `yaml:"volume"` // 0.0 silent .. 1.0 full scale
}
