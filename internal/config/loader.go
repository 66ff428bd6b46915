package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tapsy/internal/audio"
	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

// FileName is the configuration file name searched for on disk.
const FileName = "tapsy.yaml"

// EmbeddedSource names the embedded default in LoadWithSource results.
const EmbeddedSource = "embedded"

// Load loads the tapsy configuration.
// Search order: customPath -> ~/.tapsy/configs/tapsy.yaml -> ./configs/tapsy.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which file the configuration
// came from. Keys missing from a file keep their default values.
func LoadWithSource(customPath string) (Config, string, error) {
	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Discovered files are skipped when unreadable or malformed
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := parse(data)
		if err != nil {
			continue
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, "", fmt.Errorf("config: %s: %w", path, err)
		}
		return cfg, path, nil
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), EmbeddedSource, nil // Fallback to hardcoded if embed fails
	}
	return cfg, EmbeddedSource, nil
}

// parse decodes data on top of DefaultConfig.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tapsy", "configs", filename)
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	var errs []error

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"pacing.initial_settle", c.Pacing.InitialSettle},
		{"pacing.inter_tile_gap", c.Pacing.InterTileGap},
		{"pacing.same_tile_extra", c.Pacing.SameTileExtra},
		{"pacing.last_tile_hold", c.Pacing.LastTileHold},
		{"pacing.clear_lag", c.Pacing.ClearLag},
		{"flow.start_delay", c.Flow.StartDelay},
		{"flow.celebration_delay", c.Flow.CelebrationDelay},
		{"flow.level_banner", c.Flow.LevelBanner},
		{"flow.game_over_delay", c.Flow.GameOverDelay},
		{"audio.tone_length", c.Audio.ToneLength},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", d.name))
		}
	}

	if c.Audio.SampleRate <= 0 {
		errs = append(errs, errors.New("audio.sample_rate must be positive"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, errors.New("audio.volume must be within [0, 1]"))
	}

	return errors.Join(errs...)
}

// SessionPacing converts the pacing section for the engine.
func (c Config) SessionPacing() memory.Pacing {
	return memory.Pacing{
		InitialSettle: c.Pacing.InitialSettle,
		InterTileGap:  c.Pacing.InterTileGap,
		SameTileExtra: c.Pacing.SameTileExtra,
		LastTileHold:  c.Pacing.LastTileHold,
		ClearLag:      c.Pacing.ClearLag,
	}
}

// FlowTiming converts the flow section for the engine.
func (c Config) FlowTiming() memory.FlowTiming {
	return memory.FlowTiming{
		StartDelay:       c.Flow.StartDelay,
		CelebrationDelay: c.Flow.CelebrationDelay,
		LevelBanner:      c.Flow.LevelBanner,
		GameOverDelay:    c.Flow.GameOverDelay,
	}
}

// AudioOptions converts the audio section for the synthesiser.
func (c Config) AudioOptions() audio.Options {
	return audio.Options{
		SampleRate: c.Audio.SampleRate,
		ToneLength: c.Audio.ToneLength,
		Volume:     c.Audio.Volume,
	}
}

// ProfileDefaults converts the settings section for a fresh profile.
func (c Config) ProfileDefaults() storage.ProfileSettings {
	return storage.ProfileSettings{
		SoundEnabled: c.Settings.Sound,
		HintsEnabled: c.Settings.Hints,
	}
}
