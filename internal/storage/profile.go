package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the calendar-date format of profile.last_played.
const dateLayout = "2006-01-02"

// ProfileSettings are the player-adjustable toggles.
type ProfileSettings struct {
	SoundEnabled bool
	HintsEnabled bool
}

// DefaultProfileSettings returns the settings of a fresh profile.
func DefaultProfileSettings() ProfileSettings {
	return ProfileSettings{SoundEnabled: true}
}

// Profile is the local player's persisted state.
type Profile struct {
	Username    string
	GamesPlayed int
	StreakDays  int
	LastPlayed  time.Time // Zero if never played
	Settings    ProfileSettings
}

// SetProfileDefaults sets the settings reported before the profile is first
// written, and used when it is created.
func (s *Store) SetProfileDefaults(settings ProfileSettings) {
	s.defaults = settings
}

// NormalizeName trims and lower-cases a player name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Profile returns the local profile, or a fresh one if none was saved.
func (s *Store) Profile() (Profile, error) {
	return loadProfile(s.db, s.defaults)
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func loadProfile(q queryRower, defaults ProfileSettings) (Profile, error) {
	var p Profile
	var lastPlayed string
	err := q.QueryRow(
		`SELECT username, games_played, streak_days, last_played, sound_enabled, hints_enabled
		 FROM profile WHERE id = 1`,
	).Scan(&p.Username, &p.GamesPlayed, &p.StreakDays, &lastPlayed, &p.Settings.SoundEnabled, &p.Settings.HintsEnabled)

	if errors.Is(err, sql.ErrNoRows) {
		return Profile{Settings: defaults}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("storage: cannot query profile: %w", err)
	}

	if lastPlayed != "" {
		if t, err := time.ParseInLocation(dateLayout, lastPlayed, time.Local); err == nil {
			p.LastPlayed = t
		}
	}
	return p, nil
}

// ensureProfile creates the profile row with the default settings.
func (s *Store) ensureProfile(tx *sql.Tx) error {
	_, err := tx.Exec(
		"INSERT OR IGNORE INTO profile (id, sound_enabled, hints_enabled) VALUES (1, ?, ?)",
		s.defaults.SoundEnabled, s.defaults.HintsEnabled,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create profile: %w", err)
	}
	return nil
}

// updateProfile runs fn inside a transaction on an existing profile row.
func (s *Store) updateProfile(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.ensureProfile(tx); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// SetUsername stores the player name, normalised. An empty name clears it.
func (s *Store) SetUsername(name string) error {
	return s.updateProfile(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE profile SET username = ? WHERE id = 1", NormalizeName(name)); err != nil {
			return fmt.Errorf("storage: cannot set username: %w", err)
		}
		return nil
	})
}

// UpdateSettings replaces the player's toggles.
func (s *Store) UpdateSettings(settings ProfileSettings) error {
	return s.updateProfile(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE profile SET sound_enabled = ?, hints_enabled = ? WHERE id = 1",
			settings.SoundEnabled, settings.HintsEnabled,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot update settings: %w", err)
		}
		return nil
	})
}

// RecordGame counts a finished game played at now, updates the daily streak
// and saves the run's score row under the profile's username, all in one
// transaction. Returns the updated profile.
func (s *Store) RecordGame(entry ScoreEntry, now time.Time) (Profile, error) {
	var updated Profile
	err := s.updateProfile(func(tx *sql.Tx) error {
		p, err := loadProfile(tx, s.defaults)
		if err != nil {
			return err
		}

		p.GamesPlayed++
		p.StreakDays = NextStreak(p.LastPlayed, p.StreakDays, now)
		today := now.In(time.Local).Format(dateLayout)

		_, err = tx.Exec(
			"UPDATE profile SET games_played = ?, streak_days = ?, last_played = ? WHERE id = 1",
			p.GamesPlayed, p.StreakDays, today,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot record game: %w", err)
		}

		entry.Username = p.Username
		if _, err := insertScore(tx, entry); err != nil {
			return err
		}

		p.LastPlayed, _ = time.ParseInLocation(dateLayout, today, time.Local)
		updated = p
		return nil
	})
	return updated, err
}

// NextStreak returns the streak after playing at now, given the previous
// play date and streak: first play starts at 1, another play on the same day
// keeps it, a play on the next calendar day extends it, and any gap resets
// it to 1.
func NextStreak(lastPlayed time.Time, streak int, now time.Time) int {
	if lastPlayed.IsZero() || streak <= 0 {
		return 1
	}

	switch calendarDaysBetween(lastPlayed, now) {
	case 0:
		return streak
	case 1:
		return streak + 1
	default:
		return 1
	}
}

// calendarDaysBetween counts local calendar days from a to b.
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ResetProgress erases the profile, every score and the player's
// leaderboard entry.
func (s *Store) ResetProgress() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := loadProfile(tx, s.defaults)
	if err != nil {
		return err
	}

	if p.Username != "" {
		if _, err := tx.Exec("DELETE FROM leaderboard WHERE name = ?", p.Username); err != nil {
			return fmt.Errorf("storage: cannot delete leaderboard entry: %w", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM profile"); err != nil {
		return fmt.Errorf("storage: cannot reset profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}
