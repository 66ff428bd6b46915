package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Leaderboard categories. Each player keeps their best score per category.
const (
	CategoryClassic = "classic"
	CategoryReverse = "reverse"
	CategoryHard    = "hard"
)

// ErrInvalidCategory is returned for categories other than the three above.
var ErrInvalidCategory = errors.New("storage: invalid leaderboard category")

// ErrInvalidName is returned when a player name is empty after normalisation.
var ErrInvalidName = errors.New("storage: invalid player name")

// categoryColumns maps categories to their leaderboard columns.
var categoryColumns = map[string]string{
	CategoryClassic: "classic",
	CategoryReverse: "reverse",
	CategoryHard:    "hard",
}

// LeaderboardEntry is one player's row on the leaderboard.
type LeaderboardEntry struct {
	Name      string    `json:"name"`
	Classic   int       `json:"classic"`
	Reverse   int       `json:"reverse"`
	Hard      int       `json:"hard"`
	Combined  int       `json:"combined"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score returns the entry's best score in category.
func (e LeaderboardEntry) Score(category string) int {
	switch category {
	case CategoryClassic:
		return e.Classic
	case CategoryReverse:
		return e.Reverse
	case CategoryHard:
		return e.Hard
	}
	return 0
}

// SubmitScore records score for name in category. The stored value only
// ever increases; combined is the sum of the three categories.
// Returns the resulting entry and whether anything changed.
func (s *Store) SubmitScore(category string, score int, name string) (LeaderboardEntry, bool, error) {
	column, ok := categoryColumns[category]
	if !ok {
		return LeaderboardEntry{}, false, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	name = NormalizeName(name)
	if name == "" {
		return LeaderboardEntry{}, false, ErrInvalidName
	}

	tx, err := s.db.Begin()
	if err != nil {
		return LeaderboardEntry{}, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := loadLeaderboardEntry(tx, name)
	exists := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return LeaderboardEntry{}, false, err
	}

	if exists && score <= entry.Score(category) {
		return entry, false, nil
	}
	if !exists && score <= 0 {
		return LeaderboardEntry{Name: name}, false, nil
	}

	if !exists {
		_, err = tx.Exec("INSERT INTO leaderboard (name) VALUES (?)", name)
		if err != nil {
			return LeaderboardEntry{}, false, fmt.Errorf("storage: cannot create leaderboard entry: %w", err)
		}
	}

	// column comes from categoryColumns, never from input
	_, err = tx.Exec(
		fmt.Sprintf(`UPDATE leaderboard
		 SET %s = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE name = ?`, column),
		score, name,
	)
	if err != nil {
		return LeaderboardEntry{}, false, fmt.Errorf("storage: cannot submit score: %w", err)
	}
	_, err = tx.Exec("UPDATE leaderboard SET combined = classic + reverse + hard WHERE name = ?", name)
	if err != nil {
		return LeaderboardEntry{}, false, fmt.Errorf("storage: cannot update combined score: %w", err)
	}

	entry, err = loadLeaderboardEntry(tx, name)
	if err != nil {
		return LeaderboardEntry{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return LeaderboardEntry{}, false, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return entry, true, nil
}

// Rankings returns up to limit entries with a positive combined score,
// best first.
func (s *Store) Rankings(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT name, classic, reverse, hard, combined, updated_at
		 FROM leaderboard
		 WHERE combined > 0
		 ORDER BY combined DESC, name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rankings: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Name, &e.Classic, &e.Reverse, &e.Hard, &e.Combined, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// LeaderboardEntry returns the entry for name, or ErrNotFound.
func (s *Store) LeaderboardEntry(name string) (LeaderboardEntry, error) {
	return loadLeaderboardEntry(s.db, NormalizeName(name))
}

func loadLeaderboardEntry(q queryRower, name string) (LeaderboardEntry, error) {
	var e LeaderboardEntry
	var updatedAt any
	err := q.QueryRow(
		`SELECT name, classic, reverse, hard, combined, updated_at
		 FROM leaderboard WHERE name = ?`,
		name,
	).Scan(&e.Name, &e.Classic, &e.Reverse, &e.Hard, &e.Combined, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return LeaderboardEntry{}, ErrNotFound
	}
	if err != nil {
		return LeaderboardEntry{}, fmt.Errorf("storage: cannot query leaderboard entry: %w", err)
	}
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// DeleteLeaderboardEntry removes name from the leaderboard.
// Returns ErrNotFound if there was no such entry.
func (s *Store) DeleteLeaderboardEntry(name string) error {
	result, err := s.db.Exec("DELETE FROM leaderboard WHERE name = ?", NormalizeName(name))
	if err != nil {
		return fmt.Errorf("storage: cannot delete leaderboard entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UsernameAvailable reports whether name is free on the leaderboard.
// Empty names are never available.
func (s *Store) UsernameAvailable(name string) (bool, error) {
	name = NormalizeName(name)
	if name == "" {
		return false, nil
	}
	_, err := loadLeaderboardEntry(s.db, name)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
