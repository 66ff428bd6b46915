package memory

import (
	"errors"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected GameMode
		wantErr  bool
	}{
		{"classic", ModeClassic, false},
		{"speed", ModeSpeed, false},
		{"reverse", ModeReverse, false},
		{"zen", ModeZen, false},
		{"  Speed ", ModeSpeed, false},
		{"ZEN", ModeZen, false},
		{"hard", DefaultMode, true},
		{"", DefaultMode, true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownMode) {
				t.Errorf("ParseMode(%q) error = %v, expected ErrUnknownMode", tc.input, err)
			}
		} else if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("ParseMode(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestModeTable(t *testing.T) {
	tests := []struct {
		mode       GameMode
		speed      time.Duration
		multiplier float64
		reversed   bool
		category   string
	}{
		{ModeClassic, 600 * time.Millisecond, 1.0, false, "classic"},
		{ModeSpeed, 400 * time.Millisecond, 1.5, false, "hard"},
		{ModeReverse, 600 * time.Millisecond, 1.0, true, "reverse"},
		{ModeZen, 800 * time.Millisecond, 1.0, false, "classic"},
	}

	for _, tc := range tests {
		if got := tc.mode.PlaybackSpeed(); got != tc.speed {
			t.Errorf("%v.PlaybackSpeed() = %v, expected %v", tc.mode, got, tc.speed)
		}
		if got := tc.mode.ScoreMultiplier(); got != tc.multiplier {
			t.Errorf("%v.ScoreMultiplier() = %v, expected %v", tc.mode, got, tc.multiplier)
		}
		if got := tc.mode.ReversedInput(); got != tc.reversed {
			t.Errorf("%v.ReversedInput() = %v, expected %v", tc.mode, got, tc.reversed)
		}
		if got := tc.mode.LeaderboardCategory(); got != tc.category {
			t.Errorf("%v.LeaderboardCategory() = %q, expected %q", tc.mode, got, tc.category)
		}
		if tc.mode.Title() == "" || tc.mode.Description() == "" {
			t.Errorf("%v has no title or description", tc.mode)
		}
	}
}

func TestModesOrderAndValidity(t *testing.T) {
	modes := Modes()
	if len(modes) != 4 {
		t.Fatalf("len(Modes()) = %d, expected 4", len(modes))
	}
	for i, m := range modes {
		if int(m) != i || !m.Valid() {
			t.Errorf("Modes()[%d] = %v", i, m)
		}
	}
	if GameMode(99).Valid() {
		t.Error("GameMode(99).Valid() = true, expected false")
	}
	if s := GameMode(99).String(); s != "mode(99)" {
		t.Errorf("GameMode(99).String() = %q", s)
	}
}

func TestLevelScore(t *testing.T) {
	tests := []struct {
		mode     GameMode
		level    int
		expected int
	}{
		{ModeClassic, 1, 10},
		{ModeClassic, 7, 70},
		{ModeSpeed, 1, 15},
		{ModeSpeed, 3, 45},
		{ModeReverse, 5, 50},
		{ModeZen, 2, 20},
		{ModeClassic, 0, 0},
		{ModeSpeed, -1, 0},
	}

	for _, tc := range tests {
		if got := LevelScore(tc.mode, tc.level); got != tc.expected {
			t.Errorf("LevelScore(%v, %d) = %d, expected %d", tc.mode, tc.level, got, tc.expected)
		}
	}
}

func TestSequenceHelpers(t *testing.T) {
	src := &scriptedTiles{tiles: []TileIndex{3, 2, 1}}
	seq := Generate(src, 2)
	if !seq.Equal(Sequence{3, 2}) {
		t.Fatalf("Generate() = %v, expected [3 2]", seq)
	}

	ext := seq.Extend(src)
	if !ext.Equal(Sequence{3, 2, 1}) {
		t.Errorf("Extend() = %v, expected [3 2 1]", ext)
	}
	if len(seq) != 2 {
		t.Error("Extend() modified the receiver")
	}

	ext[0] = 0
	if seq[0] != 3 {
		t.Error("Extend() result shares the receiver's backing array")
	}

	if rev := (Sequence{2, 0, 1}).Reversed(); !rev.Equal(Sequence{1, 0, 2}) {
		t.Errorf("Reversed() = %v, expected [1 0 2]", rev)
	}
	if Sequence(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestTileValid(t *testing.T) {
	for tile := TileIndex(-2); tile <= TileCount+1; tile++ {
		expected := tile >= 0 && tile < TileCount
		if got := tile.Valid(); got != expected {
			t.Errorf("TileIndex(%d).Valid() = %v, expected %v", tile, got, expected)
		}
	}
}

func TestPlaybackDurationEmpty(t *testing.T) {
	if d := DefaultPacing().PlaybackDuration(ModeClassic, nil); d != 0 {
		t.Errorf("PlaybackDuration(nil) = %v, expected 0", d)
	}
}
