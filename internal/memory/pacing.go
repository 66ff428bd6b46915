package memory

import "time"

// Pacing holds the playback timings that do not depend on the game mode.
// They only affect presentation; validation never depends on them.
type Pacing struct {
	InitialSettle time.Duration // Before the first tile of a playback
	InterTileGap  time.Duration // Dark gap between two tiles
	SameTileExtra time.Duration // Added to the gap when the next tile repeats the current one
	LastTileHold  time.Duration // Extra hold after the last tile before playback ends
	ClearLag      time.Duration // Between ending playback and clearing the last tile
}

// DefaultPacing returns the stock timings.
func DefaultPacing() Pacing {
	return Pacing{
		InitialSettle: 150 * time.Millisecond,
		InterTileGap:  200 * time.Millisecond,
		SameTileExtra: 200 * time.Millisecond,
		LastTileHold:  250 * time.Millisecond,
		ClearLag:      50 * time.Millisecond,
	}
}

// gapAfter returns the dark gap between cur and next.
func (p Pacing) gapAfter(cur, next TileIndex) time.Duration {
	if cur == next {
		return p.InterTileGap + p.SameTileExtra
	}
	return p.InterTileGap
}

// PlaybackDuration returns how long a full playback of seq takes in mode m,
// from PlaySequence until the completion callback.
func (p Pacing) PlaybackDuration(m GameMode, seq Sequence) time.Duration {
	if len(seq) == 0 {
		return 0
	}
	speed := m.PlaybackSpeed()
	total := p.InitialSettle
	for i := range seq {
		total += speed
		if i < len(seq)-1 {
			total += p.gapAfter(seq[i], seq[i+1])
		}
	}
	return total + p.LastTileHold + p.ClearLag
}

// FlowTiming holds the delays a Director inserts around playback.
type FlowTiming struct {
	StartDelay       time.Duration // Before each playback starts
	CelebrationDelay time.Duration // Between clearing a level and showing the banner
	LevelBanner      time.Duration // How long the level-complete banner stays up
	GameOverDelay    time.Duration // Between a mismatch and the game-over result
}

// DefaultFlowTiming returns the stock flow delays.
func DefaultFlowTiming() FlowTiming {
	return FlowTiming{
		StartDelay:       time.Second,
		CelebrationDelay: time.Second,
		LevelBanner:      1500 * time.Millisecond,
		GameOverDelay:    1500 * time.Millisecond,
	}
}
