package memory

// Snapshot captures the complete session state for rendering and tests.
type Snapshot struct {
	Mode            GameMode
	Level           int
	Score           int
	Sequence        Sequence
	PlayerInput     Sequence
	PlayingSequence bool
	GameOver        bool
	Paused          bool
	CurrentTile     TileIndex
	Epoch           uint64
	Stage           PlaybackStage
}

// Snapshot returns the current session state. Slices are copies.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Mode:            s.mode,
		Level:           s.level,
		Score:           s.score,
		Sequence:        s.sequence.Clone(),
		PlayerInput:     s.input.Clone(),
		PlayingSequence: s.playing,
		GameOver:        s.gameOver,
		Paused:          s.paused,
		CurrentTile:     s.current,
		Epoch:           s.epoch,
		Stage:           s.stage,
	}
}

// AcceptingInput reports whether a tap would be validated right now.
func (snap Snapshot) AcceptingInput() bool {
	return !snap.PlayingSequence && snap.Stage == StageIdle && !snap.GameOver && !snap.Paused
}
