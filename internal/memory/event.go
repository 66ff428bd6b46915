package memory

// Event is emitted by a Session or Director to its observer.
type Event interface {
	memoryEvent()
}

// TileActivated is sent when playback lights a tile.
// The presentation layer highlights the tile and plays its tone.
type TileActivated struct {
	Tile     TileIndex
	Position int // Index within the sequence being played
}

func (TileActivated) memoryEvent() {}

// TileCleared is sent when playback turns the active tile off.
type TileCleared struct{}

func (TileCleared) memoryEvent() {}

// SequenceFinished is sent once the whole sequence has been shown.
type SequenceFinished struct {
	Length int
}

func (SequenceFinished) memoryEvent() {}

// Mismatch is sent exactly once when a tap disagrees with the expected tile.
type Mismatch struct {
	Position int
	Expected TileIndex
	Got      TileIndex
}

func (Mismatch) memoryEvent() {}

// LevelComplete is sent exactly once per cleared level.
type LevelComplete struct {
	Level  int // Level that was just cleared
	Gained int // Points awarded for it
	Score  int // Score after the award
}

func (LevelComplete) memoryEvent() {}

// PhaseChanged is sent by a Director when the round phase changes.
type PhaseChanged struct {
	Phase Phase
}

func (PhaseChanged) memoryEvent() {}

// GameOver is sent by a Director once the mismatch has been shown and the
// run's result is ready to be recorded.
type GameOver struct {
	RunID string
	Mode  GameMode
	Level int // Level the player failed on
	Score int
}

func (GameOver) memoryEvent() {}

// Observer receives events. It runs on the engine's logical thread.
type Observer func(Event)

// Outcome is the result of validating a tap.
type Outcome int

const (
	OutcomeIgnored       Outcome = iota // Tap rejected: playing, paused, game over or invalid tile
	OutcomePending                      // Input matches so far; more taps needed
	OutcomeMismatch                     // Wrong tile; the game is over
	OutcomeLevelComplete                // Sequence reproduced; level advanced
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "Ignored"
	case OutcomePending:
		return "Pending"
	case OutcomeMismatch:
		return "Mismatch"
	case OutcomeLevelComplete:
		return "LevelComplete"
	default:
		return "Unknown"
	}
}
