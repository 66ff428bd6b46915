package memory

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapsy/internal/clock"
)

// PlaybackStage describes where the playback chain currently is.
type PlaybackStage uint8

const (
	StageIdle      PlaybackStage = iota // No playback in flight
	StageSettling                       // Waiting before the first tile
	StageShowing                        // A tile is lit
	StageGap                            // Dark pause between two tiles
	StageHolding                        // Last tile lit for its extended hold
	StageFinishing                      // Playback flag cleared, last tile about to clear
)

// String returns a human-readable name for the stage.
func (s PlaybackStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSettling:
		return "settling"
	case StageShowing:
		return "showing"
	case StageGap:
		return "gap"
	case StageHolding:
		return "holding"
	case StageFinishing:
		return "finishing"
	default:
		return "unknown"
	}
}

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	// Scheduler runs deferred playback steps. Required.
	Scheduler clock.Scheduler

	// Tiles generates sequence tiles. Defaults to a time-seeded RandSource.
	Tiles TileSource

	// Pacing overrides the mode-independent playback timings.
	// The zero value selects DefaultPacing.
	Pacing Pacing

	// Observer receives tile and outcome events. Optional.
	Observer Observer

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger
}

// Session owns the state of one game: mode, level, sequence, player input
// and the playback chain. All methods must be called from the scheduler's
// logical thread.
type Session struct {
	sched    clock.Scheduler
	tiles    TileSource
	pacing   Pacing
	observer Observer
	logger   *log.Logger

	mode     GameMode
	level    int
	sequence Sequence
	input    Sequence
	score    int
	current  TileIndex
	playing  bool
	gameOver bool
	paused   bool

	// epoch is bumped whenever playback starts or is abandoned. Every deferred
	// step carries the epoch it was scheduled under and does nothing once
	// that epoch is stale.
	epoch uint64
	stage PlaybackStage
}

// NewSession creates an idle session. Its sequence is empty until Start is
// called, so PlaySequence is a no-op before then.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Scheduler == nil {
		panic("memory: session requires a scheduler")
	}
	if cfg.Tiles == nil {
		cfg.Tiles = NewRandSource(0)
	}
	if cfg.Pacing == (Pacing{}) {
		cfg.Pacing = DefaultPacing()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	return &Session{
		sched:    cfg.Scheduler,
		tiles:    cfg.Tiles,
		pacing:   cfg.Pacing,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		mode:     DefaultMode,
		level:    1,
		current:  NoTile,
	}
}

// SetObserver replaces the event observer.
func (s *Session) SetObserver(o Observer) {
	s.observer = o
}

// Start begins a new game in mode. Any playback still in flight is abandoned.
// Start does not begin playback; the caller invokes PlaySequence.
func (s *Session) Start(mode GameMode) {
	if !mode.Valid() {
		mode = DefaultMode
	}
	s.epoch++
	s.stage = StageIdle

	s.mode = mode
	s.level = 1
	s.sequence = Generate(s.tiles, 1)
	s.input = nil
	s.score = 0
	s.current = NoTile
	s.playing = false
	s.gameOver = false
	s.paused = false

	s.logger.Debug("session started", "mode", mode, "epoch", s.epoch)
}

// Reset abandons the current game and starts over in DefaultMode at level 1.
func (s *Session) Reset() {
	s.Start(DefaultMode)
}

// PlaySequence shows the current sequence and calls onComplete once the last
// tile has been cleared. Returns false without doing anything if playback is
// already in flight, the sequence is empty, or the session is paused or over.
func (s *Session) PlaySequence(onComplete func()) bool {
	if s.playing || s.stage != StageIdle || len(s.sequence) == 0 || s.gameOver || s.paused {
		return false
	}

	s.epoch++
	epoch := s.epoch
	s.playing = true
	s.current = NoTile
	s.input = nil
	s.stage = StageSettling

	seq := s.sequence.Clone()
	s.logger.Debug("playback started", "level", s.level, "length", len(seq), "epoch", epoch)

	s.after(s.pacing.InitialSettle, epoch, func() {
		s.showTile(epoch, seq, 0, onComplete)
	})
	return true
}

// after schedules step under epoch. The step is dropped if the epoch has
// moved on, the session is paused, or playback has been stopped.
func (s *Session) after(d time.Duration, epoch uint64, step func()) {
	s.sched.AfterFunc(d, func() {
		if !s.stepAllowed(epoch) {
			s.logger.Debug("stale playback step dropped", "epoch", epoch, "current", s.epoch)
			return
		}
		step()
	})
}

// stepAllowed reports whether a step scheduled under epoch may still run.
func (s *Session) stepAllowed(epoch uint64) bool {
	if epoch != s.epoch || s.paused {
		return false
	}
	return s.playing || s.stage == StageFinishing
}

// showTile lights seq[i] for the mode's playback speed.
func (s *Session) showTile(epoch uint64, seq Sequence, i int, done func()) {
	tile := seq[i]
	s.current = tile
	s.stage = StageShowing
	s.emit(TileActivated{Tile: tile, Position: i})

	s.after(s.mode.PlaybackSpeed(), epoch, func() {
		s.releaseTile(epoch, seq, i, done)
	})
}

// releaseTile turns seq[i] off and schedules the next tile, or holds the
// last tile before ending playback.
func (s *Session) releaseTile(epoch uint64, seq Sequence, i int, done func()) {
	if i == len(seq)-1 {
		s.stage = StageHolding
		s.after(s.pacing.LastTileHold, epoch, func() {
			s.endPlayback(epoch, seq, done)
		})
		return
	}

	// Clear even when the next tile is the same one, so it blinks twice.
	s.current = NoTile
	s.stage = StageGap
	s.emit(TileCleared{})

	s.after(s.pacing.gapAfter(seq[i], seq[i+1]), epoch, func() {
		s.showTile(epoch, seq, i+1, done)
	})
}

// endPlayback clears the playing flag first and the lit tile afterwards, so a
// tile-change handler never sees a lit tile with playback still marked active
// after completion.
func (s *Session) endPlayback(epoch uint64, seq Sequence, done func()) {
	s.playing = false
	s.stage = StageFinishing

	s.after(s.pacing.ClearLag, epoch, func() {
		s.current = NoTile
		s.stage = StageIdle
		s.emit(TileCleared{})
		s.emit(SequenceFinished{Length: len(seq)})
		s.logger.Debug("playback finished", "level", s.level, "epoch", epoch)
		if done != nil {
			done()
		}
	})
}

// HandleTileTap records a tap and validates the input so far.
// Taps are dropped (OutcomeIgnored) during playback, while paused, after game
// over, or for tiles outside the board.
func (s *Session) HandleTileTap(tile TileIndex) Outcome {
	if s.playing || s.stage != StageIdle || s.gameOver || s.paused || !tile.Valid() {
		return OutcomeIgnored
	}

	s.input = append(s.input, tile)
	return s.checkInput()
}

// checkInput compares every tap against the expected order.
func (s *Session) checkInput() Outcome {
	expected := s.Expected()
	n := len(s.input)

	for i := 0; i < n; i++ {
		if i >= len(expected) || s.input[i] != expected[i] {
			want := NoTile
			if i < len(expected) {
				want = expected[i]
			}
			s.gameOver = true
			s.logger.Debug("mismatch", "level", s.level, "position", i, "expected", want, "got", s.input[i])
			s.emit(Mismatch{Position: i, Expected: want, Got: s.input[i]})
			return OutcomeMismatch
		}
	}

	if n < len(expected) {
		return OutcomePending
	}

	cleared := s.level
	gained := LevelScore(s.mode, cleared)
	s.score += gained
	s.level++
	s.sequence = s.sequence.Extend(s.tiles)
	s.input = nil
	s.playing = false
	s.current = NoTile

	s.logger.Debug("level complete", "level", cleared, "gained", gained, "score", s.score)
	s.emit(LevelComplete{Level: cleared, Gained: gained, Score: s.score})
	return OutcomeLevelComplete
}

// Pause suspends input and abandons any playback in flight. Score, level,
// sequence and player input are kept.
func (s *Session) Pause() {
	if s.paused {
		return
	}
	s.paused = true

	if s.playing || s.stage != StageIdle {
		lit := s.current != NoTile
		s.epoch++
		s.playing = false
		s.current = NoTile
		s.stage = StageIdle
		s.logger.Debug("playback abandoned by pause", "epoch", s.epoch)
		if lit {
			s.emit(TileCleared{})
		}
	}
}

// Resume lifts the pause. Playback abandoned by Pause is not restarted here;
// the caller replays the sequence from the beginning if needed.
func (s *Session) Resume() {
	s.paused = false
}

// Expected returns the order in which the player must tap the sequence.
func (s *Session) Expected() Sequence {
	if s.mode.ReversedInput() {
		return s.sequence.Reversed()
	}
	return s.sequence.Clone()
}

// HintTile returns the next tile the player should tap, or NoTile outside the
// input phase.
func (s *Session) HintTile() TileIndex {
	if s.playing || s.stage != StageIdle || s.gameOver || s.paused {
		return NoTile
	}
	expected := s.Expected()
	if len(s.input) < len(expected) {
		return expected[len(s.input)]
	}
	return NoTile
}

func (s *Session) emit(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// Mode returns the session's game mode.
func (s *Session) Mode() GameMode { return s.mode }

// Level returns the current level (sequence length).
func (s *Session) Level() int { return s.level }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Sequence returns a copy of the current sequence.
func (s *Session) Sequence() Sequence { return s.sequence.Clone() }

// PlayerInput returns a copy of the taps entered for the current level.
func (s *Session) PlayerInput() Sequence { return s.input.Clone() }

// IsPlayingSequence reports whether playback is revealing tiles.
func (s *Session) IsPlayingSequence() bool { return s.playing }

// IsGameOver reports whether the session has ended on a mismatch.
func (s *Session) IsGameOver() bool { return s.gameOver }

// IsPaused reports whether the session is paused.
func (s *Session) IsPaused() bool { return s.paused }

// CurrentTile returns the lit tile, or NoTile.
func (s *Session) CurrentTile() TileIndex { return s.current }

// Epoch returns the playback generation counter.
func (s *Session) Epoch() uint64 { return s.epoch }

// Stage returns where the playback chain is.
func (s *Session) Stage() PlaybackStage { return s.stage }

// Pacing returns the session's playback timings.
func (s *Session) Pacing() Pacing { return s.pacing }
