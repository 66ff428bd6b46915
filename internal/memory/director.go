package memory

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tapsy/internal/clock"
)

// Phase is the round phase as seen by the player.
type Phase int

const (
	PhaseIdle          Phase = iota // No run started
	PhaseWatching                   // Waiting for or watching playback
	PhaseInput                      // Player is repeating the sequence
	PhaseAdvancing                  // Level cleared, banner not shown yet
	PhaseLevelComplete              // Level-complete banner
	PhaseMistake                    // Wrong tap shown before the result
	PhaseFinished                   // Run over, result emitted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWatching:
		return "watching"
	case PhaseInput:
		return "playing"
	case PhaseAdvancing:
		return "advancing"
	case PhaseLevelComplete:
		return "levelComplete"
	case PhaseMistake:
		return "mistake"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// DirectorConfig wires a Director to its collaborators.
type DirectorConfig struct {
	Scheduler clock.Scheduler
	Tiles     TileSource
	Pacing    Pacing
	Flow      FlowTiming // Zero value selects DefaultFlowTiming
	Observer  Observer
	Logger    *log.Logger

	// NewRunID names each run. Defaults to random UUIDs.
	NewRunID func() string
}

// Director drives a Session through a full run the way a game screen does:
// it waits before each playback, opens input when playback ends, celebrates
// cleared levels, replays the sequence after a pause interrupted it, and
// reports the final result.
type Director struct {
	session  *Session
	sched    clock.Scheduler
	flow     FlowTiming
	observer Observer
	logger   *log.Logger
	newRunID func() string

	phase Phase
	runID string
	hints bool

	gen        uint64 // Bumped on Begin/Quit; guards every director timer
	startToken uint64 // Bumped per scheduled playback start
}

// NewDirector creates a director and its session.
func NewDirector(cfg DirectorConfig) *Director {
	if cfg.Flow == (FlowTiming{}) {
		cfg.Flow = DefaultFlowTiming()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.NewRunID == nil {
		cfg.NewRunID = uuid.NewString
	}

	d := &Director{
		sched:    cfg.Scheduler,
		flow:     cfg.Flow,
		observer: cfg.Observer,
		logger:   cfg.Logger,
		newRunID: cfg.NewRunID,
	}
	d.session = NewSession(SessionConfig{
		Scheduler: cfg.Scheduler,
		Tiles:     cfg.Tiles,
		Pacing:    cfg.Pacing,
		Observer:  d.emit,
		Logger:    cfg.Logger,
	})
	return d
}

// Begin starts a new run in mode and schedules the first playback.
func (d *Director) Begin(mode GameMode) {
	d.gen++
	d.runID = d.newRunID()
	d.session.Start(mode)
	d.logger.Debug("run started", "run", d.runID, "mode", mode)

	d.setPhase(PhaseWatching)
	d.schedulePlayback()
}

// Restart begins a new run in the current mode.
func (d *Director) Restart() {
	d.Begin(d.session.Mode())
}

// Quit abandons the run and resets the session.
func (d *Director) Quit() {
	d.gen++
	d.session.Reset()
	d.setPhase(PhaseIdle)
}

// Tap forwards a tile tap during the input phase.
func (d *Director) Tap(tile TileIndex) Outcome {
	if d.phase != PhaseInput {
		return OutcomeIgnored
	}

	outcome := d.session.HandleTileTap(tile)
	switch outcome {
	case OutcomeLevelComplete:
		d.setPhase(PhaseAdvancing)
		d.later(d.flow.CelebrationDelay, func() {
			d.setPhase(PhaseLevelComplete)
			d.later(d.flow.LevelBanner, func() {
				d.setPhase(PhaseWatching)
				d.schedulePlayback()
			})
		})

	case OutcomeMismatch:
		d.setPhase(PhaseMistake)
		d.later(d.flow.GameOverDelay, func() {
			d.setPhase(PhaseFinished)
			d.emit(GameOver{
				RunID: d.runID,
				Mode:  d.session.Mode(),
				Level: d.session.Level(),
				Score: d.session.Score(),
			})
		})
	}
	return outcome
}

// TogglePause pauses a running round or resumes a paused one.
func (d *Director) TogglePause() {
	if d.session.IsPaused() {
		d.Resume()
		return
	}
	d.Pause()
}

// Pause suspends the round. Playback in progress is abandoned.
func (d *Director) Pause() {
	switch d.phase {
	case PhaseIdle, PhaseMistake, PhaseFinished:
		return
	}
	d.session.Pause()
}

// Resume lifts the pause. If playback was interrupted the sequence is
// replayed from its first tile; partial input is kept otherwise.
func (d *Director) Resume() {
	if !d.session.IsPaused() {
		return
	}
	d.session.Resume()

	if d.phase == PhaseWatching && !d.session.IsPlayingSequence() && d.session.Stage() == StageIdle {
		d.logger.Debug("replaying interrupted sequence", "run", d.runID, "level", d.session.Level())
		d.schedulePlayback()
	}
}

// schedulePlayback starts playback after the start delay. A newer schedule
// supersedes older ones.
func (d *Director) schedulePlayback() {
	d.startToken++
	token := d.startToken
	d.later(d.flow.StartDelay, func() {
		if token != d.startToken {
			return
		}
		d.startPlayback()
	})
}

func (d *Director) startPlayback() {
	if d.phase != PhaseWatching || d.session.IsPaused() || d.session.IsGameOver() {
		return
	}
	gen := d.gen
	d.session.PlaySequence(func() {
		if gen != d.gen || d.phase != PhaseWatching {
			return
		}
		d.setPhase(PhaseInput)
	})
}

// later runs fn after delay unless a newer run has begun since.
func (d *Director) later(delay time.Duration, fn func()) {
	gen := d.gen
	d.sched.AfterFunc(delay, func() {
		if gen != d.gen {
			return
		}
		fn()
	})
}

func (d *Director) setPhase(p Phase) {
	if d.phase == p {
		return
	}
	d.phase = p
	d.emit(PhaseChanged{Phase: p})
}

func (d *Director) emit(e Event) {
	if d.observer != nil {
		d.observer(e)
	}
}

// SetObserver replaces the event observer.
func (d *Director) SetObserver(o Observer) {
	d.observer = o
}

// SetHints enables or disables next-tile hints.
func (d *Director) SetHints(enabled bool) {
	d.hints = enabled
}

// HintsEnabled reports whether hints are on.
func (d *Director) HintsEnabled() bool {
	return d.hints
}

// Hint returns the tile to suggest, or NoTile when hints are off or the
// player is not expected to tap.
func (d *Director) Hint() TileIndex {
	if !d.hints || d.phase != PhaseInput {
		return NoTile
	}
	return d.session.HintTile()
}

// Phase returns the current round phase.
func (d *Director) Phase() Phase { return d.phase }

// RunID returns the identifier of the current run.
func (d *Director) RunID() string { return d.runID }

// Session exposes the underlying session for read access.
func (d *Director) Session() *Session { return d.session }
