package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapsy/internal/audio"
	"github.com/vovakirdan/tapsy/internal/clock"
	"github.com/vovakirdan/tapsy/internal/config"
	"github.com/vovakirdan/tapsy/internal/core"
	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

// tapFlash is how long a tapped tile stays lit.
const tapFlash = 200 * time.Millisecond

// GameOptions configures a game screen.
type GameOptions struct {
	Mode     memory.GameMode
	Store    *storage.Store // nil disables persistence
	Audio    *audio.Player  // nil plays no sound
	Settings config.Config
	Runtime  core.RuntimeConfig
	Logger   *log.Logger

	// Guest names a remote player. Guests keep the configured settings and
	// never touch the local profile.
	Guest string

	// ExitOnBack quits the program on "b" instead of only flagging
	// BackToMenu. Set when the game runs as its own program.
	ExitOnBack bool

	// Scheduler overrides the Bubble Tea timer bridge.
	Scheduler clock.Scheduler
	Now       func() time.Time
}

// round is the mutable state shared by every copy of a GameModel.
// Engine callbacks write to it from inside Update.
type round struct {
	director *memory.Director
	ticks    *Scheduler // nil when a custom scheduler is used
	sched    clock.Scheduler
	audio    *audio.Player
	store    *storage.Store
	logger   *log.Logger
	now      func() time.Time
	guest    string

	mode  memory.GameMode
	best  int
	lit   memory.TileIndex
	flash memory.TileIndex
	wrong memory.TileIndex

	flashGen uint64
	cleared  memory.LevelComplete
	result   *Result
	err      error
}

// GameModel is the Bubble Tea model for one game screen.
type GameModel struct {
	r          *round
	screen     *core.Screen
	layout     Layout
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen. The run starts in Init.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	r := &round{
		sched:  opts.Scheduler,
		audio:  opts.Audio,
		store:  opts.Store,
		logger: opts.Logger,
		now:    opts.Now,
		guest:  opts.Guest,
		mode:   opts.Mode,
		lit:    memory.NoTile,
		flash:  memory.NoTile,
		wrong:  memory.NoTile,
	}
	if r.sched == nil {
		r.ticks = NewScheduler()
		r.sched = r.ticks
	}

	r.director = memory.NewDirector(memory.DirectorConfig{
		Scheduler: r.sched,
		Tiles:     memory.NewRandSource(opts.Runtime.Seed),
		Pacing:    opts.Settings.SessionPacing(),
		Flow:      opts.Settings.FlowTiming(),
		Observer:  r.observe,
		Logger:    opts.Logger,
	})

	settings := opts.Settings.ProfileDefaults()
	player := r.guest
	if r.store != nil && r.guest == "" {
		if profile, err := r.store.Profile(); err == nil {
			settings = profile.Settings
			player = profile.Username
		} else {
			r.logger.Warn("could not load profile", "err", err)
		}
	}
	if r.store != nil {
		if best, err := r.store.HighScore(opts.Mode.String(), player); err == nil {
			r.best = best
		}
	}
	r.director.SetHints(settings.HintsEnabled)
	if r.audio != nil {
		r.audio.SetEnabled(settings.SoundEnabled)
	}

	return GameModel{
		r:          r,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		layout:     NewLayout(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		config:     opts.Runtime,
		keyMapper:  NewKeyMapper(),
		exitOnBack: opts.ExitOnBack,
	}
}

// observe receives engine events.
func (r *round) observe(e memory.Event) {
	if r.audio != nil {
		r.audio.Observe(e)
	}

	switch ev := e.(type) {
	case memory.TileActivated:
		r.lit = ev.Tile
	case memory.TileCleared:
		r.lit = memory.NoTile
	case memory.LevelComplete:
		r.cleared = ev
		r.best = max(r.best, ev.Score)
	case memory.Mismatch:
		r.wrong = ev.Got
		r.flash = ev.Expected
	case memory.PhaseChanged:
		if ev.Phase == memory.PhaseWatching {
			r.flash = memory.NoTile
			r.wrong = memory.NoTile
		}
	case memory.GameOver:
		r.finish(ev)
	}
}

// finish records the run. Storage errors are logged and shown, the
// result is kept either way.
func (r *round) finish(ev memory.GameOver) {
	res, err := RecordResult(r.store, ev, r.now(), r.guest)
	if err != nil {
		r.logger.Error("could not save result", "run", ev.RunID, "err", err)
		r.err = err
	}
	r.result = &res
	r.best = max(r.best, ev.Score)
	r.logger.Info("game over", "run", ev.RunID, "mode", ev.Mode, "level", ev.Level, "score", ev.Score, "new_best", res.NewBest)
}

// Init starts the run.
func (m GameModel) Init() tea.Cmd {
	m.r.director.Begin(m.r.mode)
	return m.flush()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		in, isQuit := m.keyMapper.MapKey(msg)
		if isQuit {
			m.r.director.Quit()
			m.quitting = true
			return m, tea.Quit
		}
		cmd = m.handleInput(in)

	case tea.MouseMsg:
		cmd = m.handleInput(m.keyMapper.MapMouse(msg, m.layout))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.layout = NewLayout(msg.Width, msg.Height)

	case timerMsg:
		if m.r.ticks != nil {
			m.r.ticks.Fire(msg)
		}
	}

	return m, tea.Batch(cmd, m.flush())
}

// handleInput applies one decoded input.
func (m *GameModel) handleInput(in core.Input) tea.Cmd {
	d := m.r.director

	switch in.Action {
	case core.ActionTap:
		m.tap(memory.TileIndex(in.Tile))

	case core.ActionPause:
		d.TogglePause()

	case core.ActionHint:
		m.toggleHints()

	case core.ActionRestart:
		if d.Phase() == memory.PhaseFinished {
			m.r.result = nil
			m.r.err = nil
			d.Restart()
		}

	case core.ActionBack:
		if d.Phase() == memory.PhaseFinished || d.Session().IsPaused() {
			d.Quit()
			m.backToMenu = true
			if m.exitOnBack {
				return tea.Quit
			}
		}
	}
	return nil
}

// tap forwards a tile tap and lights the tile briefly.
func (m *GameModel) tap(tile memory.TileIndex) {
	r := m.r
	outcome := r.director.Tap(tile)
	if outcome == memory.OutcomeIgnored {
		return
	}
	if outcome != memory.OutcomeMismatch {
		if r.audio != nil {
			r.audio.Tap(tile)
		}
		r.flash = tile
		r.flashGen++
		gen := r.flashGen
		r.sched.AfterFunc(tapFlash, func() {
			if gen == r.flashGen && r.director.Phase() != memory.PhaseMistake {
				r.flash = memory.NoTile
			}
		})
	}
}

func (m *GameModel) toggleHints() {
	r := m.r
	enabled := !r.director.HintsEnabled()
	r.director.SetHints(enabled)
	if r.store == nil || r.guest != "" {
		return
	}
	profile, err := r.store.Profile()
	if err != nil {
		r.logger.Warn("could not load profile", "err", err)
		return
	}
	profile.Settings.HintsEnabled = enabled
	if err := r.store.UpdateSettings(profile.Settings); err != nil {
		r.logger.Warn("could not save hint setting", "err", err)
	}
}

func (m GameModel) flush() tea.Cmd {
	if m.r.ticks == nil {
		return nil
	}
	return m.r.ticks.Flush()
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// render draws the game into the screen buffer.
func (m GameModel) render() {
	s := m.screen
	s.Clear()

	if !m.layout.Fits() {
		s.DrawTextCentered(s.Height()/2, "Terminal too small", core.ColorOrange)
		return
	}

	r := m.r
	snap := r.director.Session().Snapshot()
	phase := r.director.Phase()

	title := fmt.Sprintf("T A P S Y  ·  %s", r.mode.Title())
	s.DrawTextCentered(0, title, core.ColorCyan)
	stats := fmt.Sprintf("Level %d   Score %d   Best %d", max(snap.Level, 1), snap.Score, max(r.best, snap.Score))
	s.DrawTextCentered(1, stats, core.ColorWhite)
	s.DrawHLine(0, hudRows-1, s.Width(), '─', core.ColorGray)

	lit := r.lit
	if lit == memory.NoTile {
		lit = r.flash
	}
	drawBoard(s, m.layout, boardView{
		lit:      lit,
		hint:     r.director.Hint(),
		wrong:    r.wrong,
		disabled: phase != memory.PhaseInput || snap.Paused,
	})

	msg, color := m.message(phase, snap)
	s.DrawTextCentered(m.layout.MessageRow, msg, color)
	s.DrawTextCentered(m.layout.FooterRow, m.controls(phase, snap.Paused), core.ColorGray)
}

// message returns the status line for the current phase.
func (m GameModel) message(phase memory.Phase, snap memory.Snapshot) (string, core.Color) {
	if snap.Paused {
		return "Paused", core.ColorOrange
	}

	switch phase {
	case memory.PhaseWatching:
		return "Watch carefully", core.ColorCyan
	case memory.PhaseInput:
		return fmt.Sprintf("Your turn  (%d/%d)", len(snap.PlayerInput), len(snap.Sequence)), core.ColorBrightGreen
	case memory.PhaseAdvancing:
		return "Correct!", core.ColorBrightGreen
	case memory.PhaseLevelComplete:
		c := m.r.cleared
		return fmt.Sprintf("Level complete!  +%d", c.Gained), core.ColorBrightYellow
	case memory.PhaseMistake:
		return "Oops!", core.ColorBrightRed
	case memory.PhaseFinished:
		return m.resultLine(), core.ColorMagenta
	}
	return "", core.ColorDefault
}

func (m GameModel) resultLine() string {
	res := m.r.result
	if res == nil {
		return "Game over"
	}
	parts := []string{fmt.Sprintf("Game over  ·  Score %d  ·  Level %d", res.Score, res.Level)}
	if res.NewBest {
		parts = append(parts, "New best!")
	}
	if res.Profile.StreakDays > 1 {
		parts = append(parts, fmt.Sprintf("%d day streak", res.Profile.StreakDays))
	}
	if m.r.err != nil {
		parts = append(parts, "(not saved)")
	}
	return strings.Join(parts, "  ·  ")
}

func (m GameModel) controls(phase memory.Phase, paused bool) string {
	switch {
	case phase == memory.PhaseFinished:
		return "r: play again  |  b: menu  |  q: quit"
	case paused:
		return "p: resume  |  b: menu  |  q: quit"
	default:
		hints := "off"
		if m.r.director.HintsEnabled() {
			hints = "on"
		}
		return fmt.Sprintf("1-4: tap  |  p: pause  |  h: hints (%s)  |  q: quit", hints)
	}
}

// Result returns the finished run, or nil while a run is in progress.
func (m GameModel) Result() *Result {
	return m.r.result
}

// Director exposes the run for inspection.
func (m GameModel) Director() *memory.Director {
	return m.r.director
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs a single game screen as its own program. It reports whether
// the player asked to go back to the menu.
func RunGame(opts GameOptions) (backToMenu bool, err error) {
	opts.ExitOnBack = true
	model := NewGameModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
