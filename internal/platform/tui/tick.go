// Package tui provides the Bubble Tea front-end for tapsy: the game screen,
// mode menu, scoreboard and the SSH server that hosts them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapsy/internal/clock"
)

// timerMsg is delivered when an engine timer expires.
type timerMsg struct {
	sched *Scheduler
	id    uint64
}

// Scheduler is a clock.Scheduler backed by tea.Tick. Timers become
// commands; their callbacks run inside Update when the timerMsg arrives,
// so the engine only ever runs on the program's event loop.
type Scheduler struct {
	nextID  uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

var _ clock.Scheduler = (*Scheduler)(nil)

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]func())}
}

// AfterFunc queues a tick command that will fire fn after d.
// The command is handed to Bubble Tea by the next Flush.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{sched: s, id: id}
	}))
}

// Fire runs the callback for msg. It reports false for timers that belong
// to another scheduler or already fired.
func (s *Scheduler) Fire(msg timerMsg) bool {
	if msg.sched != s {
		return false
	}
	fn, ok := s.pending[msg.id]
	if !ok {
		return false
	}
	delete(s.pending, msg.id)
	fn()
	return true
}

// Flush returns the commands queued since the last call, or nil.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of timers that have not fired.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Drop forgets every pending timer. Their messages are ignored on arrival.
func (s *Scheduler) Drop() {
	clear(s.pending)
	s.queued = nil
}
