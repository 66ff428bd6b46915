// Package clock provides the timer abstraction used by the game engine.
// The engine never spawns goroutines itself: it asks a Scheduler to run a
// callback later, and the Scheduler decides on which logical thread that
// callback executes. The platform layer delivers callbacks through its event
// loop; tests use Manual to step time deterministically.
package clock

import (
	"sort"
	"time"
)

// Scheduler runs fn once after delay d.
// Implementations must invoke callbacks on the same logical thread that owns
// the engine state, one at a time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

// AfterFunc calls f(d, fn).
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) {
	f(d, fn)
}

// timer is a pending callback registered with a Manual clock.
type timer struct {
	at  time.Duration
	seq uint64 // Registration order, breaks ties between equal deadlines
	fn  func()
}

// Manual is a deterministic Scheduler driven by explicit Advance calls.
// Callbacks fire in deadline order; callbacks registered while advancing
// fire in the same Advance call if their deadline is within range.
type Manual struct {
	now     time.Duration
	nextSeq uint64
	timers  []timer
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc registers fn to run once the clock has advanced by d.
// Negative delays are treated as zero.
func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.timers = append(m.timers, timer{
		at:  m.now + d,
		seq: m.nextSeq,
		fn:  fn,
	})
	m.nextSeq++
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of callbacks that have not fired yet.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every callback whose deadline
// falls within the window. Returns the number of callbacks fired.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0

	for {
		idx := m.nextDue(target)
		if idx < 0 {
			break
		}
		t := m.timers[idx]
		m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
		m.now = t.at
		t.fn()
		fired++
	}

	m.now = target
	return fired
}

// RunAll fires callbacks until none remain, or until limit callbacks have
// fired. Returns the number fired. A limit <= 0 means 10000.
func (m *Manual) RunAll(limit int) int {
	if limit <= 0 {
		limit = 10000
	}
	fired := 0
	for fired < limit && len(m.timers) > 0 {
		next := m.earliest()
		fired += m.Advance(next - m.now)
	}
	return fired
}

// nextDue returns the index of the earliest timer due at or before target,
// or -1 if none is due.
func (m *Manual) nextDue(target time.Duration) int {
	if len(m.timers) == 0 {
		return -1
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at != m.timers[j].at {
			return m.timers[i].at < m.timers[j].at
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	if m.timers[0].at > target {
		return -1
	}
	return 0
}

// earliest returns the deadline of the next pending timer.
func (m *Manual) earliest() time.Duration {
	best := m.timers[0].at
	for _, t := range m.timers[1:] {
		if t.at < best {
			best = t.at
		}
	}
	return best
}

// Ensure Manual implements Scheduler
var _ Scheduler = (*Manual)(nil)
