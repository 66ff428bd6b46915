package clock

import (
	"testing"
	"time"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	c := NewManual()
	var order []string

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	fired := c.Advance(25 * time.Millisecond)
	if fired != 2 {
		t.Fatalf("Advance(25ms) fired %d callbacks, expected 2", fired)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, expected [a b]", order)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", c.Pending())
	}

	c.Advance(5 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("order = %v, expected [a b c]", order)
	}
}

func TestManualEqualDeadlinesKeepRegistrationOrder(t *testing.T) {
	c := NewManual()
	var order []int

	for i := 0; i < 5; i++ {
		i := i
		c.AfterFunc(time.Second, func() { order = append(order, i) })
	}
	c.Advance(time.Second)

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, expected ascending registration order", order)
		}
	}
}

func TestManualChainedCallbacks(t *testing.T) {
	c := NewManual()
	var times []time.Duration

	var step func()
	step = func() {
		times = append(times, c.Now())
		if len(times) < 3 {
			c.AfterFunc(100*time.Millisecond, step)
		}
	}
	c.AfterFunc(100*time.Millisecond, step)

	// A single large advance must fire callbacks scheduled by callbacks.
	c.Advance(time.Second)

	expected := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	if len(times) != len(expected) {
		t.Fatalf("fired %d times, expected %d", len(times), len(expected))
	}
	for i := range expected {
		if times[i] != expected[i] {
			t.Errorf("callback %d saw Now() = %v, expected %v", i, times[i], expected[i])
		}
	}
	if c.Now() != time.Second {
		t.Errorf("Now() = %v after Advance, expected 1s", c.Now())
	}
}

func TestManualRunAll(t *testing.T) {
	c := NewManual()
	count := 0
	c.AfterFunc(time.Minute, func() { count++ })
	c.AfterFunc(time.Hour, func() { count++ })

	if fired := c.RunAll(0); fired != 2 {
		t.Errorf("RunAll() fired %d, expected 2", fired)
	}
	if count != 2 {
		t.Errorf("count = %d, expected 2", count)
	}
	if c.Now() != time.Hour {
		t.Errorf("Now() = %v, expected 1h", c.Now())
	}
}

func TestManualNegativeDelay(t *testing.T) {
	c := NewManual()
	fired := false
	c.AfterFunc(-time.Second, func() { fired = true })
	c.Advance(0)
	if !fired {
		t.Error("negative delay should fire on Advance(0)")
	}
}
