package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tapsy/internal/memory"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			for c := 0; c < 2; c++ {
				if v := math.Abs(buf[j][c]); v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer did not end")
	return 0, 0
}

func TestSynthLengths(t *testing.T) {
	synth := NewSynth(DefaultOptions())
	rate := synth.SampleRate()

	tests := []struct {
		name     string
		streamer beep.Streamer
		expected int
	}{
		{"tile", synth.Tile(2), rate.N(300 * time.Millisecond)},
		{"invalid tile", synth.Tile(memory.NoTile), rate.N(300 * time.Millisecond)},
		{"success", synth.Success(), 3*rate.N(150*time.Millisecond) + rate.N(300*time.Millisecond)},
		{"fail", synth.Fail(), rate.N(400 * time.Millisecond)},
	}

	for _, tc := range tests {
		n, peak := drain(t, tc.streamer)
		if n != tc.expected {
			t.Errorf("%s: streamed %d samples, expected %d", tc.name, n, tc.expected)
		}
		if peak > 0.4+1e-9 {
			t.Errorf("%s: peak %f exceeds volume 0.4", tc.name, peak)
		}
	}
}

func TestSynthLevels(t *testing.T) {
	synth := NewSynth(Options{SampleRate: 22050, ToneLength: 100 * time.Millisecond, Volume: 1})

	_, peak := drain(t, synth.Fail())
	if math.Abs(peak-1) > 1e-9 {
		t.Errorf("fail peak = %f, expected full scale", peak)
	}

	_, peak = drain(t, synth.Tile(0))
	if peak < 0.9 || peak > 1+1e-9 {
		t.Errorf("tile peak = %f, expected close to full scale", peak)
	}

	_, peak = drain(t, synth.Tile(memory.NoTile))
	if peak != 0 {
		t.Errorf("invalid tile peak = %f, expected silence", peak)
	}

	muted := NewSynth(Options{Volume: 0})
	if _, peak := drain(t, muted.Success()); peak != 0 {
		t.Errorf("muted peak = %f, expected silence", peak)
	}
}

func TestTileFrequenciesRise(t *testing.T) {
	for i := 1; i < len(TileFrequencies); i++ {
		if TileFrequencies[i] <= TileFrequencies[i-1] {
			t.Errorf("tile %d frequency %.2f not above tile %d", i, TileFrequencies[i], i-1)
		}
	}
}

type fakeOutput struct {
	initErr error
	inits   int
	played  []int // Sample count of each streamer
	t       *testing.T
}

func (f *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	f.inits++
	return f.initErr
}

func (f *fakeOutput) Play(s beep.Streamer) {
	n, _ := drain(f.t, s)
	f.played = append(f.played, n)
}

func TestPlayerObservesEvents(t *testing.T) {
	out := &fakeOutput{t: t}
	p := NewPlayer(DefaultOptions(), out, nil)
	rate := beep.SampleRate(44100)

	events := []memory.Event{
		memory.TileActivated{Tile: 1},
		memory.TileCleared{},
		memory.SequenceFinished{Length: 1},
		memory.LevelComplete{Level: 1, Gained: 10, Score: 10},
		memory.Mismatch{Position: 0, Expected: 1, Got: 2},
		memory.PhaseChanged{Phase: memory.PhaseInput},
	}
	for _, e := range events {
		p.Observe(e)
	}

	expected := []int{
		rate.N(300 * time.Millisecond),
		3*rate.N(150*time.Millisecond) + rate.N(300*time.Millisecond),
		rate.N(400 * time.Millisecond),
	}
	if len(out.played) != len(expected) {
		t.Fatalf("played %d sounds, expected %d", len(out.played), len(expected))
	}
	for i := range expected {
		if out.played[i] != expected[i] {
			t.Errorf("sound %d has %d samples, expected %d", i, out.played[i], expected[i])
		}
	}
	if out.inits != 1 {
		t.Errorf("Init called %d times, expected 1", out.inits)
	}
}

func TestPlayerDisabled(t *testing.T) {
	out := &fakeOutput{t: t}
	p := NewPlayer(DefaultOptions(), out, nil)

	p.SetEnabled(false)
	if p.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
	p.Tap(0)
	p.Observe(memory.Mismatch{})

	if out.inits != 0 || len(out.played) != 0 {
		t.Errorf("disabled player touched the output: inits=%d played=%d", out.inits, len(out.played))
	}

	p.SetEnabled(true)
	p.Tap(3)
	p.Tap(memory.NoTile)
	if len(out.played) != 1 {
		t.Errorf("played %d sounds, expected 1", len(out.played))
	}
}

func TestPlayerInitFailure(t *testing.T) {
	out := &fakeOutput{t: t, initErr: errors.New("no audio device")}
	p := NewPlayer(DefaultOptions(), out, nil)

	p.Tap(0)
	p.Tap(1)
	p.Observe(memory.LevelComplete{})

	if out.inits != 1 {
		t.Errorf("Init called %d times, expected a single attempt", out.inits)
	}
	if len(out.played) != 0 {
		t.Error("nothing should play without an output device")
	}
}
