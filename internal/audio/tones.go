// Package audio synthesises the game's sounds: one tone per tile, a success
// arpeggio and a fail buzz. Sounds are plain beep.Streamers; Player routes
// engine events to them.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tapsy/internal/memory"
)

// TileFrequencies are the tile pitches: C5, E5, G5, C6.
var TileFrequencies = [memory.TileCount]float64{523.25, 659.25, 783.99, 1046.50}

const (
	failFrequency = 110.0 // A2
	failLength    = 400 * time.Millisecond
	fadeLength    = 10 * time.Millisecond
)

// Options configures tone synthesis.
type Options struct {
	SampleRate int
	ToneLength time.Duration
	Volume     float64 // 0.0 .. 1.0
}

// DefaultOptions returns the stock synthesis parameters.
func DefaultOptions() Options {
	return Options{
		SampleRate: 44100,
		ToneLength: 300 * time.Millisecond,
		Volume:     0.4,
	}
}

// Synth builds sound streamers.
type Synth struct {
	rate   beep.SampleRate
	tone   time.Duration
	volume float64
}

// NewSynth creates a synth. Non-positive fields fall back to DefaultOptions.
func NewSynth(opts Options) Synth {
	def := DefaultOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.ToneLength <= 0 {
		opts.ToneLength = def.ToneLength
	}
	if opts.Volume < 0 {
		opts.Volume = 0
	}
	return Synth{
		rate:   beep.SampleRate(opts.SampleRate),
		tone:   opts.ToneLength,
		volume: math.Min(opts.Volume, 1),
	}
}

// SampleRate returns the output sample rate.
func (s Synth) SampleRate() beep.SampleRate { return s.rate }

// Tile returns the tone for tile. Invalid tiles produce silence.
func (s Synth) Tile(tile memory.TileIndex) beep.Streamer {
	if !tile.Valid() {
		return beep.Silence(s.rate.N(s.tone))
	}
	return s.withVolume(s.sine(TileFrequencies[tile], s.tone))
}

// Success returns a rising arpeggio over the tile pitches.
func (s Synth) Success() beep.Streamer {
	note := s.tone / 2
	return s.withVolume(beep.Seq(
		s.sine(TileFrequencies[0], note),
		s.sine(TileFrequencies[1], note),
		s.sine(TileFrequencies[2], note),
		s.sine(TileFrequencies[3], s.tone),
	))
}

// Fail returns a low square-wave buzz.
func (s Synth) Fail() beep.Streamer {
	n := s.rate.N(failLength)
	sq := &squareWave{freq: failFrequency, rate: s.rate, remaining: n}
	return s.withVolume(newFade(sq, n, s.rate.N(fadeLength)))
}

// sine returns a faded sine note of length d.
func (s Synth) sine(freq float64, d time.Duration) beep.Streamer {
	n := s.rate.N(d)
	tone, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return newFade(beep.Take(n, tone), n, s.rate.N(fadeLength))
}

// withVolume scales st by the synth volume. Zero volume is silent.
func (s Synth) withVolume(st beep.Streamer) beep.Streamer {
	if s.volume <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(s.volume)}
}

// squareWave is a fixed-length square oscillator.
type squareWave struct {
	freq      float64
	rate      beep.SampleRate
	phase     float64
	remaining int
}

func (w *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.remaining <= 0 {
			return i, i > 0
		}
		val := -1.0
		if w.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		w.phase += w.freq / float64(w.rate)
		w.phase -= math.Floor(w.phase)
		w.remaining--
	}
	return len(samples), true
}

func (w *squareWave) Err() error { return nil }

// fade applies a linear attack and release to a stream of known length,
// which keeps tones from clicking.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	ramp     int
}

func newFade(s beep.Streamer, total, ramp int) beep.Streamer {
	if ramp*2 > total {
		ramp = total / 2
	}
	return &fade{streamer: s, total: total, ramp: ramp}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.ramp > 0 {
			switch {
			case f.pos < f.ramp:
				gain = float64(f.pos) / float64(f.ramp)
			case f.pos >= f.total-f.ramp:
				gain = float64(f.total-f.pos) / float64(f.ramp)
			}
		}
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
