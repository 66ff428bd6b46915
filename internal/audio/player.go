package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tapsy/internal/memory"
)

// Output is where finished streamers go.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
}

// speakerOutput plays through the system audio device.
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Speaker returns the system audio output.
func Speaker() Output { return speakerOutput{} }

// Player plays game sounds. The output device is opened on first use; if
// that fails the player logs once and stays silent.
type Player struct {
	mu      sync.Mutex
	synth   Synth
	out     Output
	logger  *log.Logger
	enabled bool
	ready   bool
	broken  bool
}

// NewPlayer creates a player. A nil out selects the system speaker and a
// nil logger discards output.
func NewPlayer(opts Options, out Output, logger *log.Logger) *Player {
	if out == nil {
		out = Speaker()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		synth:   NewSynth(opts),
		out:     out,
		logger:  logger,
		enabled: true,
	}
}

// SetEnabled turns sound on or off.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Enabled reports whether sound is on.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Observe plays the sound for an engine event. It has the memory.Observer
// signature and can be chained with other observers.
func (p *Player) Observe(e memory.Event) {
	switch ev := e.(type) {
	case memory.TileActivated:
		p.play("tile", p.synth.Tile(ev.Tile))
	case memory.LevelComplete:
		p.play("success", p.synth.Success())
	case memory.Mismatch:
		p.play("fail", p.synth.Fail())
	}
}

// Tap plays the tone of a tile the player pressed.
func (p *Player) Tap(tile memory.TileIndex) {
	if !tile.Valid() {
		return
	}
	p.play("tap", p.synth.Tile(tile))
}

func (p *Player) play(cue string, s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.broken {
		return
	}
	if !p.ready {
		rate := p.synth.SampleRate()
		if err := p.out.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			p.broken = true
			p.logger.Warn("audio unavailable, continuing without sound", "err", err)
			return
		}
		p.ready = true
	}

	p.logger.Debug("cue", "name", cue)
	p.out.Play(s)
}
