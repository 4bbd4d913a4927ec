package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	levelWindow  = 2048
	tickDuration = 40 * time.Millisecond
)

type Options struct {
	SampleRate    beep.SampleRate
	RingSize      int
	Smoothing     float64
	Tick          bool
	TickFrequency float64
	TickVolume    float64
}

// Player plays one track at a time and remembers which page it belongs to.
// The speaker is initialised lazily at a fixed rate; tracks with another
// rate are resampled.
type Player struct {
	opts Options
	log  zerolog.Logger

	mu       sync.Mutex
	initDone bool
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *levelTap
	playing  int
	paused   bool
	level    float64
	gen      int
}

func NewPlayer(opts Options, log zerolog.Logger) *Player {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	return &Player{opts: opts, log: log, playing: -1}
}

func (p *Player) initSpeaker() error {
	if p.initDone {
		return nil
	}
	if err := speaker.Init(p.opts.SampleRate, p.opts.SampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initDone = true
	return nil
}

// Play stops whatever is playing and starts t as page index.
func (p *Player) Play(index int, t Track) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.initSpeaker(); err != nil {
		return err
	}

	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", t.Path, err)
	}

	p.stopLocked()

	var src beep.Streamer = streamer
	if format.SampleRate != p.opts.SampleRate {
		src = beep.Resample(4, format.SampleRate, p.opts.SampleRate, streamer)
	}
	tap := newLevelTap(src, p.opts.RingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.playing = index
	p.paused = false
	p.level = 0
	p.gen++
	gen := p.gen

	// The callback runs under the speaker lock, which Play may be waiting
	// for while holding p.mu.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() { go p.finished(gen) })))
	p.log.Info().Int("page", index).Str("track", t.Title).Msg("playing")
	return nil
}

func (p *Player) finished(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.log.Debug().Int("page", p.playing).Msg("track ended")
	p.closeLocked()
}

// Stop ends playback without touching other sounds on the speaker.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Streamer = nil
		speaker.Unlock()
	}
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.playing = -1
	p.paused = false
	p.level = 0
}

func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Playing returns the page index of the current track, or -1.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Level returns the smoothed loudness of the current track in [0,1].
// Call it once per frame.
func (p *Player) Level() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tap == nil {
		return 0
	}
	cur := p.tap.level(levelWindow)
	if p.paused {
		cur = 0
	}
	p.level = p.opts.Smoothing*p.level + (1-p.opts.Smoothing)*cur
	return p.level
}

// Progress returns the position and length of the current track.
func (p *Player) Progress() (pos, length time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	n, total := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(n), p.format.SampleRate.D(total)
}

// Tick plays a short click for a page change.
func (p *Player) Tick() error {
	if !p.opts.Tick {
		return nil
	}
	p.mu.Lock()
	err := p.initSpeaker()
	p.mu.Unlock()
	if err != nil {
		return err
	}
	speaker.Play(&effects.Volume{
		Streamer: tone(p.opts.SampleRate, p.opts.TickFrequency, tickDuration),
		Base:     2,
		Volume:   p.opts.TickVolume,
	})
	return nil
}
