// Package anim interpolates indicator transitions over time.
package anim

import (
	"slices"
	"time"

	"github.com/iburimskiy/dotpager/internal/indicator"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Driver consumes indicator transitions and produces the frame to draw.
// An animated transition arriving while another is in flight restarts
// from the current frame; nothing is queued.
type Driver struct {
	ease     Easing
	from     []indicator.Dot
	to       []indicator.Dot
	frame    []indicator.Dot
	elapsed  time.Duration
	duration time.Duration
	running  bool
}

type Option func(*Driver)

func WithEasing(e Easing) Option {
	return func(d *Driver) {
		if e != nil {
			d.ease = e
		}
	}
}

func New(opts ...Option) *Driver {
	d := &Driver{ease: EaseOutCubic}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Apply(t indicator.Transition) {
	switch {
	case len(t.To) != len(d.frame):
		d.snap(t.To)
	case t.Animated && t.Duration > 0:
		d.from = slices.Clone(d.frame)
		d.to = slices.Clone(t.To)
		d.elapsed = 0
		d.duration = t.Duration
		d.running = true
		d.frame = d.interpolate(0)
	case d.running:
		// keep the clock, aim at the new destination
		d.to = slices.Clone(t.To)
		d.frame = d.interpolate(d.progress())
	default:
		d.snap(t.To)
	}
}

// Advance moves the clock by dt and reports whether an animation is still
// running afterwards.
func (d *Driver) Advance(dt time.Duration) bool {
	if !d.running {
		return false
	}
	d.elapsed += dt
	if d.elapsed >= d.duration {
		d.snap(d.to)
		return false
	}
	d.frame = d.interpolate(d.progress())
	return true
}

func (d *Driver) Running() bool { return d.running }

// Frame returns the dots to draw now.
func (d *Driver) Frame() []indicator.Dot { return d.frame }

// Push writes the current frame into the slot views.
func (d *Driver) Push(slots []indicator.DotSlot) {
	for i, s := range slots {
		if i >= len(d.frame) {
			return
		}
		indicator.Push(s.View, d.frame[i])
	}
}

func (d *Driver) snap(to []indicator.Dot) {
	d.frame = slices.Clone(to)
	d.from, d.to = nil, nil
	d.elapsed, d.duration = 0, 0
	d.running = false
}

func (d *Driver) progress() float64 {
	if d.duration <= 0 {
		return 1
	}
	return min(float64(d.elapsed)/float64(d.duration), 1)
}

func (d *Driver) interpolate(p float64) []indicator.Dot {
	e := d.ease(p)
	out := make([]indicator.Dot, len(d.to))
	for i, to := range d.to {
		from := d.from[i]
		out[i] = to
		out[i].Center = indicator.Point{
			X: lerp(from.Center.X, to.Center.X, e),
			Y: lerp(from.Center.Y, to.Center.Y, e),
		}
		out[i].Scale = lerp(from.Scale, to.Scale, e)
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
