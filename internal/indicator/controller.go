// Package indicator computes a windowed page indicator: which dots of an
// arbitrarily long page sequence are visible, where they sit, and how large
// they are drawn.
//
// Setters are commands that leave the controller in a consistent state and
// report the resulting change as a Transition. Queries are derivations of
// the current state. A Controller is not safe for concurrent use; drive it
// from the host's update loop.
package indicator

import (
	"image/color"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxDots       = 7
	DefaultCenterDots    = 3
	DefaultDotSize       = 7.0
	DefaultSpacing       = 7.0
	DefaultSlideDuration = 150 * time.Millisecond
)

var (
	DefaultSelectedColor   color.Color = color.White
	DefaultUnselectedColor color.Color = color.Gray{Y: 0x80}
)

type Controller struct {
	pageCount    int
	selected     int
	maxDots      int
	centerDots   int
	pageOffset   int
	centerOffset int

	dotSize         float64
	spacing         float64
	viewport        Size
	slideDuration   time.Duration
	selectedColor   color.Color
	unselectedColor color.Color

	slots       []DotSlot
	intrinsic   *Size
	needsLayout bool

	provider     DotProvider
	defaultView  func(index int) DotView
	onTransition TransitionFunc
	log          zerolog.Logger
}

type Option func(*Controller)

func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithDotProvider installs a source of custom dot views.
func WithDotProvider(p DotProvider) Option {
	return func(c *Controller) { c.provider = p }
}

// WithDefaultView sets the factory used when the provider is absent or
// declines an index.
func WithDefaultView(f func(index int) DotView) Option {
	return func(c *Controller) {
		if f != nil {
			c.defaultView = f
		}
	}
}

func WithTransitionFunc(f TransitionFunc) Option {
	return func(c *Controller) { c.onTransition = f }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		maxDots:         DefaultMaxDots,
		centerDots:      DefaultCenterDots,
		dotSize:         DefaultDotSize,
		spacing:         DefaultSpacing,
		slideDuration:   DefaultSlideDuration,
		selectedColor:   DefaultSelectedColor,
		unselectedColor: DefaultUnselectedColor,
		defaultView:     func(int) DotView { return &BasicView{} },
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnTransition replaces the transition listener.
func (c *Controller) OnTransition(f TransitionFunc) { c.onTransition = f }

func (c *Controller) PageCount() int { return c.pageCount }
func (c *Controller) MaxDots() int { return c.maxDots }
func (c *Controller) CenterDots() int { return c.centerDots }

// PageOffset is the first page of the center band.
func (c *Controller) PageOffset() int { return c.pageOffset }

// CenterOffset is the selected page's position inside the center band.
func (c *Controller) CenterOffset() int { return c.centerOffset }

func (c *Controller) DotSize() float64 { return c.dotSize }
func (c *Controller) Spacing() float64 { return c.spacing }
func (c *Controller) Viewport() Size { return c.viewport }
func (c *Controller) SlideDuration() time.Duration { return c.slideDuration }
func (c *Controller) Colors() (selected, unselected color.Color) {
	return c.selectedColor, c.unselectedColor
}

// SelectedIndex returns the selection clamped to the current page count.
func (c *Controller) SelectedIndex() int {
	return clampIndex(c.selected, c.pageCount)
}

// Slots returns the per-page slots in page order.
func (c *Controller) Slots() []DotSlot {
	return slices.Clone(c.slots)
}

// NeedsLayout reports whether the intrinsic size was invalidated since the
// last repositioning.
func (c *Controller) NeedsLayout() bool { return c.needsLayout }

// LayoutIfNeeded repositions all dots when a previous command invalidated
// the intrinsic size without repositioning.
func (c *Controller) LayoutIfNeeded() {
	if !c.needsLayout {
		return
	}
	c.reposition(ReasonLayout, c.currentDots(), false)
}

func (c *Controller) SetPageCount(n int) {
	n = max(n, 0)
	if n == c.pageCount {
		return
	}
	from := c.currentDots()
	c.pageCount = n
	c.rebuildSlots()
	c.invalidateIntrinsicSize()
	c.log.Debug().Int("pages", n).Msg("page count changed")
	c.reposition(ReasonPageCount, from, false)
}

func (c *Controller) SetSelectedIndex(i int) {
	i = clampIndex(i, c.pageCount)
	prev := c.SelectedIndex()
	if i == prev {
		c.selected = i
		return
	}
	from := c.currentDots()
	offset := c.pageOffset
	c.selected = i
	c.advanceWindow(prev, i)
	moved := c.pageOffset != offset
	c.log.Debug().
		Int("from", prev).
		Int("to", i).
		Int("page_offset", c.pageOffset).
		Int("center_offset", c.centerOffset).
		Bool("scrolled", moved).
		Msg("selection changed")
	c.reposition(ReasonSelection, from, moved)
}

// advanceWindow moves the window so that next is reachable. A step across
// the sequence boundary (last to first, first to last) snaps the window to
// the matching end instead of sliding over every page in between.
func (c *Controller) advanceWindow(prev, next int) {
	centerDots := min(c.centerDots, c.pageCount)
	maxDots := min(c.maxDots, c.pageCount)
	last := c.pageCount - 1

	switch {
	case prev == last && next == 0:
		c.pageOffset = 0
		c.centerOffset = 0
	case prev == 0 && next == last:
		c.pageOffset = max(0, c.pageCount-maxDots)
		c.centerOffset = maxDots - centerDots
	default:
		if rel := next - c.pageOffset; rel >= 0 && rel < centerDots {
			c.centerOffset = rel
		} else {
			c.pageOffset = next - c.centerOffset
		}
	}
}

func (c *Controller) SetMaxDots(m int) {
	m = max(m, 3)
	if m%2 == 0 {
		c.log.Warn().Int("requested", m).Int("using", m+1).Msg("max dots must be odd")
		m++
	}
	if m == c.maxDots {
		return
	}
	c.maxDots = m
	if c.centerDots > m {
		c.centerDots = m
	}
	c.invalidateIntrinsicSize()
}

func (c *Controller) SetCenterDots(n int) {
	n = min(max(n, 1), c.maxDots)
	if n%2 == 0 {
		c.log.Warn().Int("requested", n).Int("using", n+1).Msg("center dots must be odd")
		n++
	}
	if n == c.centerDots {
		return
	}
	c.centerDots = n
	c.invalidateIntrinsicSize()
}

func (c *Controller) SetGeometry(dotSize, spacing float64) {
	dotSize = max(dotSize, 1)
	spacing = max(spacing, 1)
	if dotSize == c.dotSize && spacing == c.spacing {
		return
	}
	from := c.currentDots()
	c.dotSize = dotSize
	c.spacing = spacing
	c.invalidateIntrinsicSize()
	c.reposition(ReasonGeometry, from, false)
}

// SetViewport tells the controller the size of the area it is drawn into.
func (c *Controller) SetViewport(size Size) {
	if size == c.viewport {
		return
	}
	from := c.currentDots()
	c.viewport = size
	c.reposition(ReasonViewport, from, false)
}

func (c *Controller) SetSlideDuration(d time.Duration) {
	c.slideDuration = max(d, 0)
}

func (c *Controller) SetColors(selected, unselected color.Color) {
	if selected == nil {
		selected = DefaultSelectedColor
	}
	if unselected == nil {
		unselected = DefaultUnselectedColor
	}
	from := c.currentDots()
	c.selectedColor = selected
	c.unselectedColor = unselected
	c.reposition(ReasonColors, from, false)
}

// IntrinsicSize is the room needed to show up to MaxDots dots at full size.
func (c *Controller) IntrinsicSize() Size {
	if c.intrinsic == nil {
		s := c.intrinsicSize()
		c.intrinsic = &s
	}
	return *c.intrinsic
}

func (c *Controller) intrinsicSize() Size {
	n := min(c.maxDots, c.pageCount)
	if n == 0 {
		return Size{Height: c.dotSize}
	}
	return Size{
		Width:  float64(n)*c.dotSize + float64(n-1)*c.spacing,
		Height: c.dotSize,
	}
}

func (c *Controller) invalidateIntrinsicSize() {
	c.intrinsic = nil
	c.needsLayout = true
}

func (c *Controller) rebuildSlots() {
	slots := make([]DotSlot, c.pageCount)
	for i := range slots {
		var v DotView
		if c.provider != nil {
			v = c.provider.DotView(i)
		}
		if v == nil {
			v = c.defaultView(i)
		}
		slots[i].View = v
	}
	c.slots = slots
}

func (c *Controller) currentDots() []Dot {
	dots := make([]Dot, len(c.slots))
	for i, s := range c.slots {
		dots[i] = s.Dot
	}
	return dots
}

func (c *Controller) reposition(reason Reason, from []Dot, animated bool) {
	to := c.Positions()
	for i := range c.slots {
		c.slots[i].Dot = to[i]
	}
	c.needsLayout = false
	if c.onTransition == nil {
		return
	}
	t := Transition{
		Reason:   reason,
		From:     from,
		To:       slices.Clone(to),
		Animated: animated,
	}
	if animated {
		t.Duration = c.slideDuration
	}
	c.onTransition(t)
}

func clampIndex(i, count int) int {
	if count <= 0 {
		return 0
	}
	return min(max(i, 0), count-1)
}
