package indicator

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func TestPositionsIdempotent(t *testing.T) {
	c, _ := newTestController(t, 12)
	selectAll(c, 1, 2, 3, 4, 5)

	first := c.Positions()
	second := c.Positions()
	assert.Equal(t, first, second)
	assert.Equal(t, 3, c.PageOffset(), "query must not move the window")
}

func TestScaleFalloff(t *testing.T) {
	tests := []struct {
		name       string
		maxDots    int
		centerDots int
		distance   int
		want       float64
	}{
		{name: "center", maxDots: 7, centerDots: 3, distance: 0, want: 1.0},
		{name: "inside band", maxDots: 7, centerDots: 3, distance: 1, want: 1.0},
		{name: "first side tier", maxDots: 7, centerDots: 3, distance: 2, want: 0.66},
		{name: "second side tier", maxDots: 7, centerDots: 3, distance: 3, want: 0.33},
		{name: "outside window", maxDots: 7, centerDots: 3, distance: 4, want: 0},
		{name: "third side tier", maxDots: 9, centerDots: 3, distance: 4, want: 0.16},
		{name: "table saturates", maxDots: 15, centerDots: 3, distance: 7, want: 0.16},
		{name: "single center", maxDots: 3, centerDots: 1, distance: 1, want: 0.66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaleAt(tt.distance, tt.maxDots, tt.centerDots))
		})
	}
}

func TestPositionsScalesAroundCenterPage(t *testing.T) {
	c, _ := newTestController(t, 10)

	want := []float64{1, 1, 1, 0.66, 0.33, 0, 0, 0, 0, 0}
	got := c.Positions()
	require.Len(t, got, 10)
	for i, d := range got {
		assert.Equal(t, want[i], d.Scale, "page %d", i)
		assert.Equal(t, i, d.Index)
	}
}

func TestPositionsFollowScroll(t *testing.T) {
	c, _ := bandState(t)

	// center page is 1 + PageOffset(2) = 3
	scales := make([]float64, 0, 10)
	for _, d := range c.Positions() {
		scales = append(scales, d.Scale)
	}
	assert.Equal(t, []float64{0.33, 0.66, 1, 1, 1, 0.66, 0.33, 0, 0, 0}, scales)
}

func TestPositionsGeometry(t *testing.T) {
	c := New()
	c.SetGeometry(6, 4)
	c.SetPageCount(3)
	// intrinsic width 26, centred in a 100 wide viewport: (100-26)/2 = 37
	c.SetViewport(Size{Width: 100, Height: 30})

	dots := c.Positions()
	require.Len(t, dots, 3)
	assert.Equal(t, Point{X: 40, Y: 15}, dots[0].Center)
	assert.Equal(t, Point{X: 50, Y: 15}, dots[1].Center)
	assert.Equal(t, Point{X: 60, Y: 15}, dots[2].Center)
}

func TestPositionsShiftWithSidePages(t *testing.T) {
	c := New()
	c.SetGeometry(6, 4)
	c.SetPageCount(10)
	// intrinsic 7*6+6*4 = 66; viewport equals it so only the side shift applies
	c.SetViewport(Size{Width: 66, Height: 6})

	dots := c.Positions()
	// sidePages = 2, PageOffset = 0: first page sits two steps in
	assert.Equal(t, 2*10+3.0, dots[0].Center.X)
	assert.Equal(t, 3*10+3.0, dots[1].Center.X)
}

func TestPositionsClampIntoViewport(t *testing.T) {
	c := New()
	c.SetGeometry(6, 4)
	c.SetPageCount(30)
	c.SetViewport(Size{Width: 66, Height: 6})

	for _, d := range c.Positions() {
		assert.GreaterOrEqual(t, d.Center.X, 3.0)
		assert.LessOrEqual(t, d.Center.X, 63.0)
	}
	last := c.Positions()[29]
	assert.Equal(t, 63.0, last.Center.X)
	assert.Zero(t, last.Scale)
}

func TestPositionsHorizontalOffsetNeverNegative(t *testing.T) {
	c := New()
	c.SetGeometry(6, 4)
	c.SetPageCount(30)
	c.SetViewport(Size{Width: 66, Height: 6})
	for i := 1; i <= 20; i++ {
		c.SetSelectedIndex(i)
	}

	// window scrolled past the side pages; offset floors at zero
	assert.Equal(t, 3.0, c.Positions()[0].Center.X)
}

func TestPositionsTint(t *testing.T) {
	c, _ := newTestController(t, 4)
	on, off := rgba(1, 2, 3), rgba(4, 5, 6)
	c.SetColors(on, off)
	c.SetSelectedIndex(2)

	for _, d := range c.Positions() {
		if d.Index == 2 {
			assert.True(t, d.Selected)
			assert.Equal(t, on, d.Tint)
			continue
		}
		assert.False(t, d.Selected)
		assert.Equal(t, off, d.Tint)
	}
}

func TestSlotsTrackLastTransition(t *testing.T) {
	c, got := newTestController(t, 6)
	c.SetSelectedIndex(4)

	require.NotEmpty(t, *got)
	last := (*got)[len(*got)-1]
	for i, s := range c.Slots() {
		assert.Equal(t, last.To[i], s.Dot)
	}
}

func TestPushCopiesDotIntoView(t *testing.T) {
	v := &BasicView{}
	d := Dot{Center: Point{X: 3, Y: 4}, Scale: 0.66, Selected: true, Tint: rgba(9, 9, 9)}

	Push(v, d)
	assert.Equal(t, d.Center, v.Center)
	assert.Equal(t, 0.66, v.Scale)
	assert.True(t, v.Selected)
	assert.Equal(t, d.Tint, v.Tint)

	Push(nil, d)
}
