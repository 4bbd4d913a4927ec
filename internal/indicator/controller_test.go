package indicator

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, pages int, opts ...Option) (*Controller, *[]Transition) {
	t.Helper()
	var got []Transition
	opts = append(opts, WithTransitionFunc(func(tr Transition) { got = append(got, tr) }))
	c := New(opts...)
	c.SetViewport(Size{Width: 200, Height: 20})
	c.SetPageCount(pages)
	got = got[:0]
	return c, &got
}

// selectAll walks the selection through indices in order.
func selectAll(c *Controller, indices ...int) {
	for _, i := range indices {
		c.SetSelectedIndex(i)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New()

	assert.Equal(t, 0, c.PageCount())
	assert.Equal(t, 0, c.SelectedIndex())
	assert.Equal(t, DefaultMaxDots, c.MaxDots())
	assert.Equal(t, DefaultCenterDots, c.CenterDots())
	assert.Equal(t, DefaultSlideDuration, c.SlideDuration())
	assert.Empty(t, c.Slots())
	assert.Empty(t, c.Positions())
}

func TestSetPageCount(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		c, _ := newTestController(t, 4)
		c.SetPageCount(-3)
		assert.Equal(t, 0, c.PageCount())
		assert.Empty(t, c.Slots())
	})

	t.Run("unchanged is a no-op", func(t *testing.T) {
		c, got := newTestController(t, 4)
		before := c.Slots()
		c.SetPageCount(4)
		assert.Empty(t, *got)
		after := c.Slots()
		for i := range before {
			assert.Same(t, before[i].View, after[i].View)
		}
	})

	t.Run("rebuilds slots and emits a snap", func(t *testing.T) {
		c, got := newTestController(t, 4)
		old := c.Slots()
		c.SetPageCount(6)

		slots := c.Slots()
		require.Len(t, slots, 6)
		assert.NotSame(t, old[0].View, slots[0].View)
		require.Len(t, *got, 1)
		tr := (*got)[0]
		assert.Equal(t, ReasonPageCount, tr.Reason)
		assert.False(t, tr.Animated)
		assert.Len(t, tr.From, 4)
		assert.Len(t, tr.To, 6)
	})

	t.Run("selection survives shrink and clamps on read", func(t *testing.T) {
		c, _ := newTestController(t, 10)
		c.SetSelectedIndex(8)
		c.SetPageCount(5)
		assert.Equal(t, 4, c.SelectedIndex())
		assert.True(t, c.Slots()[4].Dot.Selected)
	})
}

func TestSetSelectedIndexClamps(t *testing.T) {
	c, _ := newTestController(t, 5)

	c.SetSelectedIndex(42)
	assert.Equal(t, 4, c.SelectedIndex())

	c.SetSelectedIndex(-7)
	assert.Equal(t, 0, c.SelectedIndex())
}

func TestSetSelectedIndexUnchangedIsNoop(t *testing.T) {
	c, got := newTestController(t, 5)
	c.SetSelectedIndex(2)
	*got = (*got)[:0]

	c.SetSelectedIndex(2)
	assert.Empty(t, *got)
}

func TestSetSelectedIndexHighlightsExactlyOne(t *testing.T) {
	c, _ := newTestController(t, 8)
	selectAll(c, 1, 2, 3, 5)

	for i, s := range c.Slots() {
		assert.Equal(t, i == 5, s.Dot.Selected, "slot %d", i)
	}
}

func TestWraparound(t *testing.T) {
	t.Run("last to first snaps to start", func(t *testing.T) {
		c, got := newTestController(t, 10)
		selectAll(c, 1, 2, 3, 4, 5, 6, 7, 8, 9)
		require.NotZero(t, c.PageOffset())
		*got = (*got)[:0]

		c.SetSelectedIndex(0)
		assert.Equal(t, 0, c.PageOffset())
		assert.Equal(t, 0, c.CenterOffset())
		require.Len(t, *got, 1)
		assert.True(t, (*got)[0].Animated)
	})

	t.Run("first to last snaps to end", func(t *testing.T) {
		c, got := newTestController(t, 10)
		c.SetMaxDots(7)
		c.SetCenterDots(3)

		c.SetSelectedIndex(9)
		assert.Equal(t, 3, c.PageOffset())
		assert.Equal(t, 4, c.CenterOffset())
		require.Len(t, *got, 1)
		assert.True(t, (*got)[0].Animated)
		assert.Equal(t, DefaultSlideDuration, (*got)[0].Duration)
	})

	t.Run("end snap never goes negative", func(t *testing.T) {
		c, _ := newTestController(t, 4)
		c.SetSelectedIndex(3)
		assert.Equal(t, 0, c.PageOffset())
		assert.Equal(t, 1, c.CenterOffset())
	})

	t.Run("only the boundary pair wraps", func(t *testing.T) {
		c, _ := newTestController(t, 10)
		selectAll(c, 1, 2, 3, 4, 5, 6, 7, 8)
		require.Equal(t, 6, c.PageOffset())
		require.Equal(t, 2, c.CenterOffset())

		c.SetSelectedIndex(0)
		assert.Equal(t, -2, c.PageOffset())
		assert.Equal(t, 2, c.CenterOffset())
	})
}

// sequence 1,2,3,4,3 leaves PageOffset=2, CenterOffset=1 with index 3 selected.
func bandState(t *testing.T) (*Controller, *[]Transition) {
	t.Helper()
	c, got := newTestController(t, 10)
	c.SetMaxDots(7)
	c.SetCenterDots(3)
	selectAll(c, 1, 2, 3, 4, 3)
	require.Equal(t, 3, c.SelectedIndex())
	require.Equal(t, 2, c.PageOffset())
	require.Equal(t, 1, c.CenterOffset())
	*got = (*got)[:0]
	return c, got
}

func TestInBandMoveDoesNotScroll(t *testing.T) {
	c, got := bandState(t)

	c.SetSelectedIndex(4)
	assert.Equal(t, 2, c.PageOffset())
	assert.Equal(t, 2, c.CenterOffset())
	require.Len(t, *got, 1)
	assert.False(t, (*got)[0].Animated)
	assert.Zero(t, (*got)[0].Duration)
}

func TestOutOfBandMoveScrolls(t *testing.T) {
	c, got := bandState(t)

	c.SetSelectedIndex(6)
	assert.Equal(t, 5, c.PageOffset())
	assert.Equal(t, 1, c.CenterOffset())
	rel := c.SelectedIndex() - c.PageOffset()
	assert.GreaterOrEqual(t, rel, 0)
	assert.Less(t, rel, c.CenterDots())
	require.Len(t, *got, 1)
	assert.True(t, (*got)[0].Animated)
}

func TestSetMaxDots(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below minimum", in: 1, want: 3},
		{name: "negative", in: -4, want: 3},
		{name: "odd kept", in: 9, want: 9},
		{name: "even bumped", in: 8, want: 9},
		{name: "minimum", in: 3, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetMaxDots(tt.in)
			assert.Equal(t, tt.want, c.MaxDots())
		})
	}
}

func TestSetMaxDotsCapsCenterDots(t *testing.T) {
	c := New()
	c.SetMaxDots(11)
	c.SetCenterDots(9)
	c.SetMaxDots(5)

	assert.Equal(t, 5, c.MaxDots())
	assert.Equal(t, 5, c.CenterDots())
}

func TestSetMaxDotsKeepsOffset(t *testing.T) {
	c, got := bandState(t)

	c.SetMaxDots(9)
	assert.Equal(t, 2, c.PageOffset())
	assert.Empty(t, *got)
	assert.True(t, c.NeedsLayout())

	c.LayoutIfNeeded()
	require.Len(t, *got, 1)
	assert.Equal(t, ReasonLayout, (*got)[0].Reason)
	assert.False(t, c.NeedsLayout())
}

func TestSetCenterDots(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero", in: 0, want: 1},
		{name: "odd kept", in: 5, want: 5},
		{name: "even bumped", in: 2, want: 3},
		{name: "capped by max", in: 12, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetCenterDots(tt.in)
			assert.Equal(t, tt.want, c.CenterDots())
		})
	}
}

func TestEvenCountsLogWarning(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithLogger(zerolog.New(&buf)))

	c.SetMaxDots(6)
	c.SetCenterDots(4)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "max dots must be odd")
	assert.Contains(t, out, "center dots must be odd")
	assert.Equal(t, 7, c.MaxDots())
	assert.Equal(t, 5, c.CenterDots())
}

func TestSetGeometry(t *testing.T) {
	c, got := newTestController(t, 5)

	c.SetGeometry(0, -2)
	assert.Equal(t, 1.0, c.DotSize())
	assert.Equal(t, 1.0, c.Spacing())
	require.Len(t, *got, 1)
	assert.Equal(t, ReasonGeometry, (*got)[0].Reason)
	assert.False(t, (*got)[0].Animated)

	c.SetGeometry(1, 1)
	assert.Len(t, *got, 1)
}

func TestSetViewportGuardsUnchangedSize(t *testing.T) {
	c, got := newTestController(t, 5)

	c.SetViewport(Size{Width: 200, Height: 20})
	assert.Empty(t, *got)

	c.SetViewport(Size{Width: 300, Height: 20})
	require.Len(t, *got, 1)
	assert.Equal(t, ReasonViewport, (*got)[0].Reason)
}

func TestSetColorsRetints(t *testing.T) {
	c, got := newTestController(t, 3)
	red := rgba(255, 0, 0)
	blue := rgba(0, 0, 255)

	c.SetColors(red, blue)
	require.Len(t, *got, 1)
	to := (*got)[0].To
	assert.Equal(t, red, to[0].Tint)
	assert.Equal(t, blue, to[1].Tint)
	assert.Equal(t, blue, to[2].Tint)
}

func TestSlideDurationIsCarried(t *testing.T) {
	c, got := newTestController(t, 10)
	c.SetSlideDuration(time.Second)
	c.SetSlideDuration(-time.Second)
	assert.Zero(t, c.SlideDuration())

	c.SetSlideDuration(300 * time.Millisecond)
	c.SetSelectedIndex(9)
	require.Len(t, *got, 1)
	assert.Equal(t, 300*time.Millisecond, (*got)[0].Duration)
}

func TestIntrinsicSize(t *testing.T) {
	c := New()
	c.SetMaxDots(7)
	c.SetGeometry(6, 4)
	c.SetPageCount(3)

	assert.Equal(t, Size{Width: 26, Height: 6}, c.IntrinsicSize())

	c.SetPageCount(20)
	assert.Equal(t, Size{Width: 7*6 + 6*4, Height: 6}, c.IntrinsicSize())

	c.SetPageCount(0)
	assert.Equal(t, Size{Width: 0, Height: 6}, c.IntrinsicSize())
}

type stubView struct {
	BasicView
	index int
}

func TestDotProvider(t *testing.T) {
	provider := DotProviderFunc(func(i int) DotView {
		if i%2 == 0 {
			return &stubView{index: i}
		}
		return nil
	})
	c := New(WithDotProvider(provider))
	c.SetPageCount(4)

	slots := c.Slots()
	require.Len(t, slots, 4)
	assert.IsType(t, &stubView{}, slots[0].View)
	assert.IsType(t, &BasicView{}, slots[1].View)
	assert.Equal(t, 2, slots[2].View.(*stubView).index)
}

func TestWithDefaultView(t *testing.T) {
	made := 0
	c := New(WithDefaultView(func(int) DotView {
		made++
		return &stubView{}
	}))
	c.SetPageCount(3)
	assert.Equal(t, 3, made)
}

func TestInvariantsHoldForRandomCommands(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := New()

	for step := 0; step < 5000; step++ {
		switch rng.IntN(6) {
		case 0:
			c.SetPageCount(rng.IntN(40) - 5)
		case 1, 2:
			c.SetSelectedIndex(rng.IntN(50) - 5)
		case 3:
			c.SetMaxDots(rng.IntN(15) - 2)
		case 4:
			c.SetCenterDots(rng.IntN(15) - 2)
		case 5:
			c.SetViewport(Size{Width: float64(rng.IntN(400)), Height: 10})
		}

		sel := c.SelectedIndex()
		if c.PageCount() == 0 {
			require.Equal(t, 0, sel, "step %d", step)
		} else {
			require.GreaterOrEqual(t, sel, 0, "step %d", step)
			require.Less(t, sel, c.PageCount(), "step %d", step)
		}
		require.Equal(t, 1, c.MaxDots()%2, "step %d", step)
		require.Equal(t, 1, c.CenterDots()%2, "step %d", step)
		require.GreaterOrEqual(t, c.MaxDots(), 3)
		require.GreaterOrEqual(t, c.CenterDots(), 1)
		require.LessOrEqual(t, c.CenterDots(), c.MaxDots(), "step %d", step)
		require.Len(t, c.Slots(), c.PageCount())
	}
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "selection", ReasonSelection.String())
	assert.Equal(t, "layout", ReasonLayout.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
