package indicator

import (
	"image/color"
	"math"
)

// falloff is the scale of a dot by how many steps it lies outside the
// center band. Pages beyond the window are not drawn at all.
var falloff = [...]float64{1.0, 0.66, 0.33, 0.16}

// Positions computes the center and scale of every page. It does not
// modify the controller.
func (c *Controller) Positions() []Dot {
	if c.pageCount == 0 {
		return nil
	}
	centerDots := min(c.centerDots, c.pageCount)
	maxDots := min(c.maxDots, c.pageCount)
	sidePages := (maxDots - centerDots) / 2

	step := c.dotSize + c.spacing
	half := c.dotSize / 2
	width := c.intrinsicSize().Width
	offset := math.Max(0, float64(sidePages-c.pageOffset)*step+(c.viewport.Width-width)/2)
	centerPage := centerDots/2 + c.pageOffset
	selected := c.SelectedIndex()

	dots := make([]Dot, c.pageCount)
	for p := range dots {
		x := offset + half + step*float64(p)
		dots[p] = Dot{
			Index: p,
			Center: Point{
				X: math.Max(half, math.Min(x, c.viewport.Width-half)),
				Y: c.viewport.Height / 2,
			},
			Scale:    scaleAt(abs(p-centerPage), maxDots, centerDots),
			Selected: p == selected,
			Tint:     c.tint(p == selected),
		}
	}
	return dots
}

func (c *Controller) tint(selected bool) color.Color {
	if selected {
		return c.selectedColor
	}
	return c.unselectedColor
}

func scaleAt(distance, maxDots, centerDots int) float64 {
	if distance > maxDots/2 {
		return 0
	}
	tier := min(max(distance-centerDots/2, 0), len(falloff)-1)
	return falloff[tier]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
