package indicator

import "image/color"

type Point struct {
	X, Y float64
}

type Size struct {
	Width, Height float64
}

// Dot is the computed transform of one page.
type Dot struct {
	Index    int
	Center   Point
	Scale    float64
	Selected bool
	Tint     color.Color
}

// DotView is the visual placeholder of one page. Hosts push computed
// attributes into it; the controller only hands views out.
type DotView interface {
	SetCenter(p Point)
	SetScale(s float64)
	SetTint(c color.Color)
	SetSelected(selected bool)
}

// DotProvider supplies custom views per page index. Returning a nil
// interface requests the default view.
type DotProvider interface {
	DotView(index int) DotView
}

// DotProviderFunc adapts a function to DotProvider.
type DotProviderFunc func(index int) DotView

func (f DotProviderFunc) DotView(index int) DotView { return f(index) }

// DotSlot pairs a page's view with the last computed transform.
type DotSlot struct {
	View DotView
	Dot  Dot
}

// BasicView records whatever was last pushed into it. It is the default
// view when no factory is configured and a convenient base for host views.
type BasicView struct {
	Center   Point
	Scale    float64
	Tint     color.Color
	Selected bool
}

func (v *BasicView) SetCenter(p Point) { v.Center = p }
func (v *BasicView) SetScale(s float64) { v.Scale = s }
func (v *BasicView) SetTint(c color.Color) { v.Tint = c }
func (v *BasicView) SetSelected(selected bool) { v.Selected = selected }

// Push copies d into v.
func Push(v DotView, d Dot) {
	if v == nil {
		return
	}
	v.SetCenter(d.Center)
	v.SetScale(d.Scale)
	v.SetTint(d.Tint)
	v.SetSelected(d.Selected)
}
