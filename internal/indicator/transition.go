package indicator

import "time"

// Reason names the command that produced a Transition.
type Reason int

const (
	ReasonPageCount Reason = iota
	ReasonSelection
	ReasonGeometry
	ReasonViewport
	ReasonColors
	ReasonLayout
)

func (r Reason) String() string {
	switch r {
	case ReasonPageCount:
		return "page_count"
	case ReasonSelection:
		return "selection"
	case ReasonGeometry:
		return "geometry"
	case ReasonViewport:
		return "viewport"
	case ReasonColors:
		return "colors"
	case ReasonLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// Transition describes a change of computed dots. From is what the
// controller computed last (it may differ in length from To when the page
// count changed). Animated is set exactly when the page offset moved; the
// consumer is then expected to interpolate over Duration.
type Transition struct {
	Reason   Reason
	From     []Dot
	To       []Dot
	Animated bool
	Duration time.Duration
}

// TransitionFunc receives every transition emitted by a Controller.
type TransitionFunc func(Transition)
