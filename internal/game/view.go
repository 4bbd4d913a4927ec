package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dotpager/internal/indicator"
)

const ringWidth = 1.5

type drawer interface {
	Draw(dst *ebiten.Image, dotSize float64)
}

// circleView is the default dot: a filled circle scaled around its center.
type circleView struct {
	indicator.BasicView
}

func (v *circleView) Draw(dst *ebiten.Image, dotSize float64) {
	r := dotSize * v.Scale / 2
	if r <= 0 || v.Tint == nil {
		return
	}
	vector.DrawFilledCircle(dst, float32(v.Center.X), float32(v.Center.Y), float32(r), v.Tint, true)
}

// trackView is a dot backed by an audio track. While its track plays it
// draws a ring that breathes with the music.
type trackView struct {
	circleView
	index int
	game  *Game
}

func (v *trackView) Draw(dst *ebiten.Image, dotSize float64) {
	v.circleView.Draw(dst, dotSize)
	if v.Scale == 0 || v.Tint == nil || v.game.player.Playing() != v.index {
		return
	}
	r := dotSize*v.Scale/2 + 2 + v.game.level*dotSize
	vector.StrokeCircle(dst, float32(v.Center.X), float32(v.Center.Y), float32(r), ringWidth, v.Tint, true)
}

// dotView provides views for pages that have a track and declines the
// rest.
func (g *Game) dotView(index int) indicator.DotView {
	if index < len(g.tracks) {
		return &trackView{index: index, game: g}
	}
	return nil
}
