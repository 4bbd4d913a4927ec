package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/dotpager/internal/audio"
)

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (g *Game) handleInput() error {
	n := g.ctrl.PageCount()
	sel := g.ctrl.SelectedIndex()

	switch {
	case justPressed(ebiten.KeyEscape, ebiten.KeyQ):
		return ebiten.Termination
	case justPressed(ebiten.KeyArrowRight, ebiten.KeyL):
		g.selectPage(wrap(sel+1, n))
	case justPressed(ebiten.KeyArrowLeft, ebiten.KeyH):
		g.selectPage(wrap(sel-1, n))
	case justPressed(ebiten.KeyHome):
		g.selectPage(0)
	case justPressed(ebiten.KeyEnd):
		g.selectPage(n - 1)
	case justPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		g.ctrl.SetMaxDots(g.ctrl.MaxDots() + 2)
	case justPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		g.ctrl.SetMaxDots(g.ctrl.MaxDots() - 2)
	case justPressed(ebiten.KeyBracketRight):
		g.ctrl.SetCenterDots(g.ctrl.CenterDots() + 2)
	case justPressed(ebiten.KeyBracketLeft):
		g.ctrl.SetCenterDots(g.ctrl.CenterDots() - 2)
	case justPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		g.playSelected()
	case justPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case justPressed(ebiten.KeyO):
		if err := g.openTracksDialog(); err != nil {
			g.lastErr = err
		}
	}
	return nil
}

func (g *Game) selectPage(i int) {
	before := g.ctrl.SelectedIndex()
	g.ctrl.SetSelectedIndex(i)
	if g.ctrl.SelectedIndex() == before {
		return
	}
	if err := g.player.Tick(); err != nil {
		g.lastErr = err
	}
}

func (g *Game) playSelected() {
	sel := g.ctrl.SelectedIndex()
	if sel >= len(g.tracks) {
		return
	}
	if err := g.player.Play(sel, g.tracks[sel]); err != nil {
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

func (g *Game) openTracksDialog() error {
	paths, err := zenity.SelectFileMultiple(
		zenity.Title("Open Audio Files"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	tracks, err := audio.Collect(paths)
	if err != nil {
		return err
	}
	g.log.Info().Int("tracks", len(tracks)).Msg("opened tracks")
	g.setTracks(tracks)
	return nil
}

// setTracks replaces the playlist. The page count passes through zero so
// every slot asks the provider for a fresh view.
func (g *Game) setTracks(tracks []audio.Track) {
	g.player.Stop()
	g.tracks = tracks
	g.ctrl.SetPageCount(0)
	g.ctrl.SetPageCount(len(tracks))
	g.ctrl.SetSelectedIndex(0)
	g.lastErr = nil
}
