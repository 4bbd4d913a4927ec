// Package game hosts the page indicator in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/dotpager/internal/anim"
	"github.com/iburimskiy/dotpager/internal/audio"
	"github.com/iburimskiy/dotpager/internal/config"
	"github.com/iburimskiy/dotpager/internal/indicator"
	"github.com/iburimskiy/dotpager/internal/logging"
)

type Options struct {
	Config *config.Config
	Tracks []audio.Track
	// Pages is used when no tracks are given.
	Pages  int
	Player *audio.Player
	Logger zerolog.Logger
}

type Game struct {
	cfg    *config.Config
	log    zerolog.Logger
	ctrl   *indicator.Controller
	driver *anim.Driver
	player *audio.Player
	tracks []audio.Track

	reloads chan *config.Config

	// viz
	time  float64
	level float64

	lastErr error
}

func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Game{
		cfg:     cfg,
		log:     opts.Logger,
		driver:  anim.New(),
		player:  opts.Player,
		tracks:  opts.Tracks,
		reloads: make(chan *config.Config, 1),
	}
	if g.player == nil {
		g.player = audio.NewPlayer(audio.Options{Smoothing: config.SmoothingFactor}, g.log)
	}
	g.ctrl = indicator.New(
		indicator.WithLogger(logging.WithComponent(g.log, "indicator")),
		indicator.WithDotProvider(indicator.DotProviderFunc(g.dotView)),
		indicator.WithDefaultView(func(int) indicator.DotView { return &circleView{} }),
		indicator.WithTransitionFunc(g.driver.Apply),
	)
	if err := cfg.Indicator.Apply(g.ctrl); err != nil {
		return nil, err
	}

	pages := len(g.tracks)
	if pages == 0 {
		pages = opts.Pages
	}
	g.ctrl.SetPageCount(pages)
	return g, nil
}

// Reload hands a new configuration to the update loop. Safe to call from
// any goroutine; only the latest pending config is kept.
func (g *Game) Reload(cfg *config.Config) {
	select {
	case <-g.reloads:
	default:
	}
	g.reloads <- cfg
}

func (g *Game) applyConfig(cfg *config.Config) {
	if err := cfg.Indicator.Apply(g.ctrl); err != nil {
		g.lastErr = err
		return
	}
	g.cfg = cfg
	ebiten.SetWindowTitle(cfg.Window.Title)
}

func (g *Game) Update() error {
	select {
	case cfg := <-g.reloads:
		g.applyConfig(cfg)
	default:
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	tps := max(ebiten.TPS(), 1)
	g.ctrl.LayoutIfNeeded()
	g.driver.Advance(time.Second / time.Duration(tps))
	g.driver.Push(g.ctrl.Slots())

	g.time += 1.0 / float64(tps)
	g.level = g.player.Level()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	dotSize := g.ctrl.DotSize()
	for _, s := range g.ctrl.Slots() {
		if d, ok := s.View.(drawer); ok {
			d.Draw(screen, dotSize)
		}
	}

	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// Layout reports the window size to the controller; the controller ignores
// repeats.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctrl.SetViewport(indicator.Size{
		Width:  float64(outsideWidth),
		Height: float64(outsideHeight),
	})
	return outsideWidth, outsideHeight
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	hue := math.Mod(g.time*4, 360)
	for y := 0; y < h; y++ {
		ratio := float64(y) / float64(h)
		c := colorful.Hsv(math.Mod(hue+ratio*40, 360), 0.45, 0.10+0.06*ratio+0.04*g.level)
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, c, false)
	}
}

func (g *Game) status() string {
	n := g.ctrl.PageCount()
	if n == 0 {
		return "No pages - press O to open audio files"
	}
	sel := g.ctrl.SelectedIndex()
	s := fmt.Sprintf("page %d/%d  max %d center %d", sel+1, n, g.ctrl.MaxDots(), g.ctrl.CenterDots())
	if sel < len(g.tracks) {
		s += "  " + g.tracks[sel].Title
	}
	if playing := g.player.Playing(); playing >= 0 {
		pos, length := g.player.Progress()
		state := "playing"
		if g.player.Paused() {
			state = "paused"
		}
		s += fmt.Sprintf("\n%s #%d %s/%s", state, playing+1, formatDuration(pos), formatDuration(length))
	}
	if g.lastErr != nil {
		s += "\nError: " + g.lastErr.Error()
	}
	return s
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	defer g.player.Stop()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
