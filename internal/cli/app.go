// Package cli provides the cobra commands for dotpager.
package cli

import (
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/dotpager/internal/audio"
	"github.com/iburimskiy/dotpager/internal/config"
	"github.com/iburimskiy/dotpager/internal/logging"
)

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"log-level":   "logging.level",
	"max-dots":    "indicator.max_dots",
	"center-dots": "indicator.center_dots",
}

// App carries what every command needs once flags are parsed.
type App struct {
	Config *config.Manager
	Log    zerolog.Logger

	closer io.Closer
}

func newApp() (*App, error) {
	mgr := config.NewManager(flags.configPath, logging.New(logging.DefaultConfig()))
	for name, key := range flagKeys {
		if err := mgr.BindFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}

	cfg := mgr.Config()
	return &App{
		Config: mgr,
		Log:    logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format),
	}, nil
}

// logToFile redirects the app logger into the config directory. The
// terminal UI owns the screen.
func (a *App) logToFile() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg := a.Config.Config()
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Logging.Level)
	lc.Format = cfg.Logging.Format

	log, closer, err := logging.NewFile(lc, filepath.Join(dir, "dotpager.log"))
	if err != nil {
		return err
	}
	a.Log, a.closer = log, closer
	return nil
}

func (a *App) player() *audio.Player {
	cfg := a.Config.Config()
	return audio.NewPlayer(audio.Options{
		RingSize:      config.LevelRingSize,
		Smoothing:     config.SmoothingFactor,
		Tick:          cfg.Audio.Tick,
		TickFrequency: cfg.Audio.TickFrequency,
		TickVolume:    cfg.Audio.TickVolume,
	}, logging.WithComponent(a.Log, "audio"))
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
