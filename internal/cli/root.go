package cli

import (
	"fmt"
	"os"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/dotpager/internal/audio"
	"github.com/iburimskiy/dotpager/internal/config"
	"github.com/iburimskiy/dotpager/internal/game"
)

var (
	app   *App
	flags struct {
		configPath string
		logLevel   string
		maxDots    int
		centerDots int
		pages      int
	}

	rootCmd = &cobra.Command{
		Use:   "dotpager [audio files or directories...]",
		Short: "Page through audio tracks with a windowed dot indicator",
		Long: `dotpager shows one dot per page and keeps a sliding window of them
on screen, shrinking dots toward the edges of the window.

Pass audio files (wav, mp3, flac) or directories to page through them as
tracks; without arguments a number of empty demo pages is shown.

Keys: ←/→ page, Home/End jump, +/- max dots, [/] center band,
Enter play, Space pause, O open files, Q quit.`,
		SilenceUsage: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		RunE: runGUI,
	}
)

func init() {
	// Assigned here rather than in the literal: newApp reads rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		switch cmd.Name() {
		case "help", "completion":
			return nil
		}

		var err error
		app, err = newApp()
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/dotpager/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", config.LogLevel, "log level (trace, debug, info, warn, error)")
	pf.IntVar(&flags.maxDots, "max-dots", config.MaxDots, "dots visible at once")
	pf.IntVar(&flags.centerDots, "center-dots", config.CenterDots, "full-size dots in the middle band")
	pf.IntVarP(&flags.pages, "pages", "n", 10, "demo pages when no tracks are given")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGUI(_ *cobra.Command, args []string) error {
	tracks, err := audio.Collect(args)
	if err != nil {
		return err
	}

	g, err := game.New(game.Options{
		Config: app.Config.Config(),
		Tracks: tracks,
		Pages:  flags.pages,
		Player: app.player(),
		Logger: app.Log,
	})
	if err != nil {
		return err
	}
	app.Config.OnConfigChange(g.Reload)
	app.Config.Watch()

	app.Log.Info().Int("tracks", len(tracks)).Msg("starting window")
	if err := game.Run(g); err != nil {
		_ = zenity.Error(err.Error(), zenity.Title("dotpager"), zenity.ErrorIcon)
		return err
	}
	return nil
}
