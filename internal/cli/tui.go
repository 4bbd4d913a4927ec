package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/dotpager/internal/audio"
	"github.com/iburimskiy/dotpager/internal/config"
	"github.com/iburimskiy/dotpager/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [audio files or directories...]",
	Short: "Run the indicator in the terminal",
	Long: `Render the indicator as a row of glyphs in the terminal. Tracks are
only used for their titles; nothing is played.

Logs go to dotpager.log in the config directory.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, args []string) error {
	tracks, err := audio.Collect(args)
	if err != nil {
		return err
	}
	titles := make([]string, len(tracks))
	for i, t := range tracks {
		titles[i] = t.Title
	}

	if err := app.logToFile(); err != nil {
		return err
	}
	m, err := tui.New(app.Config.Config(), titles, flags.pages, app.Log)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	app.Config.OnConfigChange(func(cfg *config.Config) {
		p.Send(tui.ReloadMsg{Config: cfg})
	})
	app.Config.Watch()

	_, err = p.Run()
	return err
}
