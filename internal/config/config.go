package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/dotpager/internal/indicator"
	"github.com/iburimskiy/dotpager/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Indicator IndicatorConfig `mapstructure:"indicator" yaml:"indicator"`
	Window    WindowConfig    `mapstructure:"window" yaml:"window"`
	Audio     AudioConfig     `mapstructure:"audio" yaml:"audio"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// IndicatorConfig mirrors the controller's configuration surface. Counts
// are not validated here; the controller clamps them.
type IndicatorConfig struct {
	MaxDots         int           `mapstructure:"max_dots" yaml:"max_dots"`
	CenterDots      int           `mapstructure:"center_dots" yaml:"center_dots"`
	DotSize         float64       `mapstructure:"dot_size" yaml:"dot_size"`
	Spacing         float64       `mapstructure:"spacing" yaml:"spacing"`
	SlideDuration   time.Duration `mapstructure:"slide_duration" yaml:"-"`
	SelectedColor   string        `mapstructure:"selected_color" yaml:"selected_color"`
	UnselectedColor string        `mapstructure:"unselected_color" yaml:"unselected_color"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Title  string `mapstructure:"title" yaml:"title"`
}

type AudioConfig struct {
	Tick          bool    `mapstructure:"tick" yaml:"tick"`
	TickFrequency float64 `mapstructure:"tick_frequency" yaml:"tick_frequency"`
	TickVolume    float64 `mapstructure:"tick_volume" yaml:"tick_volume"`
}

type TUIConfig struct {
	Spacing int `mapstructure:"spacing" yaml:"spacing"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func Default() *Config {
	return &Config{
		Indicator: IndicatorConfig{
			MaxDots:         MaxDots,
			CenterDots:      CenterDots,
			DotSize:         DotSize,
			Spacing:         Spacing,
			SlideDuration:   SlideDuration,
			SelectedColor:   SelectedColor,
			UnselectedColor: UnselectedColor,
		},
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Audio: AudioConfig{
			Tick:          Tick,
			TickFrequency: TickFrequency,
			TickVolume:    TickVolume,
		},
		TUI:     TUIConfig{Spacing: TUISpacing},
		Logging: LoggingConfig{Level: LogLevel, Format: LogFormat},
	}
}

// Validate rejects values no component could clamp into something sensible.
func Validate(cfg *Config) error {
	if _, _, err := cfg.Indicator.Colors(); err != nil {
		return err
	}
	if cfg.Indicator.SlideDuration < 0 {
		return fmt.Errorf("%w: indicator.slide_duration must not be negative", ErrInvalid)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Audio.Tick && cfg.Audio.TickFrequency <= 0 {
		return fmt.Errorf("%w: audio.tick_frequency must be positive", ErrInvalid)
	}
	if !logging.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q must be console or json", ErrInvalid, cfg.Logging.Format)
	}
	return nil
}

// Colors parses the selected and unselected hex colours.
func (c IndicatorConfig) Colors() (selected, unselected color.Color, err error) {
	sel, err := colorful.Hex(c.SelectedColor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: indicator.selected_color %q: %v", ErrInvalid, c.SelectedColor, err)
	}
	unsel, err := colorful.Hex(c.UnselectedColor)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: indicator.unselected_color %q: %v", ErrInvalid, c.UnselectedColor, err)
	}
	return sel, unsel, nil
}

// Apply pushes the indicator settings into a controller. Max dots goes
// first so the center band is capped against the new maximum.
func (c IndicatorConfig) Apply(ctrl *indicator.Controller) error {
	sel, unsel, err := c.Colors()
	if err != nil {
		return err
	}
	ctrl.SetMaxDots(c.MaxDots)
	ctrl.SetCenterDots(c.CenterDots)
	ctrl.SetGeometry(c.DotSize, c.Spacing)
	ctrl.SetSlideDuration(c.SlideDuration)
	ctrl.SetColors(sel, unsel)
	return nil
}

// MarshalYAML writes the slide duration as a duration string.
func (c IndicatorConfig) MarshalYAML() (any, error) {
	type plain IndicatorConfig
	return struct {
		plain         `yaml:",inline"`
		SlideDuration string `yaml:"slide_duration"`
	}{plain(c), c.SlideDuration.String()}, nil
}
