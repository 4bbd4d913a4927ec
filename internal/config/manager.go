package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "DOTPAGER"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	viper     *viper.Viper
	config    *Config
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	log       zerolog.Logger
}

// NewManager creates a manager reading path, or config.yaml from the
// default config directory when path is empty.
func NewManager(path string, log zerolog.Logger) *Manager {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	// DOTPAGER_INDICATOR_MAX_DOTS, DOTPAGER_LOGGING_LEVEL, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v, log: log}
	m.setDefaults()
	return m
}

// Dir returns the directory holding the default config file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "dotpager"), nil
}

// DefaultPath is where `config init` writes and Load looks first.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func (m *Manager) setDefaults() {
	d := Default()
	m.viper.SetDefault("indicator.max_dots", d.Indicator.MaxDots)
	m.viper.SetDefault("indicator.center_dots", d.Indicator.CenterDots)
	m.viper.SetDefault("indicator.dot_size", d.Indicator.DotSize)
	m.viper.SetDefault("indicator.spacing", d.Indicator.Spacing)
	m.viper.SetDefault("indicator.slide_duration", d.Indicator.SlideDuration)
	m.viper.SetDefault("indicator.selected_color", d.Indicator.SelectedColor)
	m.viper.SetDefault("indicator.unselected_color", d.Indicator.UnselectedColor)
	m.viper.SetDefault("window.width", d.Window.Width)
	m.viper.SetDefault("window.height", d.Window.Height)
	m.viper.SetDefault("window.title", d.Window.Title)
	m.viper.SetDefault("audio.tick", d.Audio.Tick)
	m.viper.SetDefault("audio.tick_frequency", d.Audio.TickFrequency)
	m.viper.SetDefault("audio.tick_volume", d.Audio.TickVolume)
	m.viper.SetDefault("tui.spacing", d.TUI.Spacing)
	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
}

// BindFlag lets a command-line flag override key.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := m.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind flag %s: %w", flag.Name, err)
	}
	return nil
}

// Load reads the config file (a missing file is not an error), applies
// environment and flag overrides, and validates the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	cfg, err := m.unmarshal()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		m.log.Debug().Str("file", m.viper.ConfigFileUsed()).Msg("config loaded")
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		m.log.Debug().Msg("no config file, using defaults")
		return nil
	}
	return fmt.Errorf("read config file %s: %w", m.viper.ConfigFileUsed(), err)
}

func (m *Manager) unmarshal() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Config returns the last successfully loaded configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return Default()
	}
	return m.config
}

// ConfigFileUsed returns the file Load read, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}
