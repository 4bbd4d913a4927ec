package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch starts watching the config file for changes and reloads
// automatically. Callbacks run on the watcher goroutine; hosts must hand
// the new config over to their update loop themselves.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching || m.viper.ConfigFileUsed() == "" {
		return
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")
		m.reload()
	})
	m.viper.WatchConfig()
	m.watching = true
}

// OnConfigChange registers a callback for successful reloads.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() {
	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		m.log.Warn().Err(err).Msg("failed to reread config")
		return
	}
	cfg, err := m.unmarshal()
	if err != nil {
		m.mu.Unlock()
		m.log.Warn().Err(err).Msg("ignoring invalid config")
		return
	}
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	m.log.Info().Msg("config reloaded")
	for _, cb := range callbacks {
		cb(cfg)
	}
}
