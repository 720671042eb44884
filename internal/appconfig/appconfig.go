// Package appconfig holds the daemon-level settings that sit outside the
// hotkey DSL itself: where to find the hotkey config file, whether debug
// logging defaults on, and whether the exit chord is armed.
package appconfig

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
)

// Config is the top-level daemon configuration.
type Config struct {
	HotkeyFile  string `toml:"hotkey_file"`
	Debug       bool   `toml:"debug"`
	ExitChord   bool   `toml:"exit_chord"`
	WatchConfig bool   `toml:"watch_config"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		HotkeyFile:  DefaultHotkeyFile(),
		Debug:       false,
		ExitChord:   false,
		WatchConfig: true,
	}
}

// DefaultPath returns the default daemon config path
// (~/.config/hotkeyd/hotkeyd.toml). Falls back to go-homedir when
// os.UserHomeDir can't resolve $HOME (e.g. under a launchd agent with a
// stripped environment).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home, err = homedir.Dir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(home, ".config", "hotkeyd", "hotkeyd.toml")
}

// DefaultHotkeyFile returns the default hotkey DSL config path
// (~/.config/hotkeyd/hotkeys.conf).
func DefaultHotkeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home, err = homedir.Dir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(home, ".config", "hotkeyd", "hotkeys.conf")
}

// Load reads the TOML daemon config from path. If the file does not
// exist, it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML to path, creating parent directories if
// needed. The write is atomic: data is written to a temporary file and
// renamed into place so a crash mid-write cannot corrupt the existing
// config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".hotkeyd-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
