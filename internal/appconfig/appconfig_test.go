package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Debug {
		t.Error("expected debug off by default")
	}
	if cfg.ExitChord {
		t.Error("expected exit chord disabled by default")
	}
	if !cfg.WatchConfig {
		t.Error("expected watch_config enabled by default")
	}
	if cfg.HotkeyFile != DefaultHotkeyFile() {
		t.Errorf("expected hotkey file %s, got %s", DefaultHotkeyFile(), cfg.HotkeyFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/hotkeyd.toml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Debug {
		t.Error("expected default debug value for missing file")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeyd.toml")

	content := `
hotkey_file = "/tmp/custom-hotkeys.conf"
debug = true
exit_chord = true
watch_config = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HotkeyFile != "/tmp/custom-hotkeys.conf" {
		t.Errorf("expected /tmp/custom-hotkeys.conf, got %s", cfg.HotkeyFile)
	}
	if !cfg.Debug {
		t.Error("expected debug true")
	}
	if !cfg.ExitChord {
		t.Error("expected exit_chord true")
	}
	if cfg.WatchConfig {
		t.Error("expected watch_config false")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeyd.toml")

	cfg := Default()
	cfg.Debug = true
	cfg.HotkeyFile = "/tmp/hotkeys.conf"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}

	if !loaded.Debug {
		t.Error("expected debug true after round trip")
	}
	if loaded.HotkeyFile != "/tmp/hotkeys.conf" {
		t.Errorf("expected /tmp/hotkeys.conf, got %s", loaded.HotkeyFile)
	}
	if loaded.WatchConfig != cfg.WatchConfig {
		t.Errorf("expected watch_config preserved, got %v", loaded.WatchConfig)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "hotkeyd.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save failed to create nested dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %s: %v", path, err)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeyd.toml")

	content := `debug = true`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Debug {
		t.Error("expected debug true")
	}
	if !cfg.WatchConfig {
		t.Error("expected default watch_config preserved")
	}
}
