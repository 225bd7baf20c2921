package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.DeviceID != "" {
		t.Errorf("expected empty default device, got %q", cfg.Audio.DeviceID)
	}
	if cfg.Output.Dir == "" {
		t.Error("expected a default output dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.LogLevel = "debug"
	cfg.Audio.DeviceID = "Mic A"
	cfg.Audio.SampleRate = 44100

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "micrec", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.LogLevel != "debug" || loaded.Audio.DeviceID != "Mic A" || loaded.Audio.SampleRate != 44100 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
