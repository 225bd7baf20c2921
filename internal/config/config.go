package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	LogLevel string       `json:"log_level"` // "debug", "info", "warn", "error"
	Audio    AudioConfig  `json:"audio"`
	Output   OutputConfig `json:"output"`
}

type AudioConfig struct {
	DeviceID   string `json:"device_id"`   // device label; empty means default input
	SampleRate int    `json:"sample_rate"` // Hz
}

type OutputConfig struct {
	Dir string `json:"dir"` // directory for recorded WAV files
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	path := configPath()

	cfg := &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			DeviceID:   "",
			SampleRate: 16000,
		},
		Output: OutputConfig{
			Dir: defaultOutputDir(),
		},
	}

	// Load existing config if it exists
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := configPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "micrec", "config.json")
}

// defaultOutputDir returns the platform-specific recordings directory
func defaultOutputDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.local/share"
		}
	}

	return filepath.Join(base, "micrec", "recordings")
}
