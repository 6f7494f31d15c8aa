package ui

import (
	"encoding/json"
	"os"
)

const settingsFile = "zxemu_settings.json"

// Config contains window/input/audio related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor
	// BorderSize is how many border pixels to show around the 256x192
	// canvas.
	BorderSize int
	// Audio buffering
	AudioBufferMs int
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "zxemu"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.BorderSize <= 0 {
		c.BorderSize = 32
	}
	if c.AudioBufferMs <= 0 {
		c.AudioBufferMs = 40
	}
}

// loadSettings fills the fields cfg leaves unset from the persisted settings;
// fields already set in cfg win. Missing or broken files are ignored.
func loadSettings(cfg Config) Config {
	data, err := os.ReadFile(settingsFile)
	if err != nil {
		return cfg
	}
	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		return cfg
	}
	if cfg.Title == "" {
		cfg.Title = saved.Title
	}
	if cfg.Scale <= 0 {
		cfg.Scale = saved.Scale
	}
	if cfg.BorderSize <= 0 {
		cfg.BorderSize = saved.BorderSize
	}
	if cfg.AudioBufferMs <= 0 {
		cfg.AudioBufferMs = saved.AudioBufferMs
	}
	return cfg
}

// SaveSettings persists the current settings in the working directory.
// Best-effort: errors are ignored.
func (a *App) SaveSettings() {
	data, err := json.MarshalIndent(a.cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(settingsFile, data, 0644)
}
