// Package config persists application preferences as JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig stores persistent application settings. The overlay transform is
// not persisted; every session starts from a fresh fit.
type AppConfig struct {
	CameraDevice     int  `json:"camera_device"`
	CaptureWidth     int  `json:"capture_width"`
	CaptureHeight    int  `json:"capture_height"`
	CameraEnabled    bool `json:"camera_enabled"`
	ShowDebug        bool `json:"show_debug"`
	FullscreenOnLoad bool `json:"fullscreen_on_load"`
	MaxTextureSize   int  `json:"max_texture_size"`
	WindowWidth      int  `json:"window_width"`
	WindowHeight     int  `json:"window_height"`
}

// Default returns the settings used when no config file exists.
func Default() *AppConfig {
	return &AppConfig{
		CameraDevice:     0,
		CaptureWidth:     1280,
		CaptureHeight:    720,
		CameraEnabled:    true,
		ShowDebug:        true,
		FullscreenOnLoad: true,
		MaxTextureSize:   4096,
		WindowWidth:      1280,
		WindowHeight:     800,
	}
}

// Path returns the platform config file location, creating its directory.
func Path() (string, error) {
	var configDir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\OpenTraceOverlay
		configDir = filepath.Join(appData, "OpenTraceOverlay")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "opentraceoverlay")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config from the default location.
func Load() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields Default(). Fields
// absent from the file keep their default values.
func LoadFrom(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// Save writes cfg to the default location.
func Save(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path as indented JSON.
func SaveTo(path string, cfg *AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// sanitize replaces out-of-range values with defaults.
func (c *AppConfig) sanitize() {
	def := Default()
	if c.CameraDevice < 0 {
		c.CameraDevice = def.CameraDevice
	}
	if c.CaptureWidth < 0 || c.CaptureHeight < 0 {
		c.CaptureWidth, c.CaptureHeight = def.CaptureWidth, def.CaptureHeight
	}
	if c.MaxTextureSize <= 0 {
		c.MaxTextureSize = def.MaxTextureSize
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth, c.WindowHeight = def.WindowWidth, def.WindowHeight
	}
}
