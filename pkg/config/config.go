// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/posterkit/pkg/orchestrator"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/stages/compose"
	"github.com/user/posterkit/pkg/stages/export"
)

// Rasterizer names.
const (
	RasterizerSoftware = "software"
	RasterizerChrome   = "chrome"
)

// Config represents the full configuration for posterkit.
type Config struct {
	// Output
	OutputDir string  `yaml:"output_dir"`
	Filename  string  `yaml:"filename"`
	Scale     float64 `yaml:"scale"`

	// View
	ViewWidth    int    `yaml:"view_width"`
	DefaultRatio string `yaml:"default_ratio"`

	// Rasterizer
	Rasterizer    string `yaml:"rasterizer"`
	ChromePath    string `yaml:"chrome_path"`
	Headless      bool   `yaml:"headless"`
	ChromeTimeout int    `yaml:"chrome_timeout_sec"`

	// Templates
	Templates map[string]string `yaml:"templates"` // ratio -> PNG path
	Theme     ThemeConfig       `yaml:"theme"`

	// Logging
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Server
	Listen        string `yaml:"listen"`
	UploadLimitMB int    `yaml:"upload_limit_mb"`
}

// ThemeConfig styles the built-in templates.
type ThemeConfig struct {
	Caption     string `yaml:"caption"`
	FrameColor  string `yaml:"frame_color"`
	AccentColor string `yaml:"accent_color"`
	BandColor   string `yaml:"band_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir: ".",
		Filename:  export.DefaultFilename,
		Scale:     export.DefaultScale,

		ViewWidth:    compose.DefaultViewWidth,
		DefaultRatio: overlay.Portrait.Name,

		Rasterizer:    RasterizerSoftware,
		Headless:      true,
		ChromeTimeout: 30,

		Theme: ThemeConfig{
			FrameColor:  "#faf1de",
			AccentColor: "#c49a54",
		},

		LogLevel:     "info",
		LogMaxSizeMB: 10,

		DebugDir: "./debug",

		Listen:        "127.0.0.1:8080",
		UploadLimitMB: 32,
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// Relative template paths are resolved against the file's directory.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for ratio, p := range cfg.Templates {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Templates[ratio] = filepath.Join(base, p)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.ViewWidth <= 0 {
		return fmt.Errorf("view_width must be positive, got %d", c.ViewWidth)
	}
	if _, err := overlay.ParseChoice(c.DefaultRatio); err != nil {
		return fmt.Errorf("default_ratio: %w", err)
	}
	for ratio := range c.Templates {
		if _, err := overlay.ParseChoice(ratio); err != nil {
			return fmt.Errorf("templates: %w", err)
		}
	}
	switch c.Rasterizer {
	case RasterizerSoftware, RasterizerChrome:
	default:
		return fmt.Errorf("rasterizer must be %q or %q, got %q", RasterizerSoftware, RasterizerChrome, c.Rasterizer)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Style converts the theme to an overlay style.
func (c Config) Style() overlay.Style {
	style := overlay.Style{Caption: c.Theme.Caption}
	if c.Theme.FrameColor != "" {
		style.Frame = ParseColor(c.Theme.FrameColor)
	}
	if c.Theme.AccentColor != "" {
		style.Accent = ParseColor(c.Theme.AccentColor)
	}
	if c.Theme.BandColor != "" {
		style.Band = ParseColor(c.Theme.BandColor)
	}
	return style
}

// ChromeTimeoutDuration returns the browser timeout.
func (c Config) ChromeTimeoutDuration() time.Duration {
	if c.ChromeTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ChromeTimeout) * time.Second
}

// UploadLimitBytes returns the maximum accepted upload size.
func (c Config) UploadLimitBytes() int64 {
	if c.UploadLimitMB <= 0 {
		return 32 << 20
	}
	return int64(c.UploadLimitMB) << 20
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Invalid input yields black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.Black
	}

	var v [4]uint8
	v[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		ViewWidth: c.ViewWidth,
		Scale:     c.Scale,
		OutputDir: c.OutputDir,
		Filename:  c.Filename,
	}
}
