package app

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/scheduler"
)

// Config holds everything an App needs to run.
type Config struct {
	// PatchPath is a .hcl file or a directory of them. Empty loads the
	// built-in demo scene.
	PatchPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Frames is the number of passes to run; 0 runs until the context ends.
	Frames int
	// FrameRate caps passes per second; 0 runs them back to back.
	FrameRate float64
	Policy    scheduler.Policy
	Viewport  gfx.Viewport

	// Describe prints the terminal's dependency tree instead of running.
	Describe bool
	// ListTypes prints the registered types instead of running.
	ListTypes bool
}

// DefaultViewport is the render size used when none is configured.
var DefaultViewport = gfx.Viewport{Width: 800, Height: 600}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(LogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Frames < 0 {
		return nil, errors.New("frames cannot be negative")
	}
	if cfg.FrameRate < 0 {
		return nil, errors.New("frame rate cannot be negative")
	}
	if cfg.Frames == 0 && cfg.FrameRate == 0 && !cfg.Describe && !cfg.ListTypes {
		return nil, errors.New("running without a frame limit requires a frame rate")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.Viewport == (gfx.Viewport{}) {
		cfg.Viewport = DefaultViewport
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	return &cfg, nil
}

func (c *Config) logLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}
