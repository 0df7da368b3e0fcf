package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/gfx"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(Config{Frames: 1})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultViewport, cfg.Viewport)
	assert.Equal(t, slog.LevelInfo, cfg.logLevel())
}

func TestNewConfigValidation(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"bad format", Config{Frames: 1, LogFormat: "xml"}, "invalid log format"},
		{"bad level", Config{Frames: 1, LogLevel: "loud"}, "invalid log level"},
		{"negative frames", Config{Frames: -1}, "frames cannot be negative"},
		{"negative rate", Config{Frames: 1, FrameRate: -2}, "frame rate cannot be negative"},
		{"unbounded", Config{}, "requires a frame rate"},
		{"bad port", Config{Frames: 1, HealthcheckPort: 70000}, "invalid healthcheck port"},
		{"bad viewport", Config{Frames: 1, Viewport: gfx.Viewport{Width: 10}}, "invalid viewport"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewConfigInspectionModesNeedNoFrames(t *testing.T) {
	_, err := NewConfig(Config{Describe: true})
	assert.NoError(t, err)
	_, err = NewConfig(Config{ListTypes: true})
	assert.NoError(t, err)
}
