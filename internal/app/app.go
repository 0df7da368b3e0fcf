package app

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/patch"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/scheduler"
)

//go:embed scenes/default.hcl
var defaultScene []byte

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	device    *gfx.Recorder
	patch     *patch.Patch
	scheduler *scheduler.Scheduler

	httpServer *http.Server

	mu   sync.Mutex
	last frameStatus
}

// NewApp registers modules, loads the configured patch and freezes the
// registries. With no modules the core modules are used.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.logLevel(), cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  registry.New(datatype.NewRegistry()),
		device:    gfx.NewRecorder(cfg.Viewport),
		scheduler: scheduler.New(scheduler.WithPolicy(cfg.Policy)),
	}

	if len(modules) == 0 {
		modules = a.coreModules()
	}
	if err := a.registry.Load(ctx, modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}

	loader := patch.NewLoader(a.registry)
	var err error
	if cfg.PatchPath != "" {
		a.patch, err = loader.Load(ctx, cfg.PatchPath)
	} else {
		logger.Info("No patch given, loading the demo scene.")
		a.patch, err = loader.LoadSource(ctx, "default.hcl", defaultScene)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}

	a.registry.Freeze()
	logger.Debug("Registries frozen.", "value_types", len(a.registry.Types().Names()), "node_types", len(a.registry.Names()))
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Patch returns the loaded patch.
func (a *App) Patch() *patch.Patch { return a.patch }

// Screen returns the default render target of the headless device.
func (a *App) Screen() *gfx.FrameBuffer { return a.device.Screen() }
