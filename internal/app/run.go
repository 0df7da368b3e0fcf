package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/scheduler"
)

// Run executes the configured mode. In the default mode it evaluates the
// terminal once per frame and fails if any frame had failed nodes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListTypes {
		a.listTypes()
		return nil
	}
	terminal := a.patch.Terminal
	if terminal == nil {
		return fmt.Errorf("patch: %w", scheduler.ErrNoTerminal)
	}
	if a.config.Describe {
		fmt.Fprint(a.outW, scheduler.DescribeTree(terminal))
		return nil
	}

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	var tick <-chan time.Time
	if a.config.FrameRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / a.config.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	a.logger.Info("Starting frame loop.", "terminal", terminal.String(), "frames", a.config.Frames, "fps", a.config.FrameRate, "policy", a.config.Policy.String())
	var (
		frames, failedFrames int
		lastErr              error
	)
	for a.config.Frames == 0 || frames < a.config.Frames {
		if frames > 0 && tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		report, err := a.scheduler.Evaluate(ctx, terminal)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.logger.Info("Frame loop interrupted.", "frames", frames)
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}

		a.record(frames, report)
		if !report.OK() {
			failedFrames++
			lastErr = report.Err()
			a.logger.Warn("Frame finished with stale nodes.", "frame", frames, "failed", len(report.Failed), "skipped", len(report.Skipped))
		}
		frames++
	}

	a.logger.Info("Frame loop finished.", "frames", frames, "failed_frames", failedFrames, "screen", a.Screen().Texture(0).Content)
	if failedFrames > 0 {
		if lastErr == nil {
			return fmt.Errorf("%d of %d frames left nodes stale", failedFrames, frames)
		}
		return fmt.Errorf("%d of %d frames had failed nodes: %w", failedFrames, frames, lastErr)
	}
	return nil
}

func (a *App) listTypes() {
	fmt.Fprintln(a.outW, "value types:")
	for _, name := range a.registry.Types().Names() {
		fmt.Fprintf(a.outW, "# %s\n", name)
	}
	fmt.Fprintln(a.outW, "available nodes:")
	for _, name := range a.registry.Names() {
		nt, _ := a.registry.TypeOf(name)
		fmt.Fprintf(a.outW, "# %s (%d in, %d out)\n", name, len(nt.Layout.Inputs), len(nt.Layout.Outputs))
	}
}
