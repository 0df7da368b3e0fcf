package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/kiwigraph/internal/app"
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/scheduler"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("kiwi", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Kiwi - A dataflow node graph engine for procedural rendering.

Usage:
  kiwi [options] [PATCH_PATH]

Arguments:
  PATCH_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Without one the built-in demo scene is loaded.

Options:
`)
		flagSet.PrintDefaults()
	}

	patchFlag := flagSet.String("patch", "", "Path to the patch file or directory.")
	pFlag := flagSet.String("p", "", "Path to the patch file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	framesFlag := flagSet.Int("frames", 0, "Number of frames to evaluate. 0 runs until interrupted.")
	fpsFlag := flagSet.Float64("fps", 60, "Maximum frames per second. 0 evaluates frames back to back.")
	policyFlag := flagSet.String("policy", scheduler.ContinueOnFailure.String(), "What a pass does after a node fails. Options: 'continue', 'skip-dependents', 'stop'.")
	widthFlag := flagSet.Int("width", app.DefaultViewport.Width, "Viewport width in pixels.")
	heightFlag := flagSet.Int("height", app.DefaultViewport.Height, "Viewport height in pixels.")
	describeFlag := flagSet.Bool("describe", false, "Print the terminal node's dependency tree and exit.")
	listTypesFlag := flagSet.Bool("list-types", false, "Print the registered value and node types and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *patchFlag != "" {
		path = *patchFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected at most one patch path, got %d", flagSet.NArg())
	}
	slog.Debug("Patch path determined.", "path", path)

	policy, err := scheduler.ParsePolicy(*policyFlag)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	config, err := app.NewConfig(app.Config{
		PatchPath:       path,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
		HealthcheckPort: *healthPortFlag,
		Frames:          *framesFlag,
		FrameRate:       *fpsFlag,
		Policy:          policy,
		Viewport:        gfx.Viewport{Width: *widthFlag, Height: *heightFlag},
		Describe:        *describeFlag,
		ListTypes:       *listTypesFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
