package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/scheduler"
)

// frameStatus summarizes the latest pass for the health endpoint.
type frameStatus struct {
	Frames   int      `json:"frames"`
	OK       bool     `json:"ok"`
	Failed   []string `json:"failed,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
	Duration string   `json:"duration"`
}

func (a *App) record(frame int, report *scheduler.Report) {
	status := frameStatus{
		Frames:   frame + 1,
		OK:       report.OK(),
		Duration: report.Duration.String(),
	}
	for _, ne := range report.Failed {
		status.Failed = append(status.Failed, ne.Node.String())
	}
	for _, n := range report.Skipped {
		status.Skipped = append(status.Skipped, n.String())
	}
	a.mu.Lock()
	a.last = status
	a.mu.Unlock()
}

// healthHandler reports the latest frame. It answers 503 until a frame has
// run and while the latest frame left nodes stale.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	a.mu.Lock()
	status := a.last
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status.Frames == 0 || !status.OK {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		a.logger.Error("Writing health status failed.", "error", err)
	}
}

// startHealthcheckServer runs the health check HTTP server in the background.
func (a *App) startHealthcheckServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Health check server starting.", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly.", "error", err)
		}
	}()
}

func (a *App) closeHealthcheckServer(ctx context.Context) {
	if a.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		ctxlog.FromContext(ctx).Error("Health check server shutdown failed.", "error", err)
		return
	}
	ctxlog.FromContext(ctx).Debug("Health check server shut down gracefully.")
}
