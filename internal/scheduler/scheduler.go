package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/graph"
)

// Scheduler runs evaluation passes. The zero value is not usable; call New.
type Scheduler struct {
	policy   Policy
	inFlight atomic.Bool
	// scratch holds the order of the running pass and is reused across passes.
	scratch []*graph.Node
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPolicy sets the failure policy. The default is ContinueOnFailure.
func WithPolicy(p Policy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{policy: ContinueOnFailure}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured failure policy.
func (s *Scheduler) Policy() Policy { return s.policy }

// Evaluate runs one pass ending at terminal. Node failures are reported in
// the returned Report, not as an error; the error is reserved for passes that
// could not start (cycle, pass in flight, cancelled context).
func (s *Scheduler) Evaluate(ctx context.Context, terminal *graph.Node) (*Report, error) {
	if terminal == nil {
		return nil, ErrNoTerminal
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrPassInFlight
	}
	defer s.inFlight.Store(false)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := ctxlog.FromContext(ctx).With("terminal", terminal.String())

	w := newWalker(s.scratch)
	err := w.visit(terminal)
	s.scratch = w.order
	if err != nil {
		logger.Error("Evaluation aborted.", "error", err)
		return nil, err
	}
	order := s.scratch
	logger.Debug("Evaluation order resolved.", "nodes", len(order))

	report := &Report{Terminal: terminal, Order: slices.Clone(order)}
	stale := make(map[*graph.Node]bool)
	for i, n := range order {
		if s.policy == SkipDependents && slices.ContainsFunc(n.PreviousNodes(), func(p *graph.Node) bool { return stale[p] }) {
			stale[n] = true
			report.Skipped = append(report.Skipped, n)
			logger.Warn("Skipping node with stale inputs.", "node", n.String())
			continue
		}

		if err := update(ctx, n); err != nil {
			stale[n] = true
			report.Failed = append(report.Failed, &NodeError{Node: n, Err: err})
			logger.Error("Node update failed.", "node", n.String(), "error", err)
			if s.policy == StopOnFailure {
				report.Skipped = append(report.Skipped, order[i+1:]...)
				logger.Warn("Evaluation stopped.", "skipped", len(order)-i-1)
				break
			}
			continue
		}
		report.Updated = append(report.Updated, n)
	}

	report.Duration = time.Since(start)
	logger.Debug("Evaluation finished.",
		"updated", len(report.Updated),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		"duration", report.Duration,
	)
	return report, nil
}

// update runs one node, turning a panic in its updater into a node failure
// so the rest of the pass still runs.
func update(ctx context.Context, n *graph.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUpdatePanicked, r)
		}
	}()
	return n.Update(ctx)
}
