package scheduler

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/kiwigraph/internal/graph"
)

// Report is the outcome of one evaluation pass.
type Report struct {
	Terminal *graph.Node
	// Order is every node the pass scheduled, in update order.
	Order   []*graph.Node
	Updated []*graph.Node
	Failed  []*NodeError
	// Skipped nodes were scheduled but not updated because of the policy.
	Skipped  []*graph.Node
	Duration time.Duration
}

// OK reports whether every scheduled node was updated.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && len(r.Skipped) == 0
}

// Err aggregates the failed updates, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, ne := range r.Failed {
		result = multierror.Append(result, ne)
	}
	return result.ErrorOrNil()
}

// Stale returns the scheduled nodes whose outputs were not refreshed by this
// pass, in update order.
func (r *Report) Stale() []*graph.Node {
	updated := make(map[*graph.Node]bool, len(r.Updated))
	for _, n := range r.Updated {
		updated[n] = true
	}
	var stale []*graph.Node
	for _, n := range r.Order {
		if !updated[n] {
			stale = append(stale, n)
		}
	}
	return stale
}
