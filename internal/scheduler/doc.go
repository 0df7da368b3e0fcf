// Package scheduler evaluates a node graph.
//
// An evaluation pass starts from a terminal node, walks its predecessors
// depth first and updates every reached node after all of its own
// predecessors, each exactly once. What happens after a node fails is
// governed by a Policy. Passes are synchronous and at most one may be in
// flight per Scheduler.
package scheduler
