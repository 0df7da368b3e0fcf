package scheduler

import "fmt"

// Policy decides what a pass does with the nodes scheduled after a failure.
type Policy int

const (
	// ContinueOnFailure updates every scheduled node regardless of earlier
	// failures. Consumers of a failed node read its stale outputs.
	ContinueOnFailure Policy = iota
	// SkipDependents does not update nodes with a failed or skipped
	// predecessor. Independent branches still run.
	SkipDependents
	// StopOnFailure ends the pass at the first failure.
	StopOnFailure
)

func (p Policy) String() string {
	switch p {
	case ContinueOnFailure:
		return "continue"
	case SkipDependents:
		return "skip-dependents"
	case StopOnFailure:
		return "stop"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses the names printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{ContinueOnFailure, SkipDependents, StopOnFailure} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid failure policy %q: must be one of continue, skip-dependents, stop", s)
}
