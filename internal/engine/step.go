package engine

import (
	"fmt"
	"regexp"
)

var goalIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Step binds a goal to ranked strategies plus the probes that decide whether
// the goal already holds (precondition) and whether an attempt actually
// worked (postcondition).
type Step struct {
	// Goal identifies the step, e.g. "runtime-pinned".
	Goal string
	// Description is the operator-facing summary of the goal.
	Description string

	// Precondition short-circuits the step when already satisfied. When nil
	// the postcondition doubles as the precondition, which is the common
	// "is the goal already true" case.
	Precondition Probe

	// Strategies are tried in declaration order; index 0 is the primary.
	// Reaching the goal through any later strategy marks the step Degraded.
	Strategies []Strategy

	// Postcondition is the only ground truth for success. It is re-checked
	// after every strategy attempt regardless of what Apply reported.
	Postcondition Probe

	// Reset clears stale or incompatible prior state. When set it runs
	// before every strategy attempt, including the first. When nil the
	// strategies are applied additively.
	Reset Action

	// Required steps halt the whole pipeline when they exhaust their
	// strategies; optional steps record a failure and let later steps run.
	Required bool

	// ProbeOnly marks a verification gate with no strategies: the step can
	// only observe the goal, never establish it (e.g. "smart card daemon
	// running"). An unsatisfied probe-only step fails with its remediation.
	ProbeOnly bool

	// Remediation is shown to the operator when the step fails. It belongs
	// to the step definition, not the engine.
	Remediation string
}

func (s *Step) precondition() Probe {
	if s.Precondition != nil {
		return s.Precondition
	}
	return s.Postcondition
}

func (s *Step) validate() error {
	if !goalIDPattern.MatchString(s.Goal) {
		return fmt.Errorf("step goal %q is not a valid identifier", s.Goal)
	}
	if s.Postcondition == nil {
		return fmt.Errorf("step %s has no postcondition probe", s.Goal)
	}
	if len(s.Strategies) == 0 && !s.ProbeOnly {
		return fmt.Errorf("step %s declares no strategies; mark it probe-only or give it at least one", s.Goal)
	}
	if len(s.Strategies) > 0 && s.ProbeOnly {
		return fmt.Errorf("step %s is probe-only but declares strategies", s.Goal)
	}
	seen := make(map[string]struct{}, len(s.Strategies))
	for _, strat := range s.Strategies {
		name := strat.Name()
		if name == "" {
			return fmt.Errorf("step %s has an unnamed strategy", s.Goal)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("step %s declares strategy %q twice", s.Goal, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
