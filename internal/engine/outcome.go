package engine

import "time"

const (
	// ResultSkipped marks a step whose precondition was already satisfied.
	ResultSkipped = "skipped"
	// ResultSucceeded marks a goal reached via its primary strategy.
	ResultSucceeded = "succeeded"
	// ResultDegraded marks a goal reached only via a fallback strategy.
	ResultDegraded = "degraded"
	// ResultFailed marks a step that exhausted every strategy.
	ResultFailed = "failed"
	// ResultCancelled marks a step skipped because the run was cancelled.
	ResultCancelled = "cancelled"
	// ResultWouldApply marks a dry-run step whose strategies were not executed.
	ResultWouldApply = "would_apply"
)

// Attempt records one strategy try within a step.
type Attempt struct {
	Strategy string
	Err      error
}

// Outcome is the recorded result of executing one step during one run.
// It is created once per run per step and never mutated afterwards.
type Outcome struct {
	Goal        string
	Description string
	Result      string
	// Strategy names the winning strategy for succeeded/degraded outcomes.
	Strategy string
	Attempts []Attempt
	// Reason carries the skip reason or the failure summary.
	Reason      string
	Remediation string
	Required    bool
	Duration    time.Duration
}

// Reached reports whether the goal holds after the step ran.
func (o Outcome) Reached() bool {
	switch o.Result {
	case ResultSkipped, ResultSucceeded, ResultDegraded:
		return true
	}
	return false
}
