package errors

import (
	"fmt"
	"strings"
	"time"
)

// ProbeTimeoutError reports a probe that did not answer within its deadline.
// A hung probe is treated as "goal not satisfied", never as an indefinite block.
type ProbeTimeoutError struct {
	Goal    string
	Timeout time.Duration
}

// NewProbeTimeoutError constructs a ProbeTimeoutError.
func NewProbeTimeoutError(goal string, timeout time.Duration) error {
	return &ProbeTimeoutError{Goal: goal, Timeout: timeout}
}

func (e *ProbeTimeoutError) Error() string {
	if e == nil {
		return ""
	}
	if e.Goal != "" {
		return fmt.Sprintf("probe timeout for goal %s after %s", e.Goal, e.Timeout)
	}
	return fmt.Sprintf("probe timeout after %s", e.Timeout)
}

// StrategyError represents a strategy whose Apply reported failure.
type StrategyError struct {
	Goal     string
	Strategy string
	Err      error
}

// NewStrategyError constructs a StrategyError.
func NewStrategyError(goal, strategy string, err error) error {
	return &StrategyError{Goal: goal, Strategy: strategy, Err: err}
}

func (e *StrategyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("strategy %s failed for goal %s: %v", e.Strategy, e.Goal, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StrategyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// VerificationError marks a strategy that reported success while the goal's
// postcondition probe still came back unsatisfied. The exit signal of a
// strategy is a hint only; the probe is ground truth.
type VerificationError struct {
	Goal     string
	Strategy string
	Reason   string
}

// NewVerificationError constructs a VerificationError.
func NewVerificationError(goal, strategy, reason string) error {
	return &VerificationError{Goal: goal, Strategy: strategy, Reason: reason}
}

func (e *VerificationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Reason != "" {
		return fmt.Sprintf("verification failed for goal %s after strategy %s: %s", e.Goal, e.Strategy, e.Reason)
	}
	return fmt.Sprintf("verification failed for goal %s after strategy %s", e.Goal, e.Strategy)
}

// RequiredStepError is returned when a required step exhausted every
// strategy; it halts the remaining pipeline.
type RequiredStepError struct {
	Goal string
}

// NewRequiredStepError constructs a RequiredStepError.
func NewRequiredStepError(goal string) error {
	return &RequiredStepError{Goal: goal}
}

func (e *RequiredStepError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("required step %s failed after exhausting all strategies", e.Goal)
}

// ResourceFailure records one resource that could not be removed.
type ResourceFailure struct {
	Resource string
	Err      error
}

// TeardownError aggregates every removal failure from a teardown run.
// Teardown is best effort: one failure never aborts the rest, so the
// caller receives all of them at once.
type TeardownError struct {
	Failures []ResourceFailure
}

// NewTeardownError constructs a TeardownError from collected failures.
// Returns nil when there is nothing to report.
func NewTeardownError(failures []ResourceFailure) error {
	if len(failures) == 0 {
		return nil
	}
	return &TeardownError{Failures: failures}
}

func (e *TeardownError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Resource, f.Err))
	}
	return fmt.Sprintf("teardown completed with %d failure(s): %s", len(e.Failures), strings.Join(parts, "; "))
}
