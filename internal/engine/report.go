package engine

import (
	"time"

	"github.com/google/uuid"
)

const (
	// StatusSuccess means every required step succeeded or was skipped and
	// nothing fell back to a secondary strategy.
	StatusSuccess = "success"
	// StatusDegraded means every required goal was reached but at least one
	// step needed a non-primary strategy.
	StatusDegraded = "degraded"
	// StatusFailed means a required step exhausted its strategies.
	StatusFailed = "failed"
)

// Report aggregates the outcomes of one orchestrator run. It is rebuilt
// from scratch on every run; the engine keeps no state between runs beyond
// what the probes observe in the environment.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Outcomes []Outcome
	Status   string
}

func newReport() *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

func (r *Report) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r *Report) finalize() {
	r.Duration = time.Since(r.Started)
	r.Status = StatusSuccess
	for _, o := range r.Outcomes {
		switch o.Result {
		case ResultFailed:
			if o.Required {
				r.Status = StatusFailed
				return
			}
			r.Status = StatusDegraded
		case ResultDegraded:
			if r.Status == StatusSuccess {
				r.Status = StatusDegraded
			}
		case ResultCancelled:
			if o.Required {
				r.Status = StatusFailed
				return
			}
		}
	}
}

// ExitCode maps the overall status onto the process exit code contract:
// 0 success, 1 degraded, 2 failed.
func (r *Report) ExitCode() int {
	switch r.Status {
	case StatusSuccess:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// FailedOutcomes returns the outcomes that exhausted their strategies, in
// run order.
func (r *Report) FailedOutcomes() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Result == ResultFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
