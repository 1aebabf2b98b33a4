package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/logger"
	bridgeerrors "github.com/AkiThuong/Agentfront-NFC-Card/pkg/errors"
)

const defaultProbeTimeout = 30 * time.Second

// Options tune a single orchestrator instance.
type Options struct {
	// DryRun evaluates probes and reports the intended strategy order
	// without applying anything.
	DryRun bool
	// Force skips the precondition short-circuit: the step runs its reset
	// and strategies even when the goal already holds.
	Force bool
	// ProbeTimeout bounds every probe check. Zero selects the default.
	ProbeTimeout time.Duration
	Logger       *logger.Logger
}

// Orchestrator runs a fixed pipeline of steps in declared order. Ordering is
// the caller's responsibility; there is no dependency inference.
type Orchestrator struct {
	steps []Step
	opts  Options
}

// New validates the pipeline configuration and builds an orchestrator.
// Configuration errors (empty pipeline, duplicate goals, malformed steps)
// fail here, not at run time.
func New(steps []Step, opts Options) (*Orchestrator, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline declares no steps")
	}
	seen := make(map[string]struct{}, len(steps))
	for i := range steps {
		if err := steps[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[steps[i].Goal]; dup {
			return nil, fmt.Errorf("duplicate step goal %q", steps[i].Goal)
		}
		seen[steps[i].Goal] = struct{}{}
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = defaultProbeTimeout
	}
	return &Orchestrator{steps: steps, opts: opts}, nil
}

// Run executes the pipeline and returns a fresh report. Probe and strategy
// errors never escape a step: they are recorded as attempts on the step's
// outcome. Only a required step exhausting its strategies halts the run.
//
// Cancellation is cooperative: the currently executing strategy finishes,
// remaining steps are recorded as cancelled.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	report := newReport()
	halted := false

	for i := range o.steps {
		step := &o.steps[i]

		if halted || ctx.Err() != nil {
			report.record(o.cancelledOutcome(step, halted))
			continue
		}

		outcome := o.runStep(ctx, step)
		report.record(outcome)

		if outcome.Result == ResultFailed && step.Required {
			o.opts.Logger.WithGoal(step.Goal).Error(
				bridgeerrors.NewRequiredStepError(step.Goal), "halting pipeline")
			halted = true
		}
	}

	report.finalize()
	return report
}

func (o *Orchestrator) runStep(ctx context.Context, step *Step) Outcome {
	start := time.Now()
	log := o.opts.Logger.WithGoal(step.Goal)

	outcome := Outcome{
		Goal:        step.Goal,
		Description: step.Description,
		Remediation: step.Remediation,
		Required:    step.Required,
	}

	// Force re-applies strategies, which a probe-only step does not have;
	// its probe is always consulted so the verdict reflects reality.
	if !o.opts.Force || step.ProbeOnly {
		if res := o.checkProbe(ctx, step.precondition()); res.Satisfied {
			log.Debug("precondition satisfied, skipping")
			outcome.Result = ResultSkipped
			outcome.Reason = "already satisfied"
			outcome.Duration = time.Since(start)
			return outcome
		} else {
			outcome.Reason = res.Reason
		}
	}

	if step.ProbeOnly {
		// Nothing to apply; the unsatisfied probe is the verdict.
		outcome.Result = ResultFailed
		outcome.Duration = time.Since(start)
		return outcome
	}

	if o.opts.DryRun {
		names := make([]string, len(step.Strategies))
		for i, s := range step.Strategies {
			names[i] = s.Name()
		}
		outcome.Result = ResultWouldApply
		outcome.Reason = "would try: " + strings.Join(names, ", ")
		outcome.Duration = time.Since(start)
		return outcome
	}

	for rank, strategy := range step.Strategies {
		if ctx.Err() != nil {
			outcome.Result = ResultCancelled
			outcome.Reason = "run cancelled"
			outcome.Duration = time.Since(start)
			return outcome
		}

		if step.Reset != nil {
			if err := step.Reset.Apply(ctx); err != nil {
				log.Error(err, "reset failed before strategy "+strategy.Name())
			}
		}

		log.WithFields(map[string]any{"strategy": strategy.Name(), "rank": rank}).Info("applying strategy")
		applyErr := strategy.Apply(ctx)

		post := o.checkProbe(ctx, step.Postcondition)
		if post.Satisfied {
			// Ground truth wins even when the strategy itself errored; its
			// error stays on the attempt as a diagnostic.
			outcome.Attempts = append(outcome.Attempts, Attempt{Strategy: strategy.Name(), Err: applyErr})
			outcome.Strategy = strategy.Name()
			if rank == 0 {
				outcome.Result = ResultSucceeded
			} else {
				outcome.Result = ResultDegraded
			}
			outcome.Reason = ""
			outcome.Duration = time.Since(start)
			return outcome
		}

		var attemptErr error
		switch {
		case applyErr != nil:
			attemptErr = bridgeerrors.NewStrategyError(step.Goal, strategy.Name(), applyErr)
		case post.TimedOut:
			attemptErr = bridgeerrors.NewProbeTimeoutError(step.Goal, o.opts.ProbeTimeout)
		default:
			attemptErr = bridgeerrors.NewVerificationError(step.Goal, strategy.Name(), post.Reason)
		}
		log.Error(attemptErr, "strategy did not reach the goal")
		outcome.Attempts = append(outcome.Attempts, Attempt{Strategy: strategy.Name(), Err: attemptErr})
	}

	outcome.Result = ResultFailed
	outcome.Reason = "all strategies exhausted"
	outcome.Duration = time.Since(start)
	return outcome
}

// checkProbe bounds the probe by the configured timeout only. Run
// cancellation is handled between steps and strategies; a verification probe
// still runs after the in-flight strategy finished, so it must not inherit
// the cancelled run context.
func (o *Orchestrator) checkProbe(ctx context.Context, p Probe) ProbeResult {
	return WithTimeout(p, o.opts.ProbeTimeout).Check(context.WithoutCancel(ctx))
}

func (o *Orchestrator) cancelledOutcome(step *Step, halted bool) Outcome {
	reason := "run cancelled"
	if halted {
		reason = "pipeline halted by an earlier required step failure"
	}
	return Outcome{
		Goal:        step.Goal,
		Description: step.Description,
		Result:      ResultCancelled,
		Reason:      reason,
		Remediation: step.Remediation,
		Required:    step.Required,
	}
}
