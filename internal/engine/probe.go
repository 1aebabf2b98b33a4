package engine

import (
	"context"
	"fmt"
	"time"
)

// ProbeResult is the answer of a single state check.
type ProbeResult struct {
	Satisfied bool
	Reason    string
	// TimedOut marks a check that never answered; always unsatisfied.
	TimedOut bool
}

// Satisfied reports that the probed goal state holds.
func Satisfied() ProbeResult {
	return ProbeResult{Satisfied: true}
}

// Unsatisfied reports that the probed goal state does not hold, with a
// human-readable reason.
func Unsatisfied(format string, args ...any) ProbeResult {
	return ProbeResult{Reason: fmt.Sprintf(format, args...)}
}

// Probe answers a yes/no question about the current environment state.
//
// Check MUST NOT mutate the environment and may be called any number of
// times: the orchestrator uses the same probe before a step (skip if already
// satisfied) and after every strategy attempt (ground-truth verification).
type Probe interface {
	Check(ctx context.Context) ProbeResult
}

// ProbeFunc adapts a plain function to the Probe interface.
type ProbeFunc func(ctx context.Context) ProbeResult

// Check implements Probe.
func (f ProbeFunc) Check(ctx context.Context) ProbeResult {
	return f(ctx)
}

// WithTimeout bounds a probe: if the wrapped check has not answered within d
// the result is Unsatisfied with a timeout reason. The abandoned goroutine is
// left to finish against its cancelled context.
func WithTimeout(p Probe, d time.Duration) Probe {
	if d <= 0 {
		return p
	}
	return ProbeFunc(func(ctx context.Context) ProbeResult {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		done := make(chan ProbeResult, 1)
		go func() {
			done <- p.Check(ctx)
		}()

		select {
		case res := <-done:
			return res
		case <-ctx.Done():
			res := Unsatisfied("probe timed out after %s", d)
			res.TimedOut = true
			return res
		}
	})
}

// AllOf combines probes; the result is satisfied only when every probe is.
// The first unsatisfied reason wins.
func AllOf(probes ...Probe) Probe {
	return ProbeFunc(func(ctx context.Context) ProbeResult {
		for _, p := range probes {
			if res := p.Check(ctx); !res.Satisfied {
				return res
			}
		}
		return Satisfied()
	})
}
