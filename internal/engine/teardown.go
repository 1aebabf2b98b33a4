package engine

import (
	"context"
	"time"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/logger"
	bridgeerrors "github.com/AkiThuong/Agentfront-NFC-Card/pkg/errors"
)

// Resource is an external object the install pipeline may have created.
// Remove must be idempotent: "already absent" is success, never an error.
type Resource interface {
	Name() string
	Remove(ctx context.Context) error
}

type resourceFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewResource wraps a function as a named Resource.
func NewResource(name string, fn func(ctx context.Context) error) Resource {
	return resourceFunc{name: name, fn: fn}
}

func (r resourceFunc) Name() string { return r.name }

func (r resourceFunc) Remove(ctx context.Context) error { return r.fn(ctx) }

// RemovalResult records the outcome of removing one resource.
type RemovalResult struct {
	Resource string
	Err      error
}

// TeardownReport aggregates one teardown run.
type TeardownReport struct {
	Started  time.Time
	Duration time.Duration
	Results  []RemovalResult
	// Err is a *errors.TeardownError when any removal failed, nil otherwise.
	Err error
}

// ExitCode is 0 when every removal succeeded, 2 otherwise.
func (r *TeardownReport) ExitCode() int {
	if r.Err != nil {
		return 2
	}
	return 0
}

// Teardown unwinds the resources of an install in reverse declaration order.
// It does not consult probes or steps: it is a direct best-effort sweep that
// always attempts every resource, collecting failures instead of aborting.
// Re-running after a partial teardown is safe.
type Teardown struct {
	resources []Resource
	log       *logger.Logger
}

// NewTeardown builds a teardown pipeline over resources declared in the
// same order as their owning steps.
func NewTeardown(resources []Resource, log *logger.Logger) *Teardown {
	return &Teardown{resources: resources, log: log}
}

// Run removes every resource in reverse declaration order.
func (t *Teardown) Run(ctx context.Context) *TeardownReport {
	report := &TeardownReport{Started: time.Now()}
	var failures []bridgeerrors.ResourceFailure

	for i := len(t.resources) - 1; i >= 0; i-- {
		res := t.resources[i]
		log := t.log.WithFields(map[string]any{"resource": res.Name()})

		err := res.Remove(ctx)
		report.Results = append(report.Results, RemovalResult{Resource: res.Name(), Err: err})
		if err != nil {
			log.Error(err, "removal failed, continuing")
			failures = append(failures, bridgeerrors.ResourceFailure{Resource: res.Name(), Err: err})
			continue
		}
		log.Debug("removed")
	}

	report.Duration = time.Since(report.Started)
	report.Err = bridgeerrors.NewTeardownError(failures)
	return report
}
