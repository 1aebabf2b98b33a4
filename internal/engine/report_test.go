package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(outcomes ...Outcome) *Report {
	r := newReport()
	for _, o := range outcomes {
		r.record(o)
	}
	r.finalize()
	return r
}

func TestReportStatusRules(t *testing.T) {
	t.Run("all skipped or succeeded is success", func(t *testing.T) {
		r := statusOf(
			Outcome{Goal: "runtime-pinned", Result: ResultSkipped, Required: true},
			Outcome{Goal: "deps-installed", Result: ResultSucceeded, Required: true},
		)
		assert.Equal(t, StatusSuccess, r.Status)
		assert.Equal(t, 0, r.ExitCode())
	})

	t.Run("any degraded step degrades the run", func(t *testing.T) {
		r := statusOf(
			Outcome{Goal: "runtime-pinned", Result: ResultSucceeded, Required: true},
			Outcome{Goal: "deps-installed", Result: ResultDegraded, Required: true},
		)
		assert.Equal(t, StatusDegraded, r.Status)
		assert.Equal(t, 1, r.ExitCode())
	})

	t.Run("optional failure degrades instead of failing", func(t *testing.T) {
		r := statusOf(
			Outcome{Goal: "ocr-capable", Result: ResultFailed},
			Outcome{Goal: "autostart-registered", Result: ResultSucceeded, Required: true},
		)
		assert.Equal(t, StatusDegraded, r.Status)
	})

	t.Run("required failure wins over everything", func(t *testing.T) {
		r := statusOf(
			Outcome{Goal: "deps-installed", Result: ResultDegraded},
			Outcome{Goal: "autostart-registered", Result: ResultFailed, Required: true},
		)
		assert.Equal(t, StatusFailed, r.Status)
		assert.Equal(t, 2, r.ExitCode())
	})

	t.Run("cancelled required step fails the run", func(t *testing.T) {
		r := statusOf(
			Outcome{Goal: "runtime-pinned", Result: ResultSucceeded, Required: true},
			Outcome{Goal: "deps-installed", Result: ResultCancelled, Required: true},
		)
		assert.Equal(t, StatusFailed, r.Status)
	})
}

func TestReportHasUniqueRunID(t *testing.T) {
	a := newReport()
	b := newReport()
	require.NotEmpty(t, a.RunID)
	require.NotEqual(t, a.RunID, b.RunID)
}

func TestFailedOutcomes(t *testing.T) {
	r := statusOf(
		Outcome{Goal: "runtime-pinned", Result: ResultSucceeded},
		Outcome{Goal: "ocr-capable", Result: ResultFailed},
		Outcome{Goal: "autostart-registered", Result: ResultFailed, Required: true},
	)

	failed := r.FailedOutcomes()
	require.Len(t, failed, 2)
	assert.Equal(t, "ocr-capable", failed[0].Goal)
	assert.Equal(t, "autostart-registered", failed[1].Goal)
}

func TestOutcomeReached(t *testing.T) {
	assert.True(t, Outcome{Result: ResultSkipped}.Reached())
	assert.True(t, Outcome{Result: ResultSucceeded}.Reached())
	assert.True(t, Outcome{Result: ResultDegraded}.Reached())
	assert.False(t, Outcome{Result: ResultFailed}.Reached())
	assert.False(t, Outcome{Result: ResultCancelled}.Reached())
}
