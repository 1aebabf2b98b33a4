// Package render turns engine reports into operator-facing text. Output is
// one line per step plus a final status line, with remediation blocks for
// anything that exhausted its strategies.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
)

var (
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headlineStyle = lipgloss.NewStyle().Bold(true)
)

// Renderer formats reports, optionally without styling for non-terminal
// output.
type Renderer struct {
	colored bool
}

// New creates a renderer. colored should reflect whether stdout is a
// terminal.
func New(colored bool) *Renderer {
	return &Renderer{colored: colored}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.colored {
		return s
	}
	return style.Render(s)
}

// Report renders an install run: one line per outcome, remediation for
// failures, and the final status.
func (r *Renderer) Report(report *engine.Report) string {
	var b strings.Builder

	for _, out := range report.Outcomes {
		b.WriteString(r.outcomeLine(out))
		b.WriteByte('\n')
	}

	for _, out := range report.FailedOutcomes() {
		if out.Remediation == "" {
			continue
		}
		b.WriteString(r.paint(mutedStyle, fmt.Sprintf("  %s: %s", out.Goal, out.Remediation)))
		b.WriteByte('\n')
	}

	b.WriteString(r.statusLine(report))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) outcomeLine(out engine.Outcome) string {
	switch out.Result {
	case engine.ResultSkipped:
		return fmt.Sprintf("%s %s (already satisfied)", r.paint(okStyle, "✓"), out.Goal)
	case engine.ResultSucceeded:
		return fmt.Sprintf("%s %s via %s", r.paint(okStyle, "✓"), out.Goal, out.Strategy)
	case engine.ResultDegraded:
		return fmt.Sprintf("%s %s via fallback %s", r.paint(warnStyle, "⚠"), out.Goal, out.Strategy)
	case engine.ResultCancelled:
		return fmt.Sprintf("%s %s (%s)", r.paint(mutedStyle, "-"), out.Goal, out.Reason)
	case engine.ResultWouldApply:
		return fmt.Sprintf("%s %s: %s", r.paint(warnStyle, "→"), out.Goal, out.Reason)
	case engine.ResultFailed:
		return fmt.Sprintf("%s %s — %s", r.paint(failStyle, "✗"), out.Goal, describeAttempts(out))
	default:
		return fmt.Sprintf("? %s", out.Goal)
	}
}

func describeAttempts(out engine.Outcome) string {
	if len(out.Attempts) == 0 {
		if out.Reason != "" {
			return out.Reason
		}
		return "failed"
	}
	parts := make([]string, 0, len(out.Attempts))
	for _, attempt := range out.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", attempt.Strategy, attempt.Err))
	}
	return "tried " + strings.Join(parts, "; ")
}

func (r *Renderer) statusLine(report *engine.Report) string {
	label := fmt.Sprintf("%s (run %s, %s)", strings.ToUpper(report.Status), report.RunID, report.Duration.Round(time.Millisecond))
	switch report.Status {
	case engine.StatusSuccess:
		return r.paint(headlineStyle.Inherit(okStyle), label)
	case engine.StatusDegraded:
		return r.paint(headlineStyle.Inherit(warnStyle), label)
	default:
		return r.paint(failStyle, label)
	}
}

// Teardown renders an uninstall run.
func (r *Renderer) Teardown(report *engine.TeardownReport) string {
	var b strings.Builder
	for _, res := range report.Results {
		if res.Err != nil {
			b.WriteString(fmt.Sprintf("%s %s: %v\n", r.paint(failStyle, "✗"), res.Resource, res.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s removed\n", r.paint(okStyle, "✓"), res.Resource))
	}
	if report.Err != nil {
		b.WriteString(r.paint(failStyle, "TEARDOWN INCOMPLETE"))
	} else {
		b.WriteString(r.paint(headlineStyle.Inherit(okStyle), "TEARDOWN COMPLETE"))
	}
	b.WriteByte('\n')
	return b.String()
}
