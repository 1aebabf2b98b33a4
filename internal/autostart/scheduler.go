package autostart

import (
	"context"
	"fmt"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/execx"
)

// SchedulerRegistrar registers a logon task through the system task
// scheduler CLI. The tool is configurable so tests can substitute a stub.
type SchedulerRegistrar struct {
	TaskName string
	// Command is the full command line the task launches.
	Command string
	// Tool is the scheduler binary; empty selects schtasks.
	Tool string
	Run  execx.Runner
}

func (r *SchedulerRegistrar) tool() string {
	if r.Tool != "" {
		return r.Tool
	}
	return "schtasks"
}

// Name implements Registrar.
func (r *SchedulerRegistrar) Name() string { return "task-scheduler" }

// Register creates the logon task, replacing any existing task of the same
// name so a re-run never stacks duplicates.
func (r *SchedulerRegistrar) Register(ctx context.Context) error {
	_, err := r.Run.Run(ctx, r.tool(),
		"/Create", "/F",
		"/SC", "ONLOGON",
		"/TN", r.TaskName,
		"/TR", r.Command,
	)
	if err != nil {
		return fmt.Errorf("create scheduled task %s: %w", r.TaskName, err)
	}
	return nil
}

// IsRegistered queries the scheduler for the task. A clean non-zero exit
// means "no such task", not an error.
func (r *SchedulerRegistrar) IsRegistered(ctx context.Context) (bool, error) {
	_, err := r.Run.Run(ctx, r.tool(), "/Query", "/TN", r.TaskName)
	if err == nil {
		return true, nil
	}
	if execx.ExitCode(err) > 0 {
		return false, nil
	}
	return false, fmt.Errorf("query scheduled task %s: %w", r.TaskName, err)
}

// Unregister deletes the task, treating "no such task" as success.
func (r *SchedulerRegistrar) Unregister(ctx context.Context) error {
	registered, err := r.IsRegistered(ctx)
	if err != nil {
		return err
	}
	if !registered {
		return nil
	}
	if _, err := r.Run.Run(ctx, r.tool(), "/Delete", "/F", "/TN", r.TaskName); err != nil {
		return fmt.Errorf("delete scheduled task %s: %w", r.TaskName, err)
	}
	return nil
}
