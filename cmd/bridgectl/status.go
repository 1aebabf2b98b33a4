package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/provision"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe every goal without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, root)
		},
	}
}

// runStatus checks each goal's probe directly. No strategies run and no
// lock is taken; status is safe alongside a concurrent install.
func runStatus(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(root)
	if err != nil {
		return err
	}

	steps, err := provision.Steps(app.cfg, app.backends)
	if err != nil {
		return err
	}

	timeout := time.Duration(app.cfg.Settings.ProbeTimeout) * time.Second
	code := 0
	for _, step := range steps {
		probe := step.Precondition
		if probe == nil {
			probe = step.Postcondition
		}
		res := engine.WithTimeout(probe, timeout).Check(cmd.Context())
		if res.Satisfied {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", step.Goal)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %s\n", step.Goal, res.Reason)
		if step.Required {
			code = 2
		} else if code == 0 {
			code = 1
		}
	}

	if code != 0 {
		return &exitCodeError{code: code, msg: "one or more goals are unsatisfied"}
	}
	return nil
}
