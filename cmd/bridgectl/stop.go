package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running bridge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(cmd, root)
		},
	}
}

func runStop(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(root)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	state, err := app.backends.Ports.Listening(ctx, app.cfg.Bridge.Port)
	if err != nil {
		return err
	}
	if !state.Listening {
		fmt.Fprintf(cmd.OutOrStdout(), "bridge is not running\n")
		return nil
	}

	if root.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "would stop pid %d on port %d\n", state.PID, app.cfg.Bridge.Port)
		return nil
	}

	if err := app.backends.Ports.KillOwner(ctx, app.cfg.Bridge.Port); err != nil {
		return &exitCodeError{code: 2, msg: err.Error()}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "bridge stopped\n")
	return nil
}
