package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStartCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the bridge server if it is not already running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, root)
		},
	}
}

func runStart(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(root)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	state, err := app.backends.Ports.Listening(ctx, app.cfg.Bridge.Port)
	if err != nil {
		return err
	}
	if state.Listening {
		fmt.Fprintf(cmd.OutOrStdout(), "bridge already running on port %d (pid %d)\n", app.cfg.Bridge.Port, state.PID)
		return nil
	}

	if root.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "would start the bridge on port %d\n", app.cfg.Bridge.Port)
		return nil
	}

	if err := app.backends.Launcher.Start(ctx); err != nil {
		return &exitCodeError{code: 2, msg: err.Error()}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "bridge listening on port %d\n", app.cfg.Bridge.Port)
	return nil
}
