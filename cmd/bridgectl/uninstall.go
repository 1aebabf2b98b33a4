package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/AkiThuong/Agentfront-NFC-Card/internal/engine"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/lock"
	"github.com/AkiThuong/Agentfront-NFC-Card/internal/provision"
)

func newUninstallCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove everything an install may have created",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd, root)
		},
	}
}

func runUninstall(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(root)
	if err != nil {
		return err
	}

	resources := provision.Resources(app.cfg, app.backends)

	if root.dryRun {
		for i := len(resources) - 1; i >= 0; i-- {
			fmt.Fprintf(cmd.OutOrStdout(), "would remove %s\n", resources[i].Name())
		}
		return nil
	}

	guard, err := lock.Acquire(app.cfg.Settings.StateDir)
	if err != nil {
		return err
	}
	defer guard.Release() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := engine.NewTeardown(resources, app.log).Run(ctx)
	fmt.Fprint(cmd.OutOrStdout(), app.render.Teardown(report))

	if code := report.ExitCode(); code != 0 {
		return &exitCodeError{code: code, msg: "uninstall left resources behind; re-run after fixing the failures above"}
	}
	return nil
}
