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

func newInstallCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Bring the machine to a fully provisioned bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, root)
		},
	}
}

func runInstall(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(root)
	if err != nil {
		return err
	}

	guard, err := lock.Acquire(app.cfg.Settings.StateDir)
	if err != nil {
		return err
	}
	defer guard.Release() //nolint:errcheck

	steps, err := provision.Steps(app.cfg, app.backends)
	if err != nil {
		return err
	}
	orch, err := engine.New(steps, app.engineOptions(root))
	if err != nil {
		return err
	}

	// Ctrl-C cancels cooperatively: the in-flight strategy finishes and
	// the remaining steps are reported as cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := orch.Run(ctx)
	fmt.Fprint(cmd.OutOrStdout(), app.render.Report(report))

	switch code := report.ExitCode(); code {
	case 0:
		return nil
	case 1:
		return &exitCodeError{code: code, msg: "install completed in a degraded state"}
	default:
		return &exitCodeError{code: code, msg: "install failed"}
	}
}
