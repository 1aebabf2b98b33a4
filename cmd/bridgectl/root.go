package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	dryRun     bool
	force      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "bridgectl",
		Short:         "bridgectl provisions and manages the NFC card-reader bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "bridge.yaml", "Path to the provisioning config")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Report intended actions without changing anything")
	cmd.PersistentFlags().BoolVar(&flags.force, "force", false, "Re-apply every step even when already satisfied")

	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newUninstallCmd(flags))
	cmd.AddCommand(newStartCmd(flags))
	cmd.AddCommand(newStopCmd(flags))
	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
