package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rntlauncher/rnt/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the rnt config file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented default config file",
		Long: `Write the default config to path, or to --config, or to
~/.config/rnt/config.yaml. An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			switch {
			case len(args) == 1:
				path = args[0]
			case a.cfgFile != "":
				path = a.cfgFile
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file rnt reads and writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.configPath())
			return err
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
