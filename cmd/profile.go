package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rntlauncher/rnt/internal/config"
	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/launcher"
	"github.com/rntlauncher/rnt/internal/options"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage launch profiles",
	}
	cmd.AddCommand(
		newProfileListCmd(a),
		newProfileShowCmd(a),
		newProfileSaveCmd(a),
	)
	return cmd
}

func newProfileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			names := cfg.ProfileNames()
			if len(names) == 0 {
				_, err := fmt.Fprintln(out, "no profiles defined")
				return err
			}
			for _, name := range names {
				marker := " "
				if strings.EqualFold(name, cfg.DefaultProfile) {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a profile and the command line it compiles to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			p, err := cfg.Profile(args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(p)
			if err != nil {
				return fmt.Errorf("encoding profile: %w", err)
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}

			layers, err := cfg.LaunchLayers(args[0])
			if err != nil {
				return err
			}
			lc, err := options.Build(cmd.Context(), options.Merge(layers...), nil)
			if err != nil {
				_, err = fmt.Fprintf(out, "\n# not launchable on its own: %v\n", err)
				return err
			}
			_, err = fmt.Fprintf(out, "\n# %s\n", launcher.CommandLine(cfg.Engine.Executable, engine.Compile(lc)))
			return err
		},
	}
}

func newProfileSaveCmd(a *app) *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "save <name> [flags] [PWADS...] [-- ENGINE ARGS...]",
		Short: "Save launch flags as a named profile",
		Long: `Save the given launch flags under profiles.<name> in the config file,
replacing any profile of that name. Only flags that were set are stored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := flags.options(cmd, args, 1)
			path := a.configPath()
			if err := config.SaveProfile(path, args[0], p); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved profile %q to %s\n", args[0], path)
			return err
		},
	}

	flags.register(cmd)
	_ = cmd.Flags().MarkHidden("profile")
	return cmd
}
