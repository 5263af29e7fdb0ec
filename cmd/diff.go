package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/render"
)

func newDiffCmd(a *app) *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "diff <profile-a> <profile-b>",
		Short: "Compare the engine arguments of two profiles",
		Long: `Compile two profiles and show which arguments differ. Launch flags
given here apply to both sides.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			resolver := newResolver(cfg)

			compiled := make([][]string, 2)
			for i, name := range args {
				flags.profile = name
				lc, err := buildLaunch(cmd.Context(), cmd, cfg, flags, nil, resolver)
				if err != nil {
					return fmt.Errorf("profile %s: %w", name, err)
				}
				compiled[i] = engine.Compile(lc)
			}

			lines := render.ArgsDiff(compiled[0], compiled[1])
			if !render.Changed(lines) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "profiles compile to the same arguments")
				return err
			}
			return render.WriteDiff(cmd.OutOrStdout(), lines)
		},
	}

	flags.register(cmd)
	_ = cmd.Flags().MarkHidden("profile")
	return cmd
}
