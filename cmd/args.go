package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/options"
	"github.com/rntlauncher/rnt/internal/render"
)

func newArgsCmd(a *app) *cobra.Command {
	flags := &launchFlags{}
	var explain, null, noResolve bool

	cmd := &cobra.Command{
		Use:   "args [flags] [PWADS...] [-- ENGINE ARGS...]",
		Short: "Print the compiled engine arguments without launching",
		Long: `Print the arguments rnt would pass to the engine, one per line.
--null separates them with NUL bytes for xargs -0; --explain groups them
by the option that produced them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			var resolver options.Resolver
			if !noResolve {
				resolver = newResolver(cfg)
			}
			lc, err := buildLaunch(cmd.Context(), cmd, cfg, flags, args, resolver)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if explain {
				return render.Explain(out, cfg.Engine.Executable, engine.Explain(lc))
			}
			return writeTokens(out, engine.Compile(lc), null)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&explain, "explain", false, "group arguments by the option that produced them")
	cmd.Flags().BoolVar(&null, "null", false, "separate arguments with NUL instead of newline")
	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "don't look asset names up in the WAD directories")
	cmd.MarkFlagsMutuallyExclusive("explain", "null")
	return cmd
}

func writeTokens(w io.Writer, tokens []string, null bool) error {
	sep := "\n"
	if null {
		sep = "\x00"
	}
	for _, t := range tokens {
		if _, err := fmt.Fprint(w, t, sep); err != nil {
			return err
		}
	}
	return nil
}
