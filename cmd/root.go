package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rntlauncher/rnt/internal/config"
	"github.com/rntlauncher/rnt/internal/launcher"
	"github.com/rntlauncher/rnt/internal/log"
)

var version = "dev"

// app carries state shared by the command tree for one invocation.
type app struct {
	cfgFile string
	debug   bool
	logFile string
	v       *viper.Viper
	cfg     config.Config
	cfgErr  error
}

// NewRootCmd builds the rnt command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	flags := &launchFlags{}

	rootCmd := &cobra.Command{
		Use:   "rnt [flags] [PWADS...] [-- ENGINE ARGS...]",
		Short: "Launch dsda-doom from typed options and profiles",
		Long: `rnt compiles launch options (iwad, warp, renderer, skill, complevel,
pistol start, PWADs and passthrough arguments) into a dsda-doom command line
and runs it. Arguments after -- are passed to the engine untouched.`,
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLaunch(cmd, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"config file (default: ./.rnt/config.yaml or ~/.config/rnt/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false,
		"enable debug logging (also RNT_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "",
		"write debug log to this file instead of stderr")
	rootCmd.PersistentFlags().String("engine", "",
		"engine executable (overrides engine.executable)")

	flags.register(rootCmd)
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false,
		"print the command line instead of launching")
	rootCmd.Flags().BoolVar(&flags.watch, "watch", false,
		"relaunch the engine when the iwad or a PWAD changes on disk")

	_ = a.v.BindPFlag("engine.executable", rootCmd.PersistentFlags().Lookup("engine"))

	rootCmd.AddCommand(
		newArgsCmd(a),
		newDiffCmd(a),
		newProfileCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// init sets up logging and reads the config file. A config problem is kept
// in cfgErr so commands that don't need the config still run.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	if a.debug || os.Getenv("RNT_DEBUG") != "" {
		if a.logFile != "" {
			if _, err := log.Init(a.logFile); err != nil {
				return err
			}
		} else {
			log.InitWriter(cmd.ErrOrStderr())
		}
	}

	config.SetDefaults(a.v)
	a.v.SetEnvPrefix("RNT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		// Config lookup order:
		// 1. .rnt/config.yaml (current directory)
		// 2. ~/.config/rnt/config.yaml (user config)
		if _, err := os.Stat(filepath.Join(".rnt", "config.yaml")); err == nil {
			a.v.SetConfigFile(filepath.Join(".rnt", "config.yaml"))
		} else {
			a.v.AddConfigPath(filepath.Dir(config.DefaultConfigPath()))
			a.v.SetConfigName("config")
			a.v.SetConfigType("yaml")
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			a.cfgErr = fmt.Errorf("reading config: %w", err)
			return nil
		}
		log.Debug(log.CatConfig, "No config file, using defaults")
	}

	a.cfg, a.cfgErr = config.Load(a.v)
	return nil
}

func (a *app) config() (config.Config, error) {
	if a.cfgErr != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", a.cfgErr)
	}
	return a.cfg, nil
}

// configPath is where profile and config writes go.
func (a *app) configPath() string {
	if used := a.v.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultConfigPath()
}

// Execute runs the root command and returns the process exit status.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	// Closes the --log-file, if any.
	log.Reset()
	if err == nil {
		return 0
	}

	var exitErr *launcher.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return launcher.ExitCode(err)
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}
