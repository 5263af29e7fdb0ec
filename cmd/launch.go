package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rntlauncher/rnt/internal/assets"
	"github.com/rntlauncher/rnt/internal/config"
	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/launcher"
	"github.com/rntlauncher/rnt/internal/log"
	"github.com/rntlauncher/rnt/internal/options"
	"github.com/rntlauncher/rnt/internal/tracing"
	"github.com/rntlauncher/rnt/internal/watcher"
)

// launchFlags mirrors options.Options for the command line.
type launchFlags struct {
	iwad        string
	warp        int
	renderer    string
	skill       string
	complevel   string
	pistolstart bool
	extra       []string
	profile     string
	dryRun      bool
	watch       bool
}

func (f *launchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.iwad, "iwad", "", "path to the IWAD to use")
	fs.IntVarP(&f.warp, "warp", "w", 0, "warp to level at start (1-255)")
	fs.StringVarP(&f.renderer, "vid", "v", "", "renderer: software, opengl")
	fs.StringVarP(&f.skill, "skill", "s", "", "skill: baby, easy, medium, hard, nightmare")
	fs.StringVarP(&f.complevel, "complevel", "c", "",
		"compatibility level: doom19, ultimate-doom, final-doom, boom, mbf, mbf21")
	fs.BoolVarP(&f.pistolstart, "pistolstart", "p", false, "pistol start every level")
	fs.StringArrayVarP(&f.extra, "extra", "e", nil, "extra engine argument (repeatable)")
	fs.StringVarP(&f.profile, "profile", "P", "", "profile from the config file to start from")
}

// options converts the flags and positional args into an Options layer.
// Positional args before -- are PWADs, the rest are passthrough. The first
// skip args belong to the subcommand and are ignored.
func (f *launchFlags) options(cmd *cobra.Command, args []string, skip int) options.Options {
	files, passthrough := args[skip:], []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 && dash <= len(args) {
		if dash < skip {
			dash = skip
		}
		files, passthrough = args[skip:dash], args[dash:]
	}

	o := options.Options{
		IWAD:      f.iwad,
		Renderer:  f.renderer,
		Skill:     f.skill,
		Complevel: f.complevel,
		Files:     files,
		Extra:     append(append([]string(nil), f.extra...), passthrough...),
	}
	if cmd.Flags().Changed("warp") {
		v := f.warp
		o.Warp = &v
	}
	if cmd.Flags().Changed("pistolstart") {
		v := f.pistolstart
		o.Pistolstart = &v
	}
	return o
}

// buildLaunch layers config profiles under the flags and builds the
// LaunchConfig. resolver may be nil to keep asset names as typed.
func buildLaunch(ctx context.Context, cmd *cobra.Command, cfg config.Config, f *launchFlags, args []string, resolver options.Resolver) (engine.LaunchConfig, error) {
	layers, err := cfg.LaunchLayers(f.profile)
	if err != nil {
		return engine.LaunchConfig{}, err
	}
	merged := options.Merge(append(layers, f.options(cmd, args, 0))...)
	return options.Build(ctx, merged, resolver)
}

func newResolver(cfg config.Config) *assets.Resolver {
	r := assets.NewResolver(assets.SearchDirs(cfg.Engine.AssetDirs), cfg.Engine.CacheTTL)
	log.Debug(log.CatAssets, "Asset search dirs", "dirs", r.Dirs())
	return r
}

func (a *app) runLaunch(cmd *cobra.Command, f *launchFlags, args []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "Trace shutdown failed", err)
		}
	}()

	ctx, span := provider.Tracer().Start(ctx, tracing.SpanLaunch,
		trace.WithAttributes(
			attribute.String(tracing.AttrProfile, f.profile),
			attribute.Bool(tracing.AttrReload, f.watch),
		),
	)
	defer span.End()
	if provider.Enabled() {
		log.Info(log.CatTrace, "Tracing launch", "trace_id", span.SpanContext().TraceID().String())
	}

	lc, err := buildLaunch(ctx, cmd, cfg, f, args, newResolver(cfg))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid launch options")
		return err
	}

	compiled := engine.Compile(lc)
	log.Debug(log.CatEngine, "Compiled arguments", "args", compiled)
	span.AddEvent(tracing.EventCompiled, trace.WithAttributes(
		attribute.String(tracing.AttrMainAsset, lc.MainAsset),
		attribute.Int(tracing.AttrSupplementals, len(lc.SupplementalAssets)),
		attribute.Int(tracing.AttrArgsCount, len(compiled)),
	))

	if f.dryRun {
		dry := &launcher.DryRunLauncher{Executable: cfg.Engine.Executable, Out: cmd.OutOrStdout()}
		return dry.Launch(ctx, compiled)
	}

	l := launcher.NewProcessLauncher(launcher.Config{
		Executable: cfg.Engine.Executable,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Tracer:     provider.Tracer(),
	})

	if !f.watch {
		err = l.Launch(ctx, compiled)
	} else {
		err = a.runWatch(ctx, cfg, l, lc, compiled)
	}
	// An interrupt ends the session the same way with or without --watch.
	if launcher.Interrupted(ctx, err) {
		log.Info(log.CatLaunch, "Interrupted, engine stopped")
		return nil
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (a *app) runWatch(ctx context.Context, cfg config.Config, l launcher.Launcher, lc engine.LaunchConfig, compiled []string) error {
	var paths []string
	for _, p := range append([]string{lc.MainAsset}, lc.SupplementalAssets...) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("--watch: none of the assets exist on disk")
	}

	w, err := watcher.New(watcher.Config{Paths: paths, Debounce: cfg.Engine.WatchDebounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}
	log.Info(log.CatWatcher, "Watching assets", "count", len(paths))

	// Cancelled on return so recordChanges stops with the session.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return launcher.RunWithReload(ctx, l, compiled, recordChanges(ctx, changes))
}

// recordChanges forwards change batches, adding a span event for each. It
// stops when ctx is done or in is closed.
func recordChanges(ctx context.Context, in <-chan []string) <-chan []string {
	span := trace.SpanFromContext(ctx)
	out := make(chan []string)
	go func() {
		defer close(out)
		for {
			var paths []string
			select {
			case p, ok := <-in:
				if !ok {
					return
				}
				paths = p
			case <-ctx.Done():
				return
			}
			span.AddEvent(tracing.EventAssetsChanged,
				trace.WithAttributes(attribute.StringSlice(tracing.AttrWatchedChanged, paths)))
			select {
			case out <- paths:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
