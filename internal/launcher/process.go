package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rntlauncher/rnt/internal/log"
	"github.com/rntlauncher/rnt/internal/tracing"
)

// Compile-time check that ProcessLauncher implements Launcher.
var _ Launcher = (*ProcessLauncher)(nil)

// Config configures a ProcessLauncher.
type Config struct {
	// Executable is looked up on PATH unless it contains a separator.
	Executable string
	// Dir is the working directory; empty means the current one.
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Tracer trace.Tracer
}

// ProcessLauncher spawns the engine as a child process with inherited stdio.
type ProcessLauncher struct {
	cfg Config
}

// NewProcessLauncher creates a ProcessLauncher. Unset stdio streams default
// to the current process's.
func NewProcessLauncher(cfg Config) *ProcessLauncher {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &ProcessLauncher{cfg: cfg}
}

// Launch runs the engine and waits for it. Cancelling ctx kills the engine.
func (l *ProcessLauncher) Launch(ctx context.Context, args []string) error {
	launchID := uuid.New().String()
	start := time.Now()

	ctx, span := l.cfg.Tracer.Start(ctx, tracing.SpanProcess,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrLaunchID, launchID),
			attribute.String(tracing.AttrExecutable, l.cfg.Executable),
			attribute.Int(tracing.AttrArgsCount, len(args)),
			attribute.StringSlice(tracing.AttrArgs, args),
		),
	)
	defer span.End()

	defer func() {
		log.Debug(log.CatLaunch, "Launch completed", "id", launchID, "duration", time.Since(start))
	}()

	path, err := exec.LookPath(l.cfg.Executable)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrExecutableNotFound, l.cfg.Executable, err)
		log.ErrorErr(log.CatLaunch, "Engine lookup failed", err, "id", launchID)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	//nolint:gosec // G204: running the engine with user-chosen arguments is the point
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = l.cfg.Dir
	cmd.Stdin = l.cfg.Stdin
	cmd.Stdout = l.cfg.Stdout
	cmd.Stderr = l.cfg.Stderr

	log.Info(log.CatLaunch, "Starting engine", "id", launchID, "exe", path, "args", args)
	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("starting %s: %w", l.cfg.Executable, err)
		log.ErrorErr(log.CatLaunch, "Engine start failed", err, "id", launchID)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.AddEvent(tracing.EventProcessStart, trace.WithAttributes(attribute.Int("pid", cmd.Process.Pid)))

	err = cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Info(log.CatLaunch, "Engine stopped", "id", launchID, "reason", ctxErr)
		span.SetStatus(codes.Unset, "cancelled")
		return fmt.Errorf("%s stopped: %w", l.cfg.Executable, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		span.SetAttributes(attribute.Int(tracing.AttrExitCode, code))
		span.SetStatus(codes.Error, exitErr.Error())
		log.Warn(log.CatLaunch, "Engine exited with error", "id", launchID, "code", code)
		return &ExitError{Executable: l.cfg.Executable, Code: code}
	}
	if err != nil {
		err = fmt.Errorf("waiting for %s: %w", l.cfg.Executable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int(tracing.AttrExitCode, 0))
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatLaunch, "Engine exited", "id", launchID, "code", 0)
	return nil
}
