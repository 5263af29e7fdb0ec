// Package launcher starts the engine executable with a compiled argument list.
package launcher

import (
	"context"
	"errors"
	"fmt"
)

// Launcher runs the engine with args, which are passed unmodified and in
// order. It blocks until the engine exits.
type Launcher interface {
	Launch(ctx context.Context, args []string) error
}

// ErrExecutableNotFound is returned when the engine binary is not on PATH.
var ErrExecutableNotFound = errors.New("engine executable not found")

// ExitError reports a non-zero engine exit status.
type ExitError struct {
	Executable string
	Code       int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Executable, e.Code)
}

// Interrupted reports whether err is the engine being stopped because ctx
// was cancelled, as opposed to a failure of its own.
func Interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// ExitCode returns the status to exit rnt with for err: the engine's own
// status for an ExitError, 0 for nil, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
