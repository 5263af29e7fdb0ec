package launcher

import (
	"context"
	"fmt"
	"io"

	"github.com/alessio/shellescape"
)

// Compile-time check that DryRunLauncher implements Launcher.
var _ Launcher = (*DryRunLauncher)(nil)

// DryRunLauncher prints the command line instead of running it.
type DryRunLauncher struct {
	Executable string
	Out        io.Writer
}

// Launch writes the shell-quoted command line followed by a newline.
func (d *DryRunLauncher) Launch(_ context.Context, args []string) error {
	_, err := fmt.Fprintln(d.Out, CommandLine(d.Executable, args))
	return err
}

// CommandLine renders executable and args as a POSIX shell command.
func CommandLine(executable string, args []string) string {
	return shellescape.QuoteCommand(append([]string{executable}, args...))
}

// Quote single-quotes s when the shell would otherwise split or expand it.
func Quote(s string) string {
	return shellescape.Quote(s)
}
