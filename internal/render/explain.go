package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/launcher"
)

// Explain writes one line per segment, then the full command line.
func Explain(w io.Writer, executable string, segs []engine.Segment) error {
	for _, s := range segs {
		if _, err := fmt.Fprintf(w, "%s %s\n", segmentStyle.Render(s.Name), tokens(s.Tokens)); err != nil {
			return err
		}
	}
	cmd := launcher.CommandLine(executable, engine.Flatten(segs))
	_, err := fmt.Fprintf(w, "\n%s\n", commandStyle.Render(cmd))
	return err
}

func tokens(toks []string) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		q := launcher.Quote(t)
		if strings.HasPrefix(t, "-") {
			q = flagStyle.Render(q)
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}
