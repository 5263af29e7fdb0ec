package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is the kind of change for one token.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one token of a diff.
type DiffLine struct {
	Op    DiffOp
	Token string
}

// ArgsDiff compares two argument lists token by token.
func ArgsDiff(a, b []string) []DiffLine {
	dmp := diffmatchpatch.New()

	// One quoted token per line, so tokens with embedded newlines stay whole.
	chars1, chars2, lineArray := dmp.DiffLinesToChars(joinQuoted(a), joinQuoted(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			line = strings.TrimSuffix(line, "\n")
			if line == "" {
				continue
			}
			tok, err := strconv.Unquote(line)
			if err != nil {
				tok = line
			}
			out = append(out, DiffLine{Op: op, Token: tok})
		}
	}
	return out
}

// Changed reports whether any line is an insert or delete.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

// WriteDiff prints lines as "+ tok", "- tok" or "  tok".
func WriteDiff(w io.Writer, lines []DiffLine) error {
	for _, l := range lines {
		var s string
		switch l.Op {
		case DiffInsert:
			s = addStyle.Render("+ " + l.Token)
		case DiffDelete:
			s = delStyle.Render("- " + l.Token)
		default:
			s = "  " + l.Token
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func joinQuoted(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(strconv.Quote(t))
		b.WriteByte('\n')
	}
	return b.String()
}
