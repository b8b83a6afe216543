package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/Dobios/circt/internal/source"
)

// RenderOpts controls terminal rendering of diagnostics.
type RenderOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
)

func severityLabel(sev Severity, useColor bool) string {
	label := sev.String()
	if !useColor {
		return label
	}
	switch sev {
	case SevError:
		return errColor.Sprint(label)
	case SevWarning:
		return warnColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

// Render writes every diagnostic in the bag to w in the form
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by any notes. Callers are expected to Sort the bag first.
func Render(w io.Writer, bag *Bag, fs *source.FileSet, opts RenderOpts) {
	for _, d := range bag.Items() {
		renderOne(w, d, fs, opts)
	}
}

func renderOne(w io.Writer, d Diagnostic, fs *source.FileSet, opts RenderOpts) {
	writeHeading(w, d.Primary, severityLabel(d.Severity, opts.Color), d.Code, d.Message, fs)
	writeContext(w, d.Primary, fs)
	for _, n := range d.Notes {
		writeHeading(w, n.Span, "note", UnknownCode, n.Msg, fs)
		writeContext(w, n.Span, fs)
	}
}

func writeHeading(w io.Writer, sp source.Span, label string, code Code, msg string, fs *source.FileSet) {
	pos := fs.Position(sp.File, sp.Start)
	if code == UnknownCode {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", fs.RelPath(sp.File), pos.Line, pos.Col, label, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", fs.RelPath(sp.File), pos.Line, pos.Col, label, code, msg)
}

func writeContext(w io.Writer, sp source.Span, fs *source.FileSet) {
	if sp.Empty() {
		return
	}
	pos := fs.Position(sp.File, sp.Start)
	line := fs.Line(sp.File, pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	// The caret column is the display width of the line prefix, which
	// differs from the byte column when the prefix contains wide runes.
	prefix := line
	if int(pos.Col-1) <= len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := runewidth.StringWidth(prefix)

	span := int(sp.Len())
	if rest := len(line) - len(prefix); span > rest {
		span = rest
	}
	if span < 1 {
		span = 1
	}
	fmt.Fprintf(w, "    %s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", span-1))
}
