package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"decay/internal/diag"
	"decay/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку контекста с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := painter{enabled: opts.Color}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p painter) {
	header := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	loc := location(fs, d.Primary, opts.PathMode)
	if loc != "" {
		fmt.Fprintf(w, "%s: ", p.paint(loc, color.Bold))
	}
	fmt.Fprintf(w, "%s: %s\n", p.paint(header, severityAttrs(d.Severity)...), d.Message)

	writeSnippet(w, fs, d.Primary, int(opts.Context), p, severityAttrs(d.Severity))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nloc := location(fs, n.Span, opts.PathMode)
		if nloc != "" {
			nloc += ": "
		}
		fmt.Fprintf(w, "  %s %s%s\n", p.paint("note:", color.FgCyan, color.Bold), nloc, n.Msg)
		writeSnippet(w, fs, n.Span, 0, p, []color.Attribute{color.FgCyan})
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil {
		return ""
	}
	f := fs.Get(sp.File)
	if f == nil {
		return ""
	}
	start := f.Resolve(sp.Start)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.mode(), fs.BaseDir()), start.Line, start.Col)
}

// writeSnippet печатает строку span'а и подчёркивание под ним.
// Ширина символов считается через runewidth, табы сохраняются как есть.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p painter, attrs []color.Attribute) {
	if fs == nil {
		return
	}
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	first := max(int(start.Line)-context, 1)
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		text := strings.TrimRight(f.Line(uint32(ln)), "\r")
		fmt.Fprintf(w, " %*d | %s\n", gutter, ln, text)
	}

	line := []rune(strings.TrimRight(f.Line(start.Line), "\r"))
	startIdx := min(int(start.Col)-1, len(line))
	endIdx := len(line)
	if end.Line == start.Line {
		endIdx = min(int(end.Col)-1, len(line))
	}

	var pad strings.Builder
	for _, r := range line[:startIdx] {
		if r == '\t' {
			pad.WriteRune('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(string(line[startIdx:max(endIdx, startIdx)]))
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, " %s | %s%s\n", strings.Repeat(" ", gutter), pad.String(), p.paint(underline, attrs...))
}

func severityAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan}
	}
}

// painter красит строки только если вывод идёт в цвете.
type painter struct {
	enabled bool
}

func (p painter) paint(s string, attrs ...color.Attribute) string {
	if !p.enabled {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
