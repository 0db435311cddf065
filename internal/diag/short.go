package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"decay/internal/source"
)

// compactLine is one row of the compact listing; notes get their own rows.
type compactLine struct {
	label string
	id    string
	path  string
	line  uint32
	col   uint32
	text  string
}

func (l compactLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.id, l.path, l.line, l.col, l.text)
}

// Compact prints "<severity> <ID> <path>:<line>:<col> <message>" per line,
// ordered by location. Diagnostics with no file (I/O) get an empty path.
func Compact(diags []*Diagnostic, fs *source.FileSet, withNotes bool) string {
	rows := make([]compactLine, 0, len(diags))
	for _, d := range diags {
		where := locate(fs, d.Primary)
		where.label, where.id, where.text = d.Severity.String(), d.Code.ID(), oneLine(d.Message)
		rows = append(rows, where)
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			at := locate(fs, n.Span)
			at.label, at.id, at.text = "note", d.Code.ID(), oneLine(n.Msg)
			rows = append(rows, at)
		}
	}

	slices.SortStableFunc(rows, func(a, b compactLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			strings.Compare(a.id, b.id),
			strings.Compare(a.text, b.text),
		)
	})

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func locate(fs *source.FileSet, sp source.Span) compactLine {
	if fs == nil {
		return compactLine{}
	}
	f := fs.Get(sp.File)
	if f == nil {
		return compactLine{}
	}
	pos := f.Resolve(sp.Start)
	path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return compactLine{path: path, line: pos.Line, col: pos.Col}
}

// oneLine folds any line breaks in msg into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
