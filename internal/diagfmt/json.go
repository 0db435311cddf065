package diagfmt

import (
	"encoding/json"
	"io"

	"decay/internal/diag"
	"decay/internal/source"
)

// Place is a span in JSON form. Line and column fields are filled only
// when positions were requested.
type Place struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteEntry struct {
	Message  string `json:"message"`
	Location Place  `json:"location"`
}

type Entry struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Location Place       `json:"location"`
	Notes    []NoteEntry `json:"notes,omitempty"`
}

// Report is the document written by JSON.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
}

type placer struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (p placer) place(sp source.Span) Place {
	out := Place{StartByte: sp.Start, EndByte: sp.End}
	if p.fs == nil {
		return out
	}
	f := p.fs.Get(sp.File)
	if f == nil {
		return out
	}
	out.File = f.FormatPath(p.mode.mode(), p.fs.BaseDir())
	if p.positions {
		from, to := p.fs.Resolve(sp)
		out.StartLine, out.StartCol = from.Line, from.Col
		out.EndLine, out.EndCol = to.Line, to.Col
	}
	return out
}

// BuildReport converts the bag without encoding it. The result always has
// a non-nil Diagnostics slice so it encodes as [].
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	p := placer{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	entries := make([]Entry, len(items))
	for i, d := range items {
		e := Entry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: p.place(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				e.Notes = append(e.Notes, NoteEntry{Message: n.Msg, Location: p.place(n.Span)})
			}
		}
		entries[i] = e
	}
	return Report{Diagnostics: entries, Count: len(entries)}
}

// JSON writes BuildReport's result as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
