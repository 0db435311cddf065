package format

import (
	"bytes"
	"strings"
)

// output collects the formatted file. Indentation is emitted lazily, right
// before the first byte of a line, so blank lines never carry spaces.
type output struct {
	src   []byte
	buf   bytes.Buffer
	unit  string
	depth int
	fresh bool // курсор в начале строки
}

func newOutput(src []byte, opt Options) *output {
	o := &output{src: src, unit: strings.Repeat(" ", opt.IndentWidth)}
	if opt.UseTabs {
		o.unit = "\t"
	}
	o.buf.Grow(len(src))
	return o
}

// text writes s verbatim. Line breaks inside s (multiline strings) get no
// indentation of their own.
func (o *output) text(s string) {
	if s == "" {
		return
	}
	if o.fresh {
		o.buf.WriteString(strings.Repeat(o.unit, o.depth))
	}
	o.buf.WriteString(s)
	o.fresh = strings.HasSuffix(s, "\n")
}

func (o *output) newline() {
	if b := o.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		o.buf.WriteByte('\n')
	}
	o.fresh = true
}

func (o *output) indent() { o.depth++ }

func (o *output) dedent() { o.depth = max(o.depth-1, 0) }

// copySource appends src[from:to] untouched; the range is clamped.
func (o *output) copySource(from, to int) {
	from, to = max(from, 0), min(to, len(o.src))
	if from >= to {
		return
	}
	o.buf.Write(o.src[from:to])
	o.fresh = o.src[to-1] == '\n'
}

func (o *output) bytes() []byte { return o.buf.Bytes() }
