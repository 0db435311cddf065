package format

import (
	"errors"
	"fmt"
	"slices"

	"decay/internal/ast"
	"decay/internal/diag"
	"decay/internal/parser"
	"decay/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	sf   *source.File
	prog *ast.Program
	out  *output
}

// FormatFile re-prints sf using prog, which must be the result of parsing sf.
func FormatFile(sf *source.File, prog *ast.Program, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if prog == nil {
		return nil, errors.New("format: nil program")
	}

	pr := printer{sf: sf, prog: prog, out: newOutput(sf.Content, opt.withDefaults())}
	if err := pr.printFile(); err != nil {
		return nil, err
	}
	return pr.out.bytes(), nil
}

func (p *printer) printFile() error {
	sf := p.sf
	prev := 0
	for _, c := range p.prog.Components {
		start := offsetOf(sf, c.Positions.Keyword)
		// CloseBody указывает на '}', включаем его
		end := offsetOf(sf, c.Positions.CloseBody) + 1
		if start < prev || end > len(sf.Content) || sf.Content[end-1] != '}' {
			return fmt.Errorf("format: component %q does not match %s", c.Name, sf.Path)
		}
		p.out.copySource(prev, start)
		if hasComment(sf.Content[start:end]) {
			p.out.copySource(start, end)
		} else {
			p.printComponent(c)
		}
		prev = end
	}
	p.out.copySource(prev, len(sf.Content))
	return nil
}

// CheckRoundTrip formats the file with the given options and re-parses it,
// ensuring that the component tree stays identical to the original.
func CheckRoundTrip(sf *source.File, opt Options, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	orig, err := parser.ParseFile(sf, parser.Options{Reporter: diag.BagReporter{Bag: origBag}})
	if err != nil || origBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	formatted, err := FormatFile(sf, orig, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSetWithBase("")
	fid := fs2.AddVirtual(sf.Path, formatted)
	newBag := diag.NewBag(maxDiag)
	rebuilt, err := parser.ParseFile(fs2.Get(fid), parser.Options{Reporter: diag.BagReporter{Bag: newBag}})
	if err != nil || newBag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	if where := firstDifference(orig, rebuilt); where != "" {
		return false, "fmt-check: " + where + " differs after round-trip"
	}
	return true, "fmt-check: OK"
}

// firstDifference compares two programs ignoring positions and returns
// a short description of the first mismatch, or "".
func firstDifference(a, b *ast.Program) string {
	if len(a.Components) != len(b.Components) {
		return "component count"
	}
	for i, ca := range a.Components {
		cb := b.Components[i]
		if ca.Name != cb.Name {
			return fmt.Sprintf("component #%d name", i+1)
		}
		if !slices.Equal(ca.ParamNames(), cb.ParamNames()) {
			return fmt.Sprintf("component %s parameters", ca.Name)
		}
		if len(ca.Body) != len(cb.Body) {
			return fmt.Sprintf("component %s body", ca.Name)
		}
		for j, call := range ca.Body {
			other := cb.Body[j]
			if call.Name != other.Name || len(call.Arguments) != len(other.Arguments) {
				return fmt.Sprintf("call %s in %s", call.Name, ca.Name)
			}
			for k, arg := range call.Arguments {
				if arg.Kind != other.Arguments[k].Kind || arg.Value != other.Arguments[k].Value {
					return fmt.Sprintf("argument %d of %s in %s", k+1, call.Name, ca.Name)
				}
			}
		}
	}
	return ""
}
