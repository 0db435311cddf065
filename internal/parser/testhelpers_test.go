package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"decay/internal/ast"
	"decay/internal/diag"
	"decay/internal/source"
)

func pos(line, col, end uint32) ast.Position {
	return ast.Position{Line: line, Column: col, EndColumn: end}
}

// parseSource parses input as test.decay and collects diagnostics.
func parseSource(t *testing.T, input string) (*ast.Program, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.decay", []byte(input))
	bag := diag.NewBag(16)
	prog, err := ParseFile(fs.Get(fileID), Options{Reporter: diag.BagReporter{Bag: bag}})
	return prog, bag, err
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, bag, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %s)", err, diagnosticsSummary(bag))
	}
	return prog
}

func mustFail(t *testing.T, input string) *SyntaxError {
	t.Helper()
	prog, bag, err := parseSource(t, input)
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	if prog != nil {
		t.Errorf("no partial tree expected for %q", input)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if bag.Len() != 1 {
		t.Errorf("expected exactly one diagnostic, got %s", diagnosticsSummary(bag))
	}
	return se
}

func singleComponent(t *testing.T, input string) *ast.ComponentDecl {
	t.Helper()
	prog := mustParse(t, input)
	if len(prog.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(prog.Components))
	}
	return prog.Components[0]
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
