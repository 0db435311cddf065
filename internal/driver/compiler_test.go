package driver_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"decay/internal/ast"
	"decay/internal/driver"
	"decay/internal/parser"
)

func TestCompiler_AddFile(t *testing.T) {
	c := driver.NewCompiler(nil)

	prog, err := c.AddFile("card.decay", []byte(`component card(title) { Text("hi", title) }`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Components) != 1 || prog.Components[0].Name != "card" {
		t.Fatalf("unexpected program: %+v", prog)
	}
	got, ok := c.Get("card.decay")
	if !ok || got != prog {
		t.Fatalf("program not registered")
	}
}

func TestCompiler_FailureLeavesRegistryUntouched(t *testing.T) {
	c := driver.NewCompiler(nil)
	if _, err := c.AddFile("a.decay", []byte(`component a() {}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := c.Get("a.decay")

	_, err := c.AddFile("a.decay", []byte(`component a( {}`))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.HasPrefix(err.Error(), "a.decay: ") {
		t.Fatalf("error not prefixed with file name: %q", err)
	}
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error does not wrap *parser.SyntaxError: %T", err)
	}
	if se.Kind != parser.ErrUnexpectedToken {
		t.Fatalf("kind = %v", se.Kind)
	}

	after, ok := c.Get("a.decay")
	if !ok || after != before {
		t.Fatal("failed AddFile replaced the registered program")
	}
	if _, err := c.AddFile("b.decay", []byte(`view`)); err == nil {
		t.Fatal("expected error for view")
	}
	if _, ok := c.Get("b.decay"); ok {
		t.Fatal("failed file must not be registered")
	}
}

func TestCompiler_KeepsDecomposedText(t *testing.T) {
	c := driver.NewCompiler(nil)
	// "e" + U+0301 COMBINING ACUTE ACCENT, not the precomposed U+00E9
	prog, err := c.AddFile("accent.decay", []byte("component a () {\n  Text(\"e\u0301\", x)\n}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args := prog.Components[0].Body[0].Arguments
	if len(args) != 2 {
		t.Fatalf("arguments = %+v", args)
	}
	if args[0].Value != "\"e\u0301\"" {
		t.Errorf("string value = %q, want the bytes as written", args[0].Value)
	}
	if args[0].Position != (ast.Position{Line: 2, Column: 8, EndColumn: 12}) {
		t.Errorf("string position = %v", args[0].Position.Extent())
	}
	if args[1].Position != (ast.Position{Line: 2, Column: 14, EndColumn: 15}) {
		t.Errorf("x position = %v, want 2:14-15", args[1].Position.Extent())
	}
}

func TestCompiler_FilesSorted(t *testing.T) {
	c := driver.NewCompiler(nil)
	for _, name := range []string{"z.decay", "a.decay", "m.decay"} {
		if _, err := c.AddFile(name, []byte(`component x() {}`)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	got := strings.Join(c.Files(), ",")
	if got != "a.decay,m.decay,z.decay" {
		t.Fatalf("Files() = %s", got)
	}
}

func TestCompiler_ConcurrentAddFile(t *testing.T) {
	c := driver.NewCompiler(nil)
	const n = 32

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := fmt.Sprintf("component c%d(p) { Text(p) }", i)
			_, errs[i] = c.AddFile(fmt.Sprintf("f%02d.decay", i), []byte(src))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("file %d: %v", i, err)
		}
	}
	if len(c.Files()) != n {
		t.Fatalf("registered %d files, want %d", len(c.Files()), n)
	}
	prog, _ := c.Get("f07.decay")
	if _, ok := prog.Component("c7"); !ok {
		t.Fatal("f07.decay holds the wrong program")
	}
}
