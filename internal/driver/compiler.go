package driver

import (
	"sort"
	"sync"

	"decay/internal/ast"
	"decay/internal/parser"
	"decay/internal/source"
	"decay/internal/trace"
)

// Compiler keeps successfully parsed programs by name.
// Safe for concurrent use; each AddFile owns its lexer and parser.
type Compiler struct {
	mu     sync.RWMutex
	fs     *source.FileSet
	files  map[string]*ast.Program
	tracer trace.Tracer
}

func NewCompiler(tracer trace.Tracer) *Compiler {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Compiler{
		fs:     source.NewFileSet(),
		files:  make(map[string]*ast.Program),
		tracer: tracer,
	}
}

// AddFile parses content and registers the program under name. On failure
// the registry is left untouched and the error wraps a *parser.SyntaxError.
// Registering the same name again replaces the previous program.
func (c *Compiler) AddFile(name string, content []byte) (*ast.Program, error) {
	span := trace.StartSpan(c.tracer, 0, trace.ScopeFile, "file:"+name)

	id := c.fs.AddVirtual(name, content)
	prog, err := parser.ParseFile(c.fs.Get(id), parser.Options{
		Tracer:     c.tracer,
		ParentSpan: span.ID(),
	})
	if err != nil {
		span.Fail(err)
		return nil, wrapErr(name, err)
	}

	c.mu.Lock()
	c.files[name] = prog
	c.mu.Unlock()

	span.End("")
	return prog, nil
}

// Get returns the program registered under name.
func (c *Compiler) Get(name string) (*ast.Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	prog, ok := c.files[name]
	return prog, ok
}

// Files returns registered names in sorted order.
func (c *Compiler) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.files))
	for name := range c.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileSet returns the sources seen by AddFile, failed ones included.
func (c *Compiler) FileSet() *source.FileSet {
	return c.fs
}
