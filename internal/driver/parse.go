package driver

import (
	"context"
	"fmt"
	"time"

	"decay/internal/ast"
	"decay/internal/buildpipeline"
	"decay/internal/diag"
	"decay/internal/lexer"
	"decay/internal/observ"
	"decay/internal/parser"
	"decay/internal/source"
	"decay/internal/trace"
)

type ParseOptions struct {
	MaxDiagnostics int
	// Cache, если задан, хранит успешные разборы по хэшу содержимого.
	Cache    *ASTCache
	Timer    *observ.Timer
	Progress buildpipeline.ProgressSink
	// Jobs limits ParseDir parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Heartbeat emits trace heartbeats during ParseDir; 0 disables.
	Heartbeat time.Duration
}

type ParseResult struct {
	Path    string // путь для вывода
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil, если разбор не удался
	Bag     *diag.Bag
	Err     error // обёрнутая *parser.SyntaxError
	Cached  bool
}

// Parse loads and parses one file. The returned error is reserved for I/O;
// syntax errors are reported through ParseResult.Err and Bag.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, wrapErr(path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), path, opts), nil
}

// ParseSource parses in-memory content under name.
func ParseSource(ctx context.Context, name string, content []byte, opts ParseOptions) *ParseResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return parseFile(ctx, fs, fs.Get(id), name, opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, display string, opts ParseOptions) *ParseResult {
	ctx, fileSpan := trace.Start(ctx, trace.ScopeFile, "file:"+display)
	stopLap := opts.Timer.Begin("parse " + display)

	res := &ParseResult{
		Path:    display,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	noteNotNFC(res.Bag, file)
	defer func() {
		note := "ok"
		switch {
		case res.Err != nil:
			note = "error"
		case res.Cached:
			note = "cached"
		}
		stopLap(note)
		fileSpan.End(note)
	}()

	if opts.Cache != nil {
		if prog, ok := lookupCache(ctx, opts.Cache, file, res.Bag, opts.Progress, display); ok {
			res.Program = prog
			res.Cached = true
			buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
			return res
		}
	}

	started := time.Now()
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageTokenize, Status: buildpipeline.StatusWorking})
	count := countTokens(ctx, file)
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageTokenize, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)})

	started = time.Now()
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	_, parseSpan := trace.Start(ctx, trace.ScopeStage, "parse")
	prog, err := parser.ParseFile(file, parser.Options{
		Tracer:     trace.FromContext(ctx),
		ParentSpan: parseSpan.ID(),
	})
	if err != nil {
		parseSpan.Fail(err)
		reportErr(res.Bag, err)
		res.Err = wrapErr(display, err)
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: res.Err, Elapsed: time.Since(started)})
		return res
	}
	parseSpan.Set(trace.Int("components", len(prog.Components)), trace.Int("tokens", count)).End("")
	res.Program = prog

	if opts.Cache != nil {
		storeCache(ctx, opts.Cache, file, display, prog, res.Bag)
	}
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: display, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)})
	return res
}

// countTokens runs the lexer alone; the parser re-lexes lazily.
func countTokens(ctx context.Context, file *source.File) int {
	_, span := trace.Start(ctx, trace.ScopeStage, "tokenize")
	lx := lexer.New(file, lexer.Options{})
	n := 0
	for {
		if _, ok := lx.Next(); !ok {
			break
		}
		n++
	}
	span.Set(trace.Int("tokens", n)).End("")
	return n
}

func lookupCache(ctx context.Context, cache *ASTCache, file *source.File, bag *diag.Bag, sink buildpipeline.ProgressSink, display string) (*ast.Program, bool) {
	_, span := trace.Start(ctx, trace.ScopeStage, "cache.get")
	started := time.Now()
	buildpipeline.Emit(sink, buildpipeline.Event{File: display, Stage: buildpipeline.StageCache, Status: buildpipeline.StatusWorking})

	prog, hit, err := cache.Load(file)
	if err != nil {
		cacheWarning(bag, file, fmt.Errorf("cache read: %w", err))
		span.End("error")
		buildpipeline.Emit(sink, buildpipeline.Event{File: display, Stage: buildpipeline.StageCache, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)})
		return nil, false
	}
	buildpipeline.Emit(sink, buildpipeline.Event{File: display, Stage: buildpipeline.StageCache, Status: buildpipeline.StatusDone, Elapsed: time.Since(started)})
	if !hit {
		span.End("miss")
		return nil, false
	}
	span.End("hit")
	return normalizeProgram(prog), true
}

func storeCache(ctx context.Context, cache *ASTCache, file *source.File, display string, prog *ast.Program, bag *diag.Bag) {
	_, span := trace.Start(ctx, trace.ScopeStage, "cache.put")
	if err := cache.Store(file, display, prog); err != nil {
		cacheWarning(bag, file, fmt.Errorf("cache write: %w", err))
		span.End("error")
		return
	}
	span.End("")
}

// cacheWarning: проблемы кэша не должны ломать разбор, только предупреждение.
func cacheWarning(bag *diag.Bag, file *source.File, err error) {
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.ObsCacheError,
		Message:  err.Error(),
		Primary:  source.Span{File: file.ID},
	})
}

// normalizeProgram restores empty collections a decoder may leave nil,
// so cached and fresh programs serialise identically.
func normalizeProgram(prog *ast.Program) *ast.Program {
	if prog.Components == nil {
		prog.Components = make([]*ast.ComponentDecl, 0)
	}
	for _, c := range prog.Components {
		if c.Parameters == nil {
			c.Parameters = make(map[string]ast.Param)
		}
		if c.Body == nil {
			c.Body = make([]*ast.Call, 0)
		}
		for _, call := range c.Body {
			if call.Arguments == nil {
				call.Arguments = make([]ast.Argument, 0)
			}
		}
	}
	return prog
}
