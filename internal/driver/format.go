package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"decay/internal/diag"
	"decay/internal/format"
	"decay/internal/parser"
	"decay/internal/source"
	"decay/internal/trace"
)

type FormatOptions struct {
	Check          bool // только сообщить, файлы не трогать
	Stdout         bool // вернуть текст в Formatted вместо записи
	MaxDiagnostics int
	Options        format.Options
}

// FormatResult describes one file. Formatted is kept only in Stdout mode.
// FileSet and Bag carry the syntax error when the file does not parse.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	FileSet   *source.FileSet
	Bag       *diag.Bag
}

// FormatPaths formats the given files and every .decay file under the given
// directories, in path order. A per-file failure lands in that result's
// Err; the returned error is for bad arguments and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := expandSourcePaths(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		_, span := trace.Start(ctx, trace.ScopeFile, "fmt:"+path)
		res := formatFile(path, opts)
		if res.Err == nil && res.Changed && !opts.Check && !opts.Stdout {
			if err := replaceFile(path, res.Formatted); err != nil {
				res.Err, res.Changed = wrapErr(path, err), false
			}
		}
		if !opts.Stdout {
			res.Formatted = nil
		}
		span.Fail(res.Err)
		results = append(results, res)
	}
	return results, nil
}

func formatFile(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	// #nosec G304 -- path comes from the command line or a directory walk
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = wrapErr(path, err)
		return res
	}

	res.FileSet = source.NewFileSet()
	content, flags := source.Normalize(raw)
	sf := res.FileSet.Get(res.FileSet.Add(path, content, flags))
	res.Bag = diag.NewBag(positiveOr(opts.MaxDiagnostics, 256))

	prog, err := parser.ParseFile(sf, parser.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	if err == nil {
		res.Formatted, err = format.FormatFile(sf, prog, opts.Options)
	}
	if err != nil {
		res.Err = wrapErr(path, err)
		return res
	}
	// сравниваем с сырыми байтами: BOM и CRLF тоже считаются изменением
	res.Changed = !bytes.Equal(raw, res.Formatted)
	return res
}

// replaceFile rewrites path keeping its permission bits.
func replaceFile(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}

// expandSourcePaths turns arguments into a sorted, duplicate-free file
// list. Plain files without the .decay extension are skipped.
func expandSourcePaths(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		switch {
		case info.IsDir():
			found, err := ListSourceFiles(p)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		case filepath.Ext(p) == SourceExt:
			files = append(files, p)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
