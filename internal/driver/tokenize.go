package driver

import (
	"context"

	"decay/internal/diag"
	"decay/internal/lexer"
	"decay/internal/source"
	"decay/internal/token"
	"decay/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and collects tokens until the input ends or a
// character no rule accepts stops the lexer; the latter lands in Bag.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, wrapErr(path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeSource tokenizes in-memory content.
func TokenizeSource(ctx context.Context, name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return tokenizeFile(ctx, fs, fs.Get(id), maxDiagnostics)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	_, span := trace.Start(ctx, trace.ScopeStage, "tokenize")

	bag := diag.NewBag(maxDiagnostics)
	noteNotNFC(bag, file)
	reporter := diag.Dedup(diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	tokens := make([]token.Token, 0, 64)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	span.Set(trace.Int("tokens", len(tokens))).End("")
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
