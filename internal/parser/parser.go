package parser

import (
	"errors"

	"decay/internal/ast"
	"decay/internal/diag"
	"decay/internal/lexer"
	"decay/internal/source"
	"decay/internal/trace"
)

type Options struct {
	// Reporter получает SyntaxError в виде диагностики; может быть nil.
	Reporter diag.Reporter
	// Tracer receives one mark per component at LevelNode.
	Tracer trace.Tracer
	// ParentSpan is the trace span node events attach to.
	ParentSpan uint64
}

// Parser — состояние парсера на один файл. Не потокобезопасен.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
}

func New(lx *lexer.Lexer, opts Options) *Parser {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Parser{lx: lx, opts: opts}
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) (*ast.Program, error) {
	return New(lexer.New(file, lexer.Options{}), opts).Parse()
}

// ParseString parses src as an anonymous file.
func ParseString(src string) (*ast.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return ParseFile(fs.Get(id), Options{})
}

// Parse runs the parser to the end of input.
func (p *Parser) Parse() (*ast.Program, error) {
	prog, err := p.parseProgram()
	if err != nil {
		p.report(err)
		return nil, err
	}
	return prog, nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := ast.NewProgram()
	for p.lx.HasMore() {
		tok, ok := p.lx.Peek()
		if !ok {
			// остались только пробелы и комментарии
			if p.lx.Exhausted() {
				break
			}
			off, _ := p.lx.Unrecognized()
			return nil, unrecognized(off)
		}
		comp, err := p.parseStatement(tok)
		if err != nil {
			return nil, err
		}
		prog.Components = append(prog.Components, comp)
		trace.Mark(p.opts.Tracer, p.opts.ParentSpan, trace.ScopeNode, "component", comp.Name)
	}
	return prog, nil
}

func (p *Parser) report(err error) {
	if p.opts.Reporter == nil {
		return
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		return
	}
	d := se.Diagnostic()
	p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
}
