package parser

import (
	"fmt"

	"decay/internal/ast"
	"decay/internal/diag"
	"decay/internal/lexer"
	"decay/internal/source"
	"decay/internal/token"
)

// ErrorKind classifies a SyntaxError.
type ErrorKind uint8

const (
	ErrUnexpectedToken ErrorKind = iota + 1
	ErrUnexpectedEOF
	ErrUnknownKeyword
	ErrUnknownStatement
	ErrUnrecognizedChar
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnexpectedEOF:
		return "unexpected EOF"
	case ErrUnknownKeyword:
		return "unknown keyword"
	case ErrUnknownStatement:
		return "unknown statement"
	case ErrUnrecognizedChar:
		return "unrecognized character"
	default:
		return "syntax error"
	}
}

// SyntaxError is the only error the parser returns.
type SyntaxError struct {
	Kind     ErrorKind
	Expected string // token kind name, empty for dispatch errors
	Got      string // kind name, "EOF", or the offending text
	Pos      ast.Position
	Span     source.Span
	Msg      string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// Code maps the error onto the diagnostic catalogue.
func (e *SyntaxError) Code() diag.Code {
	switch e.Kind {
	case ErrUnexpectedToken:
		return diag.SynUnexpectedToken
	case ErrUnexpectedEOF:
		return diag.SynUnexpectedEOF
	case ErrUnknownKeyword:
		return diag.SynUnknownKeyword
	case ErrUnknownStatement:
		return diag.SynUnknownStatement
	case ErrUnrecognizedChar:
		return diag.LexUnknownChar
	default:
		return diag.SynInfo
	}
}

// Diagnostic converts the error into a single error diagnostic.
func (e *SyntaxError) Diagnostic() *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code(),
		Message:  e.Msg,
		Primary:  e.Span,
	}
}

func unexpected(expected string, got token.Token) *SyntaxError {
	return &SyntaxError{
		Kind:     ErrUnexpectedToken,
		Expected: expected,
		Got:      got.Kind.String(),
		Pos:      ast.PosOf(got),
		Span:     got.Span,
		Msg:      fmt.Sprintf("expected %s but got %s", expected, got.Kind),
	}
}

func unexpectedEOF(expected string, lx *lexer.Lexer) *SyntaxError {
	line, col := lx.Pos()
	return &SyntaxError{
		Kind:     ErrUnexpectedEOF,
		Expected: expected,
		Got:      "EOF",
		Pos:      ast.PointAt(line, col),
		Span:     lx.EmptySpan(),
		Msg:      fmt.Sprintf("expected %s but got EOF", expected),
	}
}

func unrecognized(off lexer.Offending) *SyntaxError {
	return &SyntaxError{
		Kind: ErrUnrecognizedChar,
		Got:  string(off.Char),
		Pos:  ast.Position{Line: off.Line, Column: off.Col, EndColumn: off.Col + 1},
		Span: off.Span,
		Msg:  off.String(),
	}
}

func unknownKeyword(tok token.Token) *SyntaxError {
	return &SyntaxError{
		Kind: ErrUnknownKeyword,
		Got:  tok.Text,
		Pos:  ast.PosOf(tok),
		Span: tok.Span,
		Msg:  "unknown keyword " + tok.Text,
	}
}

func unknownStatement(tok token.Token) *SyntaxError {
	return &SyntaxError{
		Kind: ErrUnknownStatement,
		Got:  tok.Text,
		Pos:  ast.PosOf(tok),
		Span: tok.Span,
		Msg:  "unknown statement " + tok.Text,
	}
}
