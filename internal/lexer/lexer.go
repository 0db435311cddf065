package lexer

import (
	"fmt"
	"unicode/utf8"

	"decay/internal/diag"
	"decay/internal/source"
	"decay/internal/token"
)

// Lexer produces tokens on demand from one source file. It is not safe for
// concurrent use; every parse owns its own Lexer.
type Lexer struct {
	file   *source.File
	cursor cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: newCursor(file),
		opts:   opts,
	}
}

// File returns the source being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// HasMore reports whether any characters remain unconsumed. Trailing
// whitespace counts, so HasMore can be true while Next has nothing to give.
func (lx *Lexer) HasMore() bool {
	return !lx.cursor.atEnd()
}

// Next возвращает следующий **значимый** токен и продвигает курсор.
// Возвращает false на конце ввода или если ни одно правило не подошло;
// различить эти случаи можно через Unrecognized.
func (lx *Lexer) Next() (token.Token, bool) {
	lx.skipTrivia()
	if lx.cursor.atEnd() {
		return token.Token{}, false
	}

	start := lx.cursor.point
	r, n := firstMatch(lx.cursor.rest())
	if r == nil {
		lx.reportUnrecognized()
		return token.Token{}, false
	}

	lx.cursor.advance(n)
	sp := lx.cursor.span(start)
	return token.Token{
		Kind:     r.kind,
		Text:     string(lx.file.Content[sp.Start:sp.End]),
		Line:     start.line,
		StartCol: start.col,
		EndCol:   lx.cursor.col,
		Span:     sp,
	}, true
}

// Peek возвращает следующий токен, не потребляя его: состояние курсора
// (смещение, строка, колонка) восстанавливается после сканирования.
func (lx *Lexer) Peek() (token.Token, bool) {
	m := lx.cursor.point
	reporter := lx.opts.Reporter
	lx.opts.Reporter = nil
	tok, ok := lx.Next()
	lx.opts.Reporter = reporter
	lx.cursor.rewind(m)
	return tok, ok
}

// Offending describes input no rule accepts.
type Offending struct {
	Char rune
	Line uint32
	Col  uint32
	Span source.Span
}

func (o Offending) String() string {
	return fmt.Sprintf("unrecognized character %q at %d:%d", o.Char, o.Line, o.Col)
}

// Unrecognized reports the character that stops tokenization, if the next
// meaningful input exists but matches no rule. It does not consume anything.
func (lx *Lexer) Unrecognized() (Offending, bool) {
	m := lx.cursor.point
	defer lx.cursor.rewind(m)

	lx.skipTrivia()
	if lx.cursor.atEnd() {
		return Offending{}, false
	}
	if r, _ := firstMatch(lx.cursor.rest()); r != nil {
		return Offending{}, false
	}
	return lx.offending(), true
}

// Exhausted reports whether only whitespace and comments remain.
func (lx *Lexer) Exhausted() bool {
	m := lx.cursor.point
	defer lx.cursor.rewind(m)
	lx.skipTrivia()
	return lx.cursor.atEnd()
}

// Pos returns the line and column of the next unconsumed character.
func (lx *Lexer) Pos() (line, col uint32) {
	return lx.cursor.line, lx.cursor.col
}

// EmptySpan returns a zero-width span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.off, End: lx.cursor.off}
}

// skipTrivia consumes every leading match of an ignore rule.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.atEnd() {
		r, n := firstMatch(lx.cursor.rest())
		if r == nil || !r.ignore {
			return
		}
		lx.cursor.advance(n)
	}
}

func (lx *Lexer) offending() Offending {
	ch, size := utf8.DecodeRune(lx.cursor.rest())
	return Offending{
		Char: ch,
		Line: lx.cursor.line,
		Col:  lx.cursor.col,
		Span: source.Span{File: lx.file.ID, Start: lx.cursor.off, End: lx.cursor.off + u32(size)},
	}
}

func (lx *Lexer) reportUnrecognized() {
	if lx.opts.Reporter == nil {
		return
	}
	off := lx.offending()
	diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar, off.Span, off.String())
}
