// Package token defines lexical token kinds for the decay language.
// Invariants:
//   - Token.Text is the exact matched lexeme; string tokens keep their quotes.
//   - Token.Span matches Text exactly (Start..End in bytes).
//   - Line, StartCol and EndCol are 1-based; EndCol is exclusive.
//   - Whitespace and line comments never become tokens.
//   - Keywords share one Kind; the concrete word is recovered with LookupKeyword.
package token
