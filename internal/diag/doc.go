// Package diag defines the diagnostic model shared by the lexer, parser and driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable records of findings produced while
//     tokenizing and parsing.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; the driver decides which Bag a file reports into.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (LEX1001, SYN2001).
//   - Message – short human oriented text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans with extra context.
//
// The parser fails fast, so a file never produces more than one syntax error;
// the Bag still exists so that lexer findings, I/O failures and syntax errors
// travel through the same channel to the CLI.
package diag
