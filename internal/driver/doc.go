// Package driver ties the front end together: it loads files, runs the
// lexer and parser, converts failures into diagnostics and keeps the parsed
// programs. Every file gets its own lexer/parser pair, so files can be
// processed in parallel.
package driver
