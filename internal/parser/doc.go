// Package parser builds an ast.Program from decay source.
//
// The grammar is LL(1) and the parser is fail-fast: the first mismatch stops
// the parse and is returned as a *SyntaxError, no partial tree is produced.
//
//	program       := statement*
//	statement     := component
//	component     := "component" identifier parameterList body
//	parameterList := "(" ( identifier ("," identifier)* ","? )? ")"
//	body          := "{" call* "}"
//	call          := identifier "(" ( argument ("," argument)* ","? )? ")"
//	argument      := string | identifier
package parser
