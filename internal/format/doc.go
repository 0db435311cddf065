// Package format re-prints decay sources in canonical layout.
//
// Назначение: `decay fmt` поверх уже разобранного ast.Program.
// Trivia between components is copied verbatim; each component is
// re-emitted from its AST unless its text carries a comment, in which
// case it is left untouched.
// Не делает: IO, разбор каталогов, восстановление после ошибок.
// Зависимости: internal/ast, internal/parser, internal/source.
package format
