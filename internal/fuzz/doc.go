
// Package fuzztests houses Go fuzz harnesses for the decay front end
// (source -> lexer -> parser). They guard against panics, hangs and
// position drift on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/testkit.

package fuzztests
