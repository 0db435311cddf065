package format

import (
	"decay/internal/ast"
	"decay/internal/source"
)

// offsetOf maps a 1-based line/column position back to a byte offset.
// Columns count code points the same way the lexer does: every byte that
// is not a UTF-8 continuation byte starts a new column.
func offsetOf(sf *source.File, pos ast.Position) int {
	content := sf.Content
	start := 0
	if pos.Line > 1 {
		idx := int(pos.Line) - 2
		if idx >= len(sf.LineIdx) {
			return len(content)
		}
		start = int(sf.LineIdx[idx]) + 1
	}
	off := start
	for col := uint32(1); col < pos.Column && off < len(content); col++ {
		off++
		for off < len(content) && content[off]&0xC0 == 0x80 {
			off++
		}
	}
	return off
}

// hasComment reports whether text contains a line comment outside string
// literals.
func hasComment(text []byte) bool {
	inString := false
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '"':
			inString = !inString
		case !inString && text[i] == '/' && i+1 < len(text) && text[i+1] == '/':
			return true
		}
	}
	return false
}
