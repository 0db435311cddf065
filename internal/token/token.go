package token

import (
	"decay/internal/source"
)

// Token represents a single source token with its location. EndCol is one
// past the last character, counted on the line where the token ends; only a
// string literal can end on a later line than Line.
type Token struct {
	Kind     Kind        `json:"kind" yaml:"kind"`
	Text     string      `json:"text" yaml:"text"`
	Line     uint32      `json:"line" yaml:"line"`
	StartCol uint32      `json:"startColumn" yaml:"startColumn"`
	EndCol   uint32      `json:"endColumn" yaml:"endColumn"`
	Span     source.Span `json:"-" yaml:"-"`
}

// Keyword reports which statement keyword the token spells, if any.
func (t Token) Keyword() (KeywordKind, bool) {
	if t.Kind != Keyword {
		return KwNone, false
	}
	return LookupKeyword(t.Text)
}
