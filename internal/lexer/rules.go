package lexer

import (
	"decay/internal/token"
)

// rule is one entry of the scanning table. match returns the length in bytes
// of the prefix of src it accepts, or 0.
type rule struct {
	name   string
	kind   token.Kind
	ignore bool
	match  func(src []byte) int
}

// rules is tried top to bottom and the first non-empty match wins, so the
// order is significant: keywords must come before identifiers.
var rules = buildRules()

func buildRules() []rule {
	out := []rule{
		{name: "whitespace", ignore: true, match: matchSpace},
		{name: "comment", ignore: true, match: matchLineComment},
	}
	for _, kw := range token.Keywords {
		out = append(out, rule{name: kw, kind: token.Keyword, match: matchWord(kw)})
	}
	return append(out,
		rule{name: "identifier", kind: token.Ident, match: matchIdent},
		rule{name: "string", kind: token.String, match: matchString},
		rule{name: "(", kind: token.LParen, match: matchByte('(')},
		rule{name: ")", kind: token.RParen, match: matchByte(')')},
		rule{name: "{", kind: token.LBrace, match: matchByte('{')},
		rule{name: "}", kind: token.RBrace, match: matchByte('}')},
		rule{name: ",", kind: token.Comma, match: matchByte(',')},
	)
}

// firstMatch returns the first rule accepting a non-empty prefix of src.
func firstMatch(src []byte) (*rule, int) {
	if len(src) == 0 {
		return nil, 0
	}
	for i := range rules {
		if n := rules[i].match(src); n > 0 {
			return &rules[i], n
		}
	}
	return nil, 0
}

func matchSpace(src []byte) int {
	n := 0
	for n < len(src) && isSpace(src[n]) {
		n++
	}
	return n
}

// //... до \n, сам перевод строки не входит
func matchLineComment(src []byte) int {
	if len(src) < 2 || src[0] != '/' || src[1] != '/' {
		return 0
	}
	n := 2
	for n < len(src) && src[n] != '\n' {
		n++
	}
	return n
}

// matchWord accepts word only when it is not followed by an identifier
// character, so "components" stays a single identifier.
func matchWord(word string) func([]byte) int {
	return func(src []byte) int {
		if len(src) < len(word) || string(src[:len(word)]) != word {
			return 0
		}
		if len(src) > len(word) && isIdentContinueByte(src[len(word)]) {
			return 0
		}
		return len(word)
	}
}

func matchIdent(src []byte) int {
	if len(src) == 0 || !isIdentStartByte(src[0]) {
		return 0
	}
	n := 1
	for n < len(src) && isIdentContinueByte(src[n]) {
		n++
	}
	return n
}

// "..." без escape-последовательностей; перевод строки внутри допустим.
func matchString(src []byte) int {
	if len(src) == 0 || src[0] != '"' {
		return 0
	}
	for n := 1; n < len(src); n++ {
		if src[n] == '"' {
			return n + 1
		}
	}
	return 0
}

func matchByte(b byte) func([]byte) int {
	return func(src []byte) int {
		if len(src) > 0 && src[0] == b {
			return 1
		}
		return 0
	}
}
