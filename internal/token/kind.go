package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never hands it out.
	Invalid Kind = iota
	// Keyword is a reserved word: component or view.
	Keyword
	// Ident represents an identifier token.
	Ident
	// String represents a double-quoted string literal.
	String
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Comma represents ','.
	Comma
)

var kindNames = [...]string{
	Invalid: "invalid",
	Keyword: "keyword",
	Ident:   "identifier",
	String:  "string",
	LParen:  "openParen",
	RParen:  "closeParen",
	LBrace:  "openBrace",
	RBrace:  "closeBrace",
	Comma:   "comma",
}

// String returns the name used in diagnostics ("identifier", "closeBrace", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText lets kinds appear by name in JSON and YAML dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
