package token

// KeywordKind is the closed set of statement keywords.
type KeywordKind uint8

const (
	// KwNone marks text that is not a keyword.
	KwNone KeywordKind = iota
	// KwComponent introduces a component declaration.
	KwComponent // component
	// KwView is reserved; the parser does not accept it yet.
	KwView // view
)

// Keywords lists the reserved words in lexer rule order.
var Keywords = [...]string{"component", "view"}

// LookupKeyword returns the keyword for text. Matching is case-sensitive.
func LookupKeyword(text string) (KeywordKind, bool) {
	switch text {
	case "component":
		return KwComponent, true
	case "view":
		return KwView, true
	default:
		return KwNone, false
	}
}

func (k KeywordKind) String() string {
	switch k {
	case KwComponent:
		return "component"
	case KwView:
		return "view"
	default:
		return "none"
	}
}
