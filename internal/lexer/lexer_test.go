package lexer

import (
	"strings"
	"testing"

	"decay/internal/diag"
	"decay/internal/source"
	"decay/internal/token"
)

// Helper function to create a lexer from input string
func makeTestLexer(input string) (*Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.decay", []byte(input))
	file := fs.Get(fileID)
	bag := diag.NewBag(100)
	opts := Options{Reporter: diag.BagReporter{Bag: bag}}
	return New(file, opts), bag
}

type want struct {
	kind  token.Kind
	text  string
	line  uint32
	start uint32
	end   uint32
}

// Helper function to check token sequence; every token is peeked before it is consumed.
func expectTokens(t *testing.T, input string, expected []want) {
	t.Helper()
	lx, bag := makeTestLexer(input)

	for i, exp := range expected {
		peeked, ok := lx.Peek()
		if !ok {
			t.Fatalf("token %d: Peek returned nothing, want %v %q", i, exp.kind, exp.text)
		}
		tok, ok := lx.Next()
		if !ok {
			t.Fatalf("token %d: Next returned nothing, want %v %q", i, exp.kind, exp.text)
		}
		if peeked != tok {
			t.Errorf("token %d: Peek %+v differs from Next %+v", i, peeked, tok)
		}
		got := want{tok.Kind, tok.Text, tok.Line, tok.StartCol, tok.EndCol}
		if got != exp {
			t.Errorf("token %d: got %+v, want %+v", i, got, exp)
		}
	}

	if tok, ok := lx.Next(); ok {
		t.Errorf("expected end of tokens, got %v %q", tok.Kind, tok.Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %d", bag.Len())
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Kind.String() + ":" + tok.Text
	}
	return strings.Join(parts, " ")
}

func collect(lx *Lexer) []token.Token {
	var out []token.Token
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestEmptyInput(t *testing.T) {
	lx, _ := makeTestLexer("")
	if lx.HasMore() {
		t.Error("HasMore on empty input")
	}
	if _, ok := lx.Peek(); ok {
		t.Error("Peek on empty input returned a token")
	}
	if _, ok := lx.Next(); ok {
		t.Error("Next on empty input returned a token")
	}
	if !lx.Exhausted() {
		t.Error("empty input must be exhausted")
	}
}

func TestSingleIdentifier(t *testing.T) {
	lx, _ := makeTestLexer("name")
	if !lx.HasMore() {
		t.Fatal("HasMore must be true before consuming")
	}
	tok, ok := lx.Next()
	if !ok {
		t.Fatal("expected a token")
	}
	if tok.Kind != token.Ident || tok.Text != "name" || tok.Line != 1 || tok.StartCol != 1 || tok.EndCol != 5 {
		t.Errorf("unexpected token %+v", tok)
	}
	if _, ok := lx.Peek(); ok {
		t.Error("Peek after last token returned a token")
	}
	if lx.HasMore() {
		t.Error("HasMore after last token")
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	lx, bag := makeTestLexer("-")
	if !lx.HasMore() {
		t.Fatal("HasMore must be true for unmatched input")
	}
	if _, ok := lx.Peek(); ok {
		t.Error("Peek must return nothing")
	}
	if bag.Len() != 0 {
		t.Error("Peek must not report diagnostics")
	}
	if _, ok := lx.Next(); ok {
		t.Error("Next must return nothing")
	}
	// курсор не двигается
	if !lx.HasMore() || lx.Exhausted() {
		t.Error("unmatched character must stay in the input")
	}

	off, ok := lx.Unrecognized()
	if !ok {
		t.Fatal("expected offending character")
	}
	if off.Char != '-' || off.Line != 1 || off.Col != 1 {
		t.Errorf("unexpected offending %+v", off)
	}
	if off.String() != `unrecognized character '-' at 1:1` {
		t.Errorf("String() = %q", off.String())
	}

	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected one LexUnknownChar diagnostic, got %d", len(items))
	}
}

func TestUnrecognizedAfterTokens(t *testing.T) {
	lx, _ := makeTestLexer("name\n  @x")
	if _, ok := lx.Next(); !ok {
		t.Fatal("expected identifier")
	}
	if _, ok := lx.Next(); ok {
		t.Fatal("expected stop at '@'")
	}
	off, ok := lx.Unrecognized()
	if !ok || off.Char != '@' || off.Line != 2 || off.Col != 3 {
		t.Errorf("unexpected offending %+v (ok=%v)", off, ok)
	}
}

func TestAllTokenKinds(t *testing.T) {
	input := "\ncomponent\nview\nname\n\"string\"\n()\n{}\n,"
	expectTokens(t, input, []want{
		{token.Keyword, "component", 2, 1, 10},
		{token.Keyword, "view", 3, 1, 5},
		{token.Ident, "name", 4, 1, 5},
		{token.String, `"string"`, 5, 1, 9},
		{token.LParen, "(", 6, 1, 2},
		{token.RParen, ")", 6, 2, 3},
		{token.LBrace, "{", 7, 1, 2},
		{token.RBrace, "}", 7, 2, 3},
		{token.Comma, ",", 8, 1, 2},
	})
}

func TestComponentHeader(t *testing.T) {
	expectTokens(t, "component example () {}", []want{
		{token.Keyword, "component", 1, 1, 10},
		{token.Ident, "example", 1, 11, 18},
		{token.LParen, "(", 1, 19, 20},
		{token.RParen, ")", 1, 20, 21},
		{token.LBrace, "{", 1, 22, 23},
		{token.RBrace, "}", 1, 23, 24},
	})
}

func TestKeywordBoundary(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"component", "keyword:component"},
		{"components", "identifier:components"},
		{"component_x", "identifier:component_x"},
		{"component1", "identifier:component1"},
		{"viewport", "identifier:viewport"},
		{"view(", "keyword:view openParen:("},
		{"component{", "keyword:component openBrace:{"},
		{"Component", "identifier:Component"},
		{"_view", "identifier:_view"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			if got := tokensToString(collect(lx)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "// header\ncomponent a // trailing\n() {} // end"
	expectTokens(t, input, []want{
		{token.Keyword, "component", 2, 1, 10},
		{token.Ident, "a", 2, 11, 12},
		{token.LParen, "(", 3, 1, 2},
		{token.RParen, ")", 3, 2, 3},
		{token.LBrace, "{", 3, 4, 5},
		{token.RBrace, "}", 3, 5, 6},
	})
}

func TestTrailingTriviaOnly(t *testing.T) {
	lx, _ := makeTestLexer("name  // done\n\t ")
	if _, ok := lx.Next(); !ok {
		t.Fatal("expected identifier")
	}
	if !lx.HasMore() {
		t.Error("trailing whitespace still counts as remaining input")
	}
	if !lx.Exhausted() {
		t.Error("only trivia remains")
	}
	if _, ok := lx.Unrecognized(); ok {
		t.Error("trivia is not unrecognized")
	}
	if _, ok := lx.Next(); ok {
		t.Error("no token expected")
	}
	if lx.HasMore() {
		t.Error("Next must consume trailing trivia")
	}
}

func TestStringLiterals(t *testing.T) {
	expectTokens(t, `Text("hi", "", "a b")`, []want{
		{token.Ident, "Text", 1, 1, 5},
		{token.LParen, "(", 1, 5, 6},
		{token.String, `"hi"`, 1, 6, 10},
		{token.Comma, ",", 1, 10, 11},
		{token.String, `""`, 1, 12, 14},
		{token.Comma, ",", 1, 14, 15},
		{token.String, `"a b"`, 1, 16, 21},
		{token.RParen, ")", 1, 21, 22},
	})
}

func TestMultilineString(t *testing.T) {
	lx, _ := makeTestLexer("\"a\nb\" x")
	toks := collect(lx)
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %s", tokensToString(toks))
	}
	if toks[0].Line != 1 || toks[0].StartCol != 1 {
		t.Errorf("string starts at %d:%d", toks[0].Line, toks[0].StartCol)
	}
	// конец строки считается на второй линии: b" занимает колонки 1..2
	if toks[0].EndCol != 3 {
		t.Errorf("string endColumn = %d, want 3", toks[0].EndCol)
	}
	if toks[1].Line != 2 || toks[1].StartCol != 4 || toks[1].EndCol != 5 {
		t.Errorf("identifier after multiline string at %d:%d-%d, want 2:4-5",
			toks[1].Line, toks[1].StartCol, toks[1].EndCol)
	}
}

func TestEveryKeywordLexesAsKeyword(t *testing.T) {
	for _, kw := range token.Keywords {
		lx, _ := makeTestLexer(kw + " " + kw + "s")
		toks := collect(lx)
		if len(toks) != 2 || toks[0].Kind != token.Keyword || toks[0].Text != kw {
			t.Fatalf("%s: got %s", kw, tokensToString(toks))
		}
		if toks[1].Kind != token.Ident {
			t.Errorf("%ss must stay an identifier, got %v", kw, toks[1].Kind)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, _ := makeTestLexer(`"abc`)
	if _, ok := lx.Next(); ok {
		t.Fatal("unterminated string must not produce a token")
	}
	off, ok := lx.Unrecognized()
	if !ok || off.Char != '"' || off.Col != 1 {
		t.Errorf("unexpected offending %+v (ok=%v)", off, ok)
	}
}

func TestUnicodeColumns(t *testing.T) {
	// колонки считаются в code points, не в байтах
	expectTokens(t, `Text("héllo", x)`, []want{
		{token.Ident, "Text", 1, 1, 5},
		{token.LParen, "(", 1, 5, 6},
		{token.String, `"héllo"`, 1, 6, 13},
		{token.Comma, ",", 1, 13, 14},
		{token.Ident, "x", 1, 15, 16},
		{token.RParen, ")", 1, 16, 17},
	})
}

func TestSpansCoverText(t *testing.T) {
	lx, _ := makeTestLexer("component  demo")
	for _, tok := range collect(lx) {
		got := string(lx.File().Content[tok.Span.Start:tok.Span.End])
		if got != tok.Text {
			t.Errorf("span text %q != token text %q", got, tok.Text)
		}
	}
	if sp := lx.EmptySpan(); !sp.Empty() || sp.Start != 15 {
		t.Errorf("EmptySpan = %v", sp)
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	lx, _ := makeTestLexer("\n\n  view x")
	first, _ := lx.Peek()
	second, _ := lx.Peek()
	if first != second {
		t.Fatalf("Peek not idempotent: %+v vs %+v", first, second)
	}
	tok, _ := lx.Next()
	if tok != first || tok.Line != 3 || tok.StartCol != 3 {
		t.Errorf("unexpected token %+v", tok)
	}
}
