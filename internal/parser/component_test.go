package parser

import (
	"reflect"
	"testing"

	"decay/internal/ast"
	"decay/internal/diag"
)

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment\n"} {
		prog := mustParse(t, input)
		if prog == nil || len(prog.Components) != 0 {
			t.Errorf("%q: expected empty program, got %+v", input, prog)
		}
	}
}

func TestEmptyComponent(t *testing.T) {
	c := singleComponent(t, "component example () {}")
	want := &ast.ComponentDecl{
		Name:       "example",
		Parameters: map[string]ast.Param{},
		Body:       []*ast.Call{},
		Positions: ast.ComponentPositions{
			Keyword:     pos(1, 1, 10),
			Name:        pos(1, 11, 18),
			OpenParams:  pos(1, 19, 20),
			CloseParams: pos(1, 20, 21),
			OpenBody:    pos(1, 22, 23),
			CloseBody:   pos(1, 23, 24),
		},
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("got %+v\nwant %+v", c, want)
	}
}

func TestComponentParameters(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		params      map[string]ast.Param
		closeParams ast.Position
		openBody    ast.Position
		closeBody   ast.Position
	}{
		{
			name:        "single",
			input:       "component example (name) {}",
			params:      map[string]ast.Param{"name": {Position: pos(1, 20, 24)}},
			closeParams: pos(1, 24, 25),
			openBody:    pos(1, 26, 27),
			closeBody:   pos(1, 27, 28),
		},
		{
			name:  "multiple",
			input: "component example (name, example) {}",
			params: map[string]ast.Param{
				"name":    {Position: pos(1, 20, 24)},
				"example": {Position: pos(1, 26, 33)},
			},
			closeParams: pos(1, 33, 34),
			openBody:    pos(1, 35, 36),
			closeBody:   pos(1, 36, 37),
		},
		{
			name:  "trailing comma",
			input: "component example (name, example,) {}",
			params: map[string]ast.Param{
				"name":    {Position: pos(1, 20, 24)},
				"example": {Position: pos(1, 26, 33)},
			},
			closeParams: pos(1, 34, 35),
			openBody:    pos(1, 36, 37),
			closeBody:   pos(1, 37, 38),
		},
		{
			name:  "duplicate keeps last",
			input: "component example (a, a) {}",
			params: map[string]ast.Param{
				"a": {Position: pos(1, 23, 24)},
			},
			closeParams: pos(1, 24, 25),
			openBody:    pos(1, 26, 27),
			closeBody:   pos(1, 27, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := singleComponent(t, tt.input)
			if !reflect.DeepEqual(c.Parameters, tt.params) {
				t.Errorf("parameters = %+v, want %+v", c.Parameters, tt.params)
			}
			if c.Positions.CloseParams != tt.closeParams {
				t.Errorf("closeParams = %v, want %v", c.Positions.CloseParams, tt.closeParams)
			}
			if c.Positions.OpenBody != tt.openBody || c.Positions.CloseBody != tt.closeBody {
				t.Errorf("body = %v..%v, want %v..%v",
					c.Positions.OpenBody, c.Positions.CloseBody, tt.openBody, tt.closeBody)
			}
		})
	}
}

func TestComponentCalls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ast.Call
	}{
		{
			name:  "empty call",
			input: "component example () {\n  Text()\n}",
			want: &ast.Call{
				Name:      "Text",
				Arguments: []ast.Argument{},
				Positions: ast.CallPositions{Name: pos(2, 3, 7), OpenArgs: pos(2, 7, 8), CloseArgs: pos(2, 8, 9)},
			},
		},
		{
			name:  "string argument",
			input: "component example () {\n  Text(\"hi\")\n}",
			want: &ast.Call{
				Name: "Text",
				Arguments: []ast.Argument{
					{Kind: ast.ArgString, Value: `"hi"`, Position: pos(2, 8, 12)},
				},
				Positions: ast.CallPositions{Name: pos(2, 3, 7), OpenArgs: pos(2, 7, 8), CloseArgs: pos(2, 12, 13)},
			},
		},
		{
			name:  "mixed arguments",
			input: "component example () {\n  Text(\"hi\", hi)\n}",
			want: &ast.Call{
				Name: "Text",
				Arguments: []ast.Argument{
					{Kind: ast.ArgString, Value: `"hi"`, Position: pos(2, 8, 12)},
					{Kind: ast.ArgIdent, Value: "hi", Position: pos(2, 14, 16)},
				},
				Positions: ast.CallPositions{Name: pos(2, 3, 7), OpenArgs: pos(2, 7, 8), CloseArgs: pos(2, 16, 17)},
			},
		},
		{
			name:  "mixed arguments trailing comma",
			input: "component example () {\n  Text(\"hi\", hi,)\n}",
			want: &ast.Call{
				Name: "Text",
				Arguments: []ast.Argument{
					{Kind: ast.ArgString, Value: `"hi"`, Position: pos(2, 8, 12)},
					{Kind: ast.ArgIdent, Value: "hi", Position: pos(2, 14, 16)},
				},
				Positions: ast.CallPositions{Name: pos(2, 3, 7), OpenArgs: pos(2, 7, 8), CloseArgs: pos(2, 17, 18)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := singleComponent(t, tt.input)
			if len(c.Body) != 1 {
				t.Fatalf("expected 1 call, got %d", len(c.Body))
			}
			if !reflect.DeepEqual(c.Body[0], tt.want) {
				t.Errorf("got %+v\nwant %+v", c.Body[0], tt.want)
			}
			if c.Positions.OpenBody != pos(1, 22, 23) || c.Positions.CloseBody != pos(3, 1, 2) {
				t.Errorf("body positions %v..%v", c.Positions.OpenBody, c.Positions.CloseBody)
			}
		})
	}
}

func TestProgramKeepsSourceOrder(t *testing.T) {
	input := `// first
component header (title) {
  Text(title)
  Divider()
}

component footer () {
  Text("bye", name,)
}
`
	prog := mustParse(t, input)
	if len(prog.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(prog.Components))
	}
	if prog.Components[0].Name != "header" || prog.Components[1].Name != "footer" {
		t.Errorf("wrong order: %s, %s", prog.Components[0].Name, prog.Components[1].Name)
	}
	header := prog.Components[0]
	if len(header.Body) != 2 || header.Body[1].Name != "Divider" {
		t.Errorf("unexpected header body %+v", header.Body)
	}
	if header.Positions.CloseBody != pos(5, 1, 2) {
		t.Errorf("header closeBody = %v", header.Positions.CloseBody)
	}
	footer := prog.Components[1]
	if footer.Positions.Keyword != pos(7, 1, 10) || len(footer.Body[0].Arguments) != 2 {
		t.Errorf("unexpected footer %+v", footer)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		kind  ErrorKind
		code  diag.Code
		pos   ast.Position
	}{
		{"component", "expected identifier but got EOF", ErrUnexpectedEOF, diag.SynUnexpectedEOF, pos(1, 10, 10)},
		{"component example", "expected openParen but got EOF", ErrUnexpectedEOF, diag.SynUnexpectedEOF, pos(1, 18, 18)},
		{"component example (,", "expected identifier but got comma", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 20, 21)},
		{"component example ()", "expected openBrace but got EOF", ErrUnexpectedEOF, diag.SynUnexpectedEOF, pos(1, 21, 21)},
		{"component example () {", "expected closeBrace but got EOF", ErrUnexpectedEOF, diag.SynUnexpectedEOF, pos(1, 23, 23)},
		{"component example (a,,) {}", "expected identifier but got comma", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 22, 23)},
		{"component example (a b) {}", "expected closeParen but got identifier", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 22, 23)},
		{"component example () { Text( }", "expected argument but got closeBrace", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 30, 31)},
		{"component example () { Text(,) }", "expected argument but got comma", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 29, 30)},
		{"component example () { \"x\" }", "expected identifier but got string", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 24, 27)},
		{"component () {}", "expected identifier but got openParen", ErrUnexpectedToken, diag.SynUnexpectedToken, pos(1, 11, 12)},
		{"view main () {}", "unknown keyword view", ErrUnknownKeyword, diag.SynUnknownKeyword, pos(1, 1, 5)},
		{"Text()", "unknown statement Text", ErrUnknownStatement, diag.SynUnknownStatement, pos(1, 1, 5)},
		{"components x () {}", "unknown statement components", ErrUnknownStatement, diag.SynUnknownStatement, pos(1, 1, 11)},
		{"-", "unrecognized character '-' at 1:1", ErrUnrecognizedChar, diag.LexUnknownChar, pos(1, 1, 2)},
		{"component a () {}\n  @", "unrecognized character '@' at 2:3", ErrUnrecognizedChar, diag.LexUnknownChar, pos(2, 3, 4)},
		{"component a (b; c) {}", "unrecognized character ';' at 1:15", ErrUnrecognizedChar, diag.LexUnknownChar, pos(1, 15, 16)},
		{"component a () { Text(\"x) }", "unrecognized character '\"' at 1:23", ErrUnrecognizedChar, diag.LexUnknownChar, pos(1, 23, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			se := mustFail(t, tt.input)
			if se.Error() != tt.msg {
				t.Errorf("message = %q, want %q", se.Error(), tt.msg)
			}
			if se.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", se.Kind, tt.kind)
			}
			if se.Code() != tt.code {
				t.Errorf("code = %v, want %v", se.Code(), tt.code)
			}
			if se.Pos != tt.pos {
				t.Errorf("pos = %v, want %v", se.Pos, tt.pos)
			}
		})
	}
}

func TestSyntaxErrorFields(t *testing.T) {
	se := mustFail(t, "component example (,")
	if se.Expected != "identifier" || se.Got != "comma" {
		t.Errorf("expected/got = %q/%q", se.Expected, se.Got)
	}
	if se.Span.Start != 19 || se.Span.End != 20 {
		t.Errorf("span = %v", se.Span)
	}

	se = mustFail(t, "component")
	if se.Got != "EOF" || !se.Span.Empty() {
		t.Errorf("EOF error: got %q span %v", se.Got, se.Span)
	}
}

func TestParseString(t *testing.T) {
	prog, err := ParseString("component a () { B(c) }")
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := prog.Component("a"); !ok || c.Body[0].Arguments[0].Value != "c" {
		t.Errorf("unexpected program %+v", prog)
	}
}
