package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleProgram() *Program {
	p := NewProgram()
	p.Components = append(p.Components, &ComponentDecl{
		Name: "card",
		Parameters: map[string]Param{
			"title": {Position: Position{1, 16, 21}},
			"body":  {Position: Position{1, 23, 27}},
		},
		Body: []*Call{{
			Name: "Text",
			Arguments: []Argument{
				{Kind: ArgString, Value: `"hi"`, Position: Position{2, 8, 12}},
				{Kind: ArgIdent, Value: "title", Position: Position{2, 14, 19}},
			},
			Positions: CallPositions{Name: Position{2, 3, 7}, OpenArgs: Position{2, 7, 8}, CloseArgs: Position{2, 19, 20}},
		}},
		Positions: ComponentPositions{
			Keyword: Position{1, 1, 10}, Name: Position{1, 11, 15},
			OpenParams: Position{1, 15, 16}, CloseParams: Position{1, 27, 28},
			OpenBody: Position{1, 29, 30}, CloseBody: Position{3, 1, 2},
		},
	})
	return p
}

func TestPositionJSON(t *testing.T) {
	data, err := json.Marshal(Position{Line: 2, Column: 14, EndColumn: 16})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[2,14,16]" {
		t.Fatalf("got %s", data)
	}
	var back Position
	if err := json.Unmarshal([]byte("[3, 7, 9]"), &back); err != nil {
		t.Fatal(err)
	}
	if back != (Position{3, 7, 9}) {
		t.Errorf("got %v", back)
	}
	if err := json.Unmarshal([]byte("[3, 7]"), &back); err == nil {
		t.Error("expected error for position without endColumn")
	}
	if err := json.Unmarshal([]byte(`"x"`), &back); err == nil {
		t.Error("expected error for non-array position")
	}
}

func TestProgramJSONShape(t *testing.T) {
	data, err := json.Marshal(sampleProgram())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{
		`"parameters":{"body":{"position":[1,23,27]},"title":{"position":[1,16,21]}}`,
		`"kind":"string","value":"\"hi\"","position":[2,8,12]`,
		`"kind":"identifier"`,
		`"closeBody":[3,1,2]`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s\nmissing %s", s, want)
		}
	}

	var back Program
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Components[0].Body[0].Arguments[1].Kind != ArgIdent {
		t.Error("argument kind lost in round trip")
	}
}

func TestEmptyProgramJSON(t *testing.T) {
	data, err := json.Marshal(NewProgram())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"components":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestProgramYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleProgram())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "name: card") || !strings.Contains(s, "kind: identifier") {
		t.Errorf("unexpected YAML:\n%s", s)
	}
	if !strings.Contains(s, "- 3\n") {
		t.Errorf("positions must be sequences:\n%s", s)
	}
}

func TestPositionExtent(t *testing.T) {
	p := Position{Line: 2, Column: 8, EndColumn: 12}
	if p.String() != "2:8" || p.Extent() != "2:8-12" {
		t.Errorf("String/Extent = %q/%q", p.String(), p.Extent())
	}
	if PointAt(4, 9) != (Position{4, 9, 9}) {
		t.Errorf("PointAt = %v", PointAt(4, 9))
	}
}

func TestParamNamesOrdered(t *testing.T) {
	c := sampleProgram().Components[0]
	got := strings.Join(c.ParamNames(), ",")
	if got != "title,body" {
		t.Errorf("got %s", got)
	}
}

type countVisitor struct {
	components, calls, args int
	skipCalls               bool
}

func (v *countVisitor) VisitComponent(*ComponentDecl) bool { v.components++; return true }
func (v *countVisitor) VisitCall(*ComponentDecl, *Call) bool {
	v.calls++
	return !v.skipCalls
}
func (v *countVisitor) VisitArgument(*Call, *Argument) { v.args++ }

func TestWalk(t *testing.T) {
	v := &countVisitor{}
	Walk(sampleProgram(), v)
	if v.components != 1 || v.calls != 1 || v.args != 2 {
		t.Errorf("unexpected counts %+v", v)
	}

	v = &countVisitor{skipCalls: true}
	Walk(sampleProgram(), v)
	if v.args != 0 {
		t.Error("children of a skipped call were visited")
	}
	Walk(nil, v)
}

func TestComponentLookup(t *testing.T) {
	p := sampleProgram()
	if _, ok := p.Component("card"); !ok {
		t.Error("card not found")
	}
	if _, ok := p.Component("nope"); ok {
		t.Error("unexpected component")
	}
	var nilProg *Program
	if _, ok := nilProg.Component("card"); ok {
		t.Error("nil program has no components")
	}
}

func TestProgramYAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(sampleProgram())
	if err != nil {
		t.Fatal(err)
	}
	var back Program
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	c := back.Components[0]
	if c.Positions.CloseBody != (Position{3, 1, 2}) || c.Body[0].Arguments[1].Kind != ArgIdent {
		t.Errorf("round trip lost data: %+v", c)
	}
	var bad Position
	if err := yaml.Unmarshal([]byte("[1, 2]"), &bad); err == nil {
		t.Error("expected error for two-element position")
	}
}
