package ast

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"decay/internal/token"
)

// Position is where a token sits: 1-based line, start column and the column
// one past its last character. It serialises as [line, column, endColumn].
type Position struct {
	Line      uint32 `msgpack:"l"`
	Column    uint32 `msgpack:"c"`
	EndColumn uint32 `msgpack:"e"`
}

// PosOf returns the position of tok.
func PosOf(tok token.Token) Position {
	return Position{Line: tok.Line, Column: tok.StartCol, EndColumn: tok.EndCol}
}

// PointAt is a zero-width position, e.g. end of input.
func PointAt(line, col uint32) Position {
	return Position{Line: line, Column: col, EndColumn: col}
}

func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Before reports whether p starts strictly earlier in the file than q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Extent is String plus the end column: "2:8-12".
func (p Position) Extent() string {
	return fmt.Sprintf("%d:%d-%d", p.Line, p.Column, p.EndColumn)
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint32{p.Line, p.Column, p.EndColumn})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var triple []uint32
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	return p.set(triple)
}

// MarshalYAML keeps the YAML form identical to JSON.
func (p Position) MarshalYAML() (any, error) {
	return []uint32{p.Line, p.Column, p.EndColumn}, nil
}

func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	var triple []uint32
	if err := value.Decode(&triple); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	return p.set(triple)
}

func (p *Position) set(triple []uint32) error {
	if len(triple) != 3 {
		return fmt.Errorf("position: want [line, column, endColumn], got %d values", len(triple))
	}
	p.Line, p.Column, p.EndColumn = triple[0], triple[1], triple[2]
	return nil
}
