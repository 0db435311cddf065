package ast

// Program is the root: component declarations in source order.
type Program struct {
	Components []*ComponentDecl `json:"components" yaml:"components" msgpack:"components"`
}

// ComponentDecl is `component name (params) { calls }`.
type ComponentDecl struct {
	Name string `json:"name" yaml:"name" msgpack:"name"`
	// Parameters maps a parameter name to its declaration; a repeated name
	// keeps the position of its last occurrence.
	Parameters map[string]Param   `json:"parameters" yaml:"parameters" msgpack:"parameters"`
	Body       []*Call            `json:"body" yaml:"body" msgpack:"body"`
	Positions  ComponentPositions `json:"positions" yaml:"positions" msgpack:"positions"`
}

type Param struct {
	Position Position `json:"position" yaml:"position" msgpack:"position"`
}

type ComponentPositions struct {
	Keyword     Position `json:"keyword" yaml:"keyword" msgpack:"keyword"`
	Name        Position `json:"name" yaml:"name" msgpack:"name"`
	OpenParams  Position `json:"openParams" yaml:"openParams" msgpack:"openParams"`
	CloseParams Position `json:"closeParams" yaml:"closeParams" msgpack:"closeParams"`
	OpenBody    Position `json:"openBody" yaml:"openBody" msgpack:"openBody"`
	CloseBody   Position `json:"closeBody" yaml:"closeBody" msgpack:"closeBody"`
}

// Call is `name(args)` inside a component body.
type Call struct {
	Name      string        `json:"name" yaml:"name" msgpack:"name"`
	Arguments []Argument    `json:"arguments" yaml:"arguments" msgpack:"arguments"`
	Positions CallPositions `json:"positions" yaml:"positions" msgpack:"positions"`
}

type CallPositions struct {
	Name      Position `json:"name" yaml:"name" msgpack:"name"`
	OpenArgs  Position `json:"openArgs" yaml:"openArgs" msgpack:"openArgs"`
	CloseArgs Position `json:"closeArgs" yaml:"closeArgs" msgpack:"closeArgs"`
}

type Argument struct {
	Kind ArgKind `json:"kind" yaml:"kind" msgpack:"kind"`
	// Value is the raw lexeme; string arguments keep their quotes.
	Value    string   `json:"value" yaml:"value" msgpack:"value"`
	Position Position `json:"position" yaml:"position" msgpack:"position"`
}

// NewProgram returns an empty program with a non-nil component list,
// so an empty file serialises as `"components": []`.
func NewProgram() *Program {
	return &Program{Components: make([]*ComponentDecl, 0)}
}

// Component returns the first declaration named name.
func (p *Program) Component(name string) (*ComponentDecl, bool) {
	if p == nil {
		return nil, false
	}
	for _, c := range p.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
