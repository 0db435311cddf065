package testkit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"decay/internal/ast"
	"decay/internal/source"
	"decay/internal/token"
)

// CheckPositionInvariants runs the position invariants on a parsed program:
// 1) every recorded position is 1-based and points inside the file
// 2) a component's positions are ordered keyword < name < ( < params < ) < { < calls < }
// 3) a call's positions are ordered name < ( < args < ) and args are in order
// 4) components do not overlap and appear in source order
// 5) every name and argument value is found in the source at its position
// 6) end columns match the text: one past a delimiter, the lexeme length otherwise
func CheckPositionInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	pc := &positionChecker{sf: sf}
	ast.Walk(prog, pc)
	return pc.err
}

// positionChecker stops at the first failure; later Visit calls are no-ops.
type positionChecker struct {
	sf  *source.File
	err error

	seen     int
	lastEnd  ast.Position // } предыдущего компонента
	owner    *ast.ComponentDecl
	prevCall ast.Position
	argPrev  ast.Position
}

func (pc *positionChecker) VisitComponent(c *ast.ComponentDecl) bool {
	if pc.err != nil {
		return false
	}
	if c == nil {
		pc.err = fmt.Errorf("component %d is nil", pc.seen)
		return false
	}
	if err := checkHeader(c, pc.sf); err != nil {
		pc.err = fmt.Errorf("component %q: %w", c.Name, err)
		return false
	}
	if pc.seen > 0 && !pc.lastEnd.Before(c.Positions.Keyword) {
		pc.err = fmt.Errorf("component %q at %v starts before previous end %v", c.Name, c.Positions.Keyword, pc.lastEnd)
		return false
	}
	pc.seen++
	pc.lastEnd = c.Positions.CloseBody
	pc.owner = c
	pc.prevCall = c.Positions.OpenBody
	return true
}

func (pc *positionChecker) VisitCall(owner *ast.ComponentDecl, call *ast.Call) bool {
	if pc.err != nil {
		return false
	}
	if call == nil {
		pc.err = fmt.Errorf("component %q: nil call", owner.Name)
		return false
	}
	if err := checkCall(call, pc.prevCall, owner.Positions.CloseBody, pc.sf); err != nil {
		pc.err = fmt.Errorf("component %q: %w", owner.Name, err)
		return false
	}
	pc.prevCall = call.Positions.CloseArgs
	pc.argPrev = call.Positions.OpenArgs
	return true
}

func (pc *positionChecker) VisitArgument(call *ast.Call, arg *ast.Argument) {
	if pc.err != nil {
		return
	}
	if !pc.argPrev.Before(arg.Position) || !arg.Position.Before(call.Positions.CloseArgs) {
		pc.err = fmt.Errorf("component %q: argument %s at %v out of order", pc.owner.Name, arg.Value, arg.Position)
		return
	}
	if err := checkArgument(*arg); err != nil {
		pc.err = fmt.Errorf("component %q: %w", pc.owner.Name, err)
		return
	}
	if err := expectText(pc.sf, arg.Position, arg.Value); err != nil {
		pc.err = fmt.Errorf("component %q: %w", pc.owner.Name, err)
		return
	}
	pc.argPrev = arg.Position
}

func checkHeader(c *ast.ComponentDecl, sf *source.File) error {
	p := c.Positions
	order := []ast.Position{p.Keyword, p.Name, p.OpenParams, p.CloseParams, p.OpenBody, p.CloseBody}
	if err := checkOrdered(order, sf); err != nil {
		return err
	}
	if err := checkDelimiters(p.OpenParams, p.CloseParams, p.OpenBody, p.CloseBody); err != nil {
		return err
	}
	if err := expectText(sf, p.Keyword, "component"); err != nil {
		return err
	}
	if err := expectText(sf, p.Name, c.Name); err != nil {
		return err
	}
	for name, param := range c.Parameters {
		if !p.OpenParams.Before(param.Position) || !param.Position.Before(p.CloseParams) {
			return fmt.Errorf("param %q at %v outside %v..%v", name, param.Position, p.OpenParams, p.CloseParams)
		}
		if err := expectText(sf, param.Position, name); err != nil {
			return err
		}
	}
	return nil
}

func checkCall(call *ast.Call, prev, closeBody ast.Position, sf *source.File) error {
	cp := call.Positions
	if !prev.Before(cp.Name) {
		return fmt.Errorf("call %q at %v not after %v", call.Name, cp.Name, prev)
	}
	if err := checkOrdered([]ast.Position{cp.Name, cp.OpenArgs, cp.CloseArgs, closeBody}, sf); err != nil {
		return fmt.Errorf("call %q: %w", call.Name, err)
	}
	if err := checkDelimiters(cp.OpenArgs, cp.CloseArgs); err != nil {
		return fmt.Errorf("call %q: %w", call.Name, err)
	}
	return expectText(sf, cp.Name, call.Name)
}

func checkArgument(arg ast.Argument) error {
	switch arg.Kind {
	case ast.ArgString:
		if len(arg.Value) < 2 || arg.Value[0] != '"' || arg.Value[len(arg.Value)-1] != '"' {
			return fmt.Errorf("string argument %q is not quoted", arg.Value)
		}
	case ast.ArgIdent:
		if _, kw := token.LookupKeyword(arg.Value); kw {
			return fmt.Errorf("identifier argument %q is a keyword", arg.Value)
		}
	default:
		return fmt.Errorf("argument %q has unknown kind %d", arg.Value, arg.Kind)
	}
	return nil
}

func checkOrdered(positions []ast.Position, sf *source.File) error {
	for i, pos := range positions {
		if err := checkInFile(pos, sf); err != nil {
			return err
		}
		if i > 0 && !positions[i-1].Before(pos) {
			return fmt.Errorf("position %v is not after %v", pos, positions[i-1])
		}
	}
	return nil
}

func checkDelimiters(positions ...ast.Position) error {
	for _, pos := range positions {
		if pos.EndColumn != pos.Column+1 {
			return fmt.Errorf("delimiter at %s is not one column wide", pos.Extent())
		}
	}
	return nil
}

func checkInFile(pos ast.Position, sf *source.File) error {
	if pos.Line == 0 || pos.Column == 0 {
		return fmt.Errorf("position %v is not 1-based", pos)
	}
	lines, err := safecast.Conv[uint32](len(sf.LineIdx) + 1)
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	if pos.Line > lines {
		return fmt.Errorf("line %d beyond last line %d", pos.Line, lines)
	}
	return nil
}

// expectText checks that the source at pos starts with the first line of
// want and that EndColumn is one past the last character of want.
func expectText(sf *source.File, pos ast.Position, want string) error {
	line := sf.Line(pos.Line)
	col := int(pos.Column)
	if utf8.RuneCountInString(line) < col-1 {
		return fmt.Errorf("column %v beyond line end", pos)
	}
	rest := line
	for range col - 1 {
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	first, _, _ := strings.Cut(want, "\n")
	if !strings.HasPrefix(rest, first) {
		return fmt.Errorf("at %v: source %q does not start with %q", pos, rest, first)
	}

	end := pos.Column + runes(want)
	if i := strings.LastIndexByte(want, '\n'); i >= 0 {
		end = 1 + runes(want[i+1:])
	}
	if pos.EndColumn != end {
		return fmt.Errorf("%q at %s: end column should be %d", want, pos.Extent(), end)
	}
	return nil
}

func runes(s string) uint32 {
	n, err := safecast.Conv[uint32](utf8.RuneCountInString(s))
	if err != nil {
		panic(fmt.Errorf("text length overflow: %w", err))
	}
	return n
}
