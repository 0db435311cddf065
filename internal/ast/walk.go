package ast

import "sort"

// Visitor receives every node of a Program in source order.
// Returning false from a Visit method skips the node's children.
type Visitor interface {
	VisitComponent(c *ComponentDecl) bool
	VisitCall(owner *ComponentDecl, call *Call) bool
	VisitArgument(call *Call, arg *Argument)
}

// Walk traverses p depth first.
func Walk(p *Program, v Visitor) {
	if p == nil {
		return
	}
	for _, c := range p.Components {
		if !v.VisitComponent(c) {
			continue
		}
		for _, call := range c.Body {
			if !v.VisitCall(c, call) {
				continue
			}
			for i := range call.Arguments {
				v.VisitArgument(call, &call.Arguments[i])
			}
		}
	}
}

// ParamNames returns parameter names ordered by declaration position.
func (c *ComponentDecl) ParamNames() []string {
	names := make([]string, 0, len(c.Parameters))
	for name := range c.Parameters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := c.Parameters[names[i]].Position, c.Parameters[names[j]].Position
		if pi == pj {
			return names[i] < names[j]
		}
		return pi.Before(pj)
	})
	return names
}
