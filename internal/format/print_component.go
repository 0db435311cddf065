package format

import (
	"strings"

	"decay/internal/ast"
)

// component name(a, b) {
//     Call(x, "y")
// }
func (p *printer) printComponent(c *ast.ComponentDecl) {
	o := p.out
	o.text("component " + c.Name + "(" + strings.Join(c.ParamNames(), ", ") + ") ")
	if len(c.Body) == 0 {
		o.text("{}")
		return
	}
	o.text("{")
	o.indent()
	for _, call := range c.Body {
		o.newline()
		p.printCall(call)
	}
	o.dedent()
	o.newline()
	o.text("}")
}

func (p *printer) printCall(call *ast.Call) {
	o := p.out
	o.text(call.Name + "(")
	for i, arg := range call.Arguments {
		if i > 0 {
			o.text(", ")
		}
		// строки печатаются как есть, вместе с кавычками и переводами строк
		o.text(arg.Value)
	}
	o.text(")")
}
