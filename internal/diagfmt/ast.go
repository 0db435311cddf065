package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"decay/internal/ast"
)

// ASTFormat selects how parse results are printed.
type ASTFormat uint8

const (
	ASTFormatJSON ASTFormat = iota
	ASTFormatYAML
	ASTFormatTree
)

// ParseASTFormat converts a --format value.
func ParseASTFormat(s string) (ASTFormat, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return ASTFormatJSON, nil
	case "yaml", "yml":
		return ASTFormatYAML, nil
	case "tree":
		return ASTFormatTree, nil
	default:
		return ASTFormatJSON, fmt.Errorf("unknown format %q (expected: json|yaml|tree)", s)
	}
}

// FormatAST writes one program in the given format.
func FormatAST(w io.Writer, prog *ast.Program, format ASTFormat) error {
	switch format {
	case ASTFormatYAML:
		return FormatASTYAML(w, prog)
	case ASTFormatTree:
		return FormatASTTree(w, prog, "Program")
	default:
		return FormatASTJSON(w, prog)
	}
}

// FormatASTs writes several programs keyed by path. JSON and YAML produce a
// single mapping; tree prints one tree per file in key order.
func FormatASTs(w io.Writer, paths []string, progs map[string]*ast.Program, format ASTFormat) error {
	switch format {
	case ASTFormatYAML:
		return FormatASTYAML(w, progs)
	case ASTFormatTree:
		for i, path := range paths {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := FormatASTTree(w, progs[path], path); err != nil {
				return err
			}
		}
		return nil
	default:
		return FormatASTJSON(w, progs)
	}
}

// FormatASTJSON writes v as indented JSON.
func FormatASTJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatASTYAML writes v as YAML.
func FormatASTYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return encoder.Close()
}

// FormatASTTree prints prog as an indented tree under header.
func FormatASTTree(w io.Writer, prog *ast.Program, header string) error {
	root := buildProgramTree(prog, header)
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	renderChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

type treeNode struct {
	label    string
	children []*treeNode
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

func buildProgramTree(prog *ast.Program, header string) *treeNode {
	root := &treeNode{label: header}
	if prog == nil {
		root.label += " <nil>"
		return root
	}
	for _, c := range prog.Components {
		root.children = append(root.children, buildComponentTree(c))
	}
	return root
}

func buildComponentTree(c *ast.ComponentDecl) *treeNode {
	node := leaf("Component %s @%s", c.Name, c.Positions.Name.Extent())

	params := leaf("Params (%s..%s)", c.Positions.OpenParams, c.Positions.CloseParams)
	for _, name := range c.ParamNames() {
		params.children = append(params.children, leaf("%s @%s", name, c.Parameters[name].Position.Extent()))
	}

	body := leaf("Body (%s..%s)", c.Positions.OpenBody, c.Positions.CloseBody)
	for _, call := range c.Body {
		callNode := leaf("Call %s @%s (%s..%s)", call.Name, call.Positions.Name.Extent(),
			call.Positions.OpenArgs, call.Positions.CloseArgs)
		for _, arg := range call.Arguments {
			callNode.children = append(callNode.children, leaf("%s %s @%s", arg.Kind, arg.Value, arg.Position.Extent()))
		}
		body.children = append(body.children, callNode)
	}

	node.children = []*treeNode{params, body}
	return node
}

func renderChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(child.label)
		sb.WriteByte('\n')
		renderChildren(sb, child.children, prefix+next)
	}
}
