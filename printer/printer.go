// Package printer renders an AST back to JavaScript source.
//
// Output is normalized: one statement per line, two-space indentation by default and
// parentheses only where precedence or a statement-start ambiguity needs them. Comments
// and original layout are not preserved.
package printer

import (
	"strings"

	"github.com/shibukawa/snapjs/ast"
)

// DefaultIndent is used when Options.Indent is empty.
const DefaultIndent = "  "

// Options controls the output layout.
type Options struct {
	Indent string
}

// Printer formats AST nodes as source text
type Printer struct {
	indent string
	level  int
	out    *strings.Builder
}

// New creates a new printer
func New(opts ...Options) *Printer {
	p := &Printer{indent: DefaultIndent}

	for _, opt := range opts {
		if opt.Indent != "" {
			p.indent = opt.Indent
		}
	}

	return p
}

// Print renders node. Programs and statements end without a trailing newline.
func Print(node ast.Node, opts ...Options) string {
	return New(opts...).Print(node)
}

// Print renders node.
func (p *Printer) Print(node ast.Node) string {
	p.out = &strings.Builder{}
	p.level = 0

	switch n := node.(type) {
	case *ast.Program:
		p.program(n)
	case ast.Stmt:
		p.stmt(n)
	case ast.Expr:
		p.expr(n, levelSequence)
	default:
		p.node(n)
	}

	return strings.TrimSuffix(p.out.String(), "\n")
}

func (p *Printer) program(n *ast.Program) {
	for _, stmt := range n.Body {
		p.stmt(stmt)
		p.write("\n")
	}
}

// node prints the non-expression, non-statement nodes that can be passed to Print.
func (p *Printer) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.VariableDeclarator:
		p.declarator(n)
	case *ast.Property:
		p.property(n)
	case *ast.SwitchCase:
		p.switchCase(n)
	case *ast.CatchClause:
		p.write("catch ")
		p.catchClause(n)
	case ast.ClassElement:
		p.classElement(n)
	}
}

func (p *Printer) write(s string) {
	p.out.WriteString(s)
}

func (p *Printer) newline() {
	p.write("\n")
	p.write(strings.Repeat(p.indent, p.level))
}

// capture renders f into a separate buffer at the current indentation level.
func (p *Printer) capture(f func()) string {
	saved := p.out
	p.out = &strings.Builder{}

	f()

	s := p.out.String()
	p.out = saved

	return s
}
