package printer

import (
	"strings"

	"github.com/shibukawa/snapjs/ast"
)

// Binding levels, loosest first. Binary operators sit between levelConditional and
// levelUnary at levelConditional+ast.BinaryPrecedence[op].
const (
	levelSequence    = 0
	levelAssign      = 1
	levelConditional = 2
	levelUnary       = 15
	levelUpdate      = 16
	levelCall        = 17
	levelPrimary     = 18
)

func level(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.SequenceExpression:
		return levelSequence
	case *ast.AssignmentExpression, *ast.ArrowFunctionExpression, *ast.YieldExpression, *ast.SliceExpression:
		return levelAssign
	case *ast.ConditionalExpression:
		return levelConditional
	case *ast.BinaryExpression:
		return levelConditional + ast.BinaryPrecedence[e.Operator]
	case *ast.UnaryExpression, *ast.AwaitExpression:
		return levelUnary
	case *ast.UpdateExpression:
		return levelUpdate
	case *ast.CallExpression, *ast.NewExpression, *ast.MemberExpression, *ast.TaggedTemplateExpression,
		*ast.ChainExpression, *ast.MetaProperty, *ast.ImportExpression:
		return levelCall
	default:
		return levelPrimary
	}
}

// expr prints e, parenthesized when it binds looser than min.
func (p *Printer) expr(e ast.Expr, min int) {
	p.exprParen(e, level(e) < min)
}

func (p *Printer) exprParen(e ast.Expr, paren bool) {
	if paren {
		p.write("(")
		defer p.write(")")
	}

	switch e := e.(type) {
	case *ast.Identifier:
		p.write(e.Name)
	case *ast.PrivateName:
		p.write(e.Name)
	case *ast.Literal:
		p.write(e.Raw)
	case *ast.ThisExpression:
		p.write("this")
	case *ast.Super:
		p.write("super")
	case *ast.MetaProperty:
		p.write(e.Meta + "." + e.Property)
	case *ast.TemplateLiteral:
		p.template(e)
	case *ast.TaggedTemplateExpression:
		p.expr(e.Tag, levelCall)
		p.template(e.Quasi)
	case *ast.ArrayExpression:
		p.array(e)
	case *ast.ObjectExpression:
		p.object(e)
	case *ast.FunctionExpression:
		p.function(e.ID, e.Params, e.Body, e.Async, e.Generator)
	case *ast.ArrowFunctionExpression:
		p.arrow(e)
	case *ast.ClassExpression:
		p.class(e.ID, e.SuperClass, e.Body)
	case *ast.UnaryExpression:
		p.unary(e)
	case *ast.UpdateExpression:
		if e.Prefix {
			p.write(e.Operator)
			p.expr(e.Argument, levelUnary)
		} else {
			p.expr(e.Argument, levelCall)
			p.write(e.Operator)
		}
	case *ast.AwaitExpression:
		p.write("await ")
		p.expr(e.Argument, levelUnary)
	case *ast.YieldExpression:
		p.write("yield")

		if e.Delegate {
			p.write("*")
		}

		if e.Argument != nil {
			p.write(" ")
			p.expr(e.Argument, levelAssign)
		}
	case *ast.BinaryExpression:
		p.binary(e)
	case *ast.AssignmentExpression:
		p.expr(e.Left, levelCall)
		p.write(" " + e.Operator + " ")
		p.expr(e.Right, levelAssign)
	case *ast.ConditionalExpression:
		p.expr(e.Test, levelConditional+1)
		p.write(" ? ")
		p.expr(e.Consequent, levelAssign)
		p.write(" : ")
		p.expr(e.Alternate, levelAssign)
	case *ast.CallExpression:
		p.call(e)
	case *ast.NewExpression:
		p.write("new ")
		p.exprParen(e.Callee, level(e.Callee) < levelCall || containsCall(e.Callee))
		p.arguments(e.Arguments)
	case *ast.MemberExpression:
		p.member(e)
	case *ast.ChainExpression:
		p.expr(e.Expression, levelCall)
	case *ast.SequenceExpression:
		for i, x := range e.Expressions {
			if i > 0 {
				p.write(", ")
			}

			p.expr(x, levelAssign)
		}
	case *ast.SpreadElement:
		p.write("...")
		p.expr(e.Argument, levelAssign)
	case *ast.ImportExpression:
		p.write("import(")
		p.expr(e.Source, levelAssign)
		p.write(")")
	case *ast.SliceExpression:
		p.slice(e)
	}
}

func (p *Printer) template(t *ast.TemplateLiteral) {
	p.write("`")

	for i, quasi := range t.Quasis {
		p.write(quasi)

		if i < len(t.Expressions) {
			p.write("${")
			p.expr(t.Expressions[i], levelSequence)
			p.write("}")
		}
	}

	p.write("`")
}

func (p *Printer) array(a *ast.ArrayExpression) {
	p.write("[")

	for i, elem := range a.Elements {
		if i > 0 {
			p.write(", ")
		}

		if elem != nil {
			p.expr(elem, levelAssign)
		}
	}

	// A trailing hole needs its own comma.
	if n := len(a.Elements); n > 0 && a.Elements[n-1] == nil {
		p.write(",")
	}

	p.write("]")
}

func (p *Printer) object(o *ast.ObjectExpression) {
	if len(o.Properties) == 0 {
		p.write("{}")
		return
	}

	p.write("{")

	for i, prop := range o.Properties {
		if i > 0 {
			p.write(",")
		}

		p.write(" ")

		switch prop := prop.(type) {
		case *ast.Property:
			p.property(prop)
		case *ast.SpreadElement:
			p.expr(prop, levelAssign)
		}
	}

	p.write(" }")
}

func (p *Printer) property(prop *ast.Property) {
	if fn, ok := prop.Value.(*ast.FunctionExpression); ok && (prop.Method || prop.Kind != ast.PropertyInit) {
		p.method(string(prop.Kind), prop.Key, prop.Computed, fn)
		return
	}

	if prop.Shorthand {
		// Either the bound name or a pattern default (name = value).
		p.expr(prop.Value, levelAssign)
		return
	}

	p.key(prop.Key, prop.Computed)
	p.write(": ")
	p.expr(prop.Value, levelAssign)
}

func (p *Printer) key(key ast.Expr, computed bool) {
	if computed {
		p.write("[")
		p.expr(key, levelAssign)
		p.write("]")

		return
	}

	p.expr(key, levelPrimary)
}

// method prints an object or class method; kind is "get", "set" or a plain kind.
func (p *Printer) method(kind string, key ast.Expr, computed bool, fn *ast.FunctionExpression) {
	if fn.Async {
		p.write("async ")
	}

	if fn.Generator {
		p.write("*")
	}

	if kind == "get" || kind == "set" {
		p.write(kind + " ")
	}

	p.key(key, computed)
	p.params(fn.Params)
	p.write(" ")
	p.block(fn.Body.Body)
}

func (p *Printer) params(params []ast.Expr) {
	p.write("(")

	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}

		p.expr(param, levelAssign)
	}

	p.write(")")
}

func (p *Printer) function(id *ast.Identifier, params []ast.Expr, body *ast.BlockStatement, async, generator bool) {
	if async {
		p.write("async ")
	}

	p.write("function")

	if generator {
		p.write("*")
	}

	if id != nil {
		p.write(" " + id.Name)
	} else if generator {
		p.write(" ")
	}

	p.params(params)
	p.write(" ")
	p.block(body.Body)
}

func (p *Printer) arrow(a *ast.ArrowFunctionExpression) {
	if a.Async {
		p.write("async ")
	}

	p.params(a.Params)
	p.write(" => ")

	if a.Body != nil {
		p.block(a.Body.Body)
		return
	}

	text := p.capture(func() { p.expr(a.Expression, levelAssign) })

	// An object literal body would be read as a block.
	if strings.HasPrefix(text, "{") {
		text = "(" + text + ")"
	}

	p.write(text)
}

func (p *Printer) class(id *ast.Identifier, superClass ast.Expr, body []ast.ClassElement) {
	p.write("class")

	if id != nil {
		p.write(" " + id.Name)
	}

	if superClass != nil {
		p.write(" extends ")
		p.expr(superClass, levelCall)
	}

	if len(body) == 0 {
		p.write(" {}")
		return
	}

	p.write(" {")
	p.level++

	for _, member := range body {
		p.newline()
		p.classElement(member)
	}

	p.level--
	p.newline()
	p.write("}")
}

func (p *Printer) classElement(member ast.ClassElement) {
	switch m := member.(type) {
	case *ast.MethodDefinition:
		if m.Static {
			p.write("static ")
		}

		p.method(string(m.Kind), m.Key, m.Computed, m.Value)
	case *ast.PropertyDefinition:
		if m.Static {
			p.write("static ")
		}

		p.key(m.Key, m.Computed)

		if m.Value != nil {
			p.write(" = ")
			p.expr(m.Value, levelAssign)
		}

		p.write(";")
	case *ast.StaticBlock:
		p.write("static ")
		p.block(m.Body)
	}
}

func (p *Printer) unary(u *ast.UnaryExpression) {
	p.write(u.Operator)

	switch {
	case len(u.Operator) > 1:
		// typeof, void, delete
		p.write(" ")
	case u.Operator == "-" || u.Operator == "+":
		// Avoid gluing "- -x" into "--x".
		if text := p.capture(func() { p.expr(u.Argument, levelUnary) }); strings.HasPrefix(text, u.Operator) {
			p.write(" ")
		}
	}

	p.expr(u.Argument, levelUnary)
}

func (p *Printer) binary(b *ast.BinaryExpression) {
	lvl := level(b)
	leftMin, rightMin := lvl, lvl+1

	if b.Operator == "**" {
		leftMin, rightMin = lvl+1, lvl
	}

	leftParen := level(b.Left) < leftMin || mixesNullish(b.Operator, b.Left)
	if b.Operator == "**" {
		// -a ** b is a syntax error.
		switch b.Left.(type) {
		case *ast.UnaryExpression, *ast.AwaitExpression:
			leftParen = true
		}
	}

	p.exprParen(b.Left, leftParen)
	p.write(" " + b.Operator + " ")
	p.exprParen(b.Right, level(b.Right) < rightMin || mixesNullish(b.Operator, b.Right))
}

// mixesNullish reports whether child combines ?? with || or && across parent, which
// JavaScript rejects without parentheses.
func mixesNullish(parent string, child ast.Expr) bool {
	b, ok := child.(*ast.BinaryExpression)
	if !ok {
		return false
	}

	logical := func(op string) bool { return op == "||" || op == "&&" }

	return parent == "??" && logical(b.Operator) || logical(parent) && b.Operator == "??"
}

func (p *Printer) call(c *ast.CallExpression) {
	paren := level(c.Callee) < levelCall

	// Immediately invoked functions are always wrapped; a parenthesized chain must stay
	// parenthesized to keep its short circuit.
	switch c.Callee.(type) {
	case *ast.FunctionExpression, *ast.ClassExpression, *ast.ChainExpression:
		paren = true
	}

	p.exprParen(c.Callee, paren)

	if c.Optional {
		p.write("?.")
	}

	p.arguments(c.Arguments)
}

func (p *Printer) arguments(args []ast.Expr) {
	p.write("(")

	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}

		p.expr(arg, levelAssign)
	}

	p.write(")")
}

func (p *Printer) member(m *ast.MemberExpression) {
	paren := level(m.Object) < levelCall

	switch obj := m.Object.(type) {
	case *ast.ChainExpression:
		// (a?.b).c does not short-circuit like a?.b.c.
		paren = true
	case *ast.Literal:
		paren = obj.Kind == ast.LiteralNumber && isPlainInteger(obj.Raw) && !m.Computed
	}

	p.exprParen(m.Object, paren)

	switch {
	case m.Computed:
		if m.Optional {
			p.write("?.")
		}

		p.write("[")
		p.expr(m.Property, levelSequence)
		p.write("]")
	case m.Optional:
		p.write("?.")
		p.expr(m.Property, levelPrimary)
	default:
		p.write(".")
		p.expr(m.Property, levelPrimary)
	}
}

// isPlainInteger reports whether raw is a decimal literal that a following '.' would
// extend into a fraction.
func isPlainInteger(raw string) bool {
	for _, c := range raw {
		if (c < '0' || c > '9') && c != '_' {
			return false
		}
	}

	return raw != ""
}

// containsCall reports whether a new callee holds a call that would otherwise take the
// new's argument list.
func containsCall(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.CallExpression, *ast.ChainExpression:
		return true
	case *ast.MemberExpression:
		return containsCall(e.Object)
	case *ast.TaggedTemplateExpression:
		return containsCall(e.Tag)
	default:
		return false
	}
}

// slice prints an unlowered slice in its source form.
func (p *Printer) slice(s *ast.SliceExpression) {
	if s.StartIndex != nil {
		p.expr(s.StartIndex, levelConditional)
	}

	p.write(":")

	if s.EndIndex != nil {
		p.expr(s.EndIndex, levelConditional)
	}

	if s.Step != nil {
		p.write(":")
		p.expr(s.Step, levelConditional)
	}
}
