package printer

import (
	"strings"

	"github.com/shibukawa/snapjs/ast"
)

func (p *Printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		p.expressionStatement(s)
	case *ast.BlockStatement:
		p.block(s.Body)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.DebuggerStatement:
		p.write("debugger;")
	case *ast.VariableDeclaration:
		p.variableDeclaration(s)
		p.write(";")
	case *ast.FunctionDeclaration:
		p.function(s.ID, s.Params, s.Body, s.Async, s.Generator)
	case *ast.ClassDeclaration:
		p.class(s.ID, s.SuperClass, s.Body)
	case *ast.IfStatement:
		p.ifStatement(s)
	case *ast.ForStatement:
		p.forStatement(s)
	case *ast.ForInStatement:
		p.write("for (")
		p.forLeft(s.Left)
		p.write(" in ")
		p.expr(s.Right, levelSequence)
		p.write(")")
		p.body(s.Body)
	case *ast.ForOfStatement:
		p.write("for ")

		if s.Await {
			p.write("await ")
		}

		p.write("(")
		p.forLeft(s.Left)
		p.write(" of ")
		p.expr(s.Right, levelAssign)
		p.write(")")
		p.body(s.Body)
	case *ast.WhileStatement:
		p.write("while (")
		p.expr(s.Test, levelSequence)
		p.write(")")
		p.body(s.Body)
	case *ast.DoWhileStatement:
		p.write("do")
		p.body(s.Body)

		if _, ok := s.Body.(*ast.BlockStatement); ok {
			p.write(" ")
		} else {
			p.newline()
		}

		p.write("while (")
		p.expr(s.Test, levelSequence)
		p.write(");")
	case *ast.ReturnStatement:
		p.write("return")
		p.optionalArgument(s.Argument)
		p.write(";")
	case *ast.BreakStatement:
		p.write("break")
		p.label(s.Label)
		p.write(";")
	case *ast.ContinueStatement:
		p.write("continue")
		p.label(s.Label)
		p.write(";")
	case *ast.ThrowStatement:
		p.write("throw")
		p.optionalArgument(s.Argument)
		p.write(";")
	case *ast.TryStatement:
		p.write("try ")
		p.block(s.Block.Body)

		if s.Handler != nil {
			p.write(" catch ")
			p.catchClause(s.Handler)
		}

		if s.Finalizer != nil {
			p.write(" finally ")
			p.block(s.Finalizer.Body)
		}
	case *ast.SwitchStatement:
		p.write("switch (")
		p.expr(s.Discriminant, levelSequence)
		p.write(") {")
		p.level++

		for _, c := range s.Cases {
			p.newline()
			p.switchCase(c)
		}

		p.level--
		p.newline()
		p.write("}")
	case *ast.LabeledStatement:
		p.write(s.Label.Name)
		p.write(": ")
		p.stmt(s.Body)
	}
}

// expressionStatement parenthesizes expressions whose first token would otherwise be read
// as a block, a declaration or a let declaration.
func (p *Printer) expressionStatement(s *ast.ExpressionStatement) {
	text := p.capture(func() { p.expr(s.Expression, levelSequence) })

	if ambiguousStatementStart(text) {
		text = "(" + text + ")"
	}

	p.write(text)
	p.write(";")
}

func ambiguousStatementStart(text string) bool {
	switch {
	case strings.HasPrefix(text, "{"),
		strings.HasPrefix(text, "let["),
		hasWordPrefix(text, "function"),
		hasWordPrefix(text, "class"),
		hasWordPrefix(text, "async function"):
		return true
	default:
		return false
	}
}

// hasWordPrefix reports whether text starts with word followed by a non-identifier byte.
func hasWordPrefix(text, word string) bool {
	if !strings.HasPrefix(text, word) {
		return false
	}

	if len(text) == len(word) {
		return true
	}

	c := text[len(word)]

	return !(c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80)
}

func (p *Printer) block(body []ast.Stmt) {
	if len(body) == 0 {
		p.write("{}")
		return
	}

	p.write("{")
	p.level++

	for _, stmt := range body {
		p.newline()
		p.stmt(stmt)
	}

	p.level--
	p.newline()
	p.write("}")
}

// body prints a loop or if body: blocks on the same line, other statements after a space.
func (p *Printer) body(s ast.Stmt) {
	p.write(" ")
	p.stmt(s)
}

func (p *Printer) optionalArgument(arg ast.Expr) {
	if arg == nil {
		return
	}

	p.write(" ")
	p.expr(arg, levelSequence)
}

func (p *Printer) label(label *ast.Identifier) {
	if label != nil {
		p.write(" ")
		p.write(label.Name)
	}
}

func (p *Printer) variableDeclaration(s *ast.VariableDeclaration) {
	p.write(s.Kind)
	p.write(" ")

	for i, d := range s.Declarations {
		if i > 0 {
			p.write(", ")
		}

		p.declarator(d)
	}
}

func (p *Printer) declarator(d *ast.VariableDeclarator) {
	p.expr(d.ID, levelAssign)

	if d.Init != nil {
		p.write(" = ")
		p.expr(d.Init, levelAssign)
	}
}

func (p *Printer) ifStatement(s *ast.IfStatement) {
	p.write("if (")
	p.expr(s.Test, levelSequence)
	p.write(")")

	consequent := s.Consequent
	if _, ok := consequent.(*ast.BlockStatement); !ok && s.Alternate != nil {
		// Keeps a nested if from capturing the else.
		consequent = &ast.BlockStatement{Body: []ast.Stmt{consequent}}
	}

	p.body(consequent)

	if s.Alternate == nil {
		return
	}

	p.write(" else")
	p.body(s.Alternate)
}

func (p *Printer) forStatement(s *ast.ForStatement) {
	p.write("for (")

	if s.Init != nil {
		text := p.capture(func() { p.forLeft(s.Init) })

		if containsIn(s.Init) {
			text = p.capture(func() { p.forInitWithIn(s.Init) })
		}

		p.write(text)
	}

	p.write(";")

	if s.Test != nil {
		p.write(" ")
		p.expr(s.Test, levelSequence)
	}

	p.write(";")

	if s.Update != nil {
		p.write(" ")
		p.expr(s.Update, levelSequence)
	}

	p.write(")")
	p.body(s.Body)
}

// forInitWithIn parenthesizes initializers containing the in operator, which would
// otherwise turn the loop into a for-in.
func (p *Printer) forInitWithIn(init ast.Node) {
	switch init := init.(type) {
	case *ast.VariableDeclaration:
		p.write(init.Kind)
		p.write(" ")

		for i, d := range init.Declarations {
			if i > 0 {
				p.write(", ")
			}

			p.expr(d.ID, levelAssign)

			if d.Init != nil {
				p.write(" = ")
				p.exprParen(d.Init, containsIn(d.Init))
			}
		}
	case ast.Expr:
		p.write("(")
		p.expr(init, levelSequence)
		p.write(")")
	}
}

func (p *Printer) forLeft(left ast.Node) {
	switch left := left.(type) {
	case *ast.VariableDeclaration:
		p.variableDeclaration(left)
	case ast.Expr:
		p.expr(left, levelCall)
	}
}

// containsIn reports whether an in operator occurs outside nested functions and brackets.
func containsIn(n ast.Node) bool {
	found := false

	ast.Inspect(n, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BinaryExpression:
			if n.Operator == "in" {
				found = true
			}
		case *ast.FunctionExpression, *ast.ArrowFunctionExpression, *ast.ClassExpression,
			*ast.ArrayExpression, *ast.ObjectExpression, *ast.CallExpression, *ast.TemplateLiteral:
			return false
		}

		return !found
	})

	return found
}

func (p *Printer) catchClause(c *ast.CatchClause) {
	if c.Param != nil {
		p.write("(")
		p.expr(c.Param, levelAssign)
		p.write(") ")
	}

	p.block(c.Body.Body)
}

func (p *Printer) switchCase(c *ast.SwitchCase) {
	if c.Test != nil {
		p.write("case ")
		p.expr(c.Test, levelSequence)
		p.write(":")
	} else {
		p.write("default:")
	}

	p.level++

	for _, stmt := range c.Consequent {
		p.newline()
		p.stmt(stmt)
	}

	p.level--
}
