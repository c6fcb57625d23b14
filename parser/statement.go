package parser

import (
	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/tokenizer"
)

// labelBodyStarters are the tokens that, after "ident:", make a labelled statement rather
// than a slice when slices are enabled.
var labelBodyStarters = map[string]bool{
	"for": true, "while": true, "do": true, "switch": true, "if": true, "{": true, "try": true,
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	tok := p.cur()

	switch tok.Type {
	case tokenizer.PUNCTUATOR:
		switch tok.Value {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return &ast.EmptyStatement{Span: p.span(tok.Position.Offset)}, nil
		}
	case tokenizer.KEYWORD:
		switch tok.Value {
		case "var", "const":
			return p.parseVariableStatement()
		case "function":
			return p.parseFunctionDeclaration(p.start(), false)
		case "class":
			return p.parseClassDeclaration()
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "return":
			return p.parseReturn()
		case "break", "continue":
			return p.parseBreakContinue()
		case "throw":
			return p.parseThrow()
		case "try":
			return p.parseTry()
		case "switch":
			return p.parseSwitch()
		case "debugger":
			p.next()

			if err := p.semicolon(); err != nil {
				return nil, err
			}

			return &ast.DebuggerStatement{Span: p.span(tok.Position.Offset)}, nil
		case "import":
			if !p.peekAt(1).Is("(") && !p.peekAt(1).Is(".") {
				return nil, p.errorf(tok, "import declarations are not supported")
			}
		case "export":
			return nil, p.errorf(tok, "export declarations are not supported")
		case "with":
			return nil, p.errorf(tok, "with statements are not supported")
		}
	case tokenizer.IDENTIFIER:
		next := p.peekAt(1)

		switch {
		case tok.Value == "let" && (next.Type == tokenizer.IDENTIFIER || next.Is("[") || next.Is("{")):
			return p.parseVariableStatement()
		case tok.Value == "async" && next.Is("function") && !next.NewlineBefore:
			start := p.start()
			p.next()

			return p.parseFunctionDeclaration(start, true)
		case next.Is(":") && p.isLabel():
			return p.parseLabeled()
		}
	}

	return p.parseExpressionStatement()
}

// isLabel decides whether "ident :" starts a labelled statement. With slices enabled
// the colon may also start a slice, so only loop, switch, if, try and block bodies make
// a label.
func (p *parser) isLabel() bool {
	if !p.opts.Slices {
		return true
	}

	tok := p.peekAt(2)

	return (tok.Type == tokenizer.KEYWORD || tok.Type == tokenizer.PUNCTUATOR) && labelBodyStarters[tok.Value]
}

func (p *parser) parseExpressionStatement() (ast.Stmt, error) {
	start := p.start()

	expr, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{Span: p.span(start), Expression: expr}, nil
}

func (p *parser) parseBlock() (*ast.BlockStatement, error) {
	start := p.start()

	if err := p.expect("{"); err != nil {
		return nil, err
	}

	block := &ast.BlockStatement{}

	for !p.is("}") {
		if p.cur().Type == tokenizer.EOF {
			return nil, p.unexpected()
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		block.Body = append(block.Body, stmt)
	}

	p.next()
	block.Span = p.span(start)

	return block, nil
}

func (p *parser) parseVariableStatement() (ast.Stmt, error) {
	decl, err := p.parseVariableDeclaration()
	if err != nil {
		return nil, err
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	decl.Span = p.span(decl.Start)

	return decl, nil
}

// parseVariableDeclaration parses "kind a = 1, b" without the trailing semicolon.
func (p *parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	start := p.start()
	decl := &ast.VariableDeclaration{Kind: p.next().Value}

	for {
		declStart := p.start()

		id, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}

		declarator := &ast.VariableDeclarator{ID: id}

		if p.eat("=") {
			if declarator.Init, err = p.parseAssign(); err != nil {
				return nil, err
			}
		}

		declarator.Span = p.span(declStart)
		decl.Declarations = append(decl.Declarations, declarator)

		if !p.eat(",") {
			break
		}
	}

	decl.Span = p.span(start)

	return decl, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	start := p.start()
	p.next()

	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	consequent, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Test: test, Consequent: consequent}

	if p.eat("else") {
		if stmt.Alternate, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}

	stmt.Span = p.span(start)

	return stmt, nil
}

func (p *parser) parseParenExpression() (ast.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	expr, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	start := p.start()
	p.next()

	await := false

	if p.isIdent("await") {
		if !p.awaitAllowed() {
			return nil, p.errorf(p.cur(), "for await is only valid in async functions")
		}

		p.next()

		await = true
	}

	if err := p.expect("("); err != nil {
		return nil, err
	}

	var init ast.Node

	switch {
	case p.is(";"):
	case p.is("var") || p.is("const") || (p.isIdent("let") && !p.peekAt(1).Is("in") && !p.peekAt(1).IsIdent("of")):
		p.noIn = true
		decl, err := p.parseVariableDeclaration()
		p.noIn = false

		if err != nil {
			return nil, err
		}

		init = decl
	default:
		p.noIn = true
		expr, err := p.parseExpression(true)
		p.noIn = false

		if err != nil {
			return nil, err
		}

		init = expr
	}

	if init != nil && (p.is("in") || p.isIdent("of")) {
		return p.parseForInOf(start, init, await)
	}

	if await {
		return nil, p.errorf(p.cur(), "for await requires an of clause")
	}

	if err := p.expect(";"); err != nil {
		return nil, err
	}

	stmt := &ast.ForStatement{Init: init}

	var err error

	if !p.is(";") {
		if stmt.Test, err = p.parseExpression(true); err != nil {
			return nil, err
		}
	}

	if err := p.expect(";"); err != nil {
		return nil, err
	}

	if !p.is(")") {
		if stmt.Update, err = p.parseExpression(true); err != nil {
			return nil, err
		}
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}

	stmt.Span = p.span(start)

	return stmt, nil
}

func (p *parser) parseForInOf(start int, left ast.Node, await bool) (ast.Stmt, error) {
	if decl, ok := left.(*ast.VariableDeclaration); ok && len(decl.Declarations) != 1 {
		return nil, p.errorf(p.cur(), "only one binding is allowed in a for-%s loop", p.cur().Value)
	}

	if expr, ok := left.(ast.Expr); ok && !isAssignTarget(expr, true) {
		return nil, p.errorf(p.cur(), "invalid left-hand side in for-%s loop", p.cur().Value)
	}

	of := p.isIdent("of")
	if !of && await {
		return nil, p.errorf(p.cur(), "for await requires an of clause")
	}

	p.next()

	var (
		right ast.Expr
		err   error
	)

	if of {
		right, err = p.parseAssign()
	} else {
		right, err = p.parseExpression(true)
	}

	if err != nil {
		return nil, err
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if of {
		return &ast.ForOfStatement{Span: p.span(start), Left: left, Right: right, Body: body, Await: await}, nil
	}

	return &ast.ForInStatement{Span: p.span(start), Left: left, Right: right, Body: body}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	start := p.start()
	p.next()

	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Span: p.span(start), Test: test, Body: body}, nil
}

func (p *parser) parseDoWhile() (ast.Stmt, error) {
	start := p.start()
	p.next()

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if err := p.expect("while"); err != nil {
		return nil, err
	}

	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	// The semicolon after do-while is always optional.
	p.eat(";")

	return &ast.DoWhileStatement{Span: p.span(start), Body: body, Test: test}, nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	tok := p.next()

	if !p.inFunction && !p.opts.AllowReturnOutsideFunction {
		return nil, p.errorf(tok, "return outside of function")
	}

	stmt := &ast.ReturnStatement{}

	if !p.is(";") && !p.canInsertSemicolon() {
		arg, err := p.parseExpression(true)
		if err != nil {
			return nil, err
		}

		stmt.Argument = arg
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	stmt.Span = p.span(tok.Position.Offset)

	return stmt, nil
}

func (p *parser) parseBreakContinue() (ast.Stmt, error) {
	tok := p.next()

	var label *ast.Identifier

	if p.cur().Type == tokenizer.IDENTIFIER && !p.cur().NewlineBefore {
		var err error
		if label, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	if tok.Value == "break" {
		return &ast.BreakStatement{Span: p.span(tok.Position.Offset), Label: label}, nil
	}

	return &ast.ContinueStatement{Span: p.span(tok.Position.Offset), Label: label}, nil
}

func (p *parser) parseThrow() (ast.Stmt, error) {
	tok := p.next()

	if p.cur().NewlineBefore {
		return nil, p.errorf(p.cur(), "illegal newline after throw")
	}

	arg, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	return &ast.ThrowStatement{Span: p.span(tok.Position.Offset), Argument: arg}, nil
}

func (p *parser) parseTry() (ast.Stmt, error) {
	start := p.start()
	p.next()

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.TryStatement{Block: block}

	if p.is("catch") {
		clauseStart := p.start()
		p.next()

		clause := &ast.CatchClause{}

		if p.eat("(") {
			if clause.Param, err = p.parseBindingTarget(); err != nil {
				return nil, err
			}

			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}

		if clause.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}

		clause.Span = p.span(clauseStart)
		stmt.Handler = clause
	}

	if p.eat("finally") {
		if stmt.Finalizer, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}

	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, p.errorf(p.cur(), "missing catch or finally after try")
	}

	stmt.Span = p.span(start)

	return stmt, nil
}

func (p *parser) parseSwitch() (ast.Stmt, error) {
	start := p.start()
	p.next()

	discriminant, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect("{"); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStatement{Discriminant: discriminant}

	for !p.eat("}") {
		caseStart := p.start()
		clause := &ast.SwitchCase{}

		switch {
		case p.eat("case"):
			// The colon after a case test belongs to the case clause.
			if clause.Test, err = p.parseExpression(false); err != nil {
				return nil, err
			}
		case p.eat("default"):
		default:
			return nil, p.unexpected()
		}

		if err := p.expect(":"); err != nil {
			return nil, err
		}

		for !p.is("case") && !p.is("default") && !p.is("}") {
			if p.cur().Type == tokenizer.EOF {
				return nil, p.unexpected()
			}

			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			clause.Consequent = append(clause.Consequent, s)
		}

		clause.Span = p.span(caseStart)
		stmt.Cases = append(stmt.Cases, clause)
	}

	stmt.Span = p.span(start)

	return stmt, nil
}

func (p *parser) parseLabeled() (ast.Stmt, error) {
	start := p.start()

	label, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := p.expect(":"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.LabeledStatement{Span: p.span(start), Label: label, Body: body}, nil
}
