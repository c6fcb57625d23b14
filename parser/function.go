package parser

import (
	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/tokenizer"
)

func (p *parser) parseFunctionDeclaration(start int, async bool) (ast.Stmt, error) {
	p.next()

	generator := p.eat("*")

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	params, body, err := p.parseFunctionRest(async, generator)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Span:      p.span(start),
		ID:        id,
		Params:    params,
		Body:      body,
		Async:     async,
		Generator: generator,
	}, nil
}

func (p *parser) parseFunctionExpression(start int, async bool) (ast.Expr, error) {
	p.next()

	generator := p.eat("*")

	var id *ast.Identifier

	if p.cur().Type == tokenizer.IDENTIFIER {
		var err error
		if id, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}

	params, body, err := p.parseFunctionRest(async, generator)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionExpression{
		Span:      p.span(start),
		ID:        id,
		Params:    params,
		Body:      body,
		Async:     async,
		Generator: generator,
	}, nil
}

// parseMethod parses the parameter list and body of an object or class method.
func (p *parser) parseMethod(async, generator bool) (*ast.FunctionExpression, error) {
	start := p.start()

	params, body, err := p.parseFunctionRest(async, generator)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionExpression{Span: p.span(start), Params: params, Body: body, Async: async, Generator: generator}, nil
}

func (p *parser) parseFunctionRest(async, generator bool) ([]ast.Expr, *ast.BlockStatement, error) {
	saved := p.enterFunction(async, generator)
	defer p.restore(saved)

	params, err := p.parseParams()
	if err != nil {
		return nil, nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}

	return params, body, nil
}

func (p *parser) parseParams() ([]ast.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	params := []ast.Expr{}

	for !p.is(")") {
		if p.is("...") {
			start := p.start()
			p.next()

			target, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}

			params = append(params, &ast.SpreadElement{Span: p.span(start), Argument: target})

			if !p.is(")") {
				return nil, p.errorf(p.cur(), "rest parameter must be last")
			}

			break
		}

		param, err := p.parseBindingElement()
		if err != nil {
			return nil, err
		}

		params = append(params, param)

		if !p.is(")") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()

	return params, nil
}

// parseArrow parses an arrow function whose parameters start at the current token.
func (p *parser) parseArrow(start int, async, slices bool) (ast.Expr, error) {
	saved := p.enterFunction(async, false)
	defer p.restore(saved)

	arrow := &ast.ArrowFunctionExpression{Async: async}

	if p.is("(") {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}

		arrow.Params = params
	} else {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		arrow.Params = []ast.Expr{id}
	}

	if p.cur().NewlineBefore {
		return nil, p.errorf(p.cur(), "line terminator before arrow")
	}

	if err := p.expect("=>"); err != nil {
		return nil, err
	}

	var err error

	if p.is("{") {
		arrow.Body, err = p.parseBlock()
	} else {
		arrow.Expression, err = p.parseAssignment(slices)
	}

	if err != nil {
		return nil, err
	}

	arrow.Span = p.span(start)

	return arrow, nil
}

// Binding patterns reuse the expression nodes: arrays, objects, spread for rest elements
// and "=" assignments for defaults.

func (p *parser) parseBindingTarget() (ast.Expr, error) {
	switch {
	case p.is("["):
		return p.parseArrayPattern()
	case p.is("{"):
		return p.parseObjectPattern()
	}

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	return id, nil
}

func (p *parser) parseBindingElement() (ast.Expr, error) {
	start := p.start()

	target, err := p.parseBindingTarget()
	if err != nil {
		return nil, err
	}

	if !p.eat("=") {
		return target, nil
	}

	def, err := p.parseAssign()
	if err != nil {
		return nil, err
	}

	return &ast.AssignmentExpression{Span: p.span(start), Operator: "=", Left: target, Right: def}, nil
}

func (p *parser) parseArrayPattern() (ast.Expr, error) {
	start := p.start()
	p.next()

	pattern := &ast.ArrayExpression{}

	for !p.is("]") {
		if p.eat(",") {
			pattern.Elements = append(pattern.Elements, nil)
			continue
		}

		var (
			elem ast.Expr
			err  error
		)

		if p.is("...") {
			restStart := p.start()
			p.next()

			target, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}

			elem = &ast.SpreadElement{Span: p.span(restStart), Argument: target}
		} else if elem, err = p.parseBindingElement(); err != nil {
			return nil, err
		}

		pattern.Elements = append(pattern.Elements, elem)

		if !p.is("]") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()
	pattern.Span = p.span(start)

	return pattern, nil
}

func (p *parser) parseObjectPattern() (ast.Expr, error) {
	start := p.start()
	p.next()

	pattern := &ast.ObjectExpression{}

	for !p.is("}") {
		propStart := p.start()

		if p.eat("...") {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}

			pattern.Properties = append(pattern.Properties, &ast.SpreadElement{Span: p.span(propStart), Argument: id})
		} else {
			prop, err := p.parsePatternProperty(propStart)
			if err != nil {
				return nil, err
			}

			pattern.Properties = append(pattern.Properties, prop)
		}

		if !p.is("}") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()
	pattern.Span = p.span(start)

	return pattern, nil
}

func (p *parser) parsePatternProperty(start int) (*ast.Property, error) {
	keyTok := p.cur()

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}

	prop := &ast.Property{Key: key, Computed: computed, Kind: ast.PropertyInit}

	if p.eat(":") {
		if prop.Value, err = p.parseBindingElement(); err != nil {
			return nil, err
		}

		prop.Span = p.span(start)

		return prop, nil
	}

	id, ok := key.(*ast.Identifier)
	if !ok || keyTok.Type != tokenizer.IDENTIFIER {
		return nil, p.errorf(keyTok, "expected ':' after computed or literal key in pattern")
	}

	value := &ast.Identifier{Span: id.Span, Name: id.Name}
	prop.Shorthand = true
	prop.Value = value

	if p.eat("=") {
		def, err := p.parseAssign()
		if err != nil {
			return nil, err
		}

		prop.Value = &ast.AssignmentExpression{Span: p.span(start), Operator: "=", Left: value, Right: def}
	}

	prop.Span = p.span(start)

	return prop, nil
}

// Classes

func (p *parser) parseClassDeclaration() (ast.Stmt, error) {
	start := p.start()
	p.next()

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	superClass, body, err := p.parseClassTail()
	if err != nil {
		return nil, err
	}

	return &ast.ClassDeclaration{Span: p.span(start), ID: id, SuperClass: superClass, Body: body}, nil
}

func (p *parser) parseClassExpression() (ast.Expr, error) {
	start := p.start()
	p.next()

	var id *ast.Identifier

	if p.cur().Type == tokenizer.IDENTIFIER {
		var err error
		if id, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
	}

	superClass, body, err := p.parseClassTail()
	if err != nil {
		return nil, err
	}

	return &ast.ClassExpression{Span: p.span(start), ID: id, SuperClass: superClass, Body: body}, nil
}

func (p *parser) parseClassTail() (ast.Expr, []ast.ClassElement, error) {
	var superClass ast.Expr

	if p.eat("extends") {
		var err error
		if superClass, err = p.parseCallOrMember(); err != nil {
			return nil, nil, err
		}
	}

	if err := p.expect("{"); err != nil {
		return nil, nil, err
	}

	var body []ast.ClassElement

	for !p.eat("}") {
		if p.eat(";") {
			continue
		}

		if p.cur().Type == tokenizer.EOF {
			return nil, nil, p.unexpected()
		}

		member, err := p.parseClassMember()
		if err != nil {
			return nil, nil, err
		}

		body = append(body, member)
	}

	return superClass, body, nil
}

func (p *parser) parseClassMember() (ast.ClassElement, error) {
	start := p.start()
	static := false

	if p.isIdent("static") && p.modifierFollows() {
		p.next()

		static = true

		if p.is("{") {
			saved := p.enterFunction(false, false)
			block, err := p.parseBlock()
			p.restore(saved)

			if err != nil {
				return nil, err
			}

			return &ast.StaticBlock{Span: p.span(start), Body: block.Body}, nil
		}
	}

	var async, generator bool

	kind := ast.MethodPlain

	if p.isIdent("async") && p.modifierFollows() && !p.peekAt(1).NewlineBefore {
		p.next()

		async = true
	}

	if p.eat("*") {
		generator = true
	}

	accessor := false

	if !async && !generator && (p.isIdent("get") || p.isIdent("set")) && p.modifierFollows() {
		kind = ast.MethodKind(p.next().Value)
		accessor = true
	}

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}

	if async || generator || accessor || p.is("(") {
		fn, err := p.parseMethod(async, generator)
		if err != nil {
			return nil, err
		}

		if kind == ast.MethodPlain && !static && !computed && isConstructorKey(key) {
			kind = ast.MethodConstructor
		}

		return &ast.MethodDefinition{Span: p.span(start), Key: key, Value: fn, Kind: kind, Computed: computed, Static: static}, nil
	}

	field := &ast.PropertyDefinition{Key: key, Computed: computed, Static: static}

	if p.eat("=") {
		saved := p.enterFunction(false, false)
		field.Value, err = p.parseAssign()
		p.restore(saved)

		if err != nil {
			return nil, err
		}
	}

	if err := p.semicolon(); err != nil {
		return nil, err
	}

	field.Span = p.span(start)

	return field, nil
}

func isConstructorKey(key ast.Expr) bool {
	switch key := key.(type) {
	case *ast.Identifier:
		return key.Name == "constructor"
	case *ast.Literal:
		return key.Kind == ast.LiteralString && len(key.Raw) > 2 && key.Raw[1:len(key.Raw)-1] == "constructor"
	default:
		return false
	}
}
