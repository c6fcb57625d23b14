package parser

import (
	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/tokenizer"
)

// parseExpression parses a comma sequence. slices=false disables the slice extension for
// the outermost operands, where a following colon belongs to the enclosing construct.
func (p *parser) parseExpression(slices bool) (ast.Expr, error) {
	start := p.start()

	expr, err := p.parseAssignment(slices)
	if err != nil {
		return nil, err
	}

	if !p.is(",") {
		return expr, nil
	}

	seq := &ast.SequenceExpression{Expressions: []ast.Expr{expr}}

	for p.eat(",") {
		next, err := p.parseAssignment(slices)
		if err != nil {
			return nil, err
		}

		seq.Expressions = append(seq.Expressions, next)
	}

	seq.Span = p.span(start)

	return seq, nil
}

func (p *parser) parseAssign() (ast.Expr, error) {
	return p.parseAssignment(true)
}

func (p *parser) parseAssignment(slices bool) (ast.Expr, error) {
	if p.inGenerator && p.isIdent("yield") {
		return p.parseYield(slices)
	}

	arrow, ok, err := p.tryArrow(slices)
	if err != nil {
		return nil, err
	}

	if ok {
		return arrow, nil
	}

	start := p.start()

	left, err := p.parseMaybeConditional(slices)
	if err != nil {
		return nil, err
	}

	tok := p.cur()
	if tok.Type != tokenizer.PUNCTUATOR || !ast.AssignOperators[tok.Value] {
		return left, nil
	}

	if !isAssignTarget(left, tok.Value == "=") {
		return nil, p.errorf(tok, "invalid assignment target")
	}

	p.next()

	right, err := p.parseAssignment(slices)
	if err != nil {
		return nil, err
	}

	return &ast.AssignmentExpression{Span: p.span(start), Operator: tok.Value, Left: left, Right: right}, nil
}

// isAssignTarget reports whether e may appear left of an assignment operator. Array and
// object literals are destructuring targets for plain "=" only. A slice subscript is never
// a target: it is lowered to a call.
func isAssignTarget(e ast.Expr, allowPattern bool) bool {
	switch e := e.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberExpression:
		_, slice := e.Property.(*ast.SliceExpression)
		return !e.Optional && !slice
	case *ast.ArrayExpression:
		if !allowPattern {
			return false
		}

		for _, elem := range e.Elements {
			if elem != nil && !isPatternElement(elem) {
				return false
			}
		}

		return true
	case *ast.ObjectExpression:
		if !allowPattern {
			return false
		}

		for _, prop := range e.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Kind != ast.PropertyInit || prop.Method || !isPatternElement(prop.Value) {
					return false
				}
			case *ast.SpreadElement:
				if !isAssignTarget(prop.Argument, false) {
					return false
				}
			}
		}

		return true
	default:
		return false
	}
}

// isPatternElement reports whether e may stand inside a destructuring pattern, with an
// optional default value or as a rest element.
func isPatternElement(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.AssignmentExpression:
		return e.Operator == "=" && isAssignTarget(e.Left, true)
	case *ast.SpreadElement:
		return isAssignTarget(e.Argument, true)
	default:
		return isAssignTarget(e, true)
	}
}

func (p *parser) parseYield(slices bool) (ast.Expr, error) {
	start := p.start()
	p.next()

	expr := &ast.YieldExpression{}

	if p.is("*") && !p.cur().NewlineBefore {
		p.next()

		expr.Delegate = true
	}

	if expr.Delegate || startsOperand(p.cur()) {
		arg, err := p.parseAssignment(slices)
		if err != nil {
			return nil, err
		}

		expr.Argument = arg
	}

	expr.Span = p.span(start)

	return expr, nil
}

// startsOperand reports whether tok can begin an optional operand on the same line.
func startsOperand(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.EOF || tok.NewlineBefore {
		return false
	}

	switch tok.Value {
	case ")", "]", "}", ",", ";", ":":
		return tok.Type != tokenizer.PUNCTUATOR
	case "in", "of":
		return false
	}

	return true
}

func (p *parser) awaitAllowed() bool {
	return p.inAsync || (!p.inFunction && p.opts.AllowAwaitOutsideFunction)
}

// tryArrow parses an arrow function when the upcoming tokens start one.
func (p *parser) tryArrow(slices bool) (ast.Expr, bool, error) {
	tok := p.cur()
	next := p.peekAt(1)
	start := p.start()

	var async bool

	switch {
	case tok.Type == tokenizer.IDENTIFIER && next.Is("=>") && !next.NewlineBefore:
	case tok.IsIdent("async") && !next.NewlineBefore && next.Type == tokenizer.IDENTIFIER && p.peekAt(2).Is("=>"):
		async = true
	case tok.IsIdent("async") && !next.NewlineBefore && next.Is("(") && p.arrowAfterParen(p.pos+1):
		async = true
	case tok.Is("(") && p.arrowAfterParen(p.pos):
	default:
		return nil, false, nil
	}

	if async {
		p.next()
	}

	arrow, err := p.parseArrow(start, async, slices)
	if err != nil {
		return nil, true, err
	}

	return arrow, true, nil
}

// arrowAfterParen reports whether the parenthesis at token index i is closed by a
// parenthesis followed by "=>" on the same line.
func (p *parser) arrowAfterParen(i int) bool {
	depth := 0

	for ; i < len(p.tokens); i++ {
		tok := p.tokens[i]

		if tok.Type == tokenizer.EOF {
			return false
		}

		if tok.Type != tokenizer.PUNCTUATOR {
			continue
		}

		switch tok.Value {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--

			if depth == 0 {
				next := p.tokens[i+1]
				return next.Is("=>") && !next.NewlineBefore
			}
		}
	}

	return false
}

func (p *parser) parseConditional() (ast.Expr, error) {
	start := p.start()

	test, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	if !p.is("?") {
		return test, nil
	}

	p.next()

	saved := p.allowIn()

	// Both branches sit next to the ternary colon, so they never start a slice.
	consequent, err := p.parseAssignment(false)
	if err != nil {
		return nil, err
	}

	p.noIn = saved

	if err := p.expect(":"); err != nil {
		return nil, err
	}

	alternate, err := p.parseAssignment(false)
	if err != nil {
		return nil, err
	}

	return &ast.ConditionalExpression{Span: p.span(start), Test: test, Consequent: consequent, Alternate: alternate}, nil
}

func (p *parser) binaryPrecedence(tok tokenizer.Token) int {
	if tok.Type != tokenizer.PUNCTUATOR && tok.Type != tokenizer.KEYWORD {
		return 0
	}

	if tok.Value == "in" && p.noIn {
		return 0
	}

	return ast.BinaryPrecedence[tok.Value]
}

// parseBinary is precedence climbing over ast.BinaryPrecedence; ** is right associative.
func (p *parser) parseBinary(minPrec int) (ast.Expr, error) {
	start := p.start()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur()

		prec := p.binaryPrecedence(tok)
		if prec == 0 || prec < minPrec {
			return left, nil
		}

		p.next()

		nextMin := prec + 1
		if tok.Value == "**" {
			nextMin = prec
		}

		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{Span: p.span(start), Operator: tok.Value, Left: left, Right: right}
	}
}

func isUnaryOperator(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.PUNCTUATOR:
		return tok.Value == "!" || tok.Value == "~" || tok.Value == "+" || tok.Value == "-"
	case tokenizer.KEYWORD:
		return tok.Value == "typeof" || tok.Value == "void" || tok.Value == "delete"
	default:
		return false
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	tok := p.cur()
	start := p.start()

	switch {
	case isUnaryOperator(tok):
		p.next()

		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpression{Span: p.span(start), Operator: tok.Value, Argument: arg}, nil
	case tok.Is("++") || tok.Is("--"):
		p.next()

		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		if !isAssignTarget(arg, false) {
			return nil, p.errorf(tok, "invalid operand for %s", tok.Value)
		}

		return &ast.UpdateExpression{Span: p.span(start), Operator: tok.Value, Prefix: true, Argument: arg}, nil
	case tok.IsIdent("await") && p.awaitAllowed():
		p.next()

		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.AwaitExpression{Span: p.span(start), Argument: arg}, nil
	}

	expr, err := p.parseCallOrMember()
	if err != nil {
		return nil, err
	}

	tok = p.cur()
	if (tok.Is("++") || tok.Is("--")) && !tok.NewlineBefore {
		if !isAssignTarget(expr, false) {
			return nil, p.errorf(tok, "invalid operand for %s", tok.Value)
		}

		p.next()

		return &ast.UpdateExpression{Span: p.span(start), Operator: tok.Value, Argument: expr}, nil
	}

	return expr, nil
}

func (p *parser) parseCallOrMember() (ast.Expr, error) {
	start := p.start()

	var (
		expr ast.Expr
		err  error
	)

	if p.is("new") {
		expr, err = p.parseNew()
	} else {
		expr, err = p.parsePrimary()
	}

	if err != nil {
		return nil, err
	}

	return p.parseSubscripts(start, expr, false)
}

// parseSubscripts parses member accesses, calls, optional links and tagged templates
// after expr. noCall stops at the first argument list, as in a new callee.
func (p *parser) parseSubscripts(start int, expr ast.Expr, noCall bool) (ast.Expr, error) {
	chained := false

	for {
		tok := p.cur()

		switch {
		case tok.Is("."):
			p.next()

			prop, err := p.parseMemberName()
			if err != nil {
				return nil, err
			}

			expr = &ast.MemberExpression{Span: p.span(start), Object: expr, Property: prop}
		case tok.Is("?."):
			if noCall {
				return nil, p.errorf(tok, "optional chain is not allowed in a new expression")
			}

			p.next()

			chained = true

			switch {
			case p.is("("):
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}

				expr = &ast.CallExpression{Span: p.span(start), Callee: expr, Arguments: args, Optional: true}
			case p.is("["):
				prop, err := p.parseComputedMember()
				if err != nil {
					return nil, err
				}

				expr = &ast.MemberExpression{Span: p.span(start), Object: expr, Property: prop, Computed: true, Optional: true}
			default:
				prop, err := p.parseMemberName()
				if err != nil {
					return nil, err
				}

				expr = &ast.MemberExpression{Span: p.span(start), Object: expr, Property: prop, Optional: true}
			}
		case tok.Is("["):
			prop, err := p.parseComputedMember()
			if err != nil {
				return nil, err
			}

			expr = &ast.MemberExpression{Span: p.span(start), Object: expr, Property: prop, Computed: true}
		case tok.Is("(") && !noCall:
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}

			expr = &ast.CallExpression{Span: p.span(start), Callee: expr, Arguments: args}
		case tok.Type == tokenizer.TEMPLATE || tok.Type == tokenizer.TEMPLATE_HEAD:
			if chained {
				return nil, p.errorf(tok, "tagged template cannot be used in an optional chain")
			}

			quasi, err := p.parseTemplate()
			if err != nil {
				return nil, err
			}

			expr = &ast.TaggedTemplateExpression{Span: p.span(start), Tag: expr, Quasi: quasi}
		default:
			if chained {
				expr = &ast.ChainExpression{Span: p.span(start), Expression: expr}
			}

			return expr, nil
		}
	}
}

func (p *parser) parseMemberName() (ast.Expr, error) {
	tok := p.cur()
	if tok.Type == tokenizer.PRIVATE_NAME {
		p.next()
		return &ast.PrivateName{Span: ast.Span{Start: tok.Position.Offset, End: tok.End}, Name: tok.Value}, nil
	}

	id, err := p.parseIdentifierName()
	if err != nil {
		return nil, err
	}

	return id, nil
}

// parseComputedMember parses "[expr]"; this is where a subscript slice starts.
func (p *parser) parseComputedMember() (ast.Expr, error) {
	p.next()

	saved := p.allowIn()

	prop, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	p.noIn = saved

	if err := p.expect("]"); err != nil {
		return nil, err
	}

	return prop, nil
}

func (p *parser) parseArguments() ([]ast.Expr, error) {
	p.next()

	saved := p.allowIn()
	args := []ast.Expr{}

	for !p.is(")") {
		arg, err := p.parseSpreadOrAssign()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if !p.is(")") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()
	p.noIn = saved

	return args, nil
}

func (p *parser) parseSpreadOrAssign() (ast.Expr, error) {
	start := p.start()
	if !p.eat("...") {
		return p.parseAssign()
	}

	arg, err := p.parseAssign()
	if err != nil {
		return nil, err
	}

	return &ast.SpreadElement{Span: p.span(start), Argument: arg}, nil
}

func (p *parser) parseNew() (ast.Expr, error) {
	start := p.start()
	tok := p.next()

	if p.eat(".") {
		if !p.isIdent("target") {
			return nil, p.errorf(tok, "expected new.target")
		}

		p.next()

		return &ast.MetaProperty{Span: p.span(start), Meta: "new", Property: "target"}, nil
	}

	calleeStart := p.start()

	var (
		callee ast.Expr
		err    error
	)

	if p.is("new") {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parsePrimary()
	}

	if err != nil {
		return nil, err
	}

	if callee, err = p.parseSubscripts(calleeStart, callee, true); err != nil {
		return nil, err
	}

	expr := &ast.NewExpression{Callee: callee}

	if p.is("(") {
		if expr.Arguments, err = p.parseArguments(); err != nil {
			return nil, err
		}
	}

	expr.Span = p.span(start)

	return expr, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	start := p.start()

	switch tok.Type {
	case tokenizer.IDENTIFIER:
		if next := p.peekAt(1); tok.Value == "async" && next.Is("function") && !next.NewlineBefore {
			p.next()
			return p.parseFunctionExpression(start, true)
		}

		p.next()

		return &ast.Identifier{Span: p.span(start), Name: tok.Value}, nil
	case tokenizer.NUMBER:
		return p.literal(ast.LiteralNumber), nil
	case tokenizer.STRING:
		return p.literal(ast.LiteralString), nil
	case tokenizer.BIGINT:
		return p.literal(ast.LiteralBigInt), nil
	case tokenizer.REGEXP:
		return p.literal(ast.LiteralRegExp), nil
	case tokenizer.TEMPLATE, tokenizer.TEMPLATE_HEAD:
		return p.parseTemplate()
	case tokenizer.KEYWORD:
		switch tok.Value {
		case "this":
			p.next()
			return &ast.ThisExpression{Span: p.span(start)}, nil
		case "super":
			p.next()
			return &ast.Super{Span: p.span(start)}, nil
		case "null":
			return p.literal(ast.LiteralNull), nil
		case "true", "false":
			return p.literal(ast.LiteralBoolean), nil
		case "function":
			return p.parseFunctionExpression(start, false)
		case "class":
			return p.parseClassExpression()
		case "import":
			return p.parseImport()
		}
	case tokenizer.PUNCTUATOR:
		switch tok.Value {
		case "(":
			return p.parseParenthesized()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		}
	}

	return nil, p.unexpected()
}

func (p *parser) literal(kind ast.LiteralKind) ast.Expr {
	tok := p.next()
	return &ast.Literal{Span: ast.Span{Start: tok.Position.Offset, End: tok.End}, Kind: kind, Raw: tok.Value}
}

func (p *parser) parseParenthesized() (ast.Expr, error) {
	p.next()

	saved := p.allowIn()

	expr, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	p.noIn = saved

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *parser) parseImport() (ast.Expr, error) {
	start := p.start()
	p.next()

	if p.eat(".") {
		if !p.isIdent("meta") {
			return nil, p.unexpected()
		}

		p.next()

		return &ast.MetaProperty{Span: p.span(start), Meta: "import", Property: "meta"}, nil
	}

	if err := p.expect("("); err != nil {
		return nil, err
	}

	source, err := p.parseAssign()
	if err != nil {
		return nil, err
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}

	return &ast.ImportExpression{Span: p.span(start), Source: source}, nil
}

func (p *parser) parseTemplate() (*ast.TemplateLiteral, error) {
	start := p.start()
	tok := p.next()
	tpl := &ast.TemplateLiteral{Quasis: []string{tok.Value}}

	if tok.Type == tokenizer.TEMPLATE {
		tpl.Span = p.span(start)
		return tpl, nil
	}

	saved := p.allowIn()

	for {
		expr, err := p.parseExpression(true)
		if err != nil {
			return nil, err
		}

		tpl.Expressions = append(tpl.Expressions, expr)

		tok := p.cur()

		switch tok.Type {
		case tokenizer.TEMPLATE_MIDDLE:
			p.next()
			tpl.Quasis = append(tpl.Quasis, tok.Value)
		case tokenizer.TEMPLATE_TAIL:
			p.next()
			tpl.Quasis = append(tpl.Quasis, tok.Value)
			tpl.Span = p.span(start)
			p.noIn = saved

			return tpl, nil
		default:
			return nil, p.errorf(tok, "expected '}' to close template substitution but found %s", describe(tok))
		}
	}
}

func (p *parser) parseArrayLiteral() (ast.Expr, error) {
	start := p.start()
	p.next()

	saved := p.allowIn()
	arr := &ast.ArrayExpression{}

	for !p.is("]") {
		if p.eat(",") {
			arr.Elements = append(arr.Elements, nil)
			continue
		}

		elem, err := p.parseSpreadOrAssign()
		if err != nil {
			return nil, err
		}

		arr.Elements = append(arr.Elements, elem)

		if !p.is("]") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()
	p.noIn = saved
	arr.Span = p.span(start)

	return arr, nil
}

func (p *parser) parseObjectLiteral() (ast.Expr, error) {
	start := p.start()
	p.next()

	saved := p.allowIn()
	obj := &ast.ObjectExpression{}

	for !p.is("}") {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}

		obj.Properties = append(obj.Properties, prop)

		if !p.is("}") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}

	p.next()
	p.noIn = saved
	obj.Span = p.span(start)

	return obj, nil
}

// modifierFollows reports whether the current word (async, get, set, static) modifies
// the member name after it rather than being the name itself.
func (p *parser) modifierFollows() bool {
	next := p.peekAt(1)
	if next.Type == tokenizer.EOF {
		return false
	}

	if next.Type == tokenizer.PUNCTUATOR {
		switch next.Value {
		case "(", ":", ",", "}", "=", ";":
			return false
		}
	}

	return true
}

func (p *parser) parseProperty() (ast.Node, error) {
	start := p.start()

	if p.is("...") {
		return p.parseSpreadOrAssign()
	}

	var async, generator bool

	kind := ast.PropertyInit

	if p.isIdent("async") && p.modifierFollows() && !p.peekAt(1).NewlineBefore {
		p.next()

		async = true
	}

	if p.eat("*") {
		generator = true
	}

	if !async && !generator && (p.isIdent("get") || p.isIdent("set")) && p.modifierFollows() {
		kind = ast.PropertyKind(p.next().Value)
	}

	keyTok := p.cur()

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}

	prop := &ast.Property{Key: key, Computed: computed, Kind: kind}

	switch {
	case async || generator || kind != ast.PropertyInit || p.is("("):
		fn, err := p.parseMethod(async, generator)
		if err != nil {
			return nil, err
		}

		prop.Value = fn
		prop.Method = kind == ast.PropertyInit
	case p.eat(":"):
		if prop.Value, err = p.parseAssign(); err != nil {
			return nil, err
		}
	default:
		id, ok := key.(*ast.Identifier)
		if !ok || keyTok.Type != tokenizer.IDENTIFIER {
			return nil, p.unexpected()
		}

		value := &ast.Identifier{Span: id.Span, Name: id.Name}
		prop.Shorthand = true
		prop.Value = value

		// {a = 1} is only valid as a destructuring pattern.
		if p.eat("=") {
			def, err := p.parseAssign()
			if err != nil {
				return nil, err
			}

			prop.Value = &ast.AssignmentExpression{Span: p.span(keyTok.Position.Offset), Operator: "=", Left: value, Right: def}
		}
	}

	prop.Span = p.span(start)

	return prop, nil
}

// parsePropertyKey parses an object or class member name and reports whether it was
// computed ([expr]).
func (p *parser) parsePropertyKey() (ast.Expr, bool, error) {
	tok := p.cur()
	span := ast.Span{Start: tok.Position.Offset, End: tok.End}

	switch tok.Type {
	case tokenizer.STRING:
		p.next()
		return &ast.Literal{Span: span, Kind: ast.LiteralString, Raw: tok.Value}, false, nil
	case tokenizer.NUMBER:
		p.next()
		return &ast.Literal{Span: span, Kind: ast.LiteralNumber, Raw: tok.Value}, false, nil
	case tokenizer.BIGINT:
		p.next()
		return &ast.Literal{Span: span, Kind: ast.LiteralBigInt, Raw: tok.Value}, false, nil
	case tokenizer.IDENTIFIER, tokenizer.KEYWORD:
		p.next()
		return &ast.Identifier{Span: span, Name: tok.Value}, false, nil
	case tokenizer.PRIVATE_NAME:
		p.next()
		return &ast.PrivateName{Span: span, Name: tok.Value}, false, nil
	case tokenizer.PUNCTUATOR:
		if tok.Value == "[" {
			p.next()

			saved := p.allowIn()

			key, err := p.parseAssign()
			if err != nil {
				return nil, false, err
			}

			p.noIn = saved

			if err := p.expect("]"); err != nil {
				return nil, false, err
			}

			return key, true, nil
		}
	}

	return nil, false, p.errorf(tok, "expected property name but found %s", describe(tok))
}
