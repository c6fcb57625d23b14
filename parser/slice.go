package parser

import (
	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/tokenizer"
)

// parseMaybeConditional is the slice extension point. It parses a conditional expression
// and, when a colon follows (or leads), continues it as start:end:step.
//
// The colon is consumed predictively: an unparenthesized conditional never ends at a bare
// colon outside this production, so once the first colon is seen the construct is a slice.
func (p *parser) parseMaybeConditional(slices bool) (ast.Expr, error) {
	if !slices || !p.opts.Slices {
		return p.parseConditional()
	}

	start := p.start()

	var startIndex ast.Expr

	if !p.eat(":") {
		expr, err := p.parseConditional()
		if err != nil {
			return nil, err
		}

		if !p.is(":") {
			return expr, nil
		}

		p.next()

		startIndex = expr
	}

	slice := &ast.SliceExpression{StartIndex: startIndex}

	var err error

	if !endsSlicePart(p.cur()) {
		if slice.EndIndex, err = p.parseConditional(); err != nil {
			return nil, err
		}
	}

	if p.eat(":") && !endsSlicePart(p.cur()) {
		if slice.Step, err = p.parseConditional(); err != nil {
			return nil, err
		}
	}

	slice.Span = p.span(start)

	return slice, nil
}

// endsSlicePart reports whether tok leaves the next slice part absent: another colon,
// a closing bracket, or a token that ends the enclosing expression.
func endsSlicePart(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.EOF {
		return true
	}

	if tok.Type != tokenizer.PUNCTUATOR {
		return false
	}

	switch tok.Value {
	case ":", "]", ")", "}", ",", ";":
		return true
	default:
		return false
	}
}
