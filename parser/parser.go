// Package parser turns JavaScript source into an ast.Program.
//
// The grammar is the ES2022 script grammar without modules, plus an optional slice
// extension (start:end:step) that is enabled with Options.Slices.
package parser

import (
	"errors"
	"fmt"

	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/tokenizer"
)

// ErrSyntax is wrapped by every error returned from Parse.
var ErrSyntax = errors.New("syntax error")

// Error is a parse failure at a source position. Tokenizer failures carry a zero Pos and
// keep the tokenizer sentinel reachable through errors.Is.
type Error struct {
	Pos   tokenizer.Position
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrSyntax, e.Msg)
	}

	return fmt.Sprintf("%s: %s at line %d, column %d", ErrSyntax, e.Msg, e.Pos.Line, e.Pos.Column)
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrSyntax, e.cause}
	}

	return []error{ErrSyntax}
}

// Options selects grammar extensions and relaxations.
type Options struct {
	// Slices enables start:end:step slice expressions.
	Slices bool
	// AllowAwaitOutsideFunction parses await at the top level.
	AllowAwaitOutsideFunction bool
	// AllowReturnOutsideFunction accepts return statements at the top level.
	AllowReturnOutsideFunction bool
}

// Parse parses src as a script.
func Parse(src string, opts Options) (*ast.Program, error) {
	tokens, err := tokenizer.NewTokenizer(src, tokenizer.TokenizerOptions{SkipComments: true}).AllTokens()
	if err != nil {
		return nil, &Error{Msg: err.Error(), cause: err}
	}

	p := &parser{tokens: tokens, opts: opts}

	return p.parseProgram()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string, opts Options) (ast.Expr, error) {
	tokens, err := tokenizer.NewTokenizer(src, tokenizer.TokenizerOptions{SkipComments: true}).AllTokens()
	if err != nil {
		return nil, &Error{Msg: err.Error(), cause: err}
	}

	p := &parser{tokens: tokens, opts: opts}

	expr, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}

	if p.cur().Type != tokenizer.EOF {
		return nil, p.unexpected()
	}

	return expr, nil
}

type parser struct {
	tokens  []tokenizer.Token
	pos     int
	lastEnd int
	opts    Options

	inFunction  bool
	inAsync     bool
	inGenerator bool
	noIn        bool
}

// context is the function-scoped parser state saved around nested functions.
type context struct {
	inFunction, inAsync, inGenerator, noIn bool
}

func (p *parser) enterFunction(async, generator bool) context {
	saved := context{p.inFunction, p.inAsync, p.inGenerator, p.noIn}
	p.inFunction, p.inAsync, p.inGenerator, p.noIn = true, async, generator, false

	return saved
}

func (p *parser) restore(c context) {
	p.inFunction, p.inAsync, p.inGenerator, p.noIn = c.inFunction, c.inAsync, c.inGenerator, c.noIn
}

// allowIn clears the no-in restriction inside a bracketed construct and returns the
// previous value for the caller to restore.
func (p *parser) allowIn() bool {
	saved := p.noIn
	p.noIn = false

	return saved
}

func (p *parser) parseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for p.cur().Type != tokenizer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		program.Body = append(program.Body, stmt)
	}

	program.Span = ast.Span{Start: 0, End: p.lastEnd}

	return program, nil
}

// Token helpers

func (p *parser) cur() tokenizer.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(n int) tokenizer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+n]
}

func (p *parser) next() tokenizer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	p.lastEnd = tok.End

	return tok
}

func (p *parser) is(value string) bool {
	return p.cur().Is(value)
}

func (p *parser) isIdent(name string) bool {
	return p.cur().IsIdent(name)
}

func (p *parser) eat(value string) bool {
	if p.is(value) {
		p.next()
		return true
	}

	return false
}

func (p *parser) expect(value string) error {
	if p.eat(value) {
		return nil
	}

	return p.errorf(p.cur(), "expected '%s' but found %s", value, describe(p.cur()))
}

func (p *parser) start() int {
	return p.cur().Position.Offset
}

func (p *parser) span(start int) ast.Span {
	return ast.Span{Start: start, End: p.lastEnd}
}

func (p *parser) errorf(tok tokenizer.Token, format string, args ...any) error {
	return &Error{Pos: tok.Position, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected() error {
	return p.errorf(p.cur(), "unexpected %s", describe(p.cur()))
}

// canInsertSemicolon reports whether automatic semicolon insertion applies at the
// current token.
func (p *parser) canInsertSemicolon() bool {
	tok := p.cur()
	return tok.Type == tokenizer.EOF || tok.Is("}") || tok.NewlineBefore
}

func (p *parser) semicolon() error {
	if p.eat(";") || p.canInsertSemicolon() {
		return nil
	}

	return p.unexpected()
}

func describe(tok tokenizer.Token) string {
	if tok.Type == tokenizer.EOF {
		return "end of input"
	}

	return fmt.Sprintf("'%s'", tok.Value)
}

// isBindingIdentifier reports whether tok can name a binding.
func isBindingIdentifier(tok tokenizer.Token) bool {
	return tok.Type == tokenizer.IDENTIFIER
}

func (p *parser) parseIdentifier() (*ast.Identifier, error) {
	tok := p.cur()
	if !isBindingIdentifier(tok) {
		return nil, p.errorf(tok, "expected identifier but found %s", describe(tok))
	}

	p.next()

	return &ast.Identifier{Span: ast.Span{Start: tok.Position.Offset, End: tok.End}, Name: tok.Value}, nil
}

// parseIdentifierName accepts any identifier or reserved word, as allowed after '.'.
func (p *parser) parseIdentifierName() (*ast.Identifier, error) {
	tok := p.cur()
	if tok.Type != tokenizer.IDENTIFIER && tok.Type != tokenizer.KEYWORD {
		return nil, p.errorf(tok, "expected property name but found %s", describe(tok))
	}

	p.next()

	return &ast.Identifier{Span: ast.Span{Start: tok.Position.Offset, End: tok.End}, Name: tok.Value}, nil
}
