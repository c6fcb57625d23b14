package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer is a JavaScript tokenizer that returns an iterator
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipComments bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. The iteration stops after the first error.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:     t.input,
			line:      1,
			column:    1,
			declDepth: -1,
		}

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, ending with EOF
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input  string
	pos    int
	line   int
	column int

	// groups tracks open '(' and '{' tokens, including template substitutions "${".
	groups []groupKind
	// declDepth is the group depth at which a function or class declaration expects its
	// body, or -1.
	declDepth int

	prev    Token
	prev2   Token
	hasPrev bool
	newline bool

	// closedStatement is set when prev closed a statement head or a block.
	closedStatement bool
	// asyncAtStatement records whether the last "async" began a statement.
	asyncAtStatement bool
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	t.skipWhitespace()

	start := t.mark()

	if t.pos >= len(t.input) {
		return t.emit(EOF, "", start), nil
	}

	c := t.input[t.pos]
	next := t.peekByte(1)

	switch {
	case c == '#' && next == '!' && t.pos == 0:
		return t.readLineComment(start), nil
	case c == '/' && next == '/':
		return t.readLineComment(start), nil
	case c == '/' && next == '*':
		return t.readBlockComment(start)
	case c == '`':
		t.advance(1)
		return t.readTemplate(start, true)
	case c == '}' && t.top() == groupTemplate:
		t.groups = t.groups[:len(t.groups)-1]
		t.advance(1)

		return t.readTemplate(start, false)
	case c == '\'' || c == '"':
		return t.readString(start, c)
	case c == '#':
		return t.readPrivateName(start)
	case isDigit(c) || (c == '.' && isDigit(next)):
		return t.readNumber(start)
	case c == '/' && t.regexAllowed():
		return t.readRegExp(start)
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
	if isIdentStart(r) || r == '\\' {
		return t.readWord(start)
	}

	return t.readPunctuator(start)
}

// mark captures the current position
func (t *tokenizer) mark() Position {
	return Position{Line: t.line, Column: t.column, Offset: t.pos}
}

// emit builds a token ending at the current position
func (t *tokenizer) emit(tokenType TokenType, value string, start Position) Token {
	token := Token{
		Type:          tokenType,
		Value:         value,
		Position:      start,
		End:           t.pos,
		NewlineBefore: t.newline,
	}

	if tokenType != LINE_COMMENT && tokenType != BLOCK_COMMENT {
		t.newline = false
		t.closedStatement = false
		t.prev2 = t.prev
		t.prev = token
		t.hasPrev = true
	}

	return token
}

// advance moves forward n bytes, keeping line and column in sync
func (t *tokenizer) advance(n int) {
	end := min(t.pos+n, len(t.input))
	for t.pos < end {
		r, size := utf8.DecodeRuneInString(t.input[t.pos:])
		t.pos += size

		if isLineTerminator(r) && !(r == '\r' && t.pos < len(t.input) && t.input[t.pos] == '\n') {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
	}
}

// peekByte looks ahead n bytes from the current position
func (t *tokenizer) peekByte(n int) byte {
	if t.pos+n >= len(t.input) {
		return 0
	}

	return t.input[t.pos+n]
}

// currentRune returns the rune at the current position and its size
func (t *tokenizer) currentRune() (rune, int) {
	if t.pos >= len(t.input) {
		return 0, 0
	}

	return utf8.DecodeRuneInString(t.input[t.pos:])
}

// skipWhitespace skips whitespace and records line terminators
func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.input) {
		r, size := t.currentRune()
		if isLineTerminator(r) {
			t.newline = true
		} else if r != '\ufeff' && !unicode.IsSpace(r) {
			return
		}

		t.advance(size)
	}
}

// regexAllowed decides whether a '/' at the current position starts a regular expression
func (t *tokenizer) regexAllowed() bool {
	if !t.hasPrev {
		return true
	}

	switch t.prev.Type {
	case PUNCTUATOR:
		switch t.prev.Value {
		case ")", "}":
			// if (x) /re/ and {} /re/ start a statement with a regular expression.
			return t.closedStatement
		case "]", "++", "--":
			return false
		}

		return true
	case KEYWORD:
		return !literalKeywords[t.prev.Value]
	case IDENTIFIER:
		return t.prev.Value == "yield" || t.prev.Value == "await"
	default:
		return false
	}
}

// readLineComment reads line comments (and a leading #! line)
func (t *tokenizer) readLineComment(start Position) Token {
	end := strings.IndexAny(t.input[t.pos:], "\n\r\u2028\u2029")
	if end < 0 {
		end = len(t.input) - t.pos
	}

	t.advance(end)

	return t.emit(LINE_COMMENT, t.input[start.Offset:t.pos], start)
}

// readBlockComment reads block comments
func (t *tokenizer) readBlockComment(start Position) (Token, error) {
	end := strings.Index(t.input[t.pos+2:], "*/")
	if end < 0 {
		return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedComment, start.Line, start.Column)
	}

	t.advance(end + 4)
	comment := t.input[start.Offset:t.pos]
	token := t.emit(BLOCK_COMMENT, comment, start)

	if strings.ContainsAny(comment, "\n\r\u2028\u2029") {
		t.newline = true
	}

	return token, nil
}

// readString reads string literals, keeping the quotes and escapes verbatim
func (t *tokenizer) readString(start Position, delimiter byte) (Token, error) {
	t.advance(1)

	for {
		r, size := t.currentRune()
		switch {
		case size == 0 || (isLineTerminator(r) && r != '\u2028' && r != '\u2029'):
			return Token{}, fmt.Errorf("%w: %c at line %d, column %d", ErrUnterminatedString, delimiter, start.Line, start.Column)
		case r == '\\':
			t.advance(1)
			t.skipEscapedRune()
		case r == rune(delimiter):
			t.advance(1)
			return t.emit(STRING, t.input[start.Offset:t.pos], start), nil
		default:
			t.advance(size)
		}
	}
}

// skipEscapedRune consumes the rune after a backslash, treating CRLF as one line continuation
func (t *tokenizer) skipEscapedRune() {
	r, size := t.currentRune()
	t.advance(size)

	if r == '\r' && t.peekByte(0) == '\n' {
		t.advance(1)
	}
}

// readTemplate reads a template chunk after "`" (head) or after the "}" closing a substitution
func (t *tokenizer) readTemplate(start Position, head bool) (Token, error) {
	chunkStart := t.pos

	for {
		r, size := t.currentRune()
		switch {
		case size == 0:
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedTemplate, start.Line, start.Column)
		case r == '\\':
			t.advance(1)
			t.skipEscapedRune()
		case r == '`':
			chunk := t.input[chunkStart:t.pos]
			t.advance(1)

			if head {
				return t.emit(TEMPLATE, chunk, start), nil
			}

			return t.emit(TEMPLATE_TAIL, chunk, start), nil
		case r == '$' && t.peekByte(1) == '{':
			chunk := t.input[chunkStart:t.pos]
			t.advance(2)
			t.groups = append(t.groups, groupTemplate)

			if head {
				return t.emit(TEMPLATE_HEAD, chunk, start), nil
			}

			return t.emit(TEMPLATE_MIDDLE, chunk, start), nil
		default:
			t.advance(size)
		}
	}
}

// readNumber reads numeric literals
func (t *tokenizer) readNumber(start Position) (Token, error) {
	integer := true

	if t.input[t.pos] == '0' && strings.ContainsRune("xXoObB", rune(t.peekByte(1))) {
		var digit func(byte) bool

		switch t.peekByte(1) {
		case 'x', 'X':
			digit = isHexDigit
		case 'o', 'O':
			digit = func(c byte) bool { return c >= '0' && c <= '7' }
		default:
			digit = func(c byte) bool { return c == '0' || c == '1' }
		}

		t.advance(2)

		if !digit(t.peekByte(0)) {
			return Token{}, fmt.Errorf("%w: missing digits at line %d, column %d", ErrInvalidNumber, start.Line, start.Column)
		}

		t.readDigits(digit)
	} else {
		// Integer part
		t.readDigits(isDigit)

		// Decimal point
		if t.peekByte(0) == '.' {
			integer = false

			t.advance(1)
			t.readDigits(isDigit)
		}

		// Exponential part
		if c := t.peekByte(0); c == 'e' || c == 'E' {
			integer = false

			t.advance(1)

			if c := t.peekByte(0); c == '+' || c == '-' {
				t.advance(1)
			}

			if !isDigit(t.peekByte(0)) {
				return Token{}, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, start.Line, start.Column)
			}

			t.readDigits(isDigit)
		}
	}

	tokenType := NUMBER
	if t.peekByte(0) == 'n' && integer {
		t.advance(1)
		tokenType = BIGINT
	}

	if r, size := t.currentRune(); size > 0 && (isIdentStart(r) || unicode.IsDigit(r)) {
		return Token{}, fmt.Errorf("%w: identifier directly after number at line %d, column %d", ErrInvalidNumber, start.Line, start.Column)
	}

	return t.emit(tokenType, t.input[start.Offset:t.pos], start), nil
}

// readDigits reads digits accepted by digit, allowing '_' separators between them
func (t *tokenizer) readDigits(digit func(byte) bool) {
	for {
		c := t.peekByte(0)
		if digit(c) || (c == '_' && digit(t.peekByte(1))) {
			t.advance(1)
			continue
		}

		return
	}
}

// readRegExp reads a regular expression literal including its flags
func (t *tokenizer) readRegExp(start Position) (Token, error) {
	t.advance(1)

	inClass := false

	for {
		r, size := t.currentRune()
		if size == 0 || isLineTerminator(r) {
			return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedRegExp, start.Line, start.Column)
		}

		t.advance(size)

		switch r {
		case '\\':
			if r, _ := t.currentRune(); isLineTerminator(r) {
				return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedRegExp, start.Line, start.Column)
			}

			_, size := t.currentRune()
			t.advance(size)
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				t.readIdentifierParts()
				return t.emit(REGEXP, t.input[start.Offset:t.pos], start), nil
			}
		}
	}
}

// readWord reads identifiers and keywords
func (t *tokenizer) readWord(start Position) (Token, error) {
	if err := t.readIdentifierStart(start); err != nil {
		return Token{}, err
	}

	t.readIdentifierParts()

	word := t.input[start.Offset:t.pos]
	if IsKeyword(word) {
		if (word == "function" || word == "class") && t.declarationStart() {
			t.declDepth = len(t.groups)
		}

		return t.emit(KEYWORD, word, start), nil
	}

	if word == "async" {
		t.asyncAtStatement = t.statementStart()
	}

	return t.emit(IDENTIFIER, word, start), nil
}

// readPrivateName reads #name class members
func (t *tokenizer) readPrivateName(start Position) (Token, error) {
	t.advance(1)

	r, _ := t.currentRune()
	if !isIdentStart(r) && r != '\\' {
		return Token{}, fmt.Errorf("%w: '#' at line %d, column %d", ErrUnexpectedCharacter, start.Line, start.Column)
	}

	if err := t.readIdentifierStart(start); err != nil {
		return Token{}, err
	}

	t.readIdentifierParts()

	return t.emit(PRIVATE_NAME, t.input[start.Offset:t.pos], start), nil
}

// readIdentifierStart consumes the first identifier rune or a \u escape
func (t *tokenizer) readIdentifierStart(start Position) error {
	r, size := t.currentRune()
	if r == '\\' {
		if !t.readUnicodeEscape() {
			return fmt.Errorf("%w: invalid escape in identifier at line %d, column %d", ErrUnexpectedCharacter, start.Line, start.Column)
		}

		return nil
	}

	t.advance(size)

	return nil
}

// readIdentifierParts consumes identifier continuation runes
func (t *tokenizer) readIdentifierParts() {
	for {
		r, size := t.currentRune()

		switch {
		case size == 0:
			return
		case r == '\\':
			if !t.readUnicodeEscape() {
				return
			}
		case isIdentPart(r):
			t.advance(size)
		default:
			return
		}
	}
}

// readUnicodeEscape consumes \uXXXX or \u{X...}; it leaves the position untouched when malformed
func (t *tokenizer) readUnicodeEscape() bool {
	rest := t.input[t.pos:]
	if !strings.HasPrefix(rest, `\u`) {
		return false
	}

	if strings.HasPrefix(rest, `\u{`) {
		end := strings.IndexByte(rest, '}')
		if end < 4 {
			return false
		}

		for i := 3; i < end; i++ {
			if !isHexDigit(rest[i]) {
				return false
			}
		}

		t.advance(end + 1)

		return true
	}

	if len(rest) < 6 {
		return false
	}

	for i := 2; i < 6; i++ {
		if !isHexDigit(rest[i]) {
			return false
		}
	}

	t.advance(6)

	return true
}

// readPunctuator reads operators and delimiters (longest match)
func (t *tokenizer) readPunctuator(start Position) (Token, error) {
	rest := t.input[t.pos:]

	for _, p := range punctuators {
		if !strings.HasPrefix(rest, p) {
			continue
		}

		// "a?.5:b" is a conditional, not optional chaining
		if p == "?." && len(rest) > 2 && isDigit(rest[2]) {
			continue
		}

		t.advance(len(p))

		closed := false

		switch p {
		case "(":
			t.groups = append(t.groups, t.parenKind())
		case "{":
			t.groups = append(t.groups, t.braceKind())
		case ")", "}":
			if n := len(t.groups); n > 0 {
				kind := t.groups[n-1]
				t.groups = t.groups[:n-1]
				closed = kind == groupHead || kind == groupBlock
			}
		}

		token := t.emit(PUNCTUATOR, p, start)
		t.closedStatement = closed

		return token, nil
	}

	r, _ := t.currentRune()

	return Token{}, fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, r, start.Line, start.Column)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		r == '\u200c' || r == '\u200d'
}
