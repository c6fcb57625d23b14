package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter  = errors.New("unexpected character")
	ErrUnterminatedString   = errors.New("unterminated string literal")
	ErrUnterminatedTemplate = errors.New("unterminated template literal")
	ErrUnterminatedComment  = errors.New("unterminated block comment")
	ErrUnterminatedRegExp   = errors.New("unterminated regular expression")
	ErrInvalidNumber        = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	IDENTIFIER   // foo, $bar, _baz, and contextual keywords (let, async, of, ...)
	KEYWORD      // reserved words (if, function, typeof, true, null, ...)
	PUNCTUATOR   // operators and delimiters
	NUMBER       // numeric literals
	BIGINT       // 10n
	STRING       // 'text', "text"
	PRIVATE_NAME // #field
	REGEXP       // /re/flags

	// Template literal pieces. Value holds the raw text between the delimiters.
	TEMPLATE        // `text` (no substitutions)
	TEMPLATE_HEAD   // `text${
	TEMPLATE_MIDDLE // }text${
	TEMPLATE_TAIL   // }text`

	// Comments
	LINE_COMMENT  // // line comment
	BLOCK_COMMENT // /* block comment */
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case IDENTIFIER:
		return "IDENTIFIER"
	case KEYWORD:
		return "KEYWORD"
	case PUNCTUATOR:
		return "PUNCTUATOR"
	case NUMBER:
		return "NUMBER"
	case BIGINT:
		return "BIGINT"
	case STRING:
		return "STRING"
	case PRIVATE_NAME:
		return "PRIVATE_NAME"
	case REGEXP:
		return "REGEXP"
	case TEMPLATE:
		return "TEMPLATE"
	case TEMPLATE_HEAD:
		return "TEMPLATE_HEAD"
	case TEMPLATE_MIDDLE:
		return "TEMPLATE_MIDDLE"
	case TEMPLATE_TAIL:
		return "TEMPLATE_TAIL"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position

	// End is the byte offset immediately after the token.
	End int
	// NewlineBefore reports whether a line terminator separates this token from the previous one.
	NewlineBefore bool
}

// Is reports whether the token is a punctuator or keyword with the given text.
func (t Token) Is(value string) bool {
	return (t.Type == PUNCTUATOR || t.Type == KEYWORD) && t.Value == value
}

// IsIdent reports whether the token is the identifier (or contextual keyword) name.
func (t Token) IsIdent(name string) bool {
	return t.Type == IDENTIFIER && t.Value == name
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
