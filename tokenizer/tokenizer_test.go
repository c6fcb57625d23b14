package tokenizer

import (
	"errors"
	"slices"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	src := "const x = a[1:3];"
	tokenizer := NewTokenizer(src)

	expectedTypes := []TokenType{
		KEYWORD, IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, NUMBER, PUNCTUATOR, NUMBER, PUNCTUATOR, PUNCTUATOR, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorSkipComments(t *testing.T) {
	src := "a // trailing\n/* block */ b"
	tokens, err := NewTokenizer(src, TokenizerOptions{SkipComments: true}).AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, []string{"a", "b", ""}, values(tokens))
	assert.True(t, tokens[1].NewlineBefore)
}

func TestIteratorEarlyTermination(t *testing.T) {
	tokenizer := NewTokenizer("a + b + c + d")

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++

		if count >= 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
		values   []string
	}{
		{
			name:     "identifiers and keywords",
			input:    "let async of typeof $x _y",
			expected: []TokenType{IDENTIFIER, IDENTIFIER, IDENTIFIER, KEYWORD, IDENTIFIER, IDENTIFIER, EOF},
		},
		{
			name:     "longest punctuator match",
			input:    "a >>>= b ?? c?.d ... e **= 2",
			expected: []TokenType{IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, NUMBER, EOF},
			values:   []string{"a", ">>>=", "b", "??", "c", "?.", "d", "...", "e", "**=", "2", ""},
		},
		{
			name:     "optional chaining is not taken before a digit",
			input:    "a?.5:1",
			expected: []TokenType{IDENTIFIER, PUNCTUATOR, NUMBER, PUNCTUATOR, NUMBER, EOF},
			values:   []string{"a", "?", ".5", ":", "1", ""},
		},
		{
			name:     "numbers",
			input:    "0 1.5 .5 1e10 2E-3 0xFF 0o17 0b1010 1_000_000 10n",
			expected: []TokenType{NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, BIGINT, EOF},
		},
		{
			name:     "strings keep quotes and escapes",
			input:    `'it\'s' "say \"hi\""`,
			expected: []TokenType{STRING, STRING, EOF},
			values:   []string{`'it\'s'`, `"say \"hi\""`, ""},
		},
		{
			name:     "regexp after operator",
			input:    "x = /a[/]b/gi",
			expected: []TokenType{IDENTIFIER, PUNCTUATOR, REGEXP, EOF},
			values:   []string{"x", "=", "/a[/]b/gi", ""},
		},
		{
			name:     "division after identifier",
			input:    "a / b / c",
			expected: []TokenType{IDENTIFIER, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, IDENTIFIER, EOF},
		},
		{
			name:     "division after closing paren",
			input:    "(a) / 2",
			expected: []TokenType{PUNCTUATOR, IDENTIFIER, PUNCTUATOR, PUNCTUATOR, NUMBER, EOF},
		},
		{
			name:     "regexp after return",
			input:    "return /x/",
			expected: []TokenType{KEYWORD, REGEXP, EOF},
		},
		{
			name:     "private name",
			input:    "this.#count",
			expected: []TokenType{KEYWORD, PUNCTUATOR, PRIVATE_NAME, EOF},
			values:   []string{"this", ".", "#count", ""},
		},
		{
			name:     "unicode identifier",
			input:    "café + ñ",
			expected: []TokenType{IDENTIFIER, PUNCTUATOR, IDENTIFIER, EOF},
			values:   []string{"café", "+", "ñ", ""},
		},
		{
			name:     "comments",
			input:    "// line\n/* block */",
			expected: []TokenType{LINE_COMMENT, BLOCK_COMMENT, EOF},
		},
		{
			name:     "hashbang",
			input:    "#!/usr/bin/env node\nx",
			expected: []TokenType{LINE_COMMENT, IDENTIFIER, EOF},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := NewTokenizer(test.input).AllTokens()
			assert.NoError(t, err)

			assert.Equal(t, test.expected, types(tokens))

			if test.values != nil {
				assert.Equal(t, test.values, values(tokens))
			}
		})
	}
}

func TestTemplateLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
		values   []string
	}{
		{
			name:     "no substitution",
			input:    "`hello`",
			expected: []TokenType{TEMPLATE, EOF},
			values:   []string{"hello", ""},
		},
		{
			name:     "substitutions",
			input:    "`a${x}b${y}c`",
			expected: []TokenType{TEMPLATE_HEAD, IDENTIFIER, TEMPLATE_MIDDLE, IDENTIFIER, TEMPLATE_TAIL, EOF},
			values:   []string{"a", "x", "b", "y", "c", ""},
		},
		{
			name:     "object literal inside substitution",
			input:    "`${ {a: 1}.a }`",
			expected: []TokenType{TEMPLATE_HEAD, PUNCTUATOR, IDENTIFIER, PUNCTUATOR, NUMBER, PUNCTUATOR, PUNCTUATOR, IDENTIFIER, TEMPLATE_TAIL, EOF},
		},
		{
			name:     "nested template",
			input:    "`x${`y${z}`}`",
			expected: []TokenType{TEMPLATE_HEAD, TEMPLATE_HEAD, IDENTIFIER, TEMPLATE_TAIL, TEMPLATE_TAIL, EOF},
			values:   []string{"x", "y", "z", "", "", ""},
		},
		{
			name:     "escaped backtick and dollar",
			input:    "`\\` \\${no}`",
			expected: []TokenType{TEMPLATE, EOF},
			values:   []string{"\\` \\${no}", ""},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := NewTokenizer(test.input).AllTokens()
			assert.NoError(t, err)

			assert.Equal(t, test.expected, types(tokens))

			if test.values != nil {
				assert.Equal(t, test.values, values(tokens))
			}
		})
	}
}

func TestRegExpOrDivision(t *testing.T) {
	tests := []struct {
		name  string
		input string
		regex bool
	}{
		{name: "after if head", input: "if (x) /b/.test(x)", regex: true},
		{name: "after while head", input: "while (n++ < 1) /a/.exec('a')", regex: true},
		{name: "after for head", input: "for (;false;) /a/;", regex: true},
		{name: "after for await head", input: "for await (x of y) /a/;", regex: true},
		{name: "after block", input: "{}\n/a/.test('a')", regex: true},
		{name: "after function declaration", input: "function f(){}\n/a/.test('a')", regex: true},
		{name: "after async function declaration", input: "async function f(){}\n/a/.test('a')", regex: true},
		{name: "after class declaration", input: "class A extends B {}\n/a/.test('a')", regex: true},
		{name: "after if block", input: "if (x) { y }\n/a/.test('a')", regex: true},
		{name: "after arrow body", input: "f = () => {}\n/a/.test('a')", regex: true},
		{name: "after call", input: "f(x) / 2", regex: false},
		{name: "after object literal", input: "x = {} / 2", regex: false},
		{name: "after function expression", input: "x = function(){} / 2", regex: false},
		{name: "after parenthesized object", input: "({}) / 2", regex: false},
		{name: "after if condition call", input: "if (f(x) / 2) y", regex: false},
		{name: "after template substitution", input: "`${a}` / 2", regex: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := NewTokenizer(test.input).AllTokens()
			assert.NoError(t, err)

			assert.Equal(t, test.regex, slices.Contains(types(tokens), REGEXP))
		})
	}
}

func TestNewlineBefore(t *testing.T) {
	tokens, err := NewTokenizer("a\nb /* x\n */ c d").AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, []bool{false, true, false, true, false, false}, newlines(tokens))
}

func TestPositions(t *testing.T) {
	tokens, err := NewTokenizer("a\n  bc").AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, tokens[1].Position)
	assert.Equal(t, 6, tokens[1].End)
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "unterminated string", input: "'abc", err: ErrUnterminatedString},
		{name: "newline in string", input: "'ab\nc'", err: ErrUnterminatedString},
		{name: "unterminated template", input: "`abc", err: ErrUnterminatedTemplate},
		{name: "unterminated comment", input: "/* abc", err: ErrUnterminatedComment},
		{name: "unterminated regexp", input: "x = /abc", err: ErrUnterminatedRegExp},
		{name: "bad exponent", input: "1e+", err: ErrInvalidNumber},
		{name: "identifier after number", input: "3abc", err: ErrInvalidNumber},
		{name: "empty hex", input: "0x", err: ErrInvalidNumber},
		{name: "stray character", input: "a ¤ b", err: ErrUnexpectedCharacter},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewTokenizer(test.input).AllTokens()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, test.err), "got %v", err)
		})
	}
}

func types(tokens []Token) []TokenType {
	result := make([]TokenType, len(tokens))
	for i, token := range tokens {
		result[i] = token.Type
	}

	return result
}

func values(tokens []Token) []string {
	result := make([]string, len(tokens))
	for i, token := range tokens {
		result[i] = token.Value
	}

	return result
}

func newlines(tokens []Token) []bool {
	result := make([]bool, len(tokens))
	for i, token := range tokens {
		result[i] = token.NewlineBefore
	}

	return result
}
