package tokenizer

// KeywordSet lists the reserved words tokenized as KEYWORD.
// Contextual keywords (let, static, async, await, yield, of, get, set) stay IDENTIFIER;
// the parser decides their meaning from context.
var KeywordSet = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
}

// punctuators is ordered longest first so the tokenizer can take the first match.
var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "?", ":", "=", ".", "@",
}

// literalKeywords are keywords that end an operand, so a following '/' divides.
var literalKeywords = map[string]bool{
	"this": true, "super": true, "null": true, "true": true, "false": true,
}

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	return KeywordSet[word]
}
