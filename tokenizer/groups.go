package tokenizer

// groupKind classifies an open '(' or '{' so the token after its closing bracket can be
// told apart: a '/' after a statement head or a block starts a regular expression, a '/'
// after any other group divides.
type groupKind int

const (
	groupParen    groupKind = iota // parenthesized expression, arguments or parameters
	groupHead                      // if, while, for, with, switch and catch heads
	groupBlock                     // statement block, declaration body or arrow body
	groupObject                    // object literal, method or function expression body
	groupTemplate                  // template substitution
)

// headKeywords open a parenthesized statement head.
var headKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "with": true, "switch": true, "catch": true,
}

// blockKeywords are directly followed by a block.
var blockKeywords = map[string]bool{
	"else": true, "do": true, "try": true, "finally": true,
}

func (t *tokenizer) top() groupKind {
	if len(t.groups) == 0 {
		return -1
	}

	return t.groups[len(t.groups)-1]
}

// parenKind classifies a '(' from the tokens before it.
func (t *tokenizer) parenKind() groupKind {
	switch {
	case t.prev.Type == KEYWORD && headKeywords[t.prev.Value]:
		return groupHead
	case t.prev.IsIdent("await") && t.prev2.Is("for"):
		return groupHead
	default:
		return groupParen
	}
}

// braceKind classifies a '{' from the tokens before it.
func (t *tokenizer) braceKind() groupKind {
	if t.declDepth == len(t.groups) {
		t.declDepth = -1
		return groupBlock
	}

	if t.statementStart() || t.prev.Is("=>") {
		return groupBlock
	}

	return groupObject
}

// statementStart reports whether the next token begins a statement.
func (t *tokenizer) statementStart() bool {
	if !t.hasPrev {
		return true
	}

	switch t.prev.Type {
	case PUNCTUATOR:
		switch t.prev.Value {
		case ";":
			return true
		case "{":
			return t.top() == groupBlock
		case "}", ")":
			return t.closedStatement
		}
	case KEYWORD:
		return blockKeywords[t.prev.Value]
	}

	return false
}

// declarationStart reports whether a function or class keyword at the current position
// begins a declaration rather than an expression. "async function" counts when async
// itself stands at a statement start.
func (t *tokenizer) declarationStart() bool {
	if t.prev.IsIdent("async") && !t.newline {
		return t.asyncAtStatement
	}

	return t.statementStart()
}
