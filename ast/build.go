package ast

import "strconv"

// Helpers for synthesizing nodes. Synthesized nodes carry a zero Span.

func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Undefined returns the identifier undefined, the default for absent slice parts.
func Undefined() *Identifier {
	return Ident("undefined")
}

func Number(v int) *Literal {
	return &Literal{Kind: LiteralNumber, Raw: strconv.Itoa(v)}
}

func Call(callee Expr, args ...Expr) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

// Member builds object.name.
func Member(object Expr, name string) *MemberExpression {
	return &MemberExpression{Object: object, Property: Ident(name)}
}

func Binary(op string, left, right Expr) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

func Assign(op string, left, right Expr) *AssignmentExpression {
	return &AssignmentExpression{Operator: op, Left: left, Right: right}
}

// Let builds "let name = init".
func Let(name string, init Expr) *VariableDeclaration {
	return &VariableDeclaration{
		Kind:         "let",
		Declarations: []*VariableDeclarator{{ID: Ident(name), Init: init}},
	}
}

func Block(body ...Stmt) *BlockStatement {
	return &BlockStatement{Body: body}
}

func ExprStmt(e Expr) *ExpressionStatement {
	return &ExpressionStatement{Expression: e}
}

func Return(e Expr) *ReturnStatement {
	return &ReturnStatement{Argument: e}
}

func Yield(e Expr) *YieldExpression {
	return &YieldExpression{Argument: e}
}

// ExprOrUndefined returns e, or the undefined identifier when e is nil.
func ExprOrUndefined(e Expr) Expr {
	if e == nil {
		return Undefined()
	}

	return e
}

// Params builds a parameter list of plain identifiers.
func Params(names ...string) []Expr {
	params := make([]Expr, len(names))
	for i, name := range names {
		params[i] = Ident(name)
	}

	return params
}
