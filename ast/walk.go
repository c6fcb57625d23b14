package ast

import "fmt"

// ApplyFunc is invoked by Apply for each non-nil node, before and/or after the node's
// children.
//
// The return value of ApplyFunc controls the syntax tree traversal. When the pre
// function returns false the children of the current node are skipped and post is not
// called for it. When the post function returns false traversal terminates.
type ApplyFunc func(*Cursor) bool

// Cursor describes the node currently visited by Apply: the node, the field of the parent
// holding it and, for list fields, its index.
type Cursor struct {
	node      Node
	name      string
	index     int
	set       func(Node)
	ancestors []Node
}

// Node returns the current node.
func (c *Cursor) Node() Node { return c.node }

// Name returns the name of the parent field holding the current node ("" for the root).
func (c *Cursor) Name() string { return c.name }

// Index reports the index of the current node in its parent's list field, or -1.
func (c *Cursor) Index() int { return c.index }

// Parent returns the node holding the current node, or nil for the root.
func (c *Cursor) Parent() Node {
	if len(c.ancestors) == 0 {
		return nil
	}

	return c.ancestors[len(c.ancestors)-1]
}

// Grandparent returns the parent of Parent, or nil.
func (c *Cursor) Grandparent() Node {
	if len(c.ancestors) < 2 {
		return nil
	}

	return c.ancestors[len(c.ancestors)-2]
}

// Replace writes n into the slot holding the current node. It panics if the slot's
// static type cannot hold n (for example a statement written into an expression field).
// The replacement is not walked when Replace is called from post.
func (c *Cursor) Replace(n Node) {
	c.set(n)
	c.node = n
}

// Apply traverses root recursively, calling pre before a node's children and post after.
// It returns the possibly replaced root.
func Apply(root Node, pre, post ApplyFunc) (result Node) {
	holder := root
	a := &applier{pre: pre, post: post}

	defer func() {
		if r := recover(); r != nil && r != abort {
			panic(r)
		}

		result = holder
	}()

	a.apply("", -1, root, func(n Node) { holder = n })

	return holder
}

// Inspect walks the tree in depth-first order. If f returns false, the children of that
// node are skipped.
func Inspect(root Node, f func(Node) bool) {
	Apply(root, func(c *Cursor) bool { return f(c.node) }, nil)
}

var abort = new(int)

type applier struct {
	pre, post ApplyFunc
	ancestors []Node
}

func (a *applier) apply(name string, index int, n Node, set func(Node)) {
	c := &Cursor{node: n, name: name, index: index, set: set, ancestors: a.ancestors}

	if a.pre != nil && !a.pre(c) {
		return
	}

	n = c.node

	a.ancestors = append(a.ancestors, n)
	a.children(n)
	a.ancestors = a.ancestors[:len(a.ancestors)-1]

	if a.post != nil {
		c.ancestors = a.ancestors
		if !a.post(c) {
			panic(abort)
		}
	}
}

func (a *applier) expr(name string, slot *Expr) {
	if *slot == nil {
		return
	}

	a.apply(name, -1, *slot, func(n Node) { *slot = asExpr(n) })
}

func (a *applier) exprs(name string, list []Expr) {
	for i := range list {
		if list[i] == nil {
			continue
		}

		a.apply(name, i, list[i], func(n Node) { list[i] = asExpr(n) })
	}
}

func (a *applier) stmt(name string, slot *Stmt) {
	if *slot == nil {
		return
	}

	a.apply(name, -1, *slot, func(n Node) { *slot = asStmt(n) })
}

func (a *applier) stmts(name string, list []Stmt) {
	for i := range list {
		a.apply(name, i, list[i], func(n Node) { list[i] = asStmt(n) })
	}
}

func (a *applier) node(name string, slot *Node) {
	if *slot == nil {
		return
	}

	a.apply(name, -1, *slot, func(n Node) { *slot = n })
}

func (a *applier) nodes(name string, list []Node) {
	for i := range list {
		a.apply(name, i, list[i], func(n Node) { list[i] = n })
	}
}

func (a *applier) ident(name string, slot **Identifier) {
	if *slot == nil {
		return
	}

	a.apply(name, -1, *slot, func(n Node) { *slot = as[*Identifier](n) })
}

func (a *applier) block(name string, slot **BlockStatement) {
	if *slot == nil {
		return
	}

	a.apply(name, -1, *slot, func(n Node) { *slot = as[*BlockStatement](n) })
}

func (a *applier) classBody(name string, list []ClassElement) {
	for i := range list {
		a.apply(name, i, list[i], func(n Node) { list[i] = as[ClassElement](n) })
	}
}

func (a *applier) children(n Node) {
	switch n := n.(type) {
	case *Program:
		a.stmts("Body", n.Body)

	case *ExpressionStatement:
		a.expr("Expression", &n.Expression)
	case *BlockStatement:
		a.stmts("Body", n.Body)
	case *EmptyStatement, *DebuggerStatement:
		// leaves
	case *VariableDeclaration:
		for i := range n.Declarations {
			a.apply("Declarations", i, n.Declarations[i], func(r Node) { n.Declarations[i] = as[*VariableDeclarator](r) })
		}
	case *VariableDeclarator:
		a.expr("ID", &n.ID)
		a.expr("Init", &n.Init)
	case *FunctionDeclaration:
		a.ident("ID", &n.ID)
		a.exprs("Params", n.Params)
		a.block("Body", &n.Body)
	case *ClassDeclaration:
		a.ident("ID", &n.ID)
		a.expr("SuperClass", &n.SuperClass)
		a.classBody("Body", n.Body)
	case *IfStatement:
		a.expr("Test", &n.Test)
		a.stmt("Consequent", &n.Consequent)
		a.stmt("Alternate", &n.Alternate)
	case *ForStatement:
		a.node("Init", &n.Init)
		a.expr("Test", &n.Test)
		a.expr("Update", &n.Update)
		a.stmt("Body", &n.Body)
	case *ForInStatement:
		a.node("Left", &n.Left)
		a.expr("Right", &n.Right)
		a.stmt("Body", &n.Body)
	case *ForOfStatement:
		a.node("Left", &n.Left)
		a.expr("Right", &n.Right)
		a.stmt("Body", &n.Body)
	case *WhileStatement:
		a.expr("Test", &n.Test)
		a.stmt("Body", &n.Body)
	case *DoWhileStatement:
		a.stmt("Body", &n.Body)
		a.expr("Test", &n.Test)
	case *ReturnStatement:
		a.expr("Argument", &n.Argument)
	case *BreakStatement:
		a.ident("Label", &n.Label)
	case *ContinueStatement:
		a.ident("Label", &n.Label)
	case *ThrowStatement:
		a.expr("Argument", &n.Argument)
	case *TryStatement:
		a.block("Block", &n.Block)

		if n.Handler != nil {
			a.apply("Handler", -1, n.Handler, func(r Node) { n.Handler = as[*CatchClause](r) })
		}

		a.block("Finalizer", &n.Finalizer)
	case *CatchClause:
		a.expr("Param", &n.Param)
		a.block("Body", &n.Body)
	case *SwitchStatement:
		a.expr("Discriminant", &n.Discriminant)

		for i := range n.Cases {
			a.apply("Cases", i, n.Cases[i], func(r Node) { n.Cases[i] = as[*SwitchCase](r) })
		}
	case *SwitchCase:
		a.expr("Test", &n.Test)
		a.stmts("Consequent", n.Consequent)
	case *LabeledStatement:
		a.ident("Label", &n.Label)
		a.stmt("Body", &n.Body)

	case *Identifier, *PrivateName, *Literal, *ThisExpression, *Super, *MetaProperty:
		// leaves
	case *TemplateLiteral:
		a.exprs("Expressions", n.Expressions)
	case *TaggedTemplateExpression:
		a.expr("Tag", &n.Tag)
		a.apply("Quasi", -1, n.Quasi, func(r Node) { n.Quasi = as[*TemplateLiteral](r) })
	case *ArrayExpression:
		a.exprs("Elements", n.Elements)
	case *ObjectExpression:
		a.nodes("Properties", n.Properties)
	case *Property:
		a.expr("Key", &n.Key)
		a.expr("Value", &n.Value)
	case *FunctionExpression:
		a.ident("ID", &n.ID)
		a.exprs("Params", n.Params)
		a.block("Body", &n.Body)
	case *ArrowFunctionExpression:
		a.exprs("Params", n.Params)
		a.block("Body", &n.Body)
		a.expr("Expression", &n.Expression)
	case *ClassExpression:
		a.ident("ID", &n.ID)
		a.expr("SuperClass", &n.SuperClass)
		a.classBody("Body", n.Body)
	case *MethodDefinition:
		a.expr("Key", &n.Key)

		if n.Value != nil {
			a.apply("Value", -1, n.Value, func(r Node) { n.Value = as[*FunctionExpression](r) })
		}
	case *PropertyDefinition:
		a.expr("Key", &n.Key)
		a.expr("Value", &n.Value)
	case *StaticBlock:
		a.stmts("Body", n.Body)
	case *UnaryExpression:
		a.expr("Argument", &n.Argument)
	case *UpdateExpression:
		a.expr("Argument", &n.Argument)
	case *BinaryExpression:
		a.expr("Left", &n.Left)
		a.expr("Right", &n.Right)
	case *AssignmentExpression:
		a.expr("Left", &n.Left)
		a.expr("Right", &n.Right)
	case *ConditionalExpression:
		a.expr("Test", &n.Test)
		a.expr("Consequent", &n.Consequent)
		a.expr("Alternate", &n.Alternate)
	case *CallExpression:
		a.expr("Callee", &n.Callee)
		a.exprs("Arguments", n.Arguments)
	case *NewExpression:
		a.expr("Callee", &n.Callee)
		a.exprs("Arguments", n.Arguments)
	case *MemberExpression:
		a.expr("Object", &n.Object)
		a.expr("Property", &n.Property)
	case *ChainExpression:
		a.expr("Expression", &n.Expression)
	case *SequenceExpression:
		a.exprs("Expressions", n.Expressions)
	case *SpreadElement:
		a.expr("Argument", &n.Argument)
	case *YieldExpression:
		a.expr("Argument", &n.Argument)
	case *AwaitExpression:
		a.expr("Argument", &n.Argument)
	case *ImportExpression:
		a.expr("Source", &n.Source)
	case *SliceExpression:
		a.expr("StartIndex", &n.StartIndex)
		a.expr("EndIndex", &n.EndIndex)
		a.expr("Step", &n.Step)

	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
}

func asExpr(n Node) Expr {
	return as[Expr](n)
}

func asStmt(n Node) Stmt {
	return as[Stmt](n)
}

func as[T any](n Node) T {
	v, ok := n.(T)
	if !ok {
		panic(fmt.Sprintf("ast: %T cannot be stored in this slot", n))
	}

	return v
}
