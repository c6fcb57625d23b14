// Package ast defines the JavaScript syntax tree produced by the parser and consumed by
// the printer and the transformers.
//
// Node names follow ESTree. Binding and assignment patterns reuse the expression nodes
// that print identically: ArrayExpression, ObjectExpression, AssignmentExpression (for
// defaults) and SpreadElement (for rest elements).
package ast

// NodeType is the kind tag of a node.
type NodeType string

const (
	TypeProgram                  NodeType = "Program"
	TypeExpressionStatement      NodeType = "ExpressionStatement"
	TypeBlockStatement           NodeType = "BlockStatement"
	TypeEmptyStatement           NodeType = "EmptyStatement"
	TypeDebuggerStatement        NodeType = "DebuggerStatement"
	TypeVariableDeclaration      NodeType = "VariableDeclaration"
	TypeVariableDeclarator       NodeType = "VariableDeclarator"
	TypeFunctionDeclaration      NodeType = "FunctionDeclaration"
	TypeClassDeclaration         NodeType = "ClassDeclaration"
	TypeIfStatement              NodeType = "IfStatement"
	TypeForStatement             NodeType = "ForStatement"
	TypeForInStatement           NodeType = "ForInStatement"
	TypeForOfStatement           NodeType = "ForOfStatement"
	TypeWhileStatement           NodeType = "WhileStatement"
	TypeDoWhileStatement         NodeType = "DoWhileStatement"
	TypeReturnStatement          NodeType = "ReturnStatement"
	TypeBreakStatement           NodeType = "BreakStatement"
	TypeContinueStatement        NodeType = "ContinueStatement"
	TypeThrowStatement           NodeType = "ThrowStatement"
	TypeTryStatement             NodeType = "TryStatement"
	TypeCatchClause              NodeType = "CatchClause"
	TypeSwitchStatement          NodeType = "SwitchStatement"
	TypeSwitchCase               NodeType = "SwitchCase"
	TypeLabeledStatement         NodeType = "LabeledStatement"
	TypeIdentifier               NodeType = "Identifier"
	TypePrivateName              NodeType = "PrivateName"
	TypeLiteral                  NodeType = "Literal"
	TypeTemplateLiteral          NodeType = "TemplateLiteral"
	TypeTaggedTemplateExpression NodeType = "TaggedTemplateExpression"
	TypeThisExpression           NodeType = "ThisExpression"
	TypeSuper                    NodeType = "Super"
	TypeArrayExpression          NodeType = "ArrayExpression"
	TypeObjectExpression         NodeType = "ObjectExpression"
	TypeProperty                 NodeType = "Property"
	TypeFunctionExpression       NodeType = "FunctionExpression"
	TypeArrowFunctionExpression  NodeType = "ArrowFunctionExpression"
	TypeClassExpression          NodeType = "ClassExpression"
	TypeMethodDefinition         NodeType = "MethodDefinition"
	TypePropertyDefinition       NodeType = "PropertyDefinition"
	TypeStaticBlock              NodeType = "StaticBlock"
	TypeUnaryExpression          NodeType = "UnaryExpression"
	TypeUpdateExpression         NodeType = "UpdateExpression"
	TypeBinaryExpression         NodeType = "BinaryExpression"
	TypeAssignmentExpression     NodeType = "AssignmentExpression"
	TypeConditionalExpression    NodeType = "ConditionalExpression"
	TypeCallExpression           NodeType = "CallExpression"
	TypeNewExpression            NodeType = "NewExpression"
	TypeMemberExpression         NodeType = "MemberExpression"
	TypeChainExpression          NodeType = "ChainExpression"
	TypeSequenceExpression       NodeType = "SequenceExpression"
	TypeSpreadElement            NodeType = "SpreadElement"
	TypeYieldExpression          NodeType = "YieldExpression"
	TypeAwaitExpression          NodeType = "AwaitExpression"
	TypeMetaProperty             NodeType = "MetaProperty"
	TypeImportExpression         NodeType = "ImportExpression"
	TypeSliceExpression          NodeType = "SliceExpression"
)

// Span is the byte range [Start, End) a node covers in the parsed source.
// Synthesized nodes have a zero Span.
type Span struct {
	Start int
	End   int
}

// Loc returns the span itself so that embedding Span satisfies Node.Loc.
func (s Span) Loc() Span { return s }

// Node is implemented by every tree node.
type Node interface {
	Loc() Span
	Type() NodeType
}

// Expr is a node usable where a value is expected.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node usable in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// ClassElement is a member of a class body.
type ClassElement interface {
	Node
	classElement()
}

// Program is the root of a parsed snippet; Body is the top-level statement list.
type Program struct {
	Span
	Body []Stmt
}

// ---- Statements ----

type ExpressionStatement struct {
	Span
	Expression Expr
}

type BlockStatement struct {
	Span
	Body []Stmt
}

type EmptyStatement struct {
	Span
}

type DebuggerStatement struct {
	Span
}

// VariableDeclaration is a var, let or const declaration.
type VariableDeclaration struct {
	Span
	Kind         string
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Span
	ID   Expr
	Init Expr
}

type FunctionDeclaration struct {
	Span
	ID        *Identifier
	Params    []Expr
	Body      *BlockStatement
	Async     bool
	Generator bool
}

type ClassDeclaration struct {
	Span
	ID         *Identifier
	SuperClass Expr
	Body       []ClassElement
}

type IfStatement struct {
	Span
	Test       Expr
	Consequent Stmt
	Alternate  Stmt
}

// ForStatement is a C-style for loop. Init is a *VariableDeclaration, an Expr or nil.
type ForStatement struct {
	Span
	Init   Node
	Test   Expr
	Update Expr
	Body   Stmt
}

// ForInStatement iterates keys. Left is a *VariableDeclaration or an assignment target.
type ForInStatement struct {
	Span
	Left  Node
	Right Expr
	Body  Stmt
}

// ForOfStatement iterates values; Await marks "for await".
type ForOfStatement struct {
	Span
	Left  Node
	Right Expr
	Body  Stmt
	Await bool
}

type WhileStatement struct {
	Span
	Test Expr
	Body Stmt
}

type DoWhileStatement struct {
	Span
	Body Stmt
	Test Expr
}

type ReturnStatement struct {
	Span
	Argument Expr
}

type BreakStatement struct {
	Span
	Label *Identifier
}

type ContinueStatement struct {
	Span
	Label *Identifier
}

type ThrowStatement struct {
	Span
	Argument Expr
}

type TryStatement struct {
	Span
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

// CatchClause has a nil Param for "catch {".
type CatchClause struct {
	Span
	Param Expr
	Body  *BlockStatement
}

type SwitchStatement struct {
	Span
	Discriminant Expr
	Cases        []*SwitchCase
}

// SwitchCase has a nil Test for the default clause.
type SwitchCase struct {
	Span
	Test       Expr
	Consequent []Stmt
}

type LabeledStatement struct {
	Span
	Label *Identifier
	Body  Stmt
}

// ---- Expressions ----

type Identifier struct {
	Span
	Name string
}

// PrivateName is a #name class member reference; Name includes the '#'.
type PrivateName struct {
	Span
	Name string
}

// LiteralKind distinguishes literal values.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralRegExp
	LiteralBigInt
)

// String returns the string representation of LiteralKind
func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralBoolean:
		return "boolean"
	case LiteralNull:
		return "null"
	case LiteralRegExp:
		return "regexp"
	case LiteralBigInt:
		return "bigint"
	default:
		return "unknown"
	}
}

// Literal keeps the source text of the value verbatim in Raw.
type Literal struct {
	Span
	Kind LiteralKind
	Raw  string
}

// TemplateLiteral holds raw chunks; len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	Span
	Quasis      []string
	Expressions []Expr
}

type TaggedTemplateExpression struct {
	Span
	Tag   Expr
	Quasi *TemplateLiteral
}

type ThisExpression struct {
	Span
}

type Super struct {
	Span
}

// ArrayExpression holds nil elements for holes.
type ArrayExpression struct {
	Span
	Elements []Expr
}

// ObjectExpression properties are *Property or *SpreadElement.
type ObjectExpression struct {
	Span
	Properties []Node
}

// PropertyKind is "init", "get" or "set".
type PropertyKind string

const (
	PropertyInit PropertyKind = "init"
	PropertyGet  PropertyKind = "get"
	PropertySet  PropertyKind = "set"
)

// Property is an object literal member. Method properties carry a *FunctionExpression
// Value. A shorthand property with a default ({a = 1}) has an AssignmentExpression Value.
type Property struct {
	Span
	Key       Expr
	Value     Expr
	Kind      PropertyKind
	Computed  bool
	Shorthand bool
	Method    bool
}

type FunctionExpression struct {
	Span
	ID        *Identifier
	Params    []Expr
	Body      *BlockStatement
	Async     bool
	Generator bool
}

// ArrowFunctionExpression has exactly one of Body (block body) or Expression (concise body).
type ArrowFunctionExpression struct {
	Span
	Params     []Expr
	Body       *BlockStatement
	Expression Expr
	Async      bool
}

type ClassExpression struct {
	Span
	ID         *Identifier
	SuperClass Expr
	Body       []ClassElement
}

// MethodKind is "constructor", "method", "get" or "set".
type MethodKind string

const (
	MethodConstructor MethodKind = "constructor"
	MethodPlain       MethodKind = "method"
	MethodGet         MethodKind = "get"
	MethodSet         MethodKind = "set"
)

type MethodDefinition struct {
	Span
	Key      Expr
	Value    *FunctionExpression
	Kind     MethodKind
	Computed bool
	Static   bool
}

type PropertyDefinition struct {
	Span
	Key      Expr
	Value    Expr
	Computed bool
	Static   bool
}

type StaticBlock struct {
	Span
	Body []Stmt
}

type UnaryExpression struct {
	Span
	Operator string
	Argument Expr
}

type UpdateExpression struct {
	Span
	Operator string
	Prefix   bool
	Argument Expr
}

// BinaryExpression covers arithmetic, comparison and logical (&&, ||, ??) operators.
type BinaryExpression struct {
	Span
	Operator string
	Left     Expr
	Right    Expr
}

type AssignmentExpression struct {
	Span
	Operator string
	Left     Expr
	Right    Expr
}

type ConditionalExpression struct {
	Span
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

type CallExpression struct {
	Span
	Callee    Expr
	Arguments []Expr
	Optional  bool
}

type NewExpression struct {
	Span
	Callee    Expr
	Arguments []Expr
}

// MemberExpression is a.b (Property is an *Identifier or *PrivateName) or a[b] (Computed).
type MemberExpression struct {
	Span
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

// ChainExpression wraps a member/call chain that contains an optional link, delimiting
// how far the short circuit reaches.
type ChainExpression struct {
	Span
	Expression Expr
}

type SequenceExpression struct {
	Span
	Expressions []Expr
}

type SpreadElement struct {
	Span
	Argument Expr
}

type YieldExpression struct {
	Span
	Argument Expr
	Delegate bool
}

type AwaitExpression struct {
	Span
	Argument Expr
}

// MetaProperty is new.target or import.meta.
type MetaProperty struct {
	Span
	Meta     string
	Property string
}

type ImportExpression struct {
	Span
	Source Expr
}

// SliceExpression is start:end:step. Absent parts are nil and take their runtime default.
// It appears as the Property of a computed MemberExpression or as a free-standing value.
type SliceExpression struct {
	Span
	StartIndex Expr
	EndIndex   Expr
	Step       Expr
}

func (*Program) Type() NodeType                  { return TypeProgram }
func (*ExpressionStatement) Type() NodeType      { return TypeExpressionStatement }
func (*BlockStatement) Type() NodeType           { return TypeBlockStatement }
func (*EmptyStatement) Type() NodeType           { return TypeEmptyStatement }
func (*DebuggerStatement) Type() NodeType        { return TypeDebuggerStatement }
func (*VariableDeclaration) Type() NodeType      { return TypeVariableDeclaration }
func (*VariableDeclarator) Type() NodeType       { return TypeVariableDeclarator }
func (*FunctionDeclaration) Type() NodeType      { return TypeFunctionDeclaration }
func (*ClassDeclaration) Type() NodeType         { return TypeClassDeclaration }
func (*IfStatement) Type() NodeType              { return TypeIfStatement }
func (*ForStatement) Type() NodeType             { return TypeForStatement }
func (*ForInStatement) Type() NodeType           { return TypeForInStatement }
func (*ForOfStatement) Type() NodeType           { return TypeForOfStatement }
func (*WhileStatement) Type() NodeType           { return TypeWhileStatement }
func (*DoWhileStatement) Type() NodeType         { return TypeDoWhileStatement }
func (*ReturnStatement) Type() NodeType          { return TypeReturnStatement }
func (*BreakStatement) Type() NodeType           { return TypeBreakStatement }
func (*ContinueStatement) Type() NodeType        { return TypeContinueStatement }
func (*ThrowStatement) Type() NodeType           { return TypeThrowStatement }
func (*TryStatement) Type() NodeType             { return TypeTryStatement }
func (*CatchClause) Type() NodeType              { return TypeCatchClause }
func (*SwitchStatement) Type() NodeType          { return TypeSwitchStatement }
func (*SwitchCase) Type() NodeType               { return TypeSwitchCase }
func (*LabeledStatement) Type() NodeType         { return TypeLabeledStatement }
func (*Identifier) Type() NodeType               { return TypeIdentifier }
func (*PrivateName) Type() NodeType              { return TypePrivateName }
func (*Literal) Type() NodeType                  { return TypeLiteral }
func (*TemplateLiteral) Type() NodeType          { return TypeTemplateLiteral }
func (*TaggedTemplateExpression) Type() NodeType { return TypeTaggedTemplateExpression }
func (*ThisExpression) Type() NodeType           { return TypeThisExpression }
func (*Super) Type() NodeType                    { return TypeSuper }
func (*ArrayExpression) Type() NodeType          { return TypeArrayExpression }
func (*ObjectExpression) Type() NodeType         { return TypeObjectExpression }
func (*Property) Type() NodeType                 { return TypeProperty }
func (*FunctionExpression) Type() NodeType       { return TypeFunctionExpression }
func (*ArrowFunctionExpression) Type() NodeType  { return TypeArrowFunctionExpression }
func (*ClassExpression) Type() NodeType          { return TypeClassExpression }
func (*MethodDefinition) Type() NodeType         { return TypeMethodDefinition }
func (*PropertyDefinition) Type() NodeType       { return TypePropertyDefinition }
func (*StaticBlock) Type() NodeType              { return TypeStaticBlock }
func (*UnaryExpression) Type() NodeType          { return TypeUnaryExpression }
func (*UpdateExpression) Type() NodeType         { return TypeUpdateExpression }
func (*BinaryExpression) Type() NodeType         { return TypeBinaryExpression }
func (*AssignmentExpression) Type() NodeType     { return TypeAssignmentExpression }
func (*ConditionalExpression) Type() NodeType    { return TypeConditionalExpression }
func (*CallExpression) Type() NodeType           { return TypeCallExpression }
func (*NewExpression) Type() NodeType            { return TypeNewExpression }
func (*MemberExpression) Type() NodeType         { return TypeMemberExpression }
func (*ChainExpression) Type() NodeType          { return TypeChainExpression }
func (*SequenceExpression) Type() NodeType       { return TypeSequenceExpression }
func (*SpreadElement) Type() NodeType            { return TypeSpreadElement }
func (*YieldExpression) Type() NodeType          { return TypeYieldExpression }
func (*AwaitExpression) Type() NodeType          { return TypeAwaitExpression }
func (*MetaProperty) Type() NodeType             { return TypeMetaProperty }
func (*ImportExpression) Type() NodeType         { return TypeImportExpression }
func (*SliceExpression) Type() NodeType          { return TypeSliceExpression }

func (*ExpressionStatement) stmtNode() {}
func (*BlockStatement) stmtNode()      {}
func (*EmptyStatement) stmtNode()      {}
func (*DebuggerStatement) stmtNode()   {}
func (*VariableDeclaration) stmtNode() {}
func (*FunctionDeclaration) stmtNode() {}
func (*ClassDeclaration) stmtNode()    {}
func (*IfStatement) stmtNode()         {}
func (*ForStatement) stmtNode()        {}
func (*ForInStatement) stmtNode()      {}
func (*ForOfStatement) stmtNode()      {}
func (*WhileStatement) stmtNode()      {}
func (*DoWhileStatement) stmtNode()    {}
func (*ReturnStatement) stmtNode()     {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*ThrowStatement) stmtNode()      {}
func (*TryStatement) stmtNode()        {}
func (*SwitchStatement) stmtNode()     {}
func (*LabeledStatement) stmtNode()    {}

func (*Identifier) exprNode()               {}
func (*PrivateName) exprNode()              {}
func (*Literal) exprNode()                  {}
func (*TemplateLiteral) exprNode()          {}
func (*TaggedTemplateExpression) exprNode() {}
func (*ThisExpression) exprNode()           {}
func (*Super) exprNode()                    {}
func (*ArrayExpression) exprNode()          {}
func (*ObjectExpression) exprNode()         {}
func (*FunctionExpression) exprNode()       {}
func (*ArrowFunctionExpression) exprNode()  {}
func (*ClassExpression) exprNode()          {}
func (*UnaryExpression) exprNode()          {}
func (*UpdateExpression) exprNode()         {}
func (*BinaryExpression) exprNode()         {}
func (*AssignmentExpression) exprNode()     {}
func (*ConditionalExpression) exprNode()    {}
func (*CallExpression) exprNode()           {}
func (*NewExpression) exprNode()            {}
func (*MemberExpression) exprNode()         {}
func (*ChainExpression) exprNode()          {}
func (*SequenceExpression) exprNode()       {}
func (*SpreadElement) exprNode()            {}
func (*YieldExpression) exprNode()          {}
func (*AwaitExpression) exprNode()          {}
func (*MetaProperty) exprNode()             {}
func (*ImportExpression) exprNode()         {}
func (*SliceExpression) exprNode()          {}

func (*MethodDefinition) classElement()   {}
func (*PropertyDefinition) classElement() {}
func (*StaticBlock) classElement()        {}

// IsFunction reports whether n opens a new function scope (declared function, function
// expression, arrow function or class method).
func IsFunction(n Node) bool {
	switch n.(type) {
	case *FunctionDeclaration, *FunctionExpression, *ArrowFunctionExpression, *MethodDefinition:
		return true
	default:
		return false
	}
}
