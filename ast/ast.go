package ast

import "github.com/mewlang/mew/token"

// Node is the interface all AST nodes implement.
type Node interface {
	TokenLiteral() string
	nodeType() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) nodeType() string { return "Program" }

// ---------- Statements ----------

type VariableDeclaration struct {
	Token token.Token // catst, catlt, or catv
	Kind  string      // "catst", "catlt", "catv"
	Name  *Identifier
	Value Expression // may be nil for catlt/catv
}

func (d *VariableDeclaration) Const() bool { return d.Kind == "catst" }

type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

type PrintStatement struct {
	Token token.Token
	Value Expression
}

type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

type ReturnStatement struct {
	Token token.Token
	Value Expression // may be nil
}

type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // may be nil; *IfStatement (meowse?) or *BlockStatement (hiss)
}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

type BreakStatement struct {
	Token token.Token
}

type ContinueStatement struct {
	Token token.Token
}

type SwitchStatement struct {
	Token        token.Token
	Discriminant Expression
	Cases        []*SwitchCase
}

type SwitchCase struct {
	Token      token.Token
	Test       Expression // nil for default
	Consequent []Statement
}

type FunctionDeclaration struct {
	Token  token.Token
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// ---------- Expressions ----------

type Identifier struct {
	Token token.Token
	Value string
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

type StringLiteral struct {
	Token token.Token
	Value string
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

type NullLiteral struct {
	Token token.Token
}

type UndefinedLiteral struct {
	Token token.Token
}

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

type ObjectLiteral struct {
	Token      token.Token
	Properties []*Property
}

type Property struct {
	Token token.Token
	Key   string // identifier or string key
	Value Expression
}

type FunctionExpression struct {
	Token  token.Token
	Name   *Identifier // may be nil for anonymous and arrow functions
	Params []*Identifier
	Body   *BlockStatement
}

type UnaryExpression struct {
	Token    token.Token
	Operator string // "-" or "!"
	Operand  Expression
}

type UpdateExpression struct {
	Token    token.Token
	Operator string // "++" or "--"
	Operand  Expression
	Prefix   bool
}

type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

type LogicalExpression struct {
	Token    token.Token
	Operator string // "&&" or "||"
	Left     Expression
	Right    Expression
}

type AssignmentExpression struct {
	Token token.Token
	Left  Expression // Identifier or MemberExpression
	Right Expression
}

type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression // Identifier when !Computed, arbitrary expression when Computed
	Computed bool
}

// --- Node interface implementations ---
// Statement markers
func (s *VariableDeclaration) statementNode() {}
func (s *ExpressionStatement) statementNode() {}
func (s *PrintStatement) statementNode()      {}
func (s *BlockStatement) statementNode()      {}
func (s *ReturnStatement) statementNode()     {}
func (s *IfStatement) statementNode()         {}
func (s *WhileStatement) statementNode()      {}
func (s *BreakStatement) statementNode()      {}
func (s *ContinueStatement) statementNode()   {}
func (s *SwitchStatement) statementNode()     {}
func (s *FunctionDeclaration) statementNode() {}

// Expression markers
func (e *Identifier) expressionNode()         {}
func (e *NumberLiteral) expressionNode()      {}
func (e *StringLiteral) expressionNode()      {}
func (e *BooleanLiteral) expressionNode()     {}
func (e *NullLiteral) expressionNode()        {}
func (e *UndefinedLiteral) expressionNode()   {}
func (e *ArrayLiteral) expressionNode()       {}
func (e *ObjectLiteral) expressionNode()      {}
func (e *FunctionExpression) expressionNode() {}
func (e *UnaryExpression) expressionNode()    {}
func (e *UpdateExpression) expressionNode()   {}
func (e *BinaryExpression) expressionNode()   {}
func (e *LogicalExpression) expressionNode()  {}
func (e *AssignmentExpression) expressionNode() {}
func (e *CallExpression) expressionNode()       {}
func (e *MemberExpression) expressionNode()     {}

// TokenLiteral implementations
func (s *VariableDeclaration) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *PrintStatement) TokenLiteral() string      { return s.Token.Literal }
func (s *BlockStatement) TokenLiteral() string      { return s.Token.Literal }
func (s *ReturnStatement) TokenLiteral() string     { return s.Token.Literal }
func (s *IfStatement) TokenLiteral() string         { return s.Token.Literal }
func (s *WhileStatement) TokenLiteral() string      { return s.Token.Literal }
func (s *BreakStatement) TokenLiteral() string      { return s.Token.Literal }
func (s *ContinueStatement) TokenLiteral() string   { return s.Token.Literal }
func (s *SwitchStatement) TokenLiteral() string     { return s.Token.Literal }
func (s *SwitchCase) TokenLiteral() string          { return s.Token.Literal }
func (s *FunctionDeclaration) TokenLiteral() string { return s.Token.Literal }

func (e *Identifier) TokenLiteral() string           { return e.Token.Literal }
func (e *NumberLiteral) TokenLiteral() string        { return e.Token.Literal }
func (e *StringLiteral) TokenLiteral() string        { return e.Token.Literal }
func (e *BooleanLiteral) TokenLiteral() string       { return e.Token.Literal }
func (e *NullLiteral) TokenLiteral() string          { return e.Token.Literal }
func (e *UndefinedLiteral) TokenLiteral() string     { return e.Token.Literal }
func (e *ArrayLiteral) TokenLiteral() string         { return e.Token.Literal }
func (e *ObjectLiteral) TokenLiteral() string        { return e.Token.Literal }
func (e *Property) TokenLiteral() string             { return e.Token.Literal }
func (e *FunctionExpression) TokenLiteral() string   { return e.Token.Literal }
func (e *UnaryExpression) TokenLiteral() string      { return e.Token.Literal }
func (e *UpdateExpression) TokenLiteral() string     { return e.Token.Literal }
func (e *BinaryExpression) TokenLiteral() string     { return e.Token.Literal }
func (e *LogicalExpression) TokenLiteral() string    { return e.Token.Literal }
func (e *AssignmentExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) TokenLiteral() string       { return e.Token.Literal }
func (e *MemberExpression) TokenLiteral() string     { return e.Token.Literal }

// nodeType implementations
func (s *VariableDeclaration) nodeType() string { return "VariableDeclaration" }
func (s *ExpressionStatement) nodeType() string { return "ExpressionStatement" }
func (s *PrintStatement) nodeType() string      { return "PrintStatement" }
func (s *BlockStatement) nodeType() string      { return "BlockStatement" }
func (s *ReturnStatement) nodeType() string     { return "ReturnStatement" }
func (s *IfStatement) nodeType() string         { return "IfStatement" }
func (s *WhileStatement) nodeType() string      { return "WhileStatement" }
func (s *BreakStatement) nodeType() string      { return "BreakStatement" }
func (s *ContinueStatement) nodeType() string   { return "ContinueStatement" }
func (s *SwitchStatement) nodeType() string     { return "SwitchStatement" }
func (s *SwitchCase) nodeType() string          { return "SwitchCase" }
func (s *FunctionDeclaration) nodeType() string { return "FunctionDeclaration" }

func (e *Identifier) nodeType() string           { return "Identifier" }
func (e *NumberLiteral) nodeType() string        { return "NumberLiteral" }
func (e *StringLiteral) nodeType() string        { return "StringLiteral" }
func (e *BooleanLiteral) nodeType() string       { return "BooleanLiteral" }
func (e *NullLiteral) nodeType() string          { return "NullLiteral" }
func (e *UndefinedLiteral) nodeType() string     { return "UndefinedLiteral" }
func (e *ArrayLiteral) nodeType() string         { return "ArrayLiteral" }
func (e *ObjectLiteral) nodeType() string        { return "ObjectLiteral" }
func (e *Property) nodeType() string             { return "Property" }
func (e *FunctionExpression) nodeType() string   { return "FunctionExpression" }
func (e *UnaryExpression) nodeType() string      { return "UnaryExpression" }
func (e *UpdateExpression) nodeType() string     { return "UpdateExpression" }
func (e *BinaryExpression) nodeType() string     { return "BinaryExpression" }
func (e *LogicalExpression) nodeType() string    { return "LogicalExpression" }
func (e *AssignmentExpression) nodeType() string { return "AssignmentExpression" }
func (e *CallExpression) nodeType() string       { return "CallExpression" }
func (e *MemberExpression) nodeType() string     { return "MemberExpression" }
