// Package parser turns a token stream into an AST by recursive descent.
// Loop forms that are sugar over while (mewdo, fur, fur-in/of) are lowered
// here, so the evaluator only ever sees while loops.
package parser

import (
	"math"
	"strconv"

	"github.com/mewlang/mew/ast"
	"github.com/mewlang/mew/lexer"
	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/token"
)

const maxParams = 255

type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is a convenience wrapper: lex and parse source in one call.
func Parse(src string) (*ast.Program, error) {
	return New(lexer.New(src)).ParseProgram()
}

// ParseProgram parses until EOF. The first error encountered is returned;
// parsing does not continue past it.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// match consumes the current token if it has one of the given types.
func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			p.nextToken()
			return true
		}
	}
	return false
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.String:
		return "\"" + tok.Literal + "\""
	default:
		return "'" + tok.Literal + "'"
	}
}

func (p *Parser) syntaxError(message string) error {
	tok := p.curToken
	if tok.Type == token.Illegal {
		return mewerr.SyntaxAt(tok.Line, tok.Column, "%s", tok.Literal)
	}
	return mewerr.SyntaxAt(tok.Line, tok.Column, "%s Got %s", message, describe(tok))
}

// consume advances past the current token if it matches, otherwise reports
// a syntax error at its position.
func (p *Parser) consume(t token.TokenType, message string) (token.Token, error) {
	if p.curTokenIs(t) {
		tok := p.curToken
		p.nextToken()
		return tok, nil
	}
	return token.Token{}, p.syntaxError(message)
}

func (p *Parser) consumeIdentifier(message string) (*ast.Identifier, error) {
	tok, err := p.consume(token.Identifier, message)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
}

// synchronize skips to a likely statement boundary after an error.
func (p *Parser) synchronize() {
	p.nextToken()
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.Semicolon) {
			p.nextToken()
			return
		}
		switch p.curToken.Type {
		case token.Const, token.Let, token.Var, token.Function, token.If,
			token.While, token.Do, token.For, token.Return, token.Switch, token.Print:
			return
		}
		p.nextToken()
	}
}

// ---------- statements ----------

func (p *Parser) declaration() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.Const, token.Let, token.Var:
		kw := p.curToken
		p.nextToken()
		return p.varDeclaration(kw)
	case token.Function:
		// cat at statement level is a declaration only when a name follows;
		// otherwise it is a function expression statement
		if p.peekTokenIs(token.Identifier) {
			kw := p.curToken
			p.nextToken()
			return p.functionDeclaration(kw)
		}
	case token.Pub, token.Import, token.From:
		return nil, mewerr.SyntaxAt(p.curToken.Line, p.curToken.Column,
			"'%s' is reserved and not supported yet.", p.curToken.Literal)
	}
	return p.statement()
}

func (p *Parser) varDeclaration(kw token.Token) (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected variable name.")
	if err != nil {
		return nil, err
	}

	var value ast.Expression
	if p.match(token.Assign) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{Token: kw, Kind: kw.Literal, Name: name, Value: value}, nil
}

func (p *Parser) functionDeclaration(kw token.Token) (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block(kw)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Token: kw, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parameterList() ([]*ast.Identifier, error) {
	var params []*ast.Identifier
	if !p.curTokenIs(token.RightParen) {
		for {
			if len(params) >= maxParams {
				return nil, mewerr.SyntaxAt(p.curToken.Line, p.curToken.Column,
					"Cannot have more than 255 parameters.")
			}
			param, err := p.consumeIdentifier("Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	tok := p.curToken
	switch tok.Type {
	case token.Print:
		p.nextToken()
		return p.printStatement(tok)
	case token.LeftBrace:
		p.nextToken()
		return p.block(tok)
	case token.If:
		p.nextToken()
		return p.ifStatement(tok)
	case token.While:
		p.nextToken()
		return p.whileStatement(tok)
	case token.Do:
		p.nextToken()
		return p.doWhileStatement(tok)
	case token.For:
		p.nextToken()
		return p.forStatement(tok)
	case token.Break:
		p.nextToken()
		if _, err := p.consume(token.Semicolon, "Expected ';' after break statement."); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{Token: tok}, nil
	case token.Continue:
		p.nextToken()
		if _, err := p.consume(token.Semicolon, "Expected ';' after continue statement."); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{Token: tok}, nil
	case token.Return:
		p.nextToken()
		return p.returnStatement(tok)
	case token.Switch:
		p.nextToken()
		return p.switchStatement(tok)
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement(kw token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'purr'."); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after expression."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Token: kw, Value: value}, nil
}

// block parses statements until the closing brace. The opening brace has
// already been consumed.
func (p *Parser) block(open token.Token) (*ast.BlockStatement, error) {
	blk := &ast.BlockStatement{Token: open}
	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return blk, nil
}

// statementAsBlock parses a statement and wraps a non-block one in a
// single-statement block, so control-flow bodies are uniform. Declarations
// are not valid as bare bodies, so the extra scope changes nothing.
func (p *Parser) statementAsBlock() (*ast.BlockStatement, error) {
	tok := p.curToken
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	if blk, ok := stmt.(*ast.BlockStatement); ok {
		return blk, nil
	}
	return &ast.BlockStatement{Token: tok, Statements: []ast.Statement{stmt}}, nil
}

func (p *Parser) ifStatement(kw token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'meow?'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after condition."); err != nil {
		return nil, err
	}

	consequence, err := p.statementAsBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Token: kw, Condition: condition, Consequence: consequence}

	if p.curTokenIs(token.ElseIf) {
		elseifTok := p.curToken
		p.nextToken()
		alt, err := p.ifStatement(elseifTok)
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alt
	} else if p.match(token.Else) {
		alt, err := p.statementAsBlock()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alt
	}

	return stmt, nil
}

func (p *Parser) whileStatement(kw token.Token) (*ast.WhileStatement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'mewhile'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statementAsBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: kw, Condition: condition, Body: body}, nil
}

// doWhileStatement lowers mewdo { body } mewhile (cond); into the body
// followed by a regular while running the same body.
func (p *Parser) doWhileStatement(kw token.Token) (ast.Statement, error) {
	body, err := p.statementAsBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.While, "Expected 'mewhile' after block in do-while statement."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'mewhile'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after condition."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after do-while statement."); err != nil {
		return nil, err
	}

	return &ast.BlockStatement{Token: kw, Statements: []ast.Statement{
		body,
		&ast.WhileStatement{Token: kw, Condition: condition, Body: body},
	}}, nil
}

func (p *Parser) forStatement(kw token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'fur'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	switch {
	case p.curTokenIs(token.Var) || p.curTokenIs(token.Let) || p.curTokenIs(token.Const):
		declKw := p.curToken
		p.nextToken()

		name, err := p.consumeIdentifier("Expected variable name.")
		if err != nil {
			return nil, err
		}

		var value ast.Expression
		if p.match(token.Assign) {
			value, err = p.expression()
			if err != nil {
				return nil, err
			}
		}

		decl := &ast.VariableDeclaration{Token: declKw, Kind: declKw.Literal, Name: name, Value: value}

		if p.curTokenIs(token.In) || p.curTokenIs(token.Of) {
			isOf := p.curTokenIs(token.Of)
			p.nextToken()
			return p.forInOfStatement(kw, decl, isOf)
		}

		if _, err := p.consume(token.Semicolon, "Expected ';' after variable declaration."); err != nil {
			return nil, err
		}
		initializer = decl
	case p.match(token.Semicolon):
		initializer = nil
	default:
		stmt, err := p.expressionStatement()
		if err != nil {
			return nil, err
		}
		initializer = stmt
	}

	var condition ast.Expression
	if !p.curTokenIs(token.Semicolon) {
		var err error
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	} else {
		condition = &ast.BooleanLiteral{Token: kw, Value: true}
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.curTokenIs(token.RightParen) {
		var err error
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statementAsBlock()
	if err != nil {
		return nil, err
	}

	var loopBody *ast.BlockStatement = body
	if increment != nil {
		loopBody = &ast.BlockStatement{Token: kw, Statements: []ast.Statement{
			body,
			&ast.ExpressionStatement{Token: kw, Expression: increment},
		}}
	}

	var result ast.Statement = &ast.WhileStatement{Token: kw, Condition: condition, Body: loopBody}
	if initializer != nil {
		result = &ast.BlockStatement{Token: kw, Statements: []ast.Statement{initializer, result}}
	}
	return result, nil
}

// forInOfStatement lowers fur (catst x in/of coll) { body } into a block
// that snapshots the collection, walks Object.keys (in) or Object.values
// (of) by index, and rebinds the loop variable each pass. A catst loop
// variable gets a fresh const binding per iteration; a mutable one is a
// single binding assigned each time around.
func (p *Parser) forInOfStatement(kw token.Token, decl *ast.VariableDeclaration, isOf bool) (ast.Statement, error) {
	collection, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after for-in/of clauses."); err != nil {
		return nil, err
	}
	body, err := p.statementAsBlock()
	if err != nil {
		return nil, err
	}

	varName := decl.Name.Value
	iteratorVar := "__iterator_" + varName
	indexVar := "__index_" + varName
	collectionVar := "__keys_" + varName
	accessor := "keys"
	if isOf {
		collectionVar = "__values_" + varName
		accessor = "values"
	}

	ident := func(name string) *ast.Identifier {
		return &ast.Identifier{
			Token: token.Token{Type: token.Identifier, Literal: name, Line: kw.Line, Column: kw.Column},
			Value: name,
		}
	}
	declare := func(name string, value ast.Expression, kind string) ast.Statement {
		return &ast.VariableDeclaration{Token: kw, Kind: kind, Name: ident(name), Value: value}
	}

	iteratorDecl := declare(iteratorVar, collection, "catlt")
	indexDecl := declare(indexVar, &ast.NumberLiteral{Token: kw, Value: 0}, "catlt")
	collectionDecl := declare(collectionVar, &ast.CallExpression{
		Token: kw,
		Callee: &ast.MemberExpression{
			Token:    kw,
			Object:   ident("Object"),
			Property: ident(accessor),
		},
		Arguments: []ast.Expression{ident(iteratorVar)},
	}, "catlt")

	condition := &ast.BinaryExpression{
		Token:    kw,
		Operator: "<",
		Left:     ident(indexVar),
		Right: &ast.MemberExpression{
			Token:    kw,
			Object:   ident(collectionVar),
			Property: ident("length"),
		},
	}

	element := &ast.MemberExpression{
		Token:    kw,
		Object:   ident(collectionVar),
		Property: ident(indexVar),
		Computed: true,
	}
	advance := &ast.ExpressionStatement{Token: kw, Expression: &ast.UpdateExpression{
		Token:    kw,
		Operator: "++",
		Operand:  ident(indexVar),
	}}

	var loopBody *ast.BlockStatement
	if decl.Const() {
		loopBody = &ast.BlockStatement{Token: kw, Statements: []ast.Statement{
			declare(varName, element, "catst"),
			body,
			advance,
		}}
	} else {
		assign := &ast.ExpressionStatement{Token: kw, Expression: &ast.AssignmentExpression{
			Token: kw,
			Left:  ident(varName),
			Right: element,
		}}
		loopBody = &ast.BlockStatement{Token: kw, Statements: []ast.Statement{
			assign,
			body,
			advance,
		}}
	}

	statements := []ast.Statement{iteratorDecl, indexDecl, collectionDecl}
	if !decl.Const() {
		statements = append(statements, decl)
	}
	statements = append(statements, &ast.WhileStatement{Token: kw, Condition: condition, Body: loopBody})

	return &ast.BlockStatement{Token: kw, Statements: statements}, nil
}

func (p *Parser) returnStatement(kw token.Token) (ast.Statement, error) {
	var value ast.Expression
	if !p.curTokenIs(token.Semicolon) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Token: kw, Value: value}, nil
}

func (p *Parser) switchStatement(kw token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expected '(' after 'catwalk'."); err != nil {
		return nil, err
	}
	discriminant, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after value."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expected '{' after switch value."); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStatement{Token: kw, Discriminant: discriminant}

	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		caseTok := p.curToken
		switch {
		case p.match(token.Case):
			test, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.Colon, "Expected ':' after case value."); err != nil {
				return nil, err
			}
			consequent, err := p.caseBody()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{Token: caseTok, Test: test, Consequent: consequent})
		case p.match(token.Default):
			if _, err := p.consume(token.Colon, "Expected ':' after default."); err != nil {
				return nil, err
			}
			consequent, err := p.caseBody()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{Token: caseTok, Consequent: consequent})
		default:
			return nil, p.syntaxError("Expected 'claw' or 'default' in switch statement.")
		}
	}

	if _, err := p.consume(token.RightBrace, "Expected '}' after switch cases."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) caseBody() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.curTokenIs(token.Case) && !p.curTokenIs(token.Default) &&
		!p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	tok := p.curToken
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
}

// ---------- expressions ----------

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(token.Assign) {
		eq := p.curToken
		p.nextToken()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if !assignable(expr) {
			return nil, mewerr.SyntaxAt(eq.Line, eq.Column, "Invalid assignment target.")
		}
		return &ast.AssignmentExpression{Token: eq, Left: expr, Right: value}, nil
	}

	// compound assignment lowers to assign-of-binary
	if op, ok := compoundOp(p.curToken.Type); ok {
		opTok := p.curToken
		p.nextToken()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if !assignable(expr) {
			return nil, mewerr.SyntaxAt(opTok.Line, opTok.Column, "Invalid assignment target.")
		}
		return &ast.AssignmentExpression{
			Token: opTok,
			Left:  expr,
			Right: &ast.BinaryExpression{Token: opTok, Operator: op, Left: expr, Right: value},
		}, nil
	}

	return expr, nil
}

func assignable(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	}
	return false
}

func compoundOp(t token.TokenType) (string, bool) {
	switch t {
	case token.PlusAssign:
		return "+", true
	case token.MinusAssign:
		return "-", true
	case token.AsteriskAssign:
		return "*", true
	case token.SlashAssign:
		return "/", true
	}
	return "", false
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(token.Or) {
		opTok := p.curToken
		p.nextToken()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Token: opTok, Operator: "||", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(token.And) {
		opTok := p.curToken
		p.nextToken()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Token: opTok, Operator: "&&", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, token.Equal, token.NotEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term,
		token.GreaterThan, token.GreaterThanOrEqual, token.LessThan, token.LessThanOrEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, token.Slash, token.Asterisk, token.Percent)
}

func (p *Parser) binaryLevel(next func() (ast.Expression, error), types ...token.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, t := range types {
			if p.curTokenIs(t) {
				opTok := p.curToken
				p.nextToken()
				right, err := next()
				if err != nil {
					return nil, err
				}
				expr = &ast.BinaryExpression{Token: opTok, Operator: opTok.Literal, Left: expr, Right: right}
				matched = true
				break
			}
		}
		if !matched {
			return expr, nil
		}
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.curTokenIs(token.Not) || p.curTokenIs(token.Minus) {
		opTok := p.curToken
		p.nextToken()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}, nil
	}

	if p.curTokenIs(token.Increment) || p.curTokenIs(token.Decrement) {
		opTok := p.curToken
		p.nextToken()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if !assignable(operand) {
			return nil, mewerr.SyntaxAt(opTok.Line, opTok.Column, "Invalid increment/decrement target.")
		}
		return &ast.UpdateExpression{Token: opTok, Operator: opTok.Literal, Operand: operand, Prefix: true}, nil
	}

	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.curTokenIs(token.Dot):
			dotTok := p.curToken
			p.nextToken()
			name, err := p.consumeIdentifier("Expected property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Token: dotTok, Object: expr, Property: name}
		case p.curTokenIs(token.LeftBracket):
			bracketTok := p.curToken
			p.nextToken()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RightBracket, "Expected ']' after array index."); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Token: bracketTok, Object: expr, Property: index, Computed: true}
		case p.curTokenIs(token.Increment) || p.curTokenIs(token.Decrement):
			opTok := p.curToken
			p.nextToken()
			if !assignable(expr) {
				return nil, mewerr.SyntaxAt(opTok.Line, opTok.Column, "Invalid increment/decrement target.")
			}
			expr = &ast.UpdateExpression{Token: opTok, Operator: opTok.Literal, Operand: expr}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}
	if !p.curTokenIs(token.RightParen) {
		for {
			if len(call.Arguments) >= maxParams {
				return nil, mewerr.SyntaxAt(p.curToken.Line, p.curToken.Column,
					"Cannot have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expected ')' after arguments."); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.curToken
	switch tok.Type {
	case token.True:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: true}, nil
	case token.False:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: false}, nil
	case token.Null:
		p.nextToken()
		return &ast.NullLiteral{Token: tok}, nil
	case token.Undefined:
		p.nextToken()
		return &ast.UndefinedLiteral{Token: tok}, nil
	case token.NaN:
		p.nextToken()
		return &ast.NumberLiteral{Token: tok, Value: math.NaN()}, nil
	case token.Infinity:
		p.nextToken()
		return &ast.NumberLiteral{Token: tok, Value: math.Inf(1)}, nil
	case token.Number:
		p.nextToken()
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, mewerr.SyntaxAt(tok.Line, tok.Column, "Invalid number literal '%s'.", tok.Literal)
		}
		return &ast.NumberLiteral{Token: tok, Value: n}, nil
	case token.String:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
	case token.LeftParen:
		p.nextToken()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LeftBracket:
		p.nextToken()
		return p.arrayLiteral(tok)
	case token.LeftBrace:
		p.nextToken()
		return p.objectLiteral(tok)
	case token.Function:
		p.nextToken()
		return p.functionExpression(tok)
	case token.Identifier:
		p.nextToken()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	}
	return nil, p.syntaxError("Expected expression.")
}

func (p *Parser) arrayLiteral(open token.Token) (ast.Expression, error) {
	arr := &ast.ArrayLiteral{Token: open}
	if !p.curTokenIs(token.RightBracket) {
		for {
			el, err := p.expression()
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, el)
			if !p.match(token.Comma) {
				break
			}
			if p.curTokenIs(token.RightBracket) {
				break // trailing comma
			}
		}
	}
	if _, err := p.consume(token.RightBracket, "Expected ']' after array elements."); err != nil {
		return nil, err
	}
	return arr, nil
}

func (p *Parser) objectLiteral(open token.Token) (ast.Expression, error) {
	obj := &ast.ObjectLiteral{Token: open}
	if !p.curTokenIs(token.RightBrace) {
		for {
			keyTok := p.curToken
			var key string
			switch keyTok.Type {
			case token.Identifier, token.String:
				key = keyTok.Literal
				p.nextToken()
			default:
				return nil, p.syntaxError("Expected property name or string.")
			}

			if _, err := p.consume(token.Colon, "Expected ':' after property name."); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			obj.Properties = append(obj.Properties, &ast.Property{Token: keyTok, Key: key, Value: value})

			if !p.match(token.Comma) {
				break
			}
			if p.curTokenIs(token.RightBrace) {
				break // trailing comma
			}
		}
	}
	if _, err := p.consume(token.RightBrace, "Expected '}' after object properties."); err != nil {
		return nil, err
	}
	return obj, nil
}

// functionExpression parses cat [name](params) { body } and the arrow form
// cat (params) => expr, which lowers to a body returning the expression.
func (p *Parser) functionExpression(kw token.Token) (ast.Expression, error) {
	var name *ast.Identifier
	if p.curTokenIs(token.Identifier) {
		name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken()
	}

	if _, err := p.consume(token.LeftParen, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(token.Arrow) {
		arrowTok := p.curToken
		p.nextToken()
		if p.curTokenIs(token.LeftBrace) {
			open := p.curToken
			p.nextToken()
			body, err := p.block(open)
			if err != nil {
				return nil, err
			}
			return &ast.FunctionExpression{Token: kw, Name: name, Params: params, Body: body}, nil
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		body := &ast.BlockStatement{Token: arrowTok, Statements: []ast.Statement{
			&ast.ReturnStatement{Token: arrowTok, Value: expr},
		}}
		return &ast.FunctionExpression{Token: kw, Name: name, Params: params, Body: body}, nil
	}

	open, err := p.consume(token.LeftBrace, "Expected '{' before function body.")
	if err != nil {
		return nil, err
	}
	body, err := p.block(open)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{Token: kw, Name: name, Params: params, Body: body}, nil
}
