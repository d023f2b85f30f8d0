package parser

import (
	"fmt"
	"strconv"

	"quill/ast"
	"quill/internals"
	"quill/lexer"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a Pratt parser over the token stream of a lexer. Errors are
// accumulated in Errors and parsing always runs to the end of the input, so
// callers must check Errors before trusting the returned program.
type Parser struct {
	*internals.ErrorCollector

	lexer          *lexer.Lexer
	FilePath       string
	prefixParseFns map[lexer.TokenKind]prefixParseFn
	infixParseFns  map[lexer.TokenKind]infixParseFn

	curToken  lexer.Token
	peekToken lexer.Token // one token lookahead

	depth int
}

func NewParser(lex *lexer.Lexer, filepath string) *Parser {
	p := Parser{
		ErrorCollector: internals.NewErrorCollector(),
		lexer:          lex,
		FilePath:       filepath,
		prefixParseFns: make(map[lexer.TokenKind]prefixParseFn),
		infixParseFns:  make(map[lexer.TokenKind]infixParseFn),
	}

	// prefix/unary operators
	p.registerPrefix(lexer.TokenIdentifier, p.parseIdentifier)
	p.registerPrefix(lexer.TokenInt, p.parseIntLiteral)
	p.registerPrefix(lexer.TokenString, p.parseStringLiteral)
	p.registerPrefix(lexer.TokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(lexer.TokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(lexer.TokenBraceOpen, p.parseGroupedExpression)
	p.registerPrefix(lexer.TokenExclamation, p.parsePrefixExpression)
	p.registerPrefix(lexer.TokenMinus, p.parsePrefixExpression)
	p.registerPrefix(lexer.TokenPlus, p.parsePrefixExpression)
	p.registerPrefix(lexer.TokenIf, p.parseIfExpression)
	p.registerPrefix(lexer.TokenWhile, p.parseWhileExpression)
	p.registerPrefix(lexer.TokenFn, p.parseFunctionLiteral)
	p.registerPrefix(lexer.TokenBracketOpen, p.parseArrayLiteral)
	p.registerPrefix(lexer.TokenCurlyBraceOpen, p.parseHashLiteral)

	// infix/binary operators
	for kind := range lexer.BinOperators {
		p.registerInfix(kind, p.parseInfixExpression)
	}
	p.registerInfix(lexer.TokenBraceOpen, p.parseCallExpression)
	p.registerInfix(lexer.TokenBracketOpen, p.parseIndexExpression)

	// set the tok position
	p.nextToken()
	p.nextToken()

	return &p
}

// Parse is a shorthand for lexing and parsing src in one go.
func Parse(filepath, src string) (*ast.Program, []error) {
	p := NewParser(lexer.NewLexer(filepath, src), filepath)
	program := p.Parse()
	return program, p.Errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) curTokenKindIs(kind lexer.TokenKind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) peekTokenKindIs(kind lexer.TokenKind) bool {
	return p.peekToken.Kind == kind
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Kind]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Kind]; ok {
		return p
	}
	return LOWEST
}

// expectPeek advances only when the lookahead has the wanted kind, otherwise
// it records a mismatch error.
func (p *Parser) expectPeek(kind lexer.TokenKind) bool {
	if p.peekTokenKindIs(kind) {
		p.nextToken()
		return true
	}
	p.peekError(kind)
	return false
}

func (p *Parser) error(tok lexer.Token, format string, a ...interface{}) error {
	return &Error{
		File: p.FilePath,
		Row:  tok.Row,
		Col:  tok.Col,
		Msg:  fmt.Sprintf(format, a...),
	}
}

func (p *Parser) peekError(kind lexer.TokenKind) {
	if p.peekTokenKindIs(lexer.TokenError) {
		p.Add(p.error(p.peekToken, "%s", p.peekToken.Text))
		return
	}
	p.Add(p.error(p.peekToken, "expected next token to be %s, got %s instead", kind, p.peekToken.Kind))
}

func (p *Parser) registerPrefix(tokenType lexer.TokenKind, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenKind, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) bad() ast.Expression {
	return &ast.BadExpression{Token: p.curToken}
}

// Parse consumes the whole token stream.
func (p *Parser) Parse() *ast.Program {
	program := ast.Program{
		Statements: []ast.Statement{},
	}

	for !p.curTokenKindIs(lexer.TokenEOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return &program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Kind {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenBreak:
		return p.parseBreakStatement()
	case lexer.TokenSemiColon:
		// empty statement
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) skipSemiColon() {
	if p.peekTokenKindIs(lexer.TokenSemiColon) {
		p.nextToken()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Text}

	if !p.expectPeek(lexer.TokenAssign) {
		return nil
	}

	// consume =
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemiColon()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	switch p.peekToken.Kind {
	case lexer.TokenSemiColon, lexer.TokenCurlyBraceClose, lexer.TokenEOF:
		// bare return
	default:
		p.nextToken()
		stmt.ReturnValue = p.parseExpression(LOWEST)
	}

	p.skipSemiColon()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	p.skipSemiColon()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	p.skipSemiColon()
	return stmt
}

// parseExpression is the precedence climbing core: the prefix handler of the
// current token builds the left operand, then infix handlers fold in every
// operator that binds tighter than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxNesting {
		p.Seal(p.error(p.curToken, "expression nesting too deep (limit %d)", MaxNesting))
		p.drain()
		return p.bad()
	}

	cur := p.curToken

	if cur.Kind == lexer.TokenError {
		p.Add(p.error(cur, "%s", cur.Text))
		return p.bad()
	}

	prefix := p.prefixParseFns[cur.Kind]
	if prefix == nil {
		p.Add(p.error(cur, "no prefix parse function for %s", cur.Kind))
		return p.bad()
	}

	leftExp := prefix()

	for !p.peekTokenKindIs(lexer.TokenSemiColon) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Kind]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// drain skips the rest of the input.
func (p *Parser) drain() {
	for !p.curTokenKindIs(lexer.TokenEOF) {
		p.nextToken()
	}
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Text}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.curToken

	num, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		p.Add(p.error(tok, "could not parse %q as integer", tok.Text))
		return p.bad()
	}
	return &ast.IntegerLiteral{
		Token: tok,
		Value: num,
	}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{
		Token: p.curToken,
		Value: p.curToken.Text,
	}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{
		Token: p.curToken,
		Value: p.curTokenKindIs(lexer.TokenTrue),
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.TokenBraceClose) {
		return p.bad()
	}
	return exp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken

	p.nextToken()

	right := p.parseExpression(PREFIX)

	return &ast.PrefixExpression{
		Token:    tok,
		Operator: lexer.UnaryOperators[tok.Kind],
		Right:    right,
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	return &ast.InfixExpression{
		Token:    tok,
		Operator: lexer.BinOperators[tok.Kind],
		Left:     left,
		Right:    right,
	}
}

// parseCondition parses `( EXPR )` and leaves the cursor on the ).
func (p *Parser) parseCondition() (ast.Expression, bool) {
	if !p.expectPeek(lexer.TokenBraceOpen) {
		return nil, false
	}

	p.nextToken()
	condition := p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.TokenBraceClose) {
		return nil, false
	}
	return condition, true
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}

	condition, ok := p.parseCondition()
	if !ok {
		return p.bad()
	}
	expr.Condition = condition

	if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
		return p.bad()
	}
	expr.Consequence = p.parseBlockStatement()

	// else is always followed by a full block
	if p.peekTokenKindIs(lexer.TokenElse) {
		p.nextToken()

		if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
			return p.bad()
		}
		expr.Alternative = p.parseBlockStatement()
	}

	return expr
}

func (p *Parser) parseWhileExpression() ast.Expression {
	expr := &ast.WhileExpression{Token: p.curToken}

	condition, ok := p.parseCondition()
	if !ok {
		return p.bad()
	}
	expr.Condition = condition

	if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
		return p.bad()
	}
	expr.Body = p.parseBlockStatement()

	return expr
}

// parseBlockStatement expects the cursor on { and stops on the matching }
// or at the end of the input.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Body = make([]ast.Statement, 0)

	p.nextToken()

	for !p.curTokenKindIs(lexer.TokenCurlyBraceClose) && !p.curTokenKindIs(lexer.TokenEOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	expr := &ast.FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(lexer.TokenBraceOpen) {
		return p.bad()
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return p.bad()
	}
	expr.Parameters = params

	if !p.expectPeek(lexer.TokenCurlyBraceOpen) {
		return p.bad()
	}

	expr.Body = p.parseBlockStatement()

	return expr
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	identifiers := make([]*ast.Identifier, 0)

	if p.peekTokenKindIs(lexer.TokenBraceClose) {
		p.nextToken()
		return identifiers, true
	}

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil, false
	}
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Text})

	for p.peekTokenKindIs(lexer.TokenComma) {
		// consume the comma (,) token
		p.nextToken()
		if !p.expectPeek(lexer.TokenIdentifier) {
			return nil, false
		}
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Text})
	}

	if !p.expectPeek(lexer.TokenBraceClose) {
		return nil, false
	}

	return identifiers, true
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseExpressionList(lexer.TokenBraceClose)
	if !ok {
		return p.bad()
	}
	exp.Arguments = args

	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	expr := &ast.ArrayLiteral{Token: p.curToken}

	elements, ok := p.parseExpressionList(lexer.TokenBracketClose)
	if !ok {
		return p.bad()
	}
	expr.Elements = elements

	return expr
}

// parseExpressionList parses comma separated expressions up to end, it is
// shared by call arguments and array elements.
func (p *Parser) parseExpressionList(end lexer.TokenKind) ([]ast.Expression, bool) {
	list := make([]ast.Expression, 0)

	if p.peekTokenKindIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenKindIs(lexer.TokenComma) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.TokenBracketClose) {
		return p.bad()
	}

	return exp
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{Token: p.curToken, Pairs: []ast.HashPair{}}

	for !p.peekTokenKindIs(lexer.TokenCurlyBraceClose) {
		p.nextToken()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(lexer.TokenColon) {
			return p.bad()
		}

		// consume :
		p.nextToken()
		value := p.parseExpression(LOWEST)

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekTokenKindIs(lexer.TokenCurlyBraceClose) && !p.expectPeek(lexer.TokenComma) {
			return p.bad()
		}
	}

	if !p.expectPeek(lexer.TokenCurlyBraceClose) {
		return p.bad()
	}

	return hash
}
