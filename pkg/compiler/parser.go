package compiler

// Parser consumes the flat token slice produced by the Scanner and builds an AST.
//
// Grammar:
//
//	program    = stmtList EOF
//	stmtList   = statement*                      (stops at EOF or "}")
//	statement  = letStmt | ifStmt | whileStmt | returnStmt | block | exprStmt
//	letStmt    = "let" IDENTIFIER "=" expression ";"
//	ifStmt     = "if" "(" expression ")" statement ("else" statement)?
//	whileStmt  = "while" "(" expression ")" statement
//	returnStmt = "return" expression ";"
//	block      = "{" statement* "}"
//	exprStmt   = expression ";"
//	expression = term (("+"|"-"|">"|"<"|"="|"!") term)*
//	term       = factor (("*"|"/") factor)*
//	factor     = "(" expression ")" | IDENTIFIER | INTEGER | STRING
//
// Arithmetic and comparison share one tier, so a > b > c is ((a > b) > c).
// The first mismatch aborts the parse; there is no recovery.
type Parser struct {
	tokens []Token
	pos    int
	depth  int
	cfg    settings
}

// NewParser returns a Parser positioned at the first token.
func NewParser(tokens []Token, opts ...Option) *Parser {
	return &Parser{tokens: tokens, cfg: newSettings(opts)}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
// The mismatched token is left in place.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, &ParseError{Expected: tt.String(), Found: tok}
	}
	return p.advance(), nil
}

// enter records one more level of nesting and fails past the configured bound.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.cfg.maxDepth {
		return &ParseError{Kind: ErrNestingTooDeep, Found: p.peek()}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// ParseProgram parses the whole token sequence. Tokens after the statement
// list other than EOF (a stray "}") are an error.
func (p *Parser) ParseProgram() (*Program, error) {
	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return &Program{Body: body}, nil
}

func (p *Parser) parseStmtList() (*StmtList, error) {
	var stmts []Stmt
	for p.peek().Type != EOF && p.peek().Type != RBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &StmtList{Stmts: stmts}, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Type {
	case LET:
		return p.parseLet()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case RETURN:
		return p.parseReturn()
	case LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseLet parses let name = expr;
func (p *Parser) parseLet() (Stmt, error) {
	if _, err := p.expect(LET); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQUALS); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &LetStmt{Name: name.Lexeme, Init: init}, nil
}

// parseCondition parses ( expr ) after if and while.
func (p *Parser) parseCondition() (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses if ( cond ) body [ else elseBody ]
// An else always belongs to the innermost if, since body is exactly one statement.
func (p *Parser) parseIf() (Stmt, error) {
	if _, err := p.expect(IF); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBody Stmt
	if p.peek().Type == ELSE {
		p.advance()
		elseBody, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: cond, Body: body, ElseBody: elseBody}, nil
}

// parseWhile parses while ( cond ) body
func (p *Parser) parseWhile() (Stmt, error) {
	if _, err := p.expect(WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	if _, err := p.expect(RETURN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ReturnStmt{Expr: expr}, nil
}

// parseBlock parses { stmt1; stmt2; ... }
func (p *Parser) parseBlock() (Stmt, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for p.peek().Type != RBRACE && p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return &BlockStmt{Stmts: stmts}, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

// parseExpression handles the loose tier: + - > < = !
func (p *Parser) parseExpression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tt := p.peek().Type
		if tt != PLUS && tt != MINUS && tt != GREATER && tt != LESS && tt != EQUALS && tt != NOT_EQ {
			break
		}
		op := p.advance().Type
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseTerm handles * and /
func (p *Parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tt := p.peek().Type
		if tt != STAR && tt != SLASH {
			break
		}
		op := p.advance().Type
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseFactor() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.advance()
		return &IntegerLiteral{Value: tok.Value}, nil

	case STRING:
		p.advance()
		return &StringLiteral{Value: tok.Lexeme}, nil

	case IDENTIFIER:
		p.advance()
		return &VarRef{Name: tok.Lexeme}, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, &ParseError{Expected: "expression", Found: tok}
	}
}

// Parse builds the AST for a complete token sequence ending in EOF.
func Parse(tokens []Token, opts ...Option) (*Program, error) {
	return NewParser(tokens, opts...).ParseProgram()
}
