package faroeste

import (
	"strconv"
	"strings"
)

// Grammar (recursive descent, lowest precedence first):
//
//	program     = declaration* EOF
//	declaration = funcDecl | varDecl | statement
//	funcDecl    = "procurado" IDENT "(" params? ")" ":" returnType block
//	params      = IDENT ":" type ("," IDENT ":" type)*
//	varDecl     = "xerife" IDENT ":" type ("=" expression)? ";"
//	type        = "lista" "[" primitive "]" | primitive
//	statement   = ifStmt | whileStmt | returnStmt | printStmt | block | exprStmt
//	ifStmt      = "bang" "(" expression ")" statement ("miss" statement)?
//	whileStmt   = "cavalgando" "(" expression ")" (statement | ";")
//	returnStmt  = "vorta" expression? ";"
//	printStmt   = "atire" expression ";"
//	block       = "{" declaration* "}"
//	expression  = assignment
//	assignment  = logic_or ("=" assignment)?
//	logic_or    = logic_and ("||" logic_and)*
//	logic_and   = equality ("&&" equality)*
//	equality    = comparison (("!=" | "==") comparison)*
//	comparison  = term ((">" | ">=" | "<" | "<=") term)*
//	term        = factor (("-" | "+") factor)*
//	factor      = unary (("*" | "/") unary)*
//	unary       = ("!" | "-") unary | call
//	call        = primary ("(" arguments? ")")*
//	primary     = literal | IDENT | "(" expression ")" | "[" elements? "]"
type Parser struct {
	tokens []Token
	pos    int

	Errors SyntaxErrors
}

const (
	msgInvalidAssignTarget = "invalid assignment target"
	msgNestedList          = "nested list not allowed"
)

// NewParser returns a parser over tokens, which should end with EOF.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. It always returns a best-effort declaration
// list; the run failed if the returned errors are non-empty.
func Parse(tokens []Token) ([]Decl, SyntaxErrors) {
	p := NewParser(tokens)
	decls := p.ParseProgram()
	return decls, p.Errors
}

// ParseExpression parses tokens as exactly one expression.
func ParseExpression(tokens []Token) (Expr, error) {
	p := NewParser(tokens)
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorAt(p.peek(), "unexpected token after expression")
	}
	if p.Errors.HasErrors() {
		return nil, p.Errors[0]
	}
	return expr, nil
}

// ParseProgram parses declarations until EOF, recovering after each error.
func (p *Parser) ParseProgram() []Decl {
	var decls []Decl
	for !p.atEnd() {
		if d := p.declaration(); d != nil {
			decls = append(decls, d)
		}
	}
	return decls
}

// declaration parses one declaration. On failure the error is recorded, the
// parser resynchronizes and nil is returned.
func (p *Parser) declaration() Decl {
	d, err := p.parseDeclaration()
	if err != nil {
		// Every parse error is built by errorAt.
		p.report(err.(*SyntaxError))
		p.synchronize()
		return nil
	}
	return d
}

func (p *Parser) parseDeclaration() (Decl, error) {
	if p.match(FN) {
		return p.funcDecl()
	}
	if p.match(LET) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *Parser) funcDecl() (Decl, error) {
	name, err := p.expect(IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []Param
	if !p.check(RPAREN) {
		for {
			pname, err := p.expect(IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON, "expected ':' after parameter name"); err != nil {
				return nil, err
			}
			ptype, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Name: pname, Type: ptype})
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':' before return type"); err != nil {
		return nil, err
	}

	var ret Type = TypeNull
	if !p.match(NULL) {
		if ret, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Name: name, Params: params, Body: body, ReturnType: ret}, nil
}

func (p *Parser) varDecl() (Decl, error) {
	name, err := p.expect(IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':' after variable name"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(ASSIGN) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarDecl{Name: name, DeclType: typ, Init: init}, nil
}

// parseType parses a primitive type or a one-level list type.
func (p *Parser) parseType() (Type, error) {
	if p.match(LIST) {
		if _, err := p.expect(LBRACKET, "expected '[' after 'lista'"); err != nil {
			return nil, err
		}
		if p.check(LIST) {
			return nil, p.errorAt(p.peek(), msgNestedList)
		}
		elem, err := p.primitiveType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET, "expected ']' after list element type"); err != nil {
			return nil, err
		}
		return ListType{Elem: elem}, nil
	}
	return p.primitiveType()
}

func (p *Parser) primitiveType() (PrimitiveType, error) {
	if t, ok := typeKeywords[p.peek().Type]; ok {
		p.advance()
		return t, nil
	}
	return 0, p.errorAt(p.peek(), "expected type")
}

func (p *Parser) statement() (Decl, error) {
	switch {
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(PRINT):
		return p.printStmt()
	case p.match(LBRACE):
		brace := p.previous()
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &Block{Brace: brace, Stmts: stmts}, nil
	}
	return p.exprStmt()
}

// block parses declarations up to and including the closing brace. The
// opening brace was already consumed.
func (p *Parser) block() ([]Decl, error) {
	var stmts []Decl
	for !p.check(RBRACE) && !p.atEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	if _, err := p.expect(RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStmt() (Decl, error) {
	kw := p.previous()
	cond, err := p.condition("bang")
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var els Decl
	if p.match(ELSE) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &If{Keyword: kw, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStmt() (Decl, error) {
	kw := p.previous()
	cond, err := p.condition("cavalgando")
	if err != nil {
		return nil, err
	}

	var body Decl
	if !p.match(SEMICOLON) {
		if body, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &While{Keyword: kw, Cond: cond, Body: body}, nil
}

// condition parses the parenthesised condition of bang/cavalgando.
func (p *Parser) condition(keyword string) (Expr, error) {
	if _, err := p.expect(LPAREN, "expected '(' after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "expected ')' after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) returnStmt() (Decl, error) {
	kw := p.previous()

	var value Expr
	if !p.check(SEMICOLON) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &Return{Keyword: kw, Value: value}, nil
}

func (p *Parser) printStmt() (Decl, error) {
	kw := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &Print{Keyword: kw, Value: value}, nil
}

func (p *Parser) exprStmt() (Decl, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Value: value}, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative. An invalid target is reported at the '='
// without aborting the declaration.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if !p.match(ASSIGN) {
		return expr, nil
	}

	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if v, ok := expr.(*Variable); ok {
		return &Assign{Name: v.Name, Value: value}, nil
	}
	p.report(p.errorAt(equals, msgInvalidAssignTarget))
	return expr, nil
}

func (p *Parser) logicOr() (Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, NOT_EQ, EQ)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, GT, GE, LT, LE)
}

func (p *Parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, MINUS, PLUS)
}

func (p *Parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, ASTERISK, SLASH)
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: op, Operand: operand}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(LPAREN) {
		args, err := p.exprList(RPAREN)
		if err != nil {
			return nil, err
		}
		paren, err := p.expect(RPAREN, "expected ')' after arguments")
		if err != nil {
			return nil, err
		}
		expr = &Call{Callee: expr, Paren: paren, Args: args}
	}
	return expr, nil
}

// exprList parses `expression ("," expression)*` unless the next token is
// closing. Trailing commas are rejected.
func (p *Parser) exprList(closing TokenType) ([]Expr, error) {
	var list []Expr
	if p.check(closing) {
		return list, nil
	}
	for {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if !p.match(COMMA) {
			return list, nil
		}
	}
}

func (p *Parser) primary() (Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case FALSE:
		p.advance()
		return &Literal{Token: tok, Value: false}, nil
	case TRUE:
		p.advance()
		return &Literal{Token: tok, Value: true}, nil
	case NULL:
		p.advance()
		return &Literal{Token: tok, Value: nil}, nil

	case INT:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok, "integer literal out of range")
		}
		p.advance()
		return &Literal{Token: tok, Value: n}, nil
	case FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid float literal")
		}
		p.advance()
		return &Literal{Token: tok, Value: f}, nil
	case STRING:
		p.advance()
		return &Literal{Token: tok, Value: unescape(tok.Lexeme)}, nil

	case IDENT:
		p.advance()
		return &Variable{Name: tok}, nil

	case LPAREN:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &Grouping{Paren: tok, Inner: inner}, nil

	case LBRACKET:
		p.advance()
		elems, err := p.exprList(RBRACKET)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET, "expected ']' after list elements"); err != nil {
			return nil, err
		}
		return &ListLiteral{Bracket: tok, Elements: elems}, nil
	}

	return nil, p.errorAt(tok, "expected expression")
}

// unescape decodes \" \\ \n and \t. Unknown escapes are kept verbatim.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// synchronize discards tokens until just after a ';' or until the next
// token can start a declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		if startsStatement(p.peek().Type) {
			return
		}
		p.advance()
	}
}

func (p *Parser) errorAt(tok Token, msg string) *SyntaxError {
	return &SyntaxError{Token: tok, Message: msg}
}

func (p *Parser) report(err *SyntaxError) {
	p.Errors = append(p.Errors, err)
}

// match consumes the current token if it has any of the given types.
func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tt TokenType) bool {
	return !p.atEnd() && p.peek().Type == tt
}

// expect consumes the current token if it matches tt, otherwise returns a
// syntax error anchored at the current token.
func (p *Parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), msg)
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == EOF
}

// peek returns the current token, or a synthetic EOF past the end.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		line := 1
		if n := len(p.tokens); n > 0 {
			line = p.tokens[n-1].Line
		}
		return Token{Type: EOF, Line: line}
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.peek()
	}
	return p.tokens[p.pos-1]
}
