package faroeste

import "unicode"

// Lexer turns source text into tokens. It never stops at an error: every
// lexical problem is collected and scanning resumes after it.
type Lexer struct {
	input []rune
	start int // first rune of the lexeme being scanned
	pos   int // current reading position in input
	line  int

	tokens []Token
	Errors LexErrors
}

// NewLexer returns a lexer positioned at the start of source.
func NewLexer(source string) *Lexer {
	return &Lexer{input: []rune(source), line: 1}
}

// Lex scans source completely. The token slice always ends with exactly one
// EOF token carrying the last line reached.
func Lex(source string) ([]Token, LexErrors) {
	l := NewLexer(source)
	return l.Run(), l.Errors
}

// Run scans the remaining input and returns all tokens.
func (l *Lexer) Run() []Token {
	for !l.atEnd() {
		l.start = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line})
	return l.tokens
}

func (l *Lexer) scanToken() {
	c := l.advance()

	switch c {
	case '(':
		l.emit(LPAREN)
	case ')':
		l.emit(RPAREN)
	case '[':
		l.emit(LBRACKET)
	case ']':
		l.emit(RBRACKET)
	case '{':
		l.emit(LBRACE)
	case '}':
		l.emit(RBRACE)
	case ',':
		l.emit(COMMA)
	case '-':
		l.emit(MINUS)
	case '+':
		l.emit(PLUS)
	case '*':
		l.emit(ASTERISK)
	case ';':
		l.emit(SEMICOLON)
	case ':':
		l.emit(COLON)

	case '/':
		if l.match('/') {
			l.skipLineComment()
		} else {
			l.emit(SLASH)
		}
	case '!':
		if l.match('=') {
			l.emit(NOT_EQ)
		} else {
			l.emit(BANG)
		}
	case '<':
		if l.match('=') {
			l.emit(LE)
		} else {
			l.emit(LT)
		}
	case '>':
		if l.match('=') {
			l.emit(GE)
		} else {
			l.emit(GT)
		}
	case '=':
		if l.match('=') {
			l.emit(EQ)
		} else {
			l.emit(ASSIGN)
		}

	case '&':
		if l.match('&') {
			l.emit(AND)
		} else {
			l.fail(UnexpectedAmpersand, "", l.line)
		}
	case '|':
		if l.match('|') {
			l.emit(OR)
		} else {
			l.fail(UnexpectedPipe, "", l.line)
		}

	case '"':
		l.scanString()

	case '\n':
		l.line++
	case ' ', '\r', '\t':
		// whitespace

	default:
		switch {
		case isDigit(c):
			l.scanNumber()
		case isAlphaNumeric(c):
			l.scanWord()
		default:
			for !l.atEnd() && !isWhitespace(l.peek()) {
				l.advance()
			}
			l.fail(UnexpectedToken, string(l.input[l.start:l.pos]), l.line)
		}
	}
}

// scanString consumes a string literal whose opening quote was already read.
// The token lexeme excludes both quotes; escapes are left for the parser.
func (l *Lexer) scanString() {
	openLine := l.line

	for !l.atEnd() && l.peek() != '"' {
		c := l.advance()
		if c == '\\' && !l.atEnd() {
			c = l.advance()
		}
		if c == '\n' {
			l.line++
		}
	}

	if l.atEnd() {
		l.fail(UnterminatedString, "", openLine)
		return
	}
	l.advance() // closing "

	l.tokens = append(l.tokens, Token{
		Type:   STRING,
		Lexeme: string(l.input[l.start+1 : l.pos-1]),
		Line:   openLine,
	})
}

// scanNumber consumes "123" as INT and "123.5" as FLOAT. A '.' that is not
// followed by a digit is not part of the number.
func (l *Lexer) scanNumber() {
	l.skipDigits()

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // '.'
		l.skipDigits()
		l.emit(FLOAT)
		return
	}
	l.emit(INT)
}

func (l *Lexer) scanWord() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.emit(LookupIdent(string(l.input[l.start:l.pos])))
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) emit(tt TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tt,
		Lexeme: string(l.input[l.start:l.pos]),
		Line:   l.line,
	})
}

func (l *Lexer) fail(kind LexErrorKind, lexeme string, line int) {
	l.Errors = append(l.Errors, &LexError{Kind: kind, Lexeme: lexeme, Line: line})
}

func (l *Lexer) advance() rune {
	l.pos++
	return l.input[l.pos-1]
}

// match consumes the next rune only if it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.atEnd() || l.input[l.pos] != expected {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isAlphaNumeric(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c)
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
