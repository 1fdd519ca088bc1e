package faroeste

import "strconv"

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	EOF = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT" // xerife, x1, nome
	INT    = "INT"   // 12345
	FLOAT  = "FLOAT" // 123.45
	STRING = "STRING"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"

	LT     = "<"
	GT     = ">"
	EQ     = "=="
	NOT_EQ = "!="
	LE     = "<="
	GE     = ">="

	AND = "&&"
	OR  = "||"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	IF     = "IF"     // bang
	ELSE   = "ELSE"   // miss
	WHILE  = "WHILE"  // cavalgando
	LET    = "LET"    // xerife
	FN     = "FN"     // procurado
	RETURN = "RETURN" // vorta
	NULL   = "NULL"   // deserto
	TRUE   = "TRUE"   // mocinho
	FALSE  = "FALSE"  // bandido
	PRINT  = "PRINT"  // atire

	// Type keywords
	TYPE_INT    = "TYPE_INT"
	TYPE_FLOAT  = "TYPE_FLOAT"
	TYPE_STRING = "TYPE_STRING"
	TYPE_BOOL   = "TYPE_BOOL"
	LIST        = "LIST" // lista
)

// keywords maps the surface spelling of every reserved word to its token
// type. Matching is case-sensitive: "Bang" and "BANG" are identifiers.
var keywords = map[string]TokenType{
	"bang":       IF,
	"miss":       ELSE,
	"cavalgando": WHILE,
	"xerife":     LET,
	"procurado":  FN,
	"vorta":      RETURN,
	"deserto":    NULL,
	"mocinho":    TRUE,
	"bandido":    FALSE,
	"atire":      PRINT,
	"int":        TYPE_INT,
	"float":      TYPE_FLOAT,
	"string":     TYPE_STRING,
	"bool":       TYPE_BOOL,
	"lista":      LIST,
}

func (tt TokenType) String() string { return string(tt) }

// LookupIdent returns the reserved token type for word, or IDENT.
func LookupIdent(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return IDENT
}

// Token is one lexical unit. Tokens are compared structurally.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF@" + strconv.Itoa(t.Line)
	}
	return string(t.Type) + "(" + strconv.Quote(t.Lexeme) + ")@" + strconv.Itoa(t.Line)
}

// startsStatement reports whether a token of this type can begin a new
// declaration or statement. The parser resynchronizes on these.
func startsStatement(tt TokenType) bool {
	switch tt {
	case IF, ELSE, WHILE, LET, FN, RETURN, NULL, TRUE, FALSE, PRINT:
		return true
	}
	return false
}
