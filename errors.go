package faroeste

import (
	"errors"
	"fmt"
	"strings"
)

// LexErrorKind identifies one class of lexical error.
type LexErrorKind int

const (
	UnexpectedToken LexErrorKind = iota
	UnexpectedAmpersand
	UnexpectedPipe
	UnterminatedString
)

func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case UnexpectedAmpersand:
		return "UNEXPECTED_AMPERSAND"
	case UnexpectedPipe:
		return "UNEXPECTED_PIPE"
	case UnterminatedString:
		return "UNTERMINATED_STRING"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// LexError is a lexical problem at a source line. Lexeme is only set for
// UnexpectedToken.
type LexError struct {
	Kind   LexErrorKind
	Lexeme string
	Line   int
}

// Message is the fixed human-readable text for the error kind.
func (e *LexError) Message() string {
	switch e.Kind {
	case UnterminatedString:
		return "a string was opened but never closed"
	case UnexpectedAmpersand:
		return "unexpected '&', did you mean '&&'?"
	case UnexpectedPipe:
		return "unexpected '|', did you mean '||'?"
	default:
		return "unexpected token: " + e.Lexeme
	}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message())
}

// LexErrors collects every lexical error of one scan.
type LexErrors []*LexError

func (es LexErrors) HasErrors() bool { return len(es) > 0 }

func (es LexErrors) String() string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (es LexErrors) Error() string { return es.String() }

// SyntaxError records the offending token (possibly EOF) and a message.
type SyntaxError struct {
	Token   Token
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Token.Type == EOF {
		return "at end of file: " + e.Message
	}
	return fmt.Sprintf("line %d at %q: %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// SyntaxErrors collects the syntax errors of one parse.
type SyntaxErrors []*SyntaxError

func (es SyntaxErrors) HasErrors() bool { return len(es) > 0 }

func (es SyntaxErrors) String() string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (es SyntaxErrors) Error() string { return es.String() }

// Semantic error kinds. A *SemanticError unwraps to exactly one of these.
var (
	ErrRedeclared            = errors.New("redeclared name")
	ErrUndeclared            = errors.New("undeclared name")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrNestedList            = errors.New("nested list not allowed")
	ErrInvalidOperand        = errors.New("invalid operand type")
	ErrReturnOutsideFunction = errors.New("return outside function")
)

// SemanticError is the single error that aborts an analysis pass.
// Expected and Found are set for ErrTypeMismatch.
type SemanticError struct {
	Kind     error
	Token    Token
	Expected Type
	Found    Type
	Message  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("error: line %d: %s", e.Token.Line, e.Message)
}

func (e *SemanticError) Unwrap() error { return e.Kind }
