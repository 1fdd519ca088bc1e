// Package sexy reads the s-expression notation used by the markdown test
// suites and matches parsed trees against patterns.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeFloat
	NodeEllipsis
	NodeList
	NodeArray
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeFloat:
		return "float"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	case NodeArray:
		return "array"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum. Atoms keep their source text in Text; numbers are not
// converted so callers can compare them as written.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger, NodeFloat
	Items []*Node // NodeList, NodeArray
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger, NodeFloat:
		return n.Text
	case NodeString:
		return Quote(n.Text)
	case NodeEllipsis:
		return "..."
	case NodeList:
		return "(" + joinItems(n.Items) + ")"
	case NodeArray:
		return "[" + joinItems(n.Items) + "]"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func joinItems(items []*Node) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

// Quote renders s as a string literal the reader accepts.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func NewSymbol(name string) *Node  { return &Node{Type: NodeSymbol, Text: name} }
func NewString(value string) *Node { return &Node{Type: NodeString, Text: value} }
func NewInteger(text string) *Node { return &Node{Type: NodeInteger, Text: text} }
func NewFloat(text string) *Node   { return &Node{Type: NodeFloat, Text: text} }
func NewEllipsis() *Node           { return &Node{Type: NodeEllipsis} }
func NewList(items ...*Node) *Node { return &Node{Type: NodeList, Items: items} }
func NewArray(items ...*Node) *Node {
	return &Node{Type: NodeArray, Items: items}
}

// IsAtom reports whether n has no children.
func (n *Node) IsAtom() bool {
	return n.Type != NodeList && n.Type != NodeArray
}

// Head returns the symbol at the front of a list, or "".
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

// Parse reads exactly one datum from input.
func Parse(input string) (*Node, error) {
	r := &reader{input: []rune(input)}
	r.skipSpace()
	if r.atEnd() {
		return nil, fmt.Errorf("empty input")
	}
	n, err := r.datum()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.atEnd() {
		return nil, r.errorf("expected end of input but got %q", r.peek())
	}
	return n, nil
}

type reader struct {
	input []rune
	pos   int
}

func (r *reader) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", r.pos, fmt.Sprintf(format, args...))
}

func (r *reader) atEnd() bool { return r.pos >= len(r.input) }

func (r *reader) peek() rune {
	if r.atEnd() {
		return 0
	}
	return r.input[r.pos]
}

func (r *reader) peekAt(off int) rune {
	if r.pos+off >= len(r.input) {
		return 0
	}
	return r.input[r.pos+off]
}

// skipSpace skips whitespace and ';' line comments.
func (r *reader) skipSpace() {
	for !r.atEnd() {
		c := r.peek()
		switch {
		case unicode.IsSpace(c):
			r.pos++
		case c == ';':
			for !r.atEnd() && r.peek() != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) datum() (*Node, error) {
	c := r.peek()
	switch {
	case c == '(':
		items, err := r.seq('(', ')')
		if err != nil {
			return nil, err
		}
		return NewList(items...), nil
	case c == '[':
		items, err := r.seq('[', ']')
		if err != nil {
			return nil, err
		}
		return NewArray(items...), nil
	case c == '"':
		return r.str()
	case c == '.':
		if r.peekAt(1) == '.' && r.peekAt(2) == '.' {
			r.pos += 3
			return NewEllipsis(), nil
		}
		return nil, r.errorf("unexpected character '.'")
	case unicode.IsDigit(c), (c == '-' || c == '+') && unicode.IsDigit(r.peekAt(1)):
		return r.number(), nil
	case isSymbolStart(c):
		start := r.pos
		for !r.atEnd() && isSymbolChar(r.peek()) {
			r.pos++
		}
		return NewSymbol(string(r.input[start:r.pos])), nil
	default:
		return nil, r.errorf("unexpected character %q", c)
	}
}

func (r *reader) seq(open, close rune) ([]*Node, error) {
	r.pos++ // open
	var items []*Node
	for {
		r.skipSpace()
		if r.atEnd() {
			return nil, r.errorf("expected '%c' but got end of input", close)
		}
		if r.peek() == close {
			r.pos++
			return items, nil
		}
		item, err := r.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *reader) str() (*Node, error) {
	r.pos++ // opening quote
	var b strings.Builder
	for {
		if r.atEnd() {
			return nil, r.errorf("unterminated string")
		}
		c := r.input[r.pos]
		r.pos++
		if c == '"' {
			return NewString(b.String()), nil
		}
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		if r.atEnd() {
			return nil, r.errorf("unterminated string")
		}
		esc := r.input[r.pos]
		r.pos++
		switch esc {
		case '"', '\\':
			b.WriteRune(esc)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			return nil, r.errorf("invalid escape sequence: \\%c", esc)
		}
	}
}

// number reads an optionally signed integer, or a float when a '.' is
// followed by a digit.
func (r *reader) number() *Node {
	start := r.pos
	if c := r.peek(); c == '-' || c == '+' {
		r.pos++
	}
	for unicode.IsDigit(r.peek()) {
		r.pos++
	}
	if r.peek() == '.' && unicode.IsDigit(r.peekAt(1)) {
		r.pos++
		for unicode.IsDigit(r.peek()) {
			r.pos++
		}
		return NewFloat(string(r.input[start:r.pos]))
	}
	return NewInteger(string(r.input[start:r.pos]))
}

func isSymbolStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
