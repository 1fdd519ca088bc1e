package faroeste

import (
	"strconv"
	"strings"
)

// ToSExpr converts an expression to its s-expression representation.
func ToSExpr(e Expr) string {
	p := &sexprPrinter{}
	p.expr(e)
	return p.buf.String()
}

// DeclToSExpr converts a declaration to its s-expression representation.
func DeclToSExpr(d Decl) string {
	p := &sexprPrinter{}
	p.decl(d)
	return p.buf.String()
}

// ProgramToSExpr renders a whole program as (program decl...).
func ProgramToSExpr(decls []Decl) string {
	p := &sexprPrinter{}
	p.buf.WriteString("(program")
	p.decls(decls)
	p.buf.WriteString(")")
	return p.buf.String()
}

// TypeToSExpr renders int, float, string, bool, deserto or (lista T).
func TypeToSExpr(t Type) string {
	if lt, ok := t.(ListType); ok {
		return "(lista " + typeSpelling(lt.Elem) + ")"
	}
	return typeSpelling(t)
}

// ScopeToSExpr renders a scope's bindings in declaration order, e.g.
// (scope (variable "x" int) (function "f" deserto)).
func ScopeToSExpr(s *Scope) string {
	var b strings.Builder
	b.WriteString("(scope")
	for _, sym := range s.Symbols {
		b.WriteString(" (" + sym.Kind.String() + " " + quote(sym.Name) + " " + TypeToSExpr(sym.Type) + ")")
	}
	b.WriteString(")")
	return b.String()
}

type sexprPrinter struct {
	buf strings.Builder
}

func (p *sexprPrinter) expr(e Expr) {
	_ = e.Accept(p)
}

func (p *sexprPrinter) decl(d Decl) {
	_ = d.Accept(p)
}

func (p *sexprPrinter) decls(ds []Decl) {
	for _, d := range ds {
		p.buf.WriteByte(' ')
		p.decl(d)
	}
}

func (p *sexprPrinter) open(head string) {
	p.buf.WriteByte('(')
	p.buf.WriteString(head)
}

func (p *sexprPrinter) quoted(s string) {
	p.buf.WriteByte(' ')
	p.buf.WriteString(quote(s))
}

// quote escapes only backslash and double quote, which is all the sexy
// reader understands.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func (p *sexprPrinter) VisitLiteral(e *Literal) error {
	switch v := e.Value.(type) {
	case int64:
		p.buf.WriteString("(integer " + strconv.FormatInt(v, 10) + ")")
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		p.buf.WriteString("(float " + s + ")")
	case string:
		p.buf.WriteString("(string " + quote(v) + ")")
	case bool:
		p.buf.WriteString("(boolean " + strconv.FormatBool(v) + ")")
	default:
		p.buf.WriteString("(null)")
	}
	return nil
}

func (p *sexprPrinter) VisitVariable(e *Variable) error {
	p.buf.WriteString("(ident " + quote(e.Name.Lexeme) + ")")
	return nil
}

func (p *sexprPrinter) VisitUnary(e *Unary) error {
	p.open("unary")
	p.quoted(e.Operator.Lexeme)
	p.buf.WriteByte(' ')
	p.expr(e.Operand)
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitBinary(e *Binary) error {
	p.binary("binary", e.Operator, e.Left, e.Right)
	return nil
}

func (p *sexprPrinter) VisitLogical(e *Logical) error {
	p.binary("logical", e.Operator, e.Left, e.Right)
	return nil
}

func (p *sexprPrinter) binary(head string, op Token, left, right Expr) {
	p.open(head)
	p.quoted(op.Lexeme)
	p.buf.WriteByte(' ')
	p.expr(left)
	p.buf.WriteByte(' ')
	p.expr(right)
	p.buf.WriteByte(')')
}

func (p *sexprPrinter) VisitGrouping(e *Grouping) error {
	p.open("group ")
	p.expr(e.Inner)
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitListLiteral(e *ListLiteral) error {
	p.open("list")
	for _, el := range e.Elements {
		p.buf.WriteByte(' ')
		p.expr(el)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitAssign(e *Assign) error {
	p.open("assign")
	p.quoted(e.Name.Lexeme)
	p.buf.WriteByte(' ')
	p.expr(e.Value)
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitCall(e *Call) error {
	p.open("call ")
	p.expr(e.Callee)
	for _, arg := range e.Args {
		p.buf.WriteByte(' ')
		p.expr(arg)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitVarDecl(d *VarDecl) error {
	p.open("var")
	p.quoted(d.Name.Lexeme)
	p.buf.WriteString(" " + TypeToSExpr(d.DeclType))
	if d.Init != nil {
		p.buf.WriteByte(' ')
		p.expr(d.Init)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitFuncDecl(d *FuncDecl) error {
	p.open("func")
	p.quoted(d.Name.Lexeme)
	p.buf.WriteString(" (params")
	for _, param := range d.Params {
		p.buf.WriteString(" (param " + quote(param.Name.Lexeme) + " " + TypeToSExpr(param.Type) + ")")
	}
	p.buf.WriteString(") " + TypeToSExpr(d.ReturnType) + " (body")
	p.decls(d.Body)
	p.buf.WriteString("))")
	return nil
}

func (p *sexprPrinter) VisitBlock(d *Block) error {
	p.open("block")
	p.decls(d.Stmts)
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitIf(d *If) error {
	p.open("if ")
	p.expr(d.Cond)
	p.buf.WriteByte(' ')
	p.decl(d.Then)
	if d.Else != nil {
		p.buf.WriteByte(' ')
		p.decl(d.Else)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitWhile(d *While) error {
	p.open("while ")
	p.expr(d.Cond)
	if d.Body != nil {
		p.buf.WriteByte(' ')
		p.decl(d.Body)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitReturn(d *Return) error {
	p.open("return")
	if d.Value != nil {
		p.buf.WriteByte(' ')
		p.expr(d.Value)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitPrint(d *Print) error {
	p.open("print ")
	p.expr(d.Value)
	p.buf.WriteByte(')')
	return nil
}

func (p *sexprPrinter) VisitExprStmt(d *ExprStmt) error {
	p.open("expr ")
	p.expr(d.Value)
	p.buf.WriteByte(')')
	return nil
}
