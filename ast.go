package faroeste

// Node is any AST node. Pos returns the token the node is anchored at.
type Node interface {
	Pos() Token
}

// Expr is an expression node. Its Type is nil until the node has been
// through the type checker.
type Expr interface {
	Node
	Accept(v ExprVisitor) error
	Type() Type
	setType(Type)
}

// Decl is a declaration or statement node.
type Decl interface {
	Node
	Accept(v DeclVisitor) error
	declNode()
}

// ExprVisitor has one method per expression variant. A traversal that
// implements it is checked for exhaustiveness by the compiler.
type ExprVisitor interface {
	VisitLiteral(e *Literal) error
	VisitVariable(e *Variable) error
	VisitUnary(e *Unary) error
	VisitBinary(e *Binary) error
	VisitLogical(e *Logical) error
	VisitGrouping(e *Grouping) error
	VisitListLiteral(e *ListLiteral) error
	VisitAssign(e *Assign) error
	VisitCall(e *Call) error
}

// DeclVisitor has one method per declaration variant.
type DeclVisitor interface {
	VisitVarDecl(d *VarDecl) error
	VisitFuncDecl(d *FuncDecl) error
	VisitBlock(d *Block) error
	VisitIf(d *If) error
	VisitWhile(d *While) error
	VisitReturn(d *Return) error
	VisitPrint(d *Print) error
	VisitExprStmt(d *ExprStmt) error
}

type typed struct {
	typ Type
}

func (t *typed) Type() Type       { return t.typ }
func (t *typed) setType(typ Type) { t.typ = typ }

// Literal holds an int64, float64, string, bool or nil (deserto). The
// token type records which literal kind produced it.
type Literal struct {
	typed
	Token Token
	Value any
}

type Variable struct {
	typed
	Name Token
}

type Unary struct {
	typed
	Operator Token
	Operand  Expr
}

type Binary struct {
	typed
	Left     Expr
	Operator Token
	Right    Expr
}

// Logical is && or ||. Short-circuit evaluation is a runtime concern; the
// front end types it like Binary.
type Logical struct {
	typed
	Left     Expr
	Operator Token
	Right    Expr
}

type Grouping struct {
	typed
	Paren Token
	Inner Expr
}

type ListLiteral struct {
	typed
	Bracket  Token
	Elements []Expr
}

// Assign always targets a bare variable name.
type Assign struct {
	typed
	Name  Token
	Value Expr
}

type Call struct {
	typed
	Callee Expr
	Paren  Token // closing paren
	Args   []Expr
}

func (e *Literal) Pos() Token     { return e.Token }
func (e *Variable) Pos() Token    { return e.Name }
func (e *Unary) Pos() Token       { return e.Operator }
func (e *Binary) Pos() Token      { return e.Operator }
func (e *Logical) Pos() Token     { return e.Operator }
func (e *Grouping) Pos() Token    { return e.Paren }
func (e *ListLiteral) Pos() Token { return e.Bracket }
func (e *Assign) Pos() Token      { return e.Name }
func (e *Call) Pos() Token        { return e.Paren }

func (e *Literal) Accept(v ExprVisitor) error     { return v.VisitLiteral(e) }
func (e *Variable) Accept(v ExprVisitor) error    { return v.VisitVariable(e) }
func (e *Unary) Accept(v ExprVisitor) error       { return v.VisitUnary(e) }
func (e *Binary) Accept(v ExprVisitor) error      { return v.VisitBinary(e) }
func (e *Logical) Accept(v ExprVisitor) error     { return v.VisitLogical(e) }
func (e *Grouping) Accept(v ExprVisitor) error    { return v.VisitGrouping(e) }
func (e *ListLiteral) Accept(v ExprVisitor) error { return v.VisitListLiteral(e) }
func (e *Assign) Accept(v ExprVisitor) error      { return v.VisitAssign(e) }
func (e *Call) Accept(v ExprVisitor) error        { return v.VisitCall(e) }

// VarDecl is `xerife name : type (= init)? ;`. Init may be nil.
type VarDecl struct {
	Name     Token
	DeclType Type
	Init     Expr
}

type Param struct {
	Name Token
	Type Type
}

// FuncDecl is `procurado name(params) : returnType { body }`.
type FuncDecl struct {
	Name       Token
	Params     []Param
	Body       []Decl
	ReturnType Type
}

type Block struct {
	Brace Token
	Stmts []Decl
}

// If has a nil Else when there is no `miss` branch.
type If struct {
	Keyword Token
	Cond    Expr
	Then    Decl
	Else    Decl
}

// While has a nil Body for `cavalgando (cond);`.
type While struct {
	Keyword Token
	Cond    Expr
	Body    Decl
}

// Return has a nil Value for a bare `vorta;`.
type Return struct {
	Keyword Token
	Value   Expr
}

type Print struct {
	Keyword Token
	Value   Expr
}

type ExprStmt struct {
	Value Expr
}

func (d *VarDecl) Pos() Token  { return d.Name }
func (d *FuncDecl) Pos() Token { return d.Name }
func (d *Block) Pos() Token    { return d.Brace }
func (d *If) Pos() Token       { return d.Keyword }
func (d *While) Pos() Token    { return d.Keyword }
func (d *Return) Pos() Token   { return d.Keyword }
func (d *Print) Pos() Token    { return d.Keyword }
func (d *ExprStmt) Pos() Token { return d.Value.Pos() }

func (d *VarDecl) Accept(v DeclVisitor) error  { return v.VisitVarDecl(d) }
func (d *FuncDecl) Accept(v DeclVisitor) error { return v.VisitFuncDecl(d) }
func (d *Block) Accept(v DeclVisitor) error    { return v.VisitBlock(d) }
func (d *If) Accept(v DeclVisitor) error       { return v.VisitIf(d) }
func (d *While) Accept(v DeclVisitor) error    { return v.VisitWhile(d) }
func (d *Return) Accept(v DeclVisitor) error   { return v.VisitReturn(d) }
func (d *Print) Accept(v DeclVisitor) error    { return v.VisitPrint(d) }
func (d *ExprStmt) Accept(v DeclVisitor) error { return v.VisitExprStmt(d) }

func (*VarDecl) declNode()  {}
func (*FuncDecl) declNode() {}
func (*Block) declNode()    {}
func (*If) declNode()       {}
func (*While) declNode()    {}
func (*Return) declNode()   {}
func (*Print) declNode()    {}
func (*ExprStmt) declNode() {}
