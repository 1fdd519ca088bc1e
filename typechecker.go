package faroeste

import "fmt"

// TypeChecker annotates every expression with its type and validates the
// typing rules of the language. It stops at the first violation.
type TypeChecker struct {
	st *SymbolTable

	// currentReturn is the declared return type of the function whose body
	// is being checked, or nil at top level.
	currentReturn Type

	// trace holds every scope popped so far, in pop order.
	trace []*Scope
}

// NewTypeChecker returns a checker that declares into st. A nil st gets a
// fresh table.
func NewTypeChecker(st *SymbolTable) *TypeChecker {
	if st == nil {
		st = NewSymbolTable()
	}
	return &TypeChecker{st: st}
}

// CheckProgram type-checks decls with a fresh symbol table.
func CheckProgram(decls []Decl) (*TypeChecker, error) {
	tc := NewTypeChecker(nil)
	return tc, tc.Analyze(decls)
}

// CheckExpression types a single expression against tc's current scopes.
func CheckExpression(e Expr, tc *TypeChecker) error {
	_, err := tc.expr(e)
	return err
}

// Analyze checks declarations in order and returns the first semantic
// error. Scopes opened during a failing check are still closed.
func (tc *TypeChecker) Analyze(decls []Decl) error {
	for _, d := range decls {
		if err := d.Accept(tc); err != nil {
			return err
		}
	}
	return nil
}

// Symbols returns the symbol table. After a successful Analyze only the
// global scope is open.
func (tc *TypeChecker) Symbols() *SymbolTable {
	return tc.st
}

// Scopes returns the open scopes innermost-first.
func (tc *TypeChecker) Scopes() []*Scope {
	return tc.st.Scopes()
}

// Trace returns the scopes closed during analysis, in the order they were
// closed. Inner scopes therefore come before the scopes enclosing them.
func (tc *TypeChecker) Trace() []*Scope {
	return tc.trace
}

func (tc *TypeChecker) expr(e Expr) (Type, error) {
	if err := e.Accept(tc); err != nil {
		return nil, err
	}
	return e.Type(), nil
}

func (tc *TypeChecker) pushScope() {
	tc.st.PushScope()
}

func (tc *TypeChecker) popScope() {
	tc.trace = append(tc.trace, tc.st.PopScope())
}

func mismatch(tok Token, context string, expected, found Type) *SemanticError {
	return &SemanticError{
		Kind:     ErrTypeMismatch,
		Token:    tok,
		Expected: expected,
		Found:    found,
		Message:  fmt.Sprintf("type mismatch in %s: expected %s, found %s", context, expected, found),
	}
}

func invalidOperand(op Token, found Type) *SemanticError {
	return &SemanticError{
		Kind:    ErrInvalidOperand,
		Token:   op,
		Found:   found,
		Message: fmt.Sprintf("operator '%s' requires INT or FLOAT, found %s", op.Lexeme, found),
	}
}

func undeclared(name Token) *SemanticError {
	return &SemanticError{
		Kind:    ErrUndeclared,
		Token:   name,
		Message: fmt.Sprintf("variable '%s' used before declaration", name.Lexeme),
	}
}

func (tc *TypeChecker) VisitLiteral(e *Literal) error {
	switch e.Value.(type) {
	case int64:
		e.setType(TypeInt)
	case float64:
		e.setType(TypeFloat)
	case string:
		e.setType(TypeString)
	case bool:
		e.setType(TypeBool)
	default:
		e.setType(TypeNull)
	}
	return nil
}

func (tc *TypeChecker) VisitVariable(e *Variable) error {
	sym := tc.st.LookupVariable(e.Name.Lexeme)
	if sym == nil {
		return undeclared(e.Name)
	}
	e.setType(sym.Type)
	return nil
}

func (tc *TypeChecker) VisitUnary(e *Unary) error {
	t, err := tc.expr(e.Operand)
	if err != nil {
		return err
	}

	switch e.Operator.Type {
	case MINUS:
		if !isNumeric(t) {
			return invalidOperand(e.Operator, t)
		}
		e.setType(t)
	case BANG:
		if t != TypeBool {
			return mismatch(e.Operator, "operand of '!'", TypeBool, t)
		}
		e.setType(TypeBool)
	default:
		return fmt.Errorf("unknown unary operator %q", e.Operator.Lexeme)
	}
	return nil
}

func (tc *TypeChecker) VisitBinary(e *Binary) error {
	left, err := tc.expr(e.Left)
	if err != nil {
		return err
	}
	right, err := tc.expr(e.Right)
	if err != nil {
		return err
	}

	switch e.Operator.Type {
	case PLUS, MINUS, ASTERISK, SLASH:
		if !TypesEqual(left, right) {
			return mismatch(e.Operator, fmt.Sprintf("operands of '%s'", e.Operator.Lexeme), left, right)
		}
		if !isNumeric(left) {
			return invalidOperand(e.Operator, left)
		}
		// Arithmetic always yields FLOAT, even for two INT operands.
		e.setType(TypeFloat)
	case LT, LE, GT, GE, EQ, NOT_EQ:
		// Only the left operand is checked.
		if !isNumeric(left) {
			return invalidOperand(e.Operator, left)
		}
		e.setType(TypeBool)
	default:
		return fmt.Errorf("unknown binary operator %q", e.Operator.Lexeme)
	}
	return nil
}

func (tc *TypeChecker) VisitLogical(e *Logical) error {
	context := fmt.Sprintf("operand of '%s'", e.Operator.Lexeme)
	for _, operand := range []Expr{e.Left, e.Right} {
		t, err := tc.expr(operand)
		if err != nil {
			return err
		}
		if t != TypeBool {
			return mismatch(e.Operator, context, TypeBool, t)
		}
	}
	e.setType(TypeBool)
	return nil
}

func (tc *TypeChecker) VisitGrouping(e *Grouping) error {
	t, err := tc.expr(e.Inner)
	if err != nil {
		return err
	}
	e.setType(t)
	return nil
}

// VisitListLiteral requires one exact element type. `[]` has the NULL
// element type.
func (tc *TypeChecker) VisitListLiteral(e *ListLiteral) error {
	elem := Type(TypeNull)
	for i, el := range e.Elements {
		t, err := tc.expr(el)
		if err != nil {
			return err
		}
		if _, ok := t.(ListType); ok {
			return &SemanticError{
				Kind:    ErrNestedList,
				Token:   el.Pos(),
				Found:   t,
				Message: "nested list not allowed",
			}
		}
		if i == 0 {
			elem = t
			continue
		}
		if !TypesEqual(elem, t) {
			return mismatch(el.Pos(), "list element", elem, t)
		}
	}
	e.setType(ListType{Elem: elem.(PrimitiveType)})
	return nil
}

func (tc *TypeChecker) VisitAssign(e *Assign) error {
	sym := tc.st.LookupVariable(e.Name.Lexeme)
	if sym == nil {
		return undeclared(e.Name)
	}
	t, err := tc.expr(e.Value)
	if err != nil {
		return err
	}
	if !TypesEqual(sym.Type, t) {
		return mismatch(e.Name, fmt.Sprintf("assignment to '%s'", e.Name.Lexeme), sym.Type, t)
	}
	e.setType(sym.Type)
	return nil
}

// VisitCall types a call as its callee. Arguments are typed but not
// matched against the callee's parameters.
func (tc *TypeChecker) VisitCall(e *Call) error {
	t, err := tc.expr(e.Callee)
	if err != nil {
		return err
	}
	for _, arg := range e.Args {
		if _, err := tc.expr(arg); err != nil {
			return err
		}
	}
	e.setType(t)
	return nil
}

func (tc *TypeChecker) VisitVarDecl(d *VarDecl) error {
	if d.Init != nil {
		t, err := tc.expr(d.Init)
		if err != nil {
			return err
		}
		if !TypesEqual(d.DeclType, t) {
			return mismatch(d.Name, fmt.Sprintf("declaration of '%s'", d.Name.Lexeme), d.DeclType, t)
		}
	}
	_, err := tc.st.Declare(d.Name, d.DeclType, SymbolVariable)
	return err
}

// VisitFuncDecl binds the function name in the enclosing scope before the
// parameter scope is opened, so the body can call it recursively.
func (tc *TypeChecker) VisitFuncDecl(d *FuncDecl) error {
	if _, err := tc.st.Declare(d.Name, d.ReturnType, SymbolFunction); err != nil {
		return err
	}

	tc.pushScope()
	defer tc.popScope()

	saved := tc.currentReturn
	tc.currentReturn = d.ReturnType
	defer func() { tc.currentReturn = saved }()

	for _, p := range d.Params {
		if _, err := tc.st.Declare(p.Name, p.Type, SymbolParameter); err != nil {
			return err
		}
	}
	return tc.Analyze(d.Body)
}

func (tc *TypeChecker) VisitBlock(d *Block) error {
	tc.pushScope()
	defer tc.popScope()
	return tc.Analyze(d.Stmts)
}

func (tc *TypeChecker) condition(kw Token, cond Expr) error {
	t, err := tc.expr(cond)
	if err != nil {
		return err
	}
	if t != TypeBool {
		return mismatch(cond.Pos(), fmt.Sprintf("condition of '%s'", kw.Lexeme), TypeBool, t)
	}
	return nil
}

func (tc *TypeChecker) VisitIf(d *If) error {
	if err := tc.condition(d.Keyword, d.Cond); err != nil {
		return err
	}
	if err := d.Then.Accept(tc); err != nil {
		return err
	}
	if d.Else != nil {
		return d.Else.Accept(tc)
	}
	return nil
}

func (tc *TypeChecker) VisitWhile(d *While) error {
	if err := tc.condition(d.Keyword, d.Cond); err != nil {
		return err
	}
	if d.Body != nil {
		return d.Body.Accept(tc)
	}
	return nil
}

func (tc *TypeChecker) VisitReturn(d *Return) error {
	if tc.currentReturn == nil {
		return &SemanticError{
			Kind:    ErrReturnOutsideFunction,
			Token:   d.Keyword,
			Message: "'vorta' outside of a function",
		}
	}

	found := Type(TypeNull)
	if d.Value != nil {
		t, err := tc.expr(d.Value)
		if err != nil {
			return err
		}
		found = t
	}
	if !TypesEqual(tc.currentReturn, found) {
		return mismatch(d.Keyword, "return value", tc.currentReturn, found)
	}
	return nil
}

func (tc *TypeChecker) VisitPrint(d *Print) error {
	_, err := tc.expr(d.Value)
	return err
}

func (tc *TypeChecker) VisitExprStmt(d *ExprStmt) error {
	_, err := tc.expr(d.Value)
	return err
}
