package faroeste

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

// checkSource parses src, which must be free of lexical and syntax errors,
// and runs the type checker over it.
func checkSource(t *testing.T, src string) (*TypeChecker, error) {
	t.Helper()
	return CheckProgram(parseProgram(t, src))
}

// exprType types a single expression against an optional set of globals.
func exprType(t *testing.T, src string, globals map[string]Type) (Type, error) {
	t.Helper()
	expr := parseExpr(t, src)
	tc := NewTypeChecker(nil)
	line := 1
	for name, typ := range globals {
		_, err := tc.Symbols().Declare(ident(name, line), typ, SymbolVariable)
		be.Err(t, err, nil)
		line++
	}
	if err := CheckExpression(expr, tc); err != nil {
		return nil, err
	}
	return expr.Type(), nil
}

func TestCheckLiteralTypes(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"1", TypeInt},
		{"1.0", TypeFloat},
		{`"s"`, TypeString},
		{"mocinho", TypeBool},
		{"deserto", TypeNull},
		{"[1.5]", ListType{Elem: TypeFloat}},
		{"[]", ListType{Elem: TypeNull}},
		{"[deserto]", ListType{Elem: TypeNull}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := exprType(t, tt.input, nil)
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestCheckOperatorTypes(t *testing.T) {
	globals := map[string]Type{
		"i":  TypeInt,
		"f":  TypeFloat,
		"s":  TypeString,
		"b":  TypeBool,
		"xs": ListType{Elem: TypeInt},
	}
	tests := []struct {
		input string
		want  Type
	}{
		{"i + i", TypeFloat},
		{"i * i", TypeFloat},
		{"f - f", TypeFloat},
		{"f / f", TypeFloat},
		{"-i", TypeInt},
		{"-f", TypeFloat},
		{"!b", TypeBool},
		{"i < i", TypeBool},
		{"f >= i", TypeBool},
		{"i == s", TypeBool},
		{"i != b", TypeBool},
		{"b && b || !b", TypeBool},
		{"(s)", TypeString},
		{"xs", ListType{Elem: TypeInt}},
		{"[i, i]", ListType{Elem: TypeInt}},
		{"[s, (s)]", ListType{Elem: TypeString}},
		{"i = 2", TypeInt},
		{"f = f + f", TypeFloat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := exprType(t, tt.input, globals)
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestCheckAnnotatesSubexpressions(t *testing.T) {
	expr := parseExpr(t, "(1 + 2) < 3.5")
	be.Err(t, CheckExpression(expr, NewTypeChecker(nil)), nil)

	cmp := expr.(*Binary)
	be.Equal(t, cmp.Type(), Type(TypeBool))
	be.Equal(t, cmp.Left.Type(), Type(TypeFloat))
	be.Equal(t, cmp.Left.(*Grouping).Inner.(*Binary).Left.Type(), Type(TypeInt))
	be.Equal(t, cmp.Right.Type(), Type(TypeFloat))
}

func TestCheckExpressionErrors(t *testing.T) {
	globals := map[string]Type{
		"i": TypeInt,
		"s": TypeString,
		"b": TypeBool,
	}
	tests := []struct {
		input    string
		kind     error
		expected Type
		found    Type
		message  string
	}{
		{"i + 1.5", ErrTypeMismatch, TypeInt, TypeFloat, "type mismatch in operands of '+': expected INT, found FLOAT"},
		{"i + i + i", ErrTypeMismatch, TypeFloat, TypeInt, "type mismatch in operands of '+': expected FLOAT, found INT"},
		{"s * s", ErrInvalidOperand, nil, TypeString, "operator '*' requires INT or FLOAT, found STRING"},
		{"b < 1", ErrInvalidOperand, nil, TypeBool, "operator '<' requires INT or FLOAT, found BOOL"},
		{"s == s", ErrInvalidOperand, nil, TypeString, "operator '==' requires INT or FLOAT, found STRING"},
		{"-b", ErrInvalidOperand, nil, TypeBool, "operator '-' requires INT or FLOAT, found BOOL"},
		{"!i", ErrTypeMismatch, TypeBool, TypeInt, "type mismatch in operand of '!': expected BOOL, found INT"},
		{"b || i", ErrTypeMismatch, TypeBool, TypeInt, "type mismatch in operand of '||': expected BOOL, found INT"},
		{"s && b", ErrTypeMismatch, TypeBool, TypeString, "type mismatch in operand of '&&': expected BOOL, found STRING"},
		{"[i, s]", ErrTypeMismatch, TypeInt, TypeString, "type mismatch in list element: expected INT, found STRING"},
		{"[[i]]", ErrNestedList, nil, ListType{Elem: TypeInt}, "nested list not allowed"},
		{"i = s", ErrTypeMismatch, TypeInt, TypeString, "type mismatch in assignment to 'i': expected INT, found STRING"},
		{"i = i + i", ErrTypeMismatch, TypeInt, TypeFloat, "type mismatch in assignment to 'i': expected INT, found FLOAT"},
		{"z", ErrUndeclared, nil, nil, "variable 'z' used before declaration"},
		{"z = 1", ErrUndeclared, nil, nil, "variable 'z' used before declaration"},
		{"f(1)", ErrUndeclared, nil, nil, "variable 'f' used before declaration"},
		{"i(z)", ErrUndeclared, nil, nil, "variable 'z' used before declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := exprType(t, tt.input, globals)
			be.Err(t, err, tt.kind)

			var se *SemanticError
			be.True(t, errors.As(err, &se))
			be.Equal(t, se.Expected, tt.expected)
			be.Equal(t, se.Found, tt.found)
			be.Equal(t, se.Message, tt.message)
		})
	}
}

func TestCheckErrorPosition(t *testing.T) {
	_, err := checkSource(t, "xerife a : int = 1;\n\natire a +\n  2.5;")
	var se *SemanticError
	be.True(t, errors.As(err, &se))
	be.Equal(t, se.Token, Token{Type: PLUS, Lexeme: "+", Line: 3})
	be.Equal(t, err.Error(), "error: line 3: type mismatch in operands of '+': expected INT, found FLOAT")
}

func TestCheckVarDecl(t *testing.T) {
	tc, err := checkSource(t, "xerife x : int = 1;")
	be.Err(t, err, nil)
	be.Equal(t, tc.Symbols().LookupVariable("x").Type, Type(TypeInt))

	_, err = checkSource(t, "xerife x : int = 1.5;")
	be.Err(t, err, ErrTypeMismatch)
	var se *SemanticError
	be.True(t, errors.As(err, &se))
	be.Equal(t, se.Expected, Type(TypeInt))
	be.Equal(t, se.Found, Type(TypeFloat))
}

func TestCheckArithmeticResultIsFloat(t *testing.T) {
	decls := parseProgram(t, "xerife x : float = 1 + 2;")
	tc, err := CheckProgram(decls)
	be.Err(t, err, nil)

	init := decls[0].(*VarDecl).Init
	be.Equal(t, init.Type(), Type(TypeFloat))
	be.Equal(t, tc.Symbols().LookupVariable("x").Type, Type(TypeFloat))

	_, err = checkSource(t, "xerife x : int = 1 + 2;")
	be.Err(t, err, "expected INT, found FLOAT")
}

func TestCheckInitializerSeesOuterBinding(t *testing.T) {
	// The new name is declared after its initializer is checked.
	_, err := checkSource(t, "xerife x : int = x;")
	be.Err(t, err, ErrUndeclared)

	_, err = checkSource(t, "xerife x : int = 1;\n{ xerife x : int = x; }")
	be.Err(t, err, nil)
}

func TestCheckFunctions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"recursion", "procurado f(n: int): int { vorta f(n); }", nil},
		{"params are typed", "procurado f(a: lista[int]): lista[int] { vorta a; }", nil},
		{"bare return", "procurado f(): deserto { vorta; }", nil},
		{"explicit deserto", "procurado f(): deserto { vorta deserto; }", nil},
		{"no return statement", "procurado f(): int { atire 1; }", nil},
		{"call type", "procurado f(): string { vorta \"x\"; }\nxerife s : string = f();", nil},
		{"unchecked args", "procurado f(a: int): int { vorta a; }\natire f();", nil},
		{"return mismatch", "procurado f(): int { vorta mocinho; }", ErrTypeMismatch},
		{"bare return in int func", "procurado f(): int { vorta; }", ErrTypeMismatch},
		{"return at top level", "vorta 1;", ErrReturnOutsideFunction},
		{"return in top-level block", "{ vorta; }", ErrReturnOutsideFunction},
		{"duplicate param", "procurado f(a: int, a: float): int { vorta 1; }", ErrRedeclared},
		{"local shadows param", "procurado f(a: int): int { xerife a : int; vorta a; }", ErrRedeclared},
		{"block local shadows param", "procurado f(a: int): int { { xerife a : float; } vorta a; }", nil},
		{"param not visible outside", "procurado f(a: int): int { vorta a; }\natire a;", ErrUndeclared},
		{"function redeclared", "procurado f(): int { vorta 1; }\nprocurado f(): int { vorta 2; }", ErrRedeclared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkSource(t, tt.input)
			be.Err(t, err, tt.err)
		})
	}
}

func TestCheckNestedFunctionRestoresReturnType(t *testing.T) {
	src := `
procurado externa(): int {
    procurado interna(): string { vorta "x"; }
    vorta 1;
}`
	tc, err := checkSource(t, src)
	be.Err(t, err, nil)
	be.Equal(t, tc.currentReturn, nil)

	// After the function, vorta is again outside of any function.
	_, err = checkSource(t, src+"\nvorta 1;")
	be.Err(t, err, ErrReturnOutsideFunction)
}

func TestCheckConditions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bang (1) atire 1;", "type mismatch in condition of 'bang': expected BOOL, found INT"},
		{"cavalgando (\"x\");", "type mismatch in condition of 'cavalgando': expected BOOL, found STRING"},
		{"bang (mocinho) atire 1; miss atire -mocinho;", "operator '-' requires INT or FLOAT, found BOOL"},
		{"cavalgando (bandido) atire z;", "variable 'z' used before declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := checkSource(t, tt.input)
			be.Err(t, err, tt.want)
		})
	}

	_, err := checkSource(t, "bang (1 < 2) atire 1; miss atire 2;\ncavalgando (mocinho && bandido);")
	be.Err(t, err, nil)
}

func TestCheckStopsAtFirstError(t *testing.T) {
	tc, err := checkSource(t, "xerife a : int = 1.5;\nxerife b : int;\natire c;")
	be.Err(t, err, "declaration of 'a'")
	be.Equal(t, len(tc.Symbols().Global().Symbols), 0)
}

func TestCheckClosesScopesOnError(t *testing.T) {
	tc, err := checkSource(t, "procurado f(): int {\n  {\n    atire z;\n  }\n  vorta 1;\n}")
	be.Err(t, err, ErrUndeclared)
	be.Equal(t, tc.Symbols().Depth(), 1)
	be.Equal(t, len(tc.Trace()), 2)
	be.Equal(t, len(tc.Scopes()), 1)
}

func TestCheckTrace(t *testing.T) {
	src := `
procurado f(a: int): int {
    {
        xerife b : bool;
    }
    vorta a;
}
{
    xerife c : string;
}`
	tc, err := checkSource(t, src)
	be.Err(t, err, nil)

	trace := tc.Trace()
	be.Equal(t, len(trace), 3)
	be.Equal(t, ScopeToSExpr(trace[0]), `(scope (variable "b" bool))`)
	be.Equal(t, ScopeToSExpr(trace[1]), `(scope (parameter "a" int))`)
	be.Equal(t, ScopeToSExpr(trace[2]), `(scope (variable "c" string))`)
	be.Equal(t, trace[0].Depth, 3)
	be.Equal(t, trace[1].Depth, 2)
	be.Equal(t, trace[2].Depth, 2)

	be.Equal(t, ScopeToSExpr(tc.Symbols().Global()), `(scope (function "f" int))`)
}

func TestNewTypeCheckerUsesGivenTable(t *testing.T) {
	st := NewSymbolTable()
	_, err := st.Declare(ident("x", 1), TypeString, SymbolVariable)
	be.Err(t, err, nil)

	tc := NewTypeChecker(st)
	be.Equal(t, tc.Symbols(), st)
	be.Err(t, tc.Analyze(parseProgram(t, "atire x;")), nil)
}
