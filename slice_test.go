package faroeste

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func TestListTypeParsing(t *testing.T) {
	tests := []struct {
		source string
		want   Type
	}{
		{"xerife a : lista[int];", ListType{Elem: TypeInt}},
		{"xerife a : lista[float];", ListType{Elem: TypeFloat}},
		{"xerife a : lista[string];", ListType{Elem: TypeString}},
		{"xerife a : lista[bool];", ListType{Elem: TypeBool}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			decls := parseProgram(t, tt.source)
			be.Equal(t, decls[0].(*VarDecl).DeclType, tt.want)
		})
	}
}

func TestListTypeToString(t *testing.T) {
	tests := []struct {
		typ   ListType
		str   string
		sexpr string
	}{
		{ListType{Elem: TypeInt}, "LIST[INT]", "(lista int)"},
		{ListType{Elem: TypeFloat}, "LIST[FLOAT]", "(lista float)"},
		{ListType{Elem: TypeString}, "LIST[STRING]", "(lista string)"},
		{ListType{Elem: TypeBool}, "LIST[BOOL]", "(lista bool)"},
		{ListType{Elem: TypeNull}, "LIST[NULL]", "(lista deserto)"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			be.Equal(t, tt.typ.String(), tt.str)
			be.Equal(t, TypeToSExpr(tt.typ), tt.sexpr)
		})
	}
}

func TestListBasicDeclaration(t *testing.T) {
	source := `
xerife inteiros : lista[int] = [1, 2, 3];
xerife precos : lista[float] = [1.5, 2.0];
xerife flags : lista[bool] = [mocinho, 1 < 2];
`
	res := mustCompile(t, source)
	be.Equal(t, ScopeToSExpr(res.Symbols.Global()),
		`(scope (variable "inteiros" (lista int)) (variable "precos" (lista float)) (variable "flags" (lista bool)))`)

	lit := res.Program[0].(*VarDecl).Init.(*ListLiteral)
	be.Equal(t, len(lit.Elements), 3)
	be.Equal(t, lit.Type(), Type(ListType{Elem: TypeInt}))
}

func TestListStringRepresentation(t *testing.T) {
	decls := parseProgram(t, `xerife xs : lista[int] = [1, x];`)
	be.Equal(t, DeclToSExpr(decls[0]), `(var "xs" (lista int) (list (integer 1) (ident "x")))`)
}

func TestEmptyListLiteral(t *testing.T) {
	// [] has no element to take a type from.
	_, err := Compile("xerife xs : lista[int] = [];")
	var semErr *SemanticError
	be.True(t, errors.As(err, &semErr))
	be.Equal(t, semErr.Kind, ErrTypeMismatch)
	be.Equal(t, semErr.Expected, Type(ListType{Elem: TypeInt}))
	be.Equal(t, semErr.Found, Type(ListType{Elem: TypeNull}))

	res := mustCompile(t, "atire [];")
	be.Equal(t, res.Program[0].(*Print).Value.Type(), Type(ListType{Elem: TypeNull}))
}

func TestNestedListRejected(t *testing.T) {
	t.Run("type", func(t *testing.T) {
		_, err := Compile("xerife m : lista[lista[int]];")
		be.Err(t, err, `line 1 at "lista": nested list not allowed`)
	})

	t.Run("literal", func(t *testing.T) {
		_, err := Compile("atire [[1], [2]];")
		be.Err(t, err, ErrNestedList)
	})

	t.Run("through a variable", func(t *testing.T) {
		_, err := Compile("xerife a : lista[int] = [1];\natire [a];")
		be.Err(t, err, ErrNestedList)
		be.Err(t, err, "error: line 2: nested list not allowed")
	})
}

func TestListFunctions(t *testing.T) {
	source := `
procurado primeiro(xs: lista[float]): lista[float] { vorta xs; }
xerife ys : lista[float] = primeiro([1.0, 2.0]);
`
	res := mustCompile(t, source)
	be.Equal(t, globalType(res, "primeiro"), Type(ListType{Elem: TypeFloat}))
	be.Equal(t, globalType(res, "ys"), Type(ListType{Elem: TypeFloat}))
}

func TestListErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"xerife a : lista[int]; a = [1.5];", "type mismatch in assignment to 'a': expected LIST[INT], found LIST[FLOAT]"},
		{"xerife a : lista[int] = [1, 2.0];", "type mismatch in list element: expected INT, found FLOAT"},
		{"xerife a : lista[int]; xerife b : lista[float] = a;", "expected LIST[FLOAT], found LIST[INT]"},
		{"xerife a : lista[int] = [1]; atire a + a;", "operator '+' requires INT or FLOAT, found LIST[INT]"},
		{"xerife a : lista[int] = [y];", "variable 'y' used before declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Compile(tt.source)
			be.Err(t, err, tt.want)
		})
	}
}

func TestListSyntaxErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"xerife a : lista int;", `line 1 at "int": expected '[' after 'lista'`},
		{"xerife a : lista[int;", `line 1 at ";": expected ']' after list element type`},
		{"xerife a : lista[];", `line 1 at "]": expected type`},
		{"atire [1, 2;", `line 1 at ";": expected ']' after list elements`},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Compile(tt.source)
			var synErrs SyntaxErrors
			be.True(t, errors.As(err, &synErrs))
			be.Equal(t, synErrs[0].Error(), tt.want)
		})
	}
}
