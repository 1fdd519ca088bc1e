package faroeste

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

// Tests for variable declaration with initialization syntax

func TestBasicVariableInitialization(t *testing.T) {
	program := `
xerife x : int = 42;
atire x;
`
	res := mustCompile(t, program)
	be.Equal(t, DeclToSExpr(res.Program[0]), `(var "x" int (integer 42))`)
	be.Equal(t, globalType(res, "x"), Type(TypeInt))
}

func TestMultipleVariableInitialization(t *testing.T) {
	program := `
xerife x : int = 10;
xerife y : int = 20;
xerife z : float = x + y;
atire z;
`
	res := mustCompile(t, program)
	be.Equal(t, ScopeToSExpr(res.Symbols.Global()),
		`(scope (variable "x" int) (variable "y" int) (variable "z" float))`)
}

func TestMixedInitializedAndUninitializedVars(t *testing.T) {
	program := `
xerife a : int = 1;
xerife b : string;
xerife c : float = 2.5;
xerife d : lista[bool];
`
	res := mustCompile(t, program)
	be.Equal(t, res.Program[1].(*VarDecl).Init, nil)
	be.Equal(t, res.Program[3].(*VarDecl).Init, nil)
	be.Equal(t, globalType(res, "d"), Type(ListType{Elem: TypeBool}))
}

func TestInitializationFromExpressions(t *testing.T) {
	program := `
procurado dobro(n: float): float { vorta n * 2.0; }
xerife base : float = 1.5;
xerife nome : string = "xerife";
xerife copia : string = nome;
xerife d : float = dobro(base);
xerife neg : float = -base;
xerife ok : bool = (base > 1.0);
`
	res := mustCompile(t, program)
	be.Equal(t, globalType(res, "copia"), Type(TypeString))
	be.Equal(t, globalType(res, "d"), Type(TypeFloat))
	be.Equal(t, globalType(res, "neg"), Type(TypeFloat))
	be.Equal(t, globalType(res, "ok"), Type(TypeBool))
}

func TestVariableInitializationErrors(t *testing.T) {
	tests := []struct {
		program string
		want    string
	}{
		{"xerife x : int = 1.5;", "type mismatch in declaration of 'x': expected INT, found FLOAT"},
		{`xerife s : string = 1;`, "type mismatch in declaration of 's': expected STRING, found INT"},
		{"xerife x : int = 1 + 2;", "expected INT, found FLOAT"},
		{"xerife x : int = deserto;", "expected INT, found NULL"},
		{"xerife xs : lista[int] = 1;", "expected LIST[INT], found INT"},
		{"xerife x : int = y;", "variable 'y' used before declaration"},
		{"xerife x : int = x;", "variable 'x' used before declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			_, err := Compile(tt.program)
			be.Err(t, err, tt.want)
		})
	}
}

func TestVariableInitializationSyntaxErrors(t *testing.T) {
	tests := []struct {
		program string
		want    string
	}{
		{"xerife x : int = ;", `line 1 at ";": expected expression`},
		{"xerife x = 1;", `line 1 at "=": expected ':' after variable name`},
		{"xerife x : int 1;", `line 1 at "1": expected ';' after variable declaration`},
		{"xerife 1 : int;", `line 1 at "1": expected variable name`},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			_, err := Compile(tt.program)
			var synErrs SyntaxErrors
			be.True(t, errors.As(err, &synErrs))
			be.Equal(t, synErrs[0].Error(), tt.want)
		})
	}
}
