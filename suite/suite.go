// Package suite runs markdown test suites against the faroeste front end.
//
// A suite is a markdown file read by sexy.ExtractTestCases. Expression
// inputs are lexed, parsed and typed in an empty global scope; program
// inputs go through faroeste.Compile.
package suite

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/faroeste-lang/faroeste"
	"github.com/faroeste-lang/faroeste/sexy"
)

// Failure is one failed assertion. Line is the assertion fence's line in
// the markdown file.
type Failure struct {
	Line    int
	Message string
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Message)
}

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Name     string
	Failures []Failure
}

func (r CaseResult) Passed() bool { return len(r.Failures) == 0 }

// Report is the outcome of one suite file.
type Report struct {
	File  string
	Cases []CaseResult
}

// Failed counts the cases with at least one failure.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Passed() {
			n++
		}
	}
	return n
}

// RunFile reads and runs every test case in the markdown file at path.
func RunFile(path string) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := sexy.ExtractTestCases(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	report := &Report{File: path}
	for _, tc := range cases {
		report.Cases = append(report.Cases, CaseResult{Name: tc.Name, Failures: RunCase(tc)})
	}
	return report, nil
}

// RunCase checks every assertion of tc and returns the ones that failed.
func RunCase(tc sexy.TestCase) []Failure {
	switch tc.InputType {
	case sexy.InputTypeExpr:
		return runExpr(tc)
	case sexy.InputTypeProgram:
		return runProgram(tc)
	}
	return []Failure{{Message: fmt.Sprintf("unknown input type: %s", tc.InputType)}}
}

func runExpr(tc sexy.TestCase) []Failure {
	var expr faroeste.Expr
	var err error
	tokens, lexErrs := faroeste.Lex(tc.Input)
	if lexErrs.HasErrors() {
		err = lexErrs
	} else {
		expr, err = faroeste.ParseExpression(tokens)
	}
	parseErr := err
	if err == nil {
		err = faroeste.CheckExpression(expr, faroeste.NewTypeChecker(nil))
	}

	var failures []Failure
	for _, a := range tc.Assertions {
		var f *Failure
		switch a.Type {
		case sexy.AssertionTypeAST:
			if parseErr != nil {
				f = unexpected(a, parseErr)
				break
			}
			f = matchPattern(a, faroeste.ToSExpr(expr))
		case sexy.AssertionTypeTypes:
			if err != nil {
				f = unexpected(a, err)
				break
			}
			f = matchPattern(a, faroeste.TypeToSExpr(expr.Type()))
		case sexy.AssertionTypeCompileError:
			f = matchError(a, err)
		}
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}

func runProgram(tc sexy.TestCase) []Failure {
	res, err := faroeste.Compile(tc.Input)

	// A semantic error still leaves a complete parse.
	var semErr *faroeste.SemanticError
	parsed := err == nil || errors.As(err, &semErr)

	var failures []Failure
	for _, a := range tc.Assertions {
		var f *Failure
		switch a.Type {
		case sexy.AssertionTypeAST:
			if !parsed {
				f = unexpected(a, err)
				break
			}
			f = matchPattern(a, faroeste.ProgramToSExpr(res.Program))
		case sexy.AssertionTypeTypes:
			if err != nil {
				f = unexpected(a, err)
				break
			}
			f = matchPattern(a, faroeste.ScopeToSExpr(res.Symbols.Global()))
		case sexy.AssertionTypeCompileError:
			f = matchError(a, err)
		}
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}

func unexpected(a sexy.Assertion, err error) *Failure {
	return &Failure{Line: a.Line, Message: "unexpected error: " + FirstError(err)}
}

// matchPattern reads actual back through the sexy reader and matches it
// against the assertion's pattern.
func matchPattern(a sexy.Assertion, actual string) *Failure {
	node, err := sexy.Parse(actual)
	if err != nil {
		return &Failure{Line: a.Line, Message: fmt.Sprintf("cannot read %q: %v", actual, err)}
	}
	if err := sexy.Match(a.Pattern, node); err != nil {
		return &Failure{Line: a.Line, Message: fmt.Sprintf("%v\nwant: %s\ngot:  %s", err, a.Pattern, actual)}
	}
	return nil
}

func matchError(a sexy.Assertion, err error) *Failure {
	if err == nil {
		return &Failure{Line: a.Line, Message: fmt.Sprintf("expected error containing %q, got none", a.Content)}
	}
	if first := FirstError(err); !strings.Contains(first, a.Content) {
		return &Failure{Line: a.Line, Message: fmt.Sprintf("expected error containing %q, got %q", a.Content, first)}
	}
	return nil
}

// FirstError renders the first error of a batch, or err itself.
func FirstError(err error) string {
	var lexErrs faroeste.LexErrors
	if errors.As(err, &lexErrs) && len(lexErrs) > 0 {
		return lexErrs[0].Error()
	}
	var synErrs faroeste.SyntaxErrors
	if errors.As(err, &synErrs) && len(synErrs) > 0 {
		return synErrs[0].Error()
	}
	return err.Error()
}
