package faroeste

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nalgeon/be"
)

func TestCompileSuccess(t *testing.T) {
	res, err := Compile("xerife x : int = 1;\n{ xerife y : bool; }")
	be.Err(t, err, nil)
	be.Equal(t, len(res.Tokens), 15)
	be.Equal(t, len(res.Program), 2)
	be.Equal(t, ScopeToSExpr(res.Symbols.Global()), `(scope (variable "x" int))`)
	be.Equal(t, len(res.Trace), 1)

	_, err = uuid.Parse(res.RunID)
	be.Err(t, err, nil)
}

func TestCompileStopsAfterLexErrors(t *testing.T) {
	res, err := Compile("atire 1 & 2;\natire \"x")

	var lexErrs LexErrors
	be.True(t, errors.As(err, &lexErrs))
	be.Equal(t, len(lexErrs), 2)
	be.Equal(t, err.Error(), "line 1: unexpected '&', did you mean '&&'?\nline 2: a string was opened but never closed")

	be.True(t, len(res.Tokens) > 0)
	be.Equal(t, res.Program, nil)
	be.Equal(t, res.Symbols, (*SymbolTable)(nil))
}

func TestCompileStopsAfterSyntaxErrors(t *testing.T) {
	res, err := Compile("atire ;\natire z;\natire ;")

	var synErrs SyntaxErrors
	be.True(t, errors.As(err, &synErrs))
	be.Equal(t, len(synErrs), 2)

	// The undeclared z would fail analysis, but analysis never runs.
	be.Equal(t, len(res.Program), 1)
	be.Equal(t, res.Symbols, (*SymbolTable)(nil))
}

func TestCompileSemanticErrorKeepsPartialResult(t *testing.T) {
	res, err := Compile("xerife a : int;\nxerife b : int = a;\natire c;")
	be.Err(t, err, ErrUndeclared)
	be.Equal(t, len(res.Program), 3)
	be.Equal(t, ScopeToSExpr(res.Symbols.Global()),
		`(scope (variable "a" int) (variable "b" int))`)
}

func TestCompileWithRunID(t *testing.T) {
	res, err := Compile("", WithRunID("fixed"))
	be.Err(t, err, nil)
	be.Equal(t, res.RunID, "fixed")
	be.Equal(t, len(res.Program), 0)
}

func TestCompileLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf)

	_, err := Compile("atire 1;", WithLogger(logger), WithRunID("r1"))
	be.Err(t, err, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	be.Equal(t, len(lines), 3)

	var stages []string
	for _, line := range lines {
		var entry map[string]any
		be.Err(t, json.Unmarshal([]byte(line), &entry), nil)
		be.Equal(t, entry["run"], any("r1"))
		be.Equal(t, entry["level"], any("debug"))
		stages = append(stages, entry["stage"].(string))
	}
	be.Equal(t, stages, []string{"lex", "parse", "analyze"})
}

func TestCompileLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "logfmt"}, &buf)

	_, err := Compile("atire ;", WithLogger(logger), WithRunID("r2"))
	be.Err(t, err)

	out := buf.String()
	be.True(t, strings.Contains(out, "level=warn"))
	be.True(t, strings.Contains(out, "run=r2"))
	be.True(t, strings.Contains(out, "stage=parse"))
	be.True(t, !strings.Contains(out, "stage=lex"))
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(LogConfig{Level: tt.level}, &buf)

			logger.Debug("d")
			be.Equal(t, buf.Len() > 0, tt.debug)
			buf.Reset()

			logger.Warn("w")
			be.Equal(t, buf.Len() > 0, tt.warn)
		})
	}
}

// mustCompile runs the whole front end and fails the test on any error.
func mustCompile(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Compile(src)
	be.Err(t, err, nil)
	return res
}

// globalType returns the declared type of a global name, or nil.
func globalType(res *Result, name string) Type {
	if sym := res.Symbols.Global().Lookup(name); sym != nil {
		return sym.Type
	}
	return nil
}
