package faroeste

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Result is everything the front end produced. Fields for stages that did
// not run are nil.
type Result struct {
	RunID   string
	Tokens  []Token
	Program []Decl
	Symbols *SymbolTable
	Trace   []*Scope
}

type Option func(*compileOptions)

type compileOptions struct {
	logger *log.Logger
	runID  string
}

// WithLogger sends stage logs to l instead of discarding them.
func WithLogger(l *log.Logger) Option {
	return func(o *compileOptions) { o.logger = l }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(o *compileOptions) { o.runID = id }
}

// Compile lexes, parses and type-checks source. It stops before parsing if
// lexing reported errors, and before analysis if parsing did.
//
// The returned error is a LexErrors, a SyntaxErrors or a *SemanticError.
// The Result is non-nil in every case and holds what was produced before the
// failing stage.
func Compile(source string, opts ...Option) (*Result, error) {
	o := compileOptions{logger: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.New().String()
	}
	logger := o.logger.With("run", o.runID)
	res := &Result{RunID: o.runID}

	tokens, lexErrs := Lex(source)
	res.Tokens = tokens
	logger.Debug("lexed", "stage", "lex", "tokens", len(tokens), "errors", len(lexErrs))
	if lexErrs.HasErrors() {
		logger.Warn("aborting before parse", "stage", "lex", "errors", len(lexErrs))
		return res, lexErrs
	}

	decls, synErrs := Parse(tokens)
	res.Program = decls
	logger.Debug("parsed", "stage", "parse", "decls", len(decls), "errors", len(synErrs))
	if synErrs.HasErrors() {
		logger.Warn("aborting before analysis", "stage", "parse", "errors", len(synErrs))
		return res, synErrs
	}

	tc := NewTypeChecker(nil)
	err := tc.Analyze(decls)
	res.Symbols = tc.Symbols()
	res.Trace = tc.Trace()
	if err != nil {
		logger.Warn("analysis failed", "stage", "analyze", "err", err)
		return res, err
	}
	logger.Debug("analyzed", "stage", "analyze",
		"globals", len(res.Symbols.Global().Symbols), "closed_scopes", len(res.Trace))
	return res, nil
}
