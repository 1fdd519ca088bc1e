package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/faroeste-lang/faroeste"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorOK    = lipgloss.Color("#10B981")
	colorMuted = lipgloss.Color("#6B7280")
	colorLex   = lipgloss.Color("#F59E0B")
)

// diagnostic is one rendered compiler error.
type diagnostic struct {
	stage   string // lexical error, syntax error, semantic error
	line    int
	lexeme  string
	eof     bool
	message string
}

// diagnostics flattens a Compile error into one entry per reported error.
// It returns nil for errors that did not come from a compiler stage.
func diagnostics(err error) []diagnostic {
	var lexErrs faroeste.LexErrors
	if errors.As(err, &lexErrs) {
		out := make([]diagnostic, 0, len(lexErrs))
		for _, e := range lexErrs {
			d := diagnostic{stage: "lexical error", line: e.Line, message: e.Message()}
			switch e.Kind {
			case faroeste.UnexpectedAmpersand:
				d.lexeme = "&"
			case faroeste.UnexpectedPipe:
				d.lexeme = "|"
			case faroeste.UnexpectedToken:
				d.lexeme = e.Lexeme
			}
			out = append(out, d)
		}
		return out
	}

	var synErrs faroeste.SyntaxErrors
	if errors.As(err, &synErrs) {
		out := make([]diagnostic, 0, len(synErrs))
		for _, e := range synErrs {
			out = append(out, diagnostic{
				stage:   "syntax error",
				line:    e.Token.Line,
				lexeme:  e.Token.Lexeme,
				eof:     e.Token.Type == faroeste.EOF,
				message: e.Message,
			})
		}
		return out
	}

	var semErr *faroeste.SemanticError
	if errors.As(err, &semErr) {
		return []diagnostic{{
			stage:   "semantic error",
			line:    semErr.Token.Line,
			lexeme:  semErr.Token.Lexeme,
			message: semErr.Message,
		}}
	}
	return nil
}

// reporter renders diagnostics and status lines. With color off every
// style is plain.
type reporter struct {
	w io.Writer

	header lipgloss.Style
	lexHdr lipgloss.Style
	where  lipgloss.Style
	lexeme lipgloss.Style
	ok     lipgloss.Style
}

func newReporter(w io.Writer, color bool) *reporter {
	if !color {
		plain := lipgloss.NewStyle()
		return &reporter{w: w, header: plain, lexHdr: plain, where: plain, lexeme: plain, ok: plain}
	}

	r := &reporter{w: w}
	renderer := lipgloss.NewRenderer(w)
	r.header = renderer.NewStyle().Bold(true).Foreground(colorError)
	r.lexHdr = renderer.NewStyle().Bold(true).Foreground(colorLex)
	r.where = renderer.NewStyle().Foreground(colorMuted)
	r.lexeme = renderer.NewStyle().Bold(true)
	r.ok = renderer.NewStyle().Bold(true).Foreground(colorOK)
	return r
}

// report prints every diagnostic of err and returns errReported, or
// returns err unchanged when it is not a compiler error.
func (r *reporter) report(err error) error {
	diags := diagnostics(err)
	if diags == nil {
		return err
	}
	for _, d := range diags {
		fmt.Fprintln(r.w, r.render(d))
	}
	return errReported
}

func (r *reporter) render(d diagnostic) string {
	header := r.header
	if d.stage == "lexical error" {
		header = r.lexHdr
	}

	var where string
	switch {
	case d.eof:
		where = "at end of file"
	case d.lexeme != "":
		where = fmt.Sprintf("line %d at %s", d.line, r.lexeme.Render(fmt.Sprintf("%q", d.lexeme)))
	default:
		where = fmt.Sprintf("line %d", d.line)
	}
	return fmt.Sprintf("%s %s: %s", header.Render(d.stage+":"), r.where.Render(where), d.message)
}

func (r *reporter) success(msg string) {
	fmt.Fprintln(r.w, r.ok.Render("ok")+" "+msg)
}
