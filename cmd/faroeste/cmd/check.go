package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/faroeste-lang/faroeste"
	"github.com/spf13/cobra"
)

// checkOptions are the output switches shared by check and eval. Unset
// flags fall back to the config file.
type checkOptions struct {
	ast    bool
	scopes bool
	format string
}

func (o *checkOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.ast, "ast", false, "print the syntax tree")
	cmd.Flags().BoolVar(&o.scopes, "scopes", false, "dump the analyzer scopes")
	cmd.Flags().StringVar(&o.format, "format", "", "scope dump format: yaml or toml")
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Lex, parse and type-check a file",
		Long: `Runs the whole front end on a file.

Lexical and syntax errors are all reported together. Type checking stops at
the first semantic error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			return a.check(cmd, src, args[0], opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func newEvalCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "eval <code>",
		Short: "Check inline code",
		Long: `Runs the whole front end on code given on the command line.
Multiple arguments are joined with spaces.`,
		Example: `  faroeste eval 'xerife x : int = 1; atire x;' --scopes`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd, strings.Join(args, " "), "<eval>", opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) check(cmd *cobra.Command, src, name string, opts checkOptions) error {
	out := cmd.OutOrStdout()
	rep := newReporter(cmd.ErrOrStderr(), a.cfg.Output.Color)

	format, err := a.scopeFormat(cmd, opts)
	if err != nil {
		return err
	}

	res, err := faroeste.Compile(src, faroeste.WithLogger(a.logger))
	if err != nil {
		return rep.report(err)
	}
	a.logger.Info("checked", "source", name, "run", res.RunID)

	if opts.ast || a.cfg.Output.ShowAST {
		printProgram(out, res.Program)
	}
	if opts.scopes || a.cfg.Output.ShowScopes {
		if err := writeScopes(out, res, format); err != nil {
			return err
		}
	}
	newReporter(out, a.cfg.Output.Color).success(fmt.Sprintf("%s: %d declarations", name, len(res.Program)))
	return nil
}

// scopeFormat picks --format when given, otherwise output.scope_format.
func (a *app) scopeFormat(cmd *cobra.Command, opts checkOptions) (faroeste.Format, error) {
	if cmd.Flags().Changed("format") {
		return faroeste.ParseFormat(opts.format)
	}
	return faroeste.ParseFormat(a.cfg.Output.ScopeFormat)
}

func printProgram(w io.Writer, decls []faroeste.Decl) {
	for _, d := range decls {
		fmt.Fprintln(w, faroeste.DeclToSExpr(d))
	}
}
