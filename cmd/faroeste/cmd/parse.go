package cmd

import (
	"github.com/faroeste-lang/faroeste"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a file",
		Long: `Parses a file and prints each top-level declaration as an s-expression.

After a syntax error the parser recovers and keeps going, so every
declaration it could read is still printed before the errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			rep := newReporter(cmd.ErrOrStderr(), a.cfg.Output.Color)

			tokens, lexErrs := faroeste.Lex(src)
			if lexErrs.HasErrors() {
				return rep.report(lexErrs)
			}
			decls, synErrs := faroeste.Parse(tokens)
			a.logger.Debug("parsed", "decls", len(decls), "errors", len(synErrs))

			printProgram(cmd.OutOrStdout(), decls)
			if synErrs.HasErrors() {
				return rep.report(synErrs)
			}
			return nil
		},
	}
}
