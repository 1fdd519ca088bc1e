package cmd

import (
	"fmt"

	"github.com/faroeste-lang/faroeste"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a file",
		Long: `Lexes a file and prints one token per line.

Lexical errors are reported after the tokens that could be read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}

			tokens, lexErrs := faroeste.Lex(src)
			a.logger.Debug("lexed", "tokens", len(tokens), "errors", len(lexErrs))

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintln(out, tok)
			}
			if lexErrs.HasErrors() {
				return newReporter(cmd.ErrOrStderr(), a.cfg.Output.Color).report(lexErrs)
			}
			return nil
		},
	}
}
