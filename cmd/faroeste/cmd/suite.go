package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/faroeste-lang/faroeste/suite"
	"github.com/spf13/cobra"
)

func newSuiteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suite [file.md...]",
		Short: "Run markdown test suites",
		Long: `Runs every "Test:" section of the given markdown files against the
front end. With no arguments it runs test/*_test.md.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				var err error
				if files, err = filepath.Glob(filepath.Join("test", "*_test.md")); err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no suites found in test/")
				}
			}

			out := cmd.OutOrStdout()
			rep := newReporter(out, a.cfg.Output.Color)
			total, failed := 0, 0
			for _, file := range files {
				report, err := suite.RunFile(file)
				if err != nil {
					return err
				}
				a.logger.Debug("ran suite", "file", file, "cases", len(report.Cases), "failed", report.Failed())

				for _, c := range report.Cases {
					total++
					if c.Passed() {
						continue
					}
					failed++
					fmt.Fprintf(out, "%s %s: %s\n", rep.header.Render("FAIL"), file, c.Name)
					for _, f := range c.Failures {
						fmt.Fprintf(out, "    %s\n", f.Error())
					}
				}
			}

			if failed > 0 {
				fmt.Fprintf(out, "%d of %d cases failed\n", failed, total)
				return errReported
			}
			rep.success(fmt.Sprintf("%d cases in %d files", total, len(files)))
			return nil
		},
	}
}
