package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/faroeste-lang/faroeste"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    *faroeste.Config
	logger *log.Logger
}

// NewRootCmd builds the faroeste command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "faroeste",
		Short: "Front end for the faroeste language",
		Long: `faroeste lexes, parses and type-checks faroeste programs.

Commands:
  tokens  - dump the token stream
  parse   - print the syntax tree
  check   - run the whole front end
  eval    - check inline code
  suite   - run markdown test suites`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./faroeste.toml or ./faroeste.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every compiler stage")

	rootCmd.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newEvalCmd(a),
		newSuiteCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI. Errors that were not already rendered as
// diagnostics are printed to stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var (
		cfg  *faroeste.Config
		path string
		err  error
	)
	if a.cfgFile != "" {
		cfg, err = faroeste.LoadConfig(a.cfgFile)
		path = a.cfgFile
	} else {
		cfg, path, err = faroeste.FindConfig(".")
	}
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	a.cfg = cfg
	a.logger = faroeste.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	return nil
}

// readSource reads the single file argument of a subcommand.
func (a *app) readSource(path string) (string, error) {
	src, err := faroeste.ReadSource(path)
	if err != nil {
		return "", err
	}
	a.logger.Debug("read source", "path", path, "bytes", len(src))
	return src, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "faroeste %s\n", Version)
		},
	}
}
