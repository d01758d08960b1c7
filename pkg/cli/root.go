// Package cli implements the tinyscript command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tinyscript/pkg/compiler"
	"tinyscript/pkg/config"
	"tinyscript/pkg/utils"
)

// EnvDotEnvPath names an explicit .env file to load before the config.
const EnvDotEnvPath = "TINYSCRIPT_ENV_PATH"

const defaultDotEnv = ".env"

// Exit codes returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks bad flags or arguments so main can exit with ExitUsage.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		return ExitUsage
	}
	return ExitFailure
}

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	verbose bool
	eval    string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tinyscript",
		Short: "TinyScript front end: scanner, parser and type checker",
		Long: `tinyscript scans, parses and type-checks TinyScript programs.

Commands:
  tokens  - print the token stream
  parse   - print the syntax tree (text, yaml or json)
  check   - run the full pipeline and report the first error
  stages  - dump every stage: source, tokens, AST and globals

Source is read from --eval, a file argument, or stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $TINYSCRIPT_CONFIG or ./tinyscript.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&a.eval, "eval", "e", "", "program text to use instead of a file")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newStagesCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command against os.Args and reports any error on
// stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", FailStyle.Render("error:"), err)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = newLogger(cmd.ErrOrStderr(), a.cfg.Log.Format, level)
	a.logger.Debug("configuration loaded",
		"config", a.cfgFile,
		"max_depth", a.cfg.Compiler.MaxDepth,
		"combined_operators", a.cfg.Compiler.CombinedOperators)
	return nil
}

// loadDotEnv loads TINYSCRIPT_ENV_PATH when set, otherwise ./.env if it
// exists. Only an explicitly named file is required to be present.
func loadDotEnv() error {
	path := os.Getenv(EnvDotEnvPath)
	if path == "" {
		if _, err := os.Stat(defaultDotEnv); err != nil {
			slog.Debug("no .env file, skipping", "path", defaultDotEnv)
			return nil
		}
		path = defaultDotEnv
	}

	if err := godotenv.Load(path); err != nil {
		slog.Error("failed to load environment file", "path", path, "error", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("run_id", uuid.New().String())
}

// source returns the program text and a display name for it.
func (a *app) source(cmd *cobra.Command, args []string) (string, string, error) {
	if cmd.Flags().Changed("eval") {
		if len(args) > 0 {
			return "", "", usageErrorf("--eval cannot be combined with a file argument")
		}
		return a.eval, "<eval>", nil
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	src, name, err := utils.ReadSource(path, cmd.InOrStdin())
	if err != nil {
		return "", "", err
	}
	a.logger.Debug("read source", "source", name, "bytes", len(src))
	return src, name, nil
}

func (a *app) scannerOptions() []compiler.ScannerOption {
	if a.cfg.Compiler.CombinedOperators {
		return []compiler.ScannerOption{compiler.WithCombinedOperators()}
	}
	return nil
}

func (a *app) stageOptions() []compiler.Option {
	return []compiler.Option{
		compiler.WithMaxDepth(a.cfg.Compiler.MaxDepth),
		compiler.WithLogger(a.logger),
	}
}

// fileArg accepts zero or one positional file argument.
func fileArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return usageErrorf("accepts at most 1 file argument, received %d", len(args))
	}
	return nil
}
