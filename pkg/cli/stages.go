package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tinyscript/pkg/compiler"
)

func newStagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stages [file]",
		Short: "Dump the source, tokens, AST and global symbols",
		Long: `Runs each front-end stage in turn and prints its output.

Output stops at the first stage that fails.`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.source(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s\n%s\n", HeaderStyle.Render("Source:"), src)

			// Lex
			tokens, err := compiler.Lex(src, a.scannerOptions()...)
			if err != nil {
				return fmt.Errorf("lex error: %w", err)
			}

			fmt.Fprintln(out, HeaderStyle.Render(fmt.Sprintf("Tokens (%d)", len(tokens))))
			for _, tok := range tokens {
				fmt.Fprintln(out, " ", tok)
			}
			fmt.Fprintln(out)

			// Parse
			prog, err := compiler.Parse(tokens, a.stageOptions()...)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}

			fmt.Fprintln(out, HeaderStyle.Render("AST"))
			for _, s := range prog.Body.Stmts {
				fmt.Fprintln(out, " ", s)
			}
			fmt.Fprintln(out)

			// Check
			analyzer := compiler.NewAnalyzer(a.stageOptions()...)
			if _, err := analyzer.Check(prog); err != nil {
				return fmt.Errorf("semantic error: %w", err)
			}

			fmt.Fprintln(out, HeaderStyle.Render("Symbols"))
			fmt.Fprint(out, analyzer.Global())
			fmt.Fprintln(out)
			fmt.Fprintln(out, OKStyle.Render("ok"))
			return nil
		},
	}
}
