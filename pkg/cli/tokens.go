package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tinyscript/pkg/compiler"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream",
		Long: `Scans the program and prints one token per line.

On a scan error the tokens read so far are printed before the error.`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := a.source(cmd, args)
			if err != nil {
				return err
			}

			tokens, lexErr := compiler.Lex(src, a.scannerOptions()...)
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintln(out, tok)
			}
			if lexErr != nil {
				return fmt.Errorf("lex error: %w", lexErr)
			}
			return nil
		},
	}
}
