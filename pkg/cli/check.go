package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tinyscript/pkg/compiler"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Scan, parse and type-check a program",
		Args:  fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := a.source(cmd, args)
			if err != nil {
				return err
			}

			prog, err := compiler.Compile(src, a.cfg.CompilerOptions(a.logger))
			if err != nil {
				a.logger.Debug("check failed", "source", name, "error", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d statements)\n",
				OKStyle.Render("ok"), name, len(prog.Body.Stmts))
			return nil
		},
	}
}
