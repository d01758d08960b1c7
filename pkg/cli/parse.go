package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tinyscript/pkg/compiler"
)

// Output formats accepted by parse --format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree",
		Long: `Scans and parses the program and prints the syntax tree.

The tree is not type-checked. Use check for semantic errors.`,
		Args: fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case FormatText, FormatYAML, FormatJSON:
			default:
				return usageErrorf("unknown format %q (want text, yaml or json)", format)
			}

			src, _, err := a.source(cmd, args)
			if err != nil {
				return err
			}
			tokens, err := compiler.Lex(src, a.scannerOptions()...)
			if err != nil {
				return fmt.Errorf("lex error: %w", err)
			}
			prog, err := compiler.Parse(tokens, a.stageOptions()...)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			return writeProgram(cmd.OutOrStdout(), prog, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, yaml or json")
	return cmd
}

func writeProgram(w io.Writer, prog *compiler.Program, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(prog); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(prog, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		for _, s := range prog.Body.Stmts {
			fmt.Fprintln(w, s)
		}
		return nil
	}
}
