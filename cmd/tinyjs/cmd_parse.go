package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/tinyjs/format"
	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a program and print its syntax tree",
		Long: `Parse a program read from file, or from stdin when file is omitted or "-".

Formats:
  trace  the code lines and the nested-array tree (default)
  json   the syntax tree with node kinds and positions
  sexp   the syntax tree as s-expressions`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			prog, parseErr := parser.Parse(src, parser.WithFile(name))
			if err := enc.Encode(src, prog, parseErr); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return parseErr
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "trace", "output format: trace, json or sexp")

	return cmd
}

// readSource returns the display name and content of the program named by
// args, reading stdin for no argument or "-".
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return args[0], string(data), nil
}
