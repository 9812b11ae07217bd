package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			tokens, lexErr := parser.Tokenize(src, parser.WithFile(name))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Literal)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return lexErr
		},
	}
}
