package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dhamidi/tinyjs/ebnf/earley"
	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	var verify bool
	var start string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar the parser implements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verify {
				fmt.Fprint(cmd.OutOrStdout(), parser.Grammar())
				return nil
			}

			grammar, err := ebnf.Parse("grammar.ebnf", strings.NewReader(parser.Grammar()))
			if err != nil {
				printErrors(cmd, err)
				return fmt.Errorf("grammar does not parse")
			}
			if err := ebnf.Verify(grammar, start); err != nil {
				printErrors(cmd, err)
				return fmt.Errorf("grammar does not verify from %s", start)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions reachable from %s\n", len(grammar), start)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the grammar instead of printing it")
	cmd.Flags().StringVar(&start, "start", "Program", "start production for --verify")

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Recognize a program with the grammar alone and compare with the parser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			checkErr := earley.CheckSource(src)
			_, parseErr := parser.Parse(src, parser.WithFile(name))
			if (checkErr == nil) != (parseErr == nil) {
				return fmt.Errorf("grammar and parser disagree: grammar: %v, parser: %v", checkErr, parseErr)
			}
			if checkErr != nil {
				return checkErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			return nil
		},
	}
}

// printErrors lists each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(out, err)
}
