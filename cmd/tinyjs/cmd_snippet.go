package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dhamidi/tinyjs/format"
	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/dhamidi/tinyjs/snippet"
	"github.com/spf13/cobra"
)

func newSnippetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Save and look up programs in the snippet database",
	}

	cmd.AddCommand(newSnippetSaveCmd(a))
	cmd.AddCommand(newSnippetShowCmd(a))
	cmd.AddCommand(newSnippetListCmd(a))
	cmd.AddCommand(newSnippetDeleteCmd(a))

	return cmd
}

func openStore(ctx context.Context, a *app) (*snippet.Store, error) {
	return snippet.Open(ctx, a.config.Database.Path)
}

func newSnippetSaveCmd(a *app) *cobra.Command {
	var name, description string
	var check bool

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Store a program, read from file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			if check {
				if _, err := parser.Parse(src, parser.WithFile(file)); err != nil {
					return fmt.Errorf("not saved: %w", err)
				}
			}

			store, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.Close()

			snip, err := store.Create(cmd.Context(), snippet.Snippet{
				Name:        name,
				Code:        src,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snip.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "unique snippet name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "short description")
	cmd.Flags().BoolVar(&check, "check", false, "refuse to save a program that does not parse")

	return cmd
}

func newSnippetShowCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Parse a stored program and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.Close()

			snip, err := lookupSnippet(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			prog, parseErr := parser.Parse(snip.Code, parser.WithFile(args[0]))
			if err := enc.Encode(snip.Code, prog, parseErr); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return parseErr
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "trace", "output format: trace, json or sexp")

	return cmd
}

// lookupSnippet treats a numeric key as an id, falling back to a name
// lookup when no snippet has that id.
func lookupSnippet(ctx context.Context, store *snippet.Store, key string) (snippet.Snippet, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		snip, err := store.Get(ctx, id)
		if !errors.Is(err, snippet.ErrNotFound) {
			return snip, err
		}
	}
	return store.GetByName(ctx, key)
}

func newSnippetListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.Close()

			snippets, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, s := range snippets {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.Description)
			}
			return w.Flush()
		},
	}
}

func newSnippetDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			store, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Delete(cmd.Context(), id)
		},
	}
}
