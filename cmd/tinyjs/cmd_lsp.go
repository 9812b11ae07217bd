package main

import (
	"github.com/dhamidi/tinyjs/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, a.config.Watch.Extensions...)
			return server.RunStdio()
		},
	}
}
