package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dhamidi/tinyjs/workspace"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Parse every source file below dir and report errors as files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			out := cmd.OutOrStdout()

			ws := workspace.New(dir, a.config.Watch.Extensions...)
			if err := ws.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}
			files := ws.Files()
			for _, file := range ws.Errors() {
				report(out, file.Path, file)
			}
			fmt.Fprintf(out, "watching %d files in %s\n", len(files), dir)

			watcher, err := workspace.NewFileWatcher(ws, func(path string, file *workspace.File) {
				report(out, path, file)
			})
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}

// report prints one line per change: the diagnostic of a file that does
// not parse, "ok" for one that does.
func report(w io.Writer, path string, file *workspace.File) {
	switch {
	case file == nil:
		fmt.Fprintf(w, "%s: removed\n", path)
	case file.Err != nil:
		fmt.Fprintf(w, "%s: %s\n", path, file.Err)
	default:
		fmt.Fprintf(w, "%s: ok\n", path)
	}
}
