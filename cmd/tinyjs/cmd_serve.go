package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhamidi/tinyjs/snippet"
	"github.com/dhamidi/tinyjs/ui"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse API, the snippet store and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("tinyjs.serve")
			cfg := a.config.Server
			if addr != "" {
				cfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := snippet.Open(ctx, a.config.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			handler, err := ui.NewServer(store, ui.NewMetrics(nil), cfg.MaxBodyBytes)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.Address,
				Handler:      handler,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			log.Noticef("listening on %s", cfg.Address)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.Address)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")

	return cmd
}
