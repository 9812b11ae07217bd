package main

import (
	"os"

	"github.com/dhamidi/tinyjs/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// app carries what the root command resolves before any subcommand runs.
type app struct {
	configPath string
	verbose    int
	config     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "tinyjs",
		Short:        "Parse and inspect programs in a small JavaScript-like language",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = a.verbose
			}
			var logPath *string
			if cfg.Log.File != "" {
				logPath = &cfg.Log.File
			}
			commonlog.Configure(cfg.Log.Verbosity, logPath)
			a.config = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newSnippetCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
