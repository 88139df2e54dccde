// Package cmd is the deckbuilder command line: the API server and its maintenance commands.
package cmd

import (
	"fmt"
	"os"

	"deckbuilder/config"
	"deckbuilder/logger"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "deckbuilder",
	Short: "Spell deck builder API",
	Long: `deckbuilder serves the deck building API: accounts, the spell catalog,
deck composition sessions with autosave and deck views (export, image, websocket).

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()

		level := config.LogLevel
		if verbose {
			level = "debug"
		}
		if err := logger.Init(level, config.IsProduction()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, migrateCmd, importCatalogCmd)
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
