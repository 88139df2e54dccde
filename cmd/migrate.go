package cmd

import (
	"deckbuilder/database"
	"deckbuilder/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(database.DSN())
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.L().Info("migration complete")
		return nil
	},
}
