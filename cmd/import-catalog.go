package cmd

import (
	"fmt"

	"deckbuilder/catalog"
	"deckbuilder/database"
	"deckbuilder/logger"
	"deckbuilder/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog <file>",
	Short: "Upsert spells from a .csv or .yaml catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spells, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		db, err := database.Open(database.DSN())
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		imported, err := catalog.Import(ctx, db, spells)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		logger.L().Info("catalog imported", zap.String("file", args[0]), zap.Int("spells", imported))

		if err := database.InitRedis(ctx); err != nil {
			logger.L().Warn("redis unavailable, spell cache not cleared", zap.Error(err))
			return nil
		}
		return services.InvalidateSpellCache(ctx)
	},
}
