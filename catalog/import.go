package catalog

import (
	"context"

	"deckbuilder/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 200

// Import upserts spells by name and returns how many rows were written
func Import(ctx context.Context, db *gorm.DB, spells []models.Spell) (int, error) {
	if len(spells) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"school", "pip_cost", "card_type", "card_effects",
				"accuracy", "description", "wiki_url", "image_url",
			}),
		}).
		CreateInBatches(spells, importBatchSize)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
