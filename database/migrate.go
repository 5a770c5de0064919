package database

import (
	"fmt"

	"github.com/yeremiapane/retail-manager/models"
	"github.com/yeremiapane/retail-manager/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, its unique indexes and the foreign
// keys declared by the model associations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}
