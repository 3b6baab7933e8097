package db

import (
	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every catalog table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.ProductType{},
		&model.Category{},
		&model.SubOption{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Setting{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB creates or updates the catalog schema on the given handle.
func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
