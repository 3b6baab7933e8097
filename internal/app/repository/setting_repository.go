package repository

import (
	"time"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(key string) (*model.Setting, error)
	GetOrCreate(key, defaultValue string) (*model.Setting, error)
	Set(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.Where(&model.Setting{Key: key}).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetOrCreate returns the row for key, inserting defaultValue when it is
// missing. A concurrent insert of the same key is ignored and re-read.
func (r *settingRepository) GetOrCreate(key, defaultValue string) (*model.Setting, error) {
	setting, err := r.Get(key)
	if err == nil {
		return setting, nil
	}
	if err != gorm.ErrRecordNotFound {
		logger.Error("Failed to read setting", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	created := model.Setting{Key: key, Value: defaultValue, UpdatedAt: time.Now()}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&created).Error; err != nil {
		logger.Error("Failed to create default setting", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	logger.Info("Created default setting", map[string]interface{}{
		"key":   key,
		"value": defaultValue,
	})
	return r.Get(key)
}

func (r *settingRepository) Set(key, value string) error {
	setting := model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		logger.Error("Failed to write setting", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
