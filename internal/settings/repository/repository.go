package repository

import (
	"context"

	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func Provide() settingsdomain.Repository {
	return &repository{}
}

func (r *repository) List(ctx context.Context, db *gorm.DB, storeID int64) ([]settingsdomain.Setting, error) {
	var rows []settingsdomain.Setting
	err := db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Upsert(ctx context.Context, db *gorm.DB, setting settingsdomain.Setting) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, storeID int64, name string) error {
	return db.WithContext(ctx).
		Where("store_id = ? AND name = ?", storeID, name).
		Delete(&settingsdomain.Setting{}).Error
}
