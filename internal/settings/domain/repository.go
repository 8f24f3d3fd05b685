package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, storeID int64) ([]Setting, error)
	Upsert(ctx context.Context, db *gorm.DB, setting Setting) error
	Delete(ctx context.Context, db *gorm.DB, storeID int64, name string) error
}
