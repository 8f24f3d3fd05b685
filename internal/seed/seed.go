package seed

import (
	"errors"
	"time"

	settingsdomain "github.com/StoicRounin/paystack-gateway/internal/settings/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureDefaultSettings inserts the default-scope settings a fresh database
// needs before the admin surface has been touched. Existing rows win.
func EnsureDefaultSettings(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("missing_database")
	}

	now := time.Now().UTC()
	defaults := []settingsdomain.Setting{
		{StoreID: settingsdomain.DefaultStoreScope, Name: settingsdomain.NameUseSandbox, Value: "true", UpdatedAt: now},
		{StoreID: settingsdomain.DefaultStoreScope, Name: settingsdomain.NameCurrency, Value: "GHS", UpdatedAt: now},
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		for _, setting := range defaults {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "store_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
