package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/sitevoice/backend/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Company{}, &models.User{}, &models.Project{},
					&models.ProjectUser{}, &models.Employee{}, &models.Report{})
			},
		},
		{
			ID: "20250712_add_billing_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.SubscriptionPlan{}, &models.Subscription{}, &models.Trial{})
			},
		},
		{
			ID: "20250720_add_user_preferences",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.UserPreference{})
			},
		},
		{
			ID: "20250803_add_voice_notes",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.VoiceNote{})
			},
		},
		{
			ID: "20250815_backfill_report_collections",
			Migrate: func(tx *gorm.DB) error {
				// Reports created before the edit flow shipped have NULL
				// collections; the draft layer expects dense arrays.
				for _, column := range []string{"materials_used", "equipment", "attachments"} {
					if err := tx.Exec("UPDATE reports SET " + column + " = '[]' WHERE " + column + " IS NULL").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})
	return m.Migrate()
}
