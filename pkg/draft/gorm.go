package draft

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sitevoice/backend/models"
)

// GormBackend implements Fetcher and Updater against the reports table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) FetchReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (g *GormBackend) UpdateReport(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	result := g.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
