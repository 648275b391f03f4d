package store

import (
	"boardhub/internal/models"

	"gorm.io/gorm"
)

type Reports interface {
	Create(tx *gorm.DB, r *models.Report) error
	ListOpen(tx *gorm.DB) ([]models.Report, error)
	// MarkDeleted closes report id, which must be filed against postID.
	MarkDeleted(tx *gorm.DB, id, postID uint) (int64, error)
}

type GormReports struct{}

func (GormReports) Create(tx *gorm.DB, r *models.Report) error {
	return tx.Create(r).Error
}

func (GormReports) ListOpen(tx *gorm.DB) ([]models.Report, error) {
	reports := []models.Report{}
	err := tx.Where("deleted = ?", false).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (GormReports) MarkDeleted(tx *gorm.DB, id, postID uint) (int64, error) {
	res := tx.Model(&models.Report{}).
		Where("id = ? AND post_id = ? AND deleted = ?", id, postID, false).
		Updates(map[string]interface{}{
			"checked": true,
			"deleted": true,
		})
	return res.RowsAffected, res.Error
}
