package store

import (
	"boardhub/internal/models"

	"gorm.io/gorm"
)

type Comments interface {
	List(tx *gorm.DB, postID uint) ([]models.CommentView, error)
	Create(tx *gorm.DB, c *models.Comment) error
	UpdateOwned(tx *gorm.DB, id, ownerID uint, contents string) (int64, error)
	SoftDeleteOwned(tx *gorm.DB, id, ownerID uint) (int64, error)
}

type GormComments struct{}

func (GormComments) List(tx *gorm.DB, postID uint) ([]models.CommentView, error) {
	comments := []models.CommentView{}
	err := tx.Table("comments AS cm").
		Select("cm.id, cm.post_id, cm.user_id, u.nickname, cm.contents, cm.modified, cm.created_at").
		Joins("LEFT JOIN users u ON u.id = cm.user_id").
		Where("cm.post_id = ? AND cm.deleted = ?", postID, false).
		Order("cm.created_at DESC").Order("cm.id DESC").
		Scan(&comments).Error
	return comments, err
}

func (GormComments) Create(tx *gorm.DB, c *models.Comment) error {
	return tx.Create(c).Error
}

func (GormComments) UpdateOwned(tx *gorm.DB, id, ownerID uint, contents string) (int64, error) {
	res := tx.Model(&models.Comment{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, ownerID, false).
		Updates(map[string]interface{}{
			"contents": contents,
			"modified": true,
		})
	return res.RowsAffected, res.Error
}

func (GormComments) SoftDeleteOwned(tx *gorm.DB, id, ownerID uint) (int64, error) {
	res := tx.Model(&models.Comment{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, ownerID, false).
		Update("deleted", true)
	return res.RowsAffected, res.Error
}
