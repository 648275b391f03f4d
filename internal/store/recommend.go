package store

import (
	"errors"

	"boardhub/internal/models"

	"gorm.io/gorm"
)

// Recommends is the statement set behind the recommendation toggle.
type Recommends interface {
	// Find returns the pair's row, or nil when the pair never toggled.
	Find(tx *gorm.DB, postID, userID uint) (*models.Recommend, error)
	Insert(tx *gorm.DB, postID, userID uint) error
	SetActive(tx *gorm.DB, postID, userID uint, active bool) error
	CountActive(tx *gorm.DB, postID uint) (int64, error)
}

type GormRecommends struct{}

func (GormRecommends) Find(tx *gorm.DB, postID, userID uint) (*models.Recommend, error) {
	var rec models.Recommend
	err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (GormRecommends) Insert(tx *gorm.DB, postID, userID uint) error {
	return tx.Create(&models.Recommend{PostID: postID, UserID: userID, Active: true}).Error
}

func (GormRecommends) SetActive(tx *gorm.DB, postID, userID uint, active bool) error {
	return tx.Model(&models.Recommend{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Update("active", active).Error
}

func (GormRecommends) CountActive(tx *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Recommend{}).
		Where("post_id = ? AND active = ?", postID, true).
		Count(&count).Error
	return count, err
}
