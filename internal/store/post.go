package store

import (
	"boardhub/internal/models"

	"gorm.io/gorm"
)

// PostChanges is the editable part of a post, addressed by id and owner.
type PostChanges struct {
	ID         uint
	OwnerID    uint
	Title      string
	Contents   string
	CategoryID uint
}

type Posts interface {
	Create(tx *gorm.DB, post *models.Post) error
	// Owner returns the stored owner of a visible post.
	Owner(tx *gorm.DB, id uint) (uint, error)
	UpdateOwned(tx *gorm.DB, c PostChanges) (int64, error)
	SoftDeleteOwned(tx *gorm.DB, id, ownerID uint) (int64, error)
	Ban(tx *gorm.DB, id uint) (int64, error)
	// List returns visible posts, newest first; categoryID 0 means every category.
	List(tx *gorm.DB, categoryID uint) ([]models.PostSummary, error)
	Detail(tx *gorm.DB, id uint) (*models.PostDetail, error)
	Categories(tx *gorm.DB) ([]models.Category, error)
}

type GormPosts struct{}

func visible(tx *gorm.DB) *gorm.DB {
	return tx.Where("p.deleted = ? AND p.banned = ?", false, false)
}

func summaryQuery(tx *gorm.DB, fields string) *gorm.DB {
	return tx.Table("posts AS p").
		Select(fields).
		Joins("LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM recommends WHERE active = ? GROUP BY post_id) r ON r.post_id = p.id", true).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN categories c ON c.id = p.category_id")
}

const summaryFields = "p.id, p.user_id, p.title, p.created_at, c.category, u.nickname, COALESCE(r.cnt, 0) AS recommend_count"

func (GormPosts) Create(tx *gorm.DB, post *models.Post) error {
	return tx.Create(post).Error
}

func (GormPosts) Owner(tx *gorm.DB, id uint) (uint, error) {
	var post models.Post
	err := tx.Select("user_id").
		Where("id = ? AND deleted = ? AND banned = ?", id, false, false).
		Take(&post).Error
	if err != nil {
		return 0, notFound(err)
	}
	return post.UserID, nil
}

func (GormPosts) UpdateOwned(tx *gorm.DB, c PostChanges) (int64, error) {
	res := tx.Model(&models.Post{}).
		Where("id = ? AND user_id = ? AND deleted = ?", c.ID, c.OwnerID, false).
		Updates(map[string]interface{}{
			"title":       c.Title,
			"contents":    c.Contents,
			"category_id": c.CategoryID,
			"modified":    true,
		})
	return res.RowsAffected, res.Error
}

func (GormPosts) SoftDeleteOwned(tx *gorm.DB, id, ownerID uint) (int64, error) {
	res := tx.Model(&models.Post{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, ownerID, false).
		Update("deleted", true)
	return res.RowsAffected, res.Error
}

func (GormPosts) Ban(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&models.Post{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("banned", true)
	return res.RowsAffected, res.Error
}

func (GormPosts) List(tx *gorm.DB, categoryID uint) ([]models.PostSummary, error) {
	q := visible(summaryQuery(tx, summaryFields))
	if categoryID != 0 {
		q = q.Where("p.category_id = ?", categoryID)
	}

	posts := []models.PostSummary{}
	err := q.Order("p.created_at DESC").Order("p.id DESC").Scan(&posts).Error
	return posts, err
}

func (GormPosts) Detail(tx *gorm.DB, id uint) (*models.PostDetail, error) {
	var details []models.PostDetail
	err := visible(summaryQuery(tx, summaryFields+", p.category_id, p.contents, p.modified")).
		Where("p.id = ?", id).
		Limit(1).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrNotFound
	}
	return &details[0], nil
}

func (GormPosts) Categories(tx *gorm.DB) ([]models.Category, error) {
	categories := []models.Category{}
	err := tx.Order("id ASC").Find(&categories).Error
	return categories, err
}
