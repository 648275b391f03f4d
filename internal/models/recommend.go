package models

// Recommend is the single row kept per (post, user) pair once the user has toggled.
// Rows are never deleted; Active flips on every later toggle.
type Recommend struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_recommend_pair" json:"post_id"`
	Post   Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex:idx_recommend_pair;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Active bool `gorm:"not null;index" json:"active"`
}
