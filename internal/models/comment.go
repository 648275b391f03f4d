package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Contents  string    `gorm:"type:text;not null" json:"contents"`
	Deleted   bool      `gorm:"default:false;not null" json:"deleted"`
	Modified  bool      `gorm:"default:false;not null" json:"modified"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a comment joined with its author's nickname.
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Contents  string    `json:"contents"`
	Modified  bool      `json:"modified"`
	CreatedAt time.Time `json:"created_at"`
}
