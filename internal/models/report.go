package models

import (
	"time"
)

type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // Reporter
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reason    string    `gorm:"size:1000;not null" json:"reason"`
	Checked   bool      `gorm:"default:false;not null" json:"checked"`
	Deleted   bool      `gorm:"default:false;not null;index" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}
