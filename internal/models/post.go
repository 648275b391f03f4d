package models

import (
	"time"
)

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Category string `gorm:"size:20;uniqueIndex;not null" json:"category"`
}

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CategoryID uint      `gorm:"not null;index;default:1" json:"category_id"`
	Category   Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Title      string    `gorm:"not null" json:"title"`
	Contents   string    `gorm:"type:text" json:"contents"`
	Banned     bool      `gorm:"default:false;not null;index" json:"banned"`
	Deleted    bool      `gorm:"default:false;not null;index" json:"deleted"`
	Modified   bool      `gorm:"default:false;not null" json:"modified"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostSummary is a row of the board list.
type PostSummary struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	Category       string    `json:"category"`
	Nickname       string    `json:"nickname"`
	RecommendCount int64     `json:"recommend_count"`
}

// PostDetail is a single visible post as shown on its page.
type PostDetail struct {
	PostSummary
	CategoryID   uint   `json:"category_id"`
	Contents     string `json:"contents"`
	ContentsHTML string `gorm:"-" json:"contents_html"`
	Modified     bool   `json:"modified"`
}
