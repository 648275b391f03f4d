package models

import (
	"time"
)

// Login types
const (
	LoginTypeLocal  = 1
	LoginTypeGoogle = 2
)

// User grades
const (
	GradeMember    = 1
	GradeModerator = 9
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LoginID   string    `gorm:"uniqueIndex;size:100;not null" json:"login_id"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	Name      string    `gorm:"size:50" json:"name"`
	Birth     string    `gorm:"size:10" json:"birth"`
	Nickname  string    `gorm:"uniqueIndex;size:30;not null" json:"nickname"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	LoginType int       `gorm:"default:1;not null" json:"login_type"`
	Grade     int       `gorm:"default:1;not null" json:"grade"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailCode holds the latest verification code sent to an address.
type EmailCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"size:8;not null" json:"-"`
	Checked   bool      `gorm:"default:false;not null" json:"checked"`
	Attempts  int       `gorm:"default:0;not null" json:"-"` // failed checks since the code was sent
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
