package store

import (
	"errors"
	"time"

	"boardhub/internal/models"

	"gorm.io/gorm"
)

type Users interface {
	Create(tx *gorm.DB, u *models.User) error
	FindByLoginID(tx *gorm.DB, loginID string) (*models.User, error)
	FindByEmail(tx *gorm.DB, email string) (*models.User, error)
	// Exists reports whether some user has value in column (login_id, nickname or email).
	Exists(tx *gorm.DB, column, value string) (bool, error)

	FindEmailCode(tx *gorm.DB, email string) (*models.EmailCode, error)
	SaveEmailCode(tx *gorm.DB, email, code string, expiresAt time.Time) error
	MarkEmailChecked(tx *gorm.DB, email string) error
	CountFailedCheck(tx *gorm.DB, email string) error
}

type GormUsers struct{}

var userColumns = map[string]bool{"login_id": true, "nickname": true, "email": true}

func (GormUsers) Create(tx *gorm.DB, u *models.User) error {
	return tx.Create(u).Error
}

func (GormUsers) FindByLoginID(tx *gorm.DB, loginID string) (*models.User, error) {
	var u models.User
	if err := tx.Where("login_id = ?", loginID).Take(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (GormUsers) FindByEmail(tx *gorm.DB, email string) (*models.User, error) {
	var u models.User
	if err := tx.Where("email = ?", email).Take(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (GormUsers) Exists(tx *gorm.DB, column, value string) (bool, error) {
	if !userColumns[column] {
		return false, errors.New("store: unsupported user column " + column)
	}
	var count int64
	err := tx.Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}

func (GormUsers) FindEmailCode(tx *gorm.DB, email string) (*models.EmailCode, error) {
	var ec models.EmailCode
	if err := tx.Where("email = ?", email).Take(&ec).Error; err != nil {
		return nil, notFound(err)
	}
	return &ec, nil
}

// SaveEmailCode replaces the address's code and resets its checked flag and attempts.
func (GormUsers) SaveEmailCode(tx *gorm.DB, email, code string, expiresAt time.Time) error {
	res := tx.Model(&models.EmailCode{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"code":       code,
			"checked":    false,
			"attempts":   0,
			"expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Create(&models.EmailCode{Email: email, Code: code, ExpiresAt: expiresAt}).Error
}

func (GormUsers) MarkEmailChecked(tx *gorm.DB, email string) error {
	return tx.Model(&models.EmailCode{}).Where("email = ?", email).Update("checked", true).Error
}

func (GormUsers) CountFailedCheck(tx *gorm.DB, email string) error {
	return tx.Model(&models.EmailCode{}).
		Where("email = ?", email).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}
