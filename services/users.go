// services/users.go
package services

import (
	"errors"

	"litter-cleanup-system/apperrors"
	"litter-cleanup-system/models"

	"gorm.io/gorm"
)

// UserDirectory answers identity questions against the local
// cleanup_users snapshot maintained by the sync worker. It gates report
// creation and supplies display data for leaderboards and the feed.
type UserDirectory struct {
	DB *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{DB: db}
}

func (d *UserDirectory) Get(userID string) (*models.CleanupUser, error) {
	var user models.CleanupUser
	if err := d.DB.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (d *UserDirectory) Exists(userID string) (bool, error) {
	var count int64
	err := d.DB.Model(&models.CleanupUser{}).
		Where("external_user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

func (d *UserDirectory) IsEmailVerified(userID string) (bool, error) {
	user, err := d.Get(userID)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}
