package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "ecoquest_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkGoogleID: akun email/password yang login via Google pertama kali
func LinkGoogleID(db *gorm.DB, userID uuid.UUID, googleID string) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_id = ? AND user_google_id IS NULL", userID).
		Update("user_google_id", googleID).Error
}

// UserAuthState dipakai middleware auth: status aktif + role terkini dari DB,
// jadi perubahan role/nonaktif berlaku tanpa menunggu token expired.
func UserAuthState(db *gorm.DB, userID uuid.UUID) (active bool, role string, err error) {
	var row struct {
		UserIsActive bool
		UserRole     string
	}
	if err := db.Model(&userModel.UserModel{}).
		Select("user_is_active", "user_role").
		Where("user_id = ?", userID).
		Take(&row).Error; err != nil {
		return false, "", err
	}
	return row.UserIsActive, row.UserRole, nil
}
