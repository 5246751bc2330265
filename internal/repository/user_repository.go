package repository

import (
	"github.com/hnakamura/qa-board-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithInvitation redeems an invitation code and inserts the user in
// one transaction, so a failed insert rolls the code back to unused.
// The conditional update is the whole redemption: two concurrent callers
// cannot both see RowsAffected == 1 for the same code.
func (r *GormUserRepository) CreateWithInvitation(user *models.User, code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InvitationCode{}).
			Where("code = ? AND is_used = ?", code, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var invitation models.InvitationCode
		if err := tx.First(&invitation, "code = ?", code).Error; err != nil {
			return err
		}
		user.Role = invitation.Role

		return tx.Create(user).Error
	})
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves every user
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by username
func (r *GormUserRepository) Delete(username string) error {
	res := r.db.Where("username = ?", username).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePassword overwrites a user's credential hash
func (r *GormUserRepository) UpdatePassword(username, passwordHash string) error {
	res := r.db.Model(&models.User{}).
		Where("username = ?", username).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of registered users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
