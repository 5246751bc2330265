package repository

import (
	"github.com/hnakamura/qa-board-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create persists a new unused invitation code
func (r *GormInvitationRepository) Create(code *models.InvitationCode) error {
	return r.db.Create(code).Error
}
