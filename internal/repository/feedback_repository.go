package repository

import (
	"github.com/hnakamura/qa-board-api/internal/models"
	"gorm.io/gorm"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// CreateTopLevel persists a new top-level feedback message
func (r *GormFeedbackRepository) CreateTopLevel(feedback *models.Feedback) error {
	feedback.ParentID = nil
	return r.db.Create(feedback).Error
}

// CreateReply persists a reply to the given parent. The question is
// derived from the parent row, never trusted from the caller, and the
// lookup and insert share one transaction.
func (r *GormFeedbackRepository) CreateReply(parentID uint64, feedback *models.Feedback) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var parent models.Feedback
		if err := tx.First(&parent, parentID).Error; err != nil {
			return err
		}

		feedback.QuestionID = parent.QuestionID
		feedback.ParentID = &parent.ID

		return tx.Create(feedback).Error
	})
}

// FindByID finds a feedback row by ID
func (r *GormFeedbackRepository) FindByID(id uint64) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListForRecipient retrieves all feedback addressed to a user, newest first
func (r *GormFeedbackRepository) ListForRecipient(username string) ([]models.Feedback, error) {
	var rows []models.Feedback
	if err := r.db.Preload("Question").
		Where("sent_to = ?", username).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
