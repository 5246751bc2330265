package repository

import (
	"github.com/hnakamura/qa-board-api/internal/database"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/utils"
	"gorm.io/gorm"
)

// GormQuestionRepository is a GORM implementation of QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create persists a new question
func (r *GormQuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

// FindByID finds a question by ID
func (r *GormQuestionRepository) FindByID(id uint64) (*models.Question, error) {
	var question models.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Update replaces all mutable fields of a question by ID
func (r *GormQuestionRepository) Update(question *models.Question) error {
	res := r.db.Model(&models.Question{}).
		Where("id = ?", question.ID).
		Select("body_text", "posted_by", "resolved_status", "accepted_ans_id", "new_messages_count").
		Updates(question)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a question and all dependent rows in a transaction.
// Replies go before their parents to satisfy the self-referencing
// foreign key on the feedback table.
func (r *GormQuestionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ? AND parent_id IS NOT NULL", id).
			Delete(&models.Feedback{}).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// List retrieves questions, newest first, with pagination
func (r *GormQuestionRepository) List(params utils.PaginationParams) ([]models.Question, int64, error) {
	var questions []models.Question

	var total int64
	if err := r.db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// ListAll retrieves every question
func (r *GormQuestionRepository) ListAll() ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// IncrementNewMessages bumps the unread answer counter by one
func (r *GormQuestionRepository) IncrementNewMessages(id uint64) error {
	res := r.db.Model(&models.Question{}).
		Where("id = ?", id).
		Update("new_messages_count", gorm.Expr("new_messages_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetNewMessages sets the unread answer counter back to zero
func (r *GormQuestionRepository) ResetNewMessages(id uint64) error {
	return r.db.Model(&models.Question{}).
		Where("id = ?", id).
		Update("new_messages_count", 0).Error
}
