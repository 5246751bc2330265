package repository

import (
	"github.com/hnakamura/qa-board-api/internal/models"
	"gorm.io/gorm"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// Create persists a new answer. The unread counter bump for the owning
// question happens in the same transaction so a failed insert never
// leaves a phantom notification.
func (r *GormAnswerRepository) Create(answer *models.Answer, notifyOwner bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}

		if !notifyOwner {
			return nil
		}

		res := tx.Model(&models.Question{}).
			Where("id = ?", answer.QuestionID).
			Update("new_messages_count", gorm.Expr("new_messages_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// FindByID finds an answer by ID
func (r *GormAnswerRepository) FindByID(id uint64) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// Update replaces the mutable fields of an answer by ID
func (r *GormAnswerRepository) Update(answer *models.Answer) error {
	res := r.db.Model(&models.Answer{}).
		Where("id = ?", answer.ID).
		Select("body_text", "answered_by").
		Updates(answer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an answer by ID
func (r *GormAnswerRepository) Delete(id uint64) error {
	res := r.db.Delete(&models.Answer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForQuestion retrieves all answers belonging to a question
func (r *GormAnswerRepository) ListForQuestion(questionID uint64) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListAll retrieves every answer
func (r *GormAnswerRepository) ListAll() ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
