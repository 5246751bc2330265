package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrNotAnswerAuthor    = errors.New("only the answer author can perform this action")
	ErrAnswerBodyRequired = errors.New("answer body cannot be empty")
)

// AnswerService handles answer business logic. Posting an answer on
// someone else's question bumps that question's unread counter.
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
	}
}

// CreateAnswerInput represents input for posting an answer
type CreateAnswerInput struct {
	QuestionID uint64
	BodyText   string
	AnsweredBy string
}

// Create posts a new answer to a question.
func (s *AnswerService) Create(input CreateAnswerInput) (*models.Answer, error) {
	if strings.TrimSpace(input.BodyText) == "" {
		return nil, ErrAnswerBodyRequired
	}

	question, err := s.questionRepo.FindByID(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	answer := &models.Answer{
		QuestionID: question.ID,
		BodyText:   input.BodyText,
		AnsweredBy: input.AnsweredBy,
	}

	notifyOwner := input.AnsweredBy != question.PostedBy
	if err := s.answerRepo.Create(answer, notifyOwner); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}

	return answer, nil
}

// UpdateBody edits an answer's body. Only the author may edit.
func (s *AnswerService) UpdateBody(id uint64, actor, bodyText string) (*models.Answer, error) {
	if strings.TrimSpace(bodyText) == "" {
		return nil, ErrAnswerBodyRequired
	}

	answer, err := s.findAnswer(id)
	if err != nil {
		return nil, err
	}

	if answer.AnsweredBy != actor {
		return nil, ErrNotAnswerAuthor
	}

	answer.BodyText = bodyText
	if err := s.answerRepo.Update(answer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}

	return answer, nil
}

// Delete removes an answer. Only the author may delete.
func (s *AnswerService) Delete(id uint64, actor string) error {
	answer, err := s.findAnswer(id)
	if err != nil {
		return err
	}

	if answer.AnsweredBy != actor {
		return ErrNotAnswerAuthor
	}

	if err := s.answerRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	return nil
}

// ListAll returns every answer on the board.
func (s *AnswerService) ListAll() ([]models.Answer, error) {
	answers, err := s.answerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

func (s *AnswerService) findAnswer(id uint64) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}
	return answer, nil
}
