package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"github.com/hnakamura/qa-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotQuestionOwner = errors.New("only the question owner can perform this action")
	ErrBodyRequired     = errors.New("question body cannot be empty")
	ErrAnswerMismatch   = errors.New("answer does not belong to this question")
)

// QuestionService handles question business logic together with the
// resolution workflow: accepting answers and maintaining the unread
// answer counter.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// CreateQuestionInput represents input for posting a question
type CreateQuestionInput struct {
	BodyText string
	PostedBy string
}

// Create posts a new question. The storage engine assigns the ID.
func (s *QuestionService) Create(input CreateQuestionInput) (*models.Question, error) {
	if strings.TrimSpace(input.BodyText) == "" {
		return nil, ErrBodyRequired
	}

	question := &models.Question{
		BodyText:      input.BodyText,
		PostedBy:      input.PostedBy,
		AcceptedAnsID: models.NoAcceptedAnswer,
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// UpdateBody edits a question's body. Only the owner may edit.
func (s *QuestionService) UpdateBody(id uint64, actor, bodyText string) (*models.Question, error) {
	if strings.TrimSpace(bodyText) == "" {
		return nil, ErrBodyRequired
	}

	question, err := s.findQuestion(id)
	if err != nil {
		return nil, err
	}

	if question.PostedBy != actor {
		return nil, ErrNotQuestionOwner
	}

	question.BodyText = bodyText
	if err := s.questionRepo.Update(question); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

// Delete removes a question and, cascading, its answers and feedback.
// Only the owner may delete.
func (s *QuestionService) Delete(id uint64, actor string) error {
	question, err := s.findQuestion(id)
	if err != nil {
		return err
	}

	if question.PostedBy != actor {
		return ErrNotQuestionOwner
	}

	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}

	return nil
}

// Get retrieves a single question.
func (s *QuestionService) Get(id uint64) (*models.Question, error) {
	return s.findQuestion(id)
}

// List returns questions newest first with pagination.
func (s *QuestionService) List(params utils.PaginationParams) ([]models.Question, int64, error) {
	questions, total, err := s.questionRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

// Search returns questions whose body contains the keyword, matched
// case-insensitively over the full listing.
func (s *QuestionService) Search(keyword string) ([]models.Question, error) {
	questions, err := s.questionRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	needle := strings.ToLower(keyword)
	matched := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.BodyText), needle) {
			matched = append(matched, q)
		}
	}

	return matched, nil
}

// AcceptAnswer marks a question resolved by binding it to one of its
// answers. Only the owner may accept, and the transition is one-way: a
// resolved question never becomes unresolved, though the owner may
// re-accept a different answer.
func (s *QuestionService) AcceptAnswer(questionID, answerID uint64, actor string) (*models.Question, error) {
	question, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if question.PostedBy != actor {
		return nil, ErrNotQuestionOwner
	}

	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to find answer: %w", err)
	}

	if answer.QuestionID != question.ID {
		return nil, ErrAnswerMismatch
	}

	question.AcceptedAnsID = int64(answer.ID)
	question.ResolvedStatus = true

	if err := s.questionRepo.Update(question); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

// ListAnswers returns the answers for a question, optionally filtered by a
// case-insensitive keyword. When the viewer is the question's owner the
// unread answer counter resets to zero.
func (s *QuestionService) ListAnswers(questionID uint64, viewer, keyword string) ([]models.Answer, error) {
	question, err := s.findQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if viewer == question.PostedBy && question.NewMessagesCount > 0 {
		if err := s.questionRepo.ResetNewMessages(questionID); err != nil {
			return nil, fmt.Errorf("failed to reset unread counter: %w", err)
		}
	}

	answers, err := s.answerRepo.ListForQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	if keyword == "" {
		return answers, nil
	}

	needle := strings.ToLower(keyword)
	matched := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		if strings.Contains(strings.ToLower(a.BodyText), needle) {
			matched = append(matched, a)
		}
	}

	return matched, nil
}

func (s *QuestionService) findQuestion(id uint64) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return question, nil
}
