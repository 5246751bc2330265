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
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrSelfFeedback         = errors.New("cannot send feedback to yourself")
	ErrReplyToReply         = errors.New("only top-level feedback can be replied to")
	ErrFeedbackTextRequired = errors.New("feedback text cannot be empty")
)

// FeedbackService handles two-level feedback threads: a top-level message
// about a question and its direct replies.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	questionRepo repository.QuestionRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, questionRepo repository.QuestionRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		questionRepo: questionRepo,
	}
}

// SendFeedbackInput represents input for sending top-level feedback
type SendFeedbackInput struct {
	QuestionID uint64
	SentTo     string
	SentBy     string
	Text       string
}

// SendFeedback sends a top-level feedback message about a question.
func (s *FeedbackService) SendFeedback(input SendFeedbackInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrFeedbackTextRequired
	}
	if input.SentTo == input.SentBy {
		return nil, ErrSelfFeedback
	}

	if _, err := s.questionRepo.FindByID(input.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	feedback := &models.Feedback{
		QuestionID:   input.QuestionID,
		SentTo:       input.SentTo,
		SentBy:       input.SentBy,
		FeedbackText: input.Text,
	}

	if err := s.feedbackRepo.CreateTopLevel(feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

// SendReplyInput represents input for replying to a feedback message
type SendReplyInput struct {
	ParentID uint64
	SentTo   string
	SentBy   string
	Text     string
}

// SendReply replies to a top-level feedback message. The reply inherits
// the parent's question; replies to replies are rejected.
func (s *FeedbackService) SendReply(input SendReplyInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrFeedbackTextRequired
	}
	if input.SentTo == input.SentBy {
		return nil, ErrSelfFeedback
	}

	parent, err := s.feedbackRepo.FindByID(input.ParentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to find parent feedback: %w", err)
	}

	if parent.ParentID != nil {
		return nil, ErrReplyToReply
	}

	reply := &models.Feedback{
		SentTo:       input.SentTo,
		SentBy:       input.SentBy,
		FeedbackText: input.Text,
	}

	if err := s.feedbackRepo.CreateReply(parent.ID, reply); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	return reply, nil
}

// Inbox returns all feedback and replies addressed to a user, newest
// first, with the owning questions preloaded.
func (s *FeedbackService) Inbox(username string) ([]models.Feedback, error) {
	rows, err := s.feedbackRepo.ListForRecipient(username)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return rows, nil
}
