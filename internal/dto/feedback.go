package dto

import (
	"time"

	"github.com/hnakamura/qa-board-api/internal/models"
)

// FeedbackDTO represents a newly created feedback row in API responses
type FeedbackDTO struct {
	ID         uint64              `json:"id"`
	Type       models.FeedbackType `json:"type"`
	QuestionID uint64              `json:"question_id"`
	SentTo     string              `json:"sent_to"`
	SentBy     string              `json:"sent_by"`
	Text       string              `json:"feedback_text"`
	ParentID   *uint64             `json:"parent_id,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// InboxItemDTO is the annotated inbox row: the feedback itself plus the
// body of the question it is about.
type InboxItemDTO struct {
	Type         models.FeedbackType `json:"type"`
	QuestionID   uint64              `json:"question_id"`
	FeedbackID   uint64              `json:"feedback_id"`
	QuestionText string              `json:"question_text"`
	FeedbackText string              `json:"feedback_text"`
	SentBy       string              `json:"sent_by"`
	Timestamp    time.Time           `json:"timestamp"`
}

// ToFeedbackDTO converts a Feedback model to FeedbackDTO
func ToFeedbackDTO(feedback models.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:         feedback.ID,
		Type:       feedback.Type(),
		QuestionID: feedback.QuestionID,
		SentTo:     feedback.SentTo,
		SentBy:     feedback.SentBy,
		Text:       feedback.FeedbackText,
		ParentID:   feedback.ParentID,
		Timestamp:  feedback.CreatedAt,
	}
}

// ToInboxItemDTO converts a Feedback model with its question preloaded
func ToInboxItemDTO(feedback models.Feedback) InboxItemDTO {
	return InboxItemDTO{
		Type:         feedback.Type(),
		QuestionID:   feedback.QuestionID,
		FeedbackID:   feedback.ID,
		QuestionText: feedback.Question.BodyText,
		FeedbackText: feedback.FeedbackText,
		SentBy:       feedback.SentBy,
		Timestamp:    feedback.CreatedAt,
	}
}

// ToInboxItemDTOs converts a slice of Feedback models
func ToInboxItemDTOs(rows []models.Feedback) []InboxItemDTO {
	dtos := make([]InboxItemDTO, len(rows))
	for i, f := range rows {
		dtos[i] = ToInboxItemDTO(f)
	}
	return dtos
}
