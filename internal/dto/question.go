package dto

import (
	"time"

	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/utils"
)

// QuestionDTO represents a question in API responses
type QuestionDTO struct {
	ID               uint64    `json:"id"`
	BodyText         string    `json:"body_text"`
	PostedBy         string    `json:"posted_by"`
	ResolvedStatus   bool      `json:"resolved_status"`
	AcceptedAnsID    int64     `json:"accepted_ans_id"`
	NewMessagesCount int       `json:"new_messages_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// AnswerDTO represents an answer in API responses
type AnswerDTO struct {
	ID         uint64    `json:"id"`
	QuestionID uint64    `json:"question_id"`
	BodyText   string    `json:"body_text"`
	AnsweredBy string    `json:"answered_by"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionListResponse represents a paginated question listing
type QuestionListResponse struct {
	Questions  []QuestionDTO            `json:"questions"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToQuestionDTO converts a Question model to QuestionDTO
func ToQuestionDTO(question models.Question) QuestionDTO {
	return QuestionDTO{
		ID:               question.ID,
		BodyText:         question.BodyText,
		PostedBy:         question.PostedBy,
		ResolvedStatus:   question.ResolvedStatus,
		AcceptedAnsID:    question.AcceptedAnsID,
		NewMessagesCount: question.NewMessagesCount,
		CreatedAt:        question.CreatedAt,
	}
}

// ToQuestionDTOs converts a slice of Question models
func ToQuestionDTOs(questions []models.Question) []QuestionDTO {
	dtos := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = ToQuestionDTO(q)
	}
	return dtos
}

// ToAnswerDTO converts an Answer model to AnswerDTO. The accepted flag is
// derived against the owning question's accepted answer ID.
func ToAnswerDTO(answer models.Answer, acceptedAnsID int64) AnswerDTO {
	return AnswerDTO{
		ID:         answer.ID,
		QuestionID: answer.QuestionID,
		BodyText:   answer.BodyText,
		AnsweredBy: answer.AnsweredBy,
		Accepted:   int64(answer.ID) == acceptedAnsID,
		CreatedAt:  answer.CreatedAt,
	}
}

// ToAnswerDTOs converts a slice of Answer models
func ToAnswerDTOs(answers []models.Answer, acceptedAnsID int64) []AnswerDTO {
	dtos := make([]AnswerDTO, len(answers))
	for i, a := range answers {
		dtos[i] = ToAnswerDTO(a, acceptedAnsID)
	}
	return dtos
}

// ToQuestionListResponse converts a page of questions
func ToQuestionListResponse(questions []models.Question, params utils.PaginationParams, total int64) QuestionListResponse {
	return QuestionListResponse{
		Questions: ToQuestionDTOs(questions),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
