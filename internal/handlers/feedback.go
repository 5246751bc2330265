package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/dto"
	apierrors "github.com/hnakamura/qa-board-api/internal/errors"
	"github.com/hnakamura/qa-board-api/internal/middleware"
	"github.com/hnakamura/qa-board-api/internal/services"
)

// FeedbackHandler coordinates feedback-thread HTTP handlers.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// SendFeedback sends a top-level feedback message about a question.
func (h *FeedbackHandler) SendFeedback(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type SendFeedbackRequest struct {
		SentTo string `json:"sent_to" binding:"required"`
		Text   string `json:"feedback_text" binding:"required"`
	}

	var req SendFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	feedback, err := h.feedbackService.SendFeedback(services.SendFeedbackInput{
		QuestionID: questionID,
		SentTo:     req.SentTo,
		SentBy:     username,
		Text:       req.Text,
	})
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackDTO(*feedback))
}

// SendReply replies to a top-level feedback message.
func (h *FeedbackHandler) SendReply(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type SendReplyRequest struct {
		SentTo string `json:"sent_to" binding:"required"`
		Text   string `json:"feedback_text" binding:"required"`
	}

	var req SendReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.feedbackService.SendReply(services.SendReplyInput{
		ParentID: parentID,
		SentTo:   req.SentTo,
		SentBy:   username,
		Text:     req.Text,
	})
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackDTO(*reply))
}

// Inbox returns all feedback and replies addressed to the session user.
func (h *FeedbackHandler) Inbox(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	rows, err := h.feedbackService.Inbox(username)
	if err != nil {
		apierrors.InternalError(c, "Failed to load inbox")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": dto.ToInboxItemDTOs(rows),
	})
}

func respondFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFeedbackTextRequired),
		errors.Is(err, services.ErrSelfFeedback),
		errors.Is(err, services.ErrReplyToReply):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFeedbackNotFound),
		errors.Is(err, services.ErrQuestionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
