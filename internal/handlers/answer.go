package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/dto"
	apierrors "github.com/hnakamura/qa-board-api/internal/errors"
	"github.com/hnakamura/qa-board-api/internal/middleware"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/services"
)

// AnswerHandler coordinates answer-related HTTP handlers.
type AnswerHandler struct {
	answerService *services.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

// CreateAnswer posts a new answer to a question by the session user.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateAnswerRequest struct {
		BodyText string `json:"body_text" binding:"required"`
	}

	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answer, err := h.answerService.Create(services.CreateAnswerInput{
		QuestionID: questionID,
		BodyText:   req.BodyText,
		AnsweredBy: username,
	})
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnswerDTO(*answer, models.NoAcceptedAnswer))
}

// UpdateAnswer edits an answer body; only the author may edit.
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateAnswerRequest struct {
		BodyText string `json:"body_text" binding:"required"`
	}

	var req UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answer, err := h.answerService.UpdateBody(id, username, req.BodyText)
	if err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer, models.NoAcceptedAnswer))
}

// DeleteAnswer removes an answer; only the author may delete.
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.answerService.Delete(id, username); err != nil {
		respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Answer deleted",
	})
}

// ListAllAnswers returns every answer on the board.
func (h *AnswerHandler) ListAllAnswers(c *gin.Context) {
	answers, err := h.answerService.ListAll()
	if err != nil {
		apierrors.InternalError(c, "Failed to list answers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answers": dto.ToAnswerDTOs(answers, models.NoAcceptedAnswer),
	})
}

func respondAnswerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAnswerBodyRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotAnswerAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrQuestionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
