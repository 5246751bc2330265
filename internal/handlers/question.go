package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/dto"
	apierrors "github.com/hnakamura/qa-board-api/internal/errors"
	"github.com/hnakamura/qa-board-api/internal/middleware"
	"github.com/hnakamura/qa-board-api/internal/services"
	"github.com/hnakamura/qa-board-api/internal/utils"
)

// QuestionHandler coordinates question and resolution-workflow handlers.
type QuestionHandler struct {
	questionService *services.QuestionService
	answerService   *services.AnswerService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *services.QuestionService, answerService *services.AnswerService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		answerService:   answerService,
	}
}

// ListQuestions returns questions newest first with pagination.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	questions, total, err := h.questionService.List(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list questions")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionListResponse(questions, params, total))
}

// SearchQuestions returns questions whose body matches the keyword.
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		apierrors.BadRequest(c, "Missing search keyword")
		return
	}

	questions, err := h.questionService.Search(keyword)
	if err != nil {
		apierrors.InternalError(c, "Failed to search questions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": dto.ToQuestionDTOs(questions),
	})
}

// CreateQuestion posts a new question by the session user.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateQuestionRequest struct {
		BodyText string `json:"body_text" binding:"required"`
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.Create(services.CreateQuestionInput{
		BodyText: req.BodyText,
		PostedBy: username,
	})
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuestionDTO(*question))
}

// UpdateQuestion edits a question body; only the owner may edit.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateQuestionRequest struct {
		BodyText string `json:"body_text" binding:"required"`
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.UpdateBody(id, username, req.BodyText)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// DeleteQuestion removes a question and its answers and feedback; only
// the owner may delete.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(id, username); err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Question deleted",
	})
}

// AcceptAnswer binds a question to one of its answers and marks it
// resolved; only the owner may accept.
func (h *QuestionHandler) AcceptAnswer(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AcceptAnswerRequest struct {
		AnswerID uint64 `json:"answer_id" binding:"required"`
	}

	var req AcceptAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	question, err := h.questionService.AcceptAnswer(id, req.AnswerID, username)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// ListAnswers returns the answers for a question, optionally filtered by
// ?q=keyword. Viewing as the question owner clears the unread counter.
func (h *QuestionHandler) ListAnswers(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	answers, err := h.questionService.ListAnswers(id, username, c.Query("q"))
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	question, err := h.questionService.Get(id)
	if err != nil {
		respondQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question": dto.ToQuestionDTO(*question),
		"answers":  dto.ToAnswerDTOs(answers, question.AcceptedAnsID),
	})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBodyRequired),
		errors.Is(err, services.ErrAnswerMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotQuestionOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAnswerNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
