package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/constants"
	"github.com/hnakamura/qa-board-api/internal/database"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"github.com/hnakamura/qa-board-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type feedbackTestEnv struct {
	db      *gorm.DB
	handler *FeedbackHandler
}

func setupFeedbackTestEnv(t *testing.T) *feedbackTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Question{}, &models.Answer{}, &models.Feedback{})
	require.NoError(t, err)

	database.SetDB(db)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	feedbackRepo := repository.NewFeedbackRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	feedbackService := services.NewFeedbackService(feedbackRepo, questionRepo)

	gin.SetMode(gin.TestMode)

	return &feedbackTestEnv{
		db:      db,
		handler: NewFeedbackHandler(feedbackService),
	}
}

func (env *feedbackTestEnv) seedQuestion(t *testing.T, body, postedBy string) *models.Question {
	t.Helper()
	question := &models.Question{
		BodyText:      body,
		PostedBy:      postedBy,
		AcceptedAnsID: models.NoAcceptedAnswer,
	}
	require.NoError(t, env.db.Create(question).Error)
	return question
}

func feedbackContext(method, url string, payload interface{}, username string, id uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUsername, username)
	if id != 0 {
		c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
	}

	return c, w
}

func TestFeedbackThread_SendReplyAndInbox(t *testing.T) {
	env := setupFeedbackTestEnv(t)
	question := env.seedQuestion(t, "Why are cars slow?", "emma")

	// emma sends feedback about her question's answerer
	c, w := feedbackContext("POST", "/api/questions/1/feedback", map[string]string{
		"sent_to":       "amy",
		"feedback_text": "great explanation",
	}, "emma", question.ID)
	env.handler.SendFeedback(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, string(models.FeedbackTypeTopLevel), created["type"])
	parentID := uint64(created["id"].(float64))

	// amy replies; the reply inherits the parent's question
	c, w = feedbackContext("POST", "/api/feedback/1/replies", map[string]string{
		"sent_to":       "emma",
		"feedback_text": "glad it helped",
	}, "amy", parentID)
	env.handler.SendReply(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var reply map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.Equal(t, string(models.FeedbackTypeReply), reply["type"])
	require.Equal(t, float64(question.ID), reply["question_id"])

	// emma's inbox holds the reply annotated with the question body
	c, w = feedbackContext("GET", "/api/feedback/inbox", nil, "emma", 0)
	env.handler.Inbox(c)
	require.Equal(t, http.StatusOK, w.Code)

	var inbox map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox["feedback"], 1)
	row := inbox["feedback"][0]
	require.Equal(t, string(models.FeedbackTypeReply), row["type"])
	require.Equal(t, "Why are cars slow?", row["question_text"])
	require.Equal(t, "glad it helped", row["feedback_text"])
	require.Equal(t, "amy", row["sent_by"])
}

func TestSendFeedback_ToSelfRejected(t *testing.T) {
	env := setupFeedbackTestEnv(t)
	question := env.seedQuestion(t, "a question", "emma")

	c, w := feedbackContext("POST", "/api/questions/1/feedback", map[string]string{
		"sent_to":       "emma",
		"feedback_text": "note to self",
	}, "emma", question.ID)
	env.handler.SendFeedback(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendFeedback_QuestionNotFound(t *testing.T) {
	env := setupFeedbackTestEnv(t)

	c, w := feedbackContext("POST", "/api/questions/42/feedback", map[string]string{
		"sent_to":       "amy",
		"feedback_text": "about nothing",
	}, "emma", 42)
	env.handler.SendFeedback(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendReply_MissingParent(t *testing.T) {
	env := setupFeedbackTestEnv(t)

	c, w := feedbackContext("POST", "/api/feedback/42/replies", map[string]string{
		"sent_to":       "emma",
		"feedback_text": "reply to nothing",
	}, "amy", 42)
	env.handler.SendReply(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendReply_ToReplyRejected(t *testing.T) {
	env := setupFeedbackTestEnv(t)
	question := env.seedQuestion(t, "a question", "emma")

	feedback := &models.Feedback{
		QuestionID:   question.ID,
		SentTo:       "amy",
		SentBy:       "emma",
		FeedbackText: "top level",
	}
	require.NoError(t, env.db.Create(feedback).Error)
	reply := &models.Feedback{
		QuestionID:   question.ID,
		SentTo:       "emma",
		SentBy:       "amy",
		FeedbackText: "first reply",
		ParentID:     &feedback.ID,
	}
	require.NoError(t, env.db.Create(reply).Error)

	c, w := feedbackContext("POST", "/api/feedback/2/replies", map[string]string{
		"sent_to":       "amy",
		"feedback_text": "reply to the reply",
	}, "emma", reply.ID)
	env.handler.SendReply(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
