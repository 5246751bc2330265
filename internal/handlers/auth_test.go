package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/constants"
	"github.com/hnakamura/qa-board-api/internal/database"
	"github.com/hnakamura/qa-board-api/internal/dto"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"github.com/hnakamura/qa-board-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db                *gorm.DB
	handler           *AuthHandler
	authService       *services.AuthService
	invitationService *services.InvitationService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.InvitationCode{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	authService := services.NewAuthService(userRepo)
	invitationService := services.NewInvitationService(invitationRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:                db,
		handler:           handler,
		authService:       authService,
		invitationService: invitationService,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup_FirstUserBecomesAdmin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "firstuser",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "firstuser", response.Username)
	require.Equal(t, []string{models.RoleAdmin}, response.Roles)
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "firstuser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	code, err := env.invitationService.Generate(models.RoleStudent)
	require.NoError(t, err)

	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username":        "firstuser",
		"password":        "anothersecret",
		"invitation_code": code.Code,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_RequiresInvitationCode(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "firstuser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// No invitation code on a non-empty board
	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "seconduser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_InvitationCodeGrantsRole(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "firstuser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	code, err := env.invitationService.Generate(models.RoleReviewer)
	require.NoError(t, err)

	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username":        "reviewer1",
		"password":        "supersecret",
		"invitation_code": code.Code,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, []string{models.RoleReviewer}, response.Roles)

	// The code is consumed: a second signup with it fails
	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username":        "reviewer2",
		"password":        "supersecret",
		"invitation_code": code.Code,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_NoPasswordPolicy(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "firstuser",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	code, err := env.invitationService.Generate(models.RoleStudent)
	require.NoError(t, err)

	// Short passwords are accepted; there is no length policy
	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username":        "john",
		"password":        "pw1",
		"invitation_code": code.Code,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "john",
		"password": "pw1",
		"role":     "Student",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_RoleMembership(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	// Seed a user with a known hash through the service
	_, err := env.authService.Register(services.RegisterInput{
		Username: "john",
		Password: "studentpass",
	})
	require.NoError(t, err)

	// First user registers as Admin; give john a student/staff role set
	// directly for the role-membership checks
	err = env.db.Model(&models.User{}).
		Where("username = ?", "john").
		Update("role", "Student,Staff").Error
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "john",
		"password": "studentpass",
		"role":     "Student",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "john", response.Username)
	require.Equal(t, []string{"Student", "Staff"}, response.Roles)

	// Held second role works too
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "john",
		"password": "studentpass",
		"role":     "Staff",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Role the user does not hold is rejected
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "john",
		"password": "studentpass",
		"role":     "Instructor",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password is rejected
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "john",
		"password": "wrongpass",
		"role":     "Student",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthService_OneTimeCodeReset(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "resetme",
		Password: "originalpass",
	})
	require.NoError(t, err)

	require.NoError(t, env.authService.SetOneTimeCode("resetme", "otp-1234"))

	ok, err := env.authService.IsOneTimeCodeValid("resetme", "otp-1234")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = env.authService.IsOneTimeCodeValid("resetme", "otp-9999")
	require.NoError(t, err)
	require.False(t, ok)

	// The one-time code replaced the credential entirely
	_, err = env.authService.Login(services.LoginInput{
		Username: "resetme",
		Password: "originalpass",
		Role:     models.RoleAdmin,
	})
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "resetme",
		Password: "originalpass",
	})
	require.NoError(t, err)
	require.NoError(t, env.authService.SetOneTimeCode("resetme", "otp-1234"))

	// Logged in with the one-time code, the user picks a real password
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(map[string]string{"password": "newpass"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUsername, "resetme")

	env.handler.ChangePassword(c)
	require.Equal(t, http.StatusOK, w.Code)

	// The new password works and the one-time code no longer does
	_, err = env.authService.Login(services.LoginInput{
		Username: "resetme",
		Password: "newpass",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = env.authService.Login(services.LoginInput{
		Username: "resetme",
		Password: "otp-1234",
		Role:     models.RoleAdmin,
	})
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_DeleteUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	// First registered account is the Admin
	_, err := env.authService.Register(services.RegisterInput{
		Username: "rootadmin",
		Password: "supersecret",
	})
	require.NoError(t, err)

	code, err := env.invitationService.Generate(models.RoleStudent)
	require.NoError(t, err)
	_, err = env.authService.Register(services.RegisterInput{
		Username:       "student1",
		Password:       "supersecret",
		InvitationCode: code.Code,
	})
	require.NoError(t, err)

	require.ErrorIs(t, env.authService.DeleteUser("rootadmin"), services.ErrAdminNotDeletable)
	require.NoError(t, env.authService.DeleteUser("student1"))
	require.ErrorIs(t, env.authService.DeleteUser("student1"), services.ErrUserNotFound)
}
