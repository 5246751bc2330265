package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/config"
	"github.com/hnakamura/qa-board-api/internal/constants"
	"github.com/hnakamura/qa-board-api/internal/database"
	"github.com/hnakamura/qa-board-api/internal/handlers"
	"github.com/hnakamura/qa-board-api/internal/middleware"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"github.com/hnakamura/qa-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	invitationService := services.NewInvitationService(invitationRepo)
	questionService := services.NewQuestionService(questionRepo, answerRepo)
	answerService := services.NewAnswerService(answerRepo, questionRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, questionRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService, answerService)
	answerHandler := handlers.NewAnswerHandler(answerService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminHandler := handlers.NewAdminHandler(authService, invitationService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Q&A board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Question routes (protected)
		questions := api.Group("/questions")
		questions.Use(middleware.RequireAuth())
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.GET("/search", questionHandler.SearchQuestions)
			questions.POST("", questionHandler.CreateQuestion)
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
			questions.POST("/:id/accept", questionHandler.AcceptAnswer)
			questions.GET("/:id/answers", questionHandler.ListAnswers)
			questions.POST("/:id/answers", answerHandler.CreateAnswer)
			questions.POST("/:id/feedback", feedbackHandler.SendFeedback)
		}

		// Answer routes (protected)
		answers := api.Group("/answers")
		answers.Use(middleware.RequireAuth())
		{
			answers.GET("", answerHandler.ListAllAnswers)
			answers.PUT("/:id", answerHandler.UpdateAnswer)
			answers.DELETE("/:id", answerHandler.DeleteAnswer)
		}

		// Feedback routes (protected)
		feedback := api.Group("/feedback")
		feedback.Use(middleware.RequireAuth())
		{
			feedback.GET("/inbox", feedbackHandler.Inbox)
			feedback.POST("/:id/replies", feedbackHandler.SendReply)
		}

		// Admin routes (protected, Admin role required)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:username", adminHandler.DeleteUser)
			admin.POST("/users/:username/one-time-code", adminHandler.SetOneTimeCode)
			admin.POST("/invitations", adminHandler.GenerateInvitationCode)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
