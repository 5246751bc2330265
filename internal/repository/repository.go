package repository

import (
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/utils"
)

// QuestionRepository defines the interface for question data access.
// The repositories have no notion of identity; ownership policy lives in the
// service layer.
type QuestionRepository interface {
	// Create persists a new question; the storage engine assigns the ID
	Create(question *models.Question) error

	// FindByID finds a question by ID
	FindByID(id uint64) (*models.Question, error)

	// Update replaces all mutable fields of a question by ID.
	// Returns gorm.ErrRecordNotFound when the ID does not exist.
	Update(question *models.Question) error

	// Delete removes a question together with its answers and feedback
	// in a single transaction
	Delete(id uint64) error

	// List retrieves questions, newest first, with pagination
	List(params utils.PaginationParams) ([]models.Question, int64, error)

	// ListAll retrieves every question without pagination
	ListAll() ([]models.Question, error)

	// IncrementNewMessages bumps the unread answer counter by one
	IncrementNewMessages(id uint64) error

	// ResetNewMessages sets the unread answer counter back to zero
	ResetNewMessages(id uint64) error
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// Create persists a new answer. When notifyOwner is set the owning
	// question's unread counter is bumped in the same transaction.
	Create(answer *models.Answer, notifyOwner bool) error

	// FindByID finds an answer by ID
	FindByID(id uint64) (*models.Answer, error)

	// Update replaces the mutable fields of an answer by ID
	Update(answer *models.Answer) error

	// Delete removes an answer by ID
	Delete(id uint64) error

	// ListForQuestion retrieves all answers belonging to a question
	ListForQuestion(questionID uint64) ([]models.Answer, error)

	// ListAll retrieves every answer
	ListAll() ([]models.Answer, error)
}

// FeedbackRepository defines the interface for feedback thread data access
type FeedbackRepository interface {
	// CreateTopLevel persists a new top-level feedback message
	CreateTopLevel(feedback *models.Feedback) error

	// CreateReply persists a reply to the given parent, deriving the
	// question from the parent row inside one transaction
	CreateReply(parentID uint64, feedback *models.Feedback) error

	// FindByID finds a feedback row by ID
	FindByID(id uint64) (*models.Feedback, error)

	// ListForRecipient retrieves all feedback addressed to a user, newest
	// first, with the owning question preloaded
	ListForRecipient(username string) ([]models.Feedback, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithInvitation redeems the invitation code and inserts the
	// user in one transaction. The user's role is taken from the code.
	// Returns gorm.ErrRecordNotFound when the code does not exist or was
	// already redeemed; a failed insert leaves the code unused.
	CreateWithInvitation(user *models.User, code string) error

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves every user
	List() ([]models.User, error)

	// Delete removes a user by username.
	// Returns gorm.ErrRecordNotFound when no such user exists.
	Delete(username string) error

	// UpdatePassword overwrites a user's credential hash
	UpdatePassword(username, passwordHash string) error

	// Count returns the number of registered users
	Count() (int64, error)
}

// InvitationRepository defines the interface for invitation code data access
type InvitationRepository interface {
	// Create persists a new unused invitation code
	Create(code *models.InvitationCode) error
}
