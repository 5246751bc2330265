package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken          = errors.New("username already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrRoleNotHeld            = errors.New("user does not hold the requested role")
	ErrPasswordRequired       = errors.New("password is required")
	ErrUserNotFound           = errors.New("user not found")
	ErrAdminNotDeletable      = errors.New("admin accounts cannot be deleted")
	ErrInvitationCodeRequired = errors.New("an invitation code is required to register")
	ErrFailedToHashPassword   = errors.New("failed to hash password")
)

// AuthService handles the user directory: registration, login, credential
// resets and deletion.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username       string
	Password       string
	InvitationCode string
	FirstName      string
	LastName       string
	Email          string
}

// Register creates a new user. The very first account becomes the Admin;
// everyone after that must redeem an invitation code, which fixes their
// role set for the lifetime of the account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
	}

	if count == 0 {
		user.Role = models.RoleAdmin
		err = s.userRepo.Create(user)
	} else {
		code := strings.TrimSpace(input.InvitationCode)
		if code == "" {
			return nil, ErrInvitationCodeRequired
		}
		// Consuming the code and inserting the user happen in one
		// transaction, so a failed insert leaves the code unused.
		err = s.userRepo.CreateWithInvitation(user, code)
	}
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrInvalidInvitationCode
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
	Role     string
}

// Login verifies credentials and that the requested role is one of the
// user's roles, then returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasRole(input.Role) {
		return nil, ErrRoleNotHeld
	}

	return user, nil
}

// GetUser retrieves a user by username.
func (s *AuthService) GetUser(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. Accounts whose role set is exactly "admin"
// are never deletable. Authored questions, answers and feedback stay in
// place under the posting name.
func (s *AuthService) DeleteUser(username string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsAdminOnly() {
		return ErrAdminNotDeletable
	}

	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// UpdatePassword replaces a user's credential.
func (s *AuthService) UpdatePassword(username, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}
	return s.setCredential(username, newPassword)
}

// SetOneTimeCode overwrites a user's credential with a one-time code for
// the reset flow. The code replaces the password entirely until the user
// logs in with it and picks a new one.
func (s *AuthService) SetOneTimeCode(username, code string) error {
	return s.setCredential(username, code)
}

// IsOneTimeCodeValid checks a presented one-time code against the stored
// credential.
func (s *AuthService) IsOneTimeCodeValid(username, code string) (bool, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(code)); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *AuthService) setCredential(username, secret string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.userRepo.UpdatePassword(username, string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update credential: %w", err)
	}

	return nil
}
