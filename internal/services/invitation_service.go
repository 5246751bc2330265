package services

import (
	"errors"
	"fmt"

	"github.com/hnakamura/qa-board-api/internal/constants"
	"github.com/hnakamura/qa-board-api/internal/models"
	"github.com/hnakamura/qa-board-api/internal/repository"
	"github.com/hnakamura/qa-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidInvitationRole = errors.New("unknown role for invitation code")
	ErrInvalidInvitationCode = errors.New("invitation code is invalid or already used")
	ErrCodeGenerationFailed  = errors.New("failed to generate invitation code")
)

// InvitationService issues single-use invitation codes. Redemption
// happens during registration, tied to the user insert.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(invitationRepo repository.InvitationRepository) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
	}
}

// Generate issues a new unused code bound to the given role. Codes are
// short, so a duplicate key from the storage layer just means try again.
func (s *InvitationService) Generate(role string) (*models.InvitationCode, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidInvitationRole
	}

	for attempt := 0; attempt < constants.InvitationCodeAttempts; attempt++ {
		code, err := utils.GenerateInvitationCode()
		if err != nil {
			return nil, ErrCodeGenerationFailed
		}

		invitation := &models.InvitationCode{
			Code: code,
			Role: role,
		}

		err = s.invitationRepo.Create(invitation)
		if err == nil {
			return invitation, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to store invitation code: %w", err)
		}
	}

	return nil, ErrCodeGenerationFailed
}

