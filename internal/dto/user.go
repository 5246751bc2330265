package dto

import (
	"github.com/hnakamura/qa-board-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64   `json:"id"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
}

// InvitationCodeDTO represents an issued invitation code in API responses
type InvitationCodeDTO struct {
	Code string `json:"code"`
	Role string `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Roles:     user.Roles(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// ToInvitationCodeDTO converts an InvitationCode model
func ToInvitationCodeDTO(code models.InvitationCode) InvitationCodeDTO {
	return InvitationCodeDTO{
		Code: code.Code,
		Role: code.Role,
	}
}
