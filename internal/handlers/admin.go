package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/dto"
	apierrors "github.com/hnakamura/qa-board-api/internal/errors"
	"github.com/hnakamura/qa-board-api/internal/services"
)

// AdminHandler coordinates the admin surface: the user table, invitation
// codes and one-time-code password resets.
type AdminHandler struct {
	authService       *services.AuthService
	invitationService *services.InvitationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, invitationService *services.InvitationService) *AdminHandler {
	return &AdminHandler{
		authService:       authService,
		invitationService: invitationService,
	}
}

// ListUsers returns every registered user without credentials.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// DeleteUser removes a user. Admin accounts are never deletable.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.authService.DeleteUser(username); err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotDeletable):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

// GenerateInvitationCode issues a single-use code bound to a role.
func (h *AdminHandler) GenerateInvitationCode(c *gin.Context) {
	type GenerateCodeRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	code, err := h.invitationService.Generate(req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInvitationRole):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to generate invitation code")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationCodeDTO(*code))
}

// SetOneTimeCode overwrites a user's credential with a one-time code for
// the password reset flow.
func (h *AdminHandler) SetOneTimeCode(c *gin.Context) {
	username := c.Param("username")

	type SetOneTimeCodeRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req SetOneTimeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.SetOneTimeCode(username, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to set one-time code")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "One-time code set",
	})
}
