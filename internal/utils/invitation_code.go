package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/hnakamura/qa-board-api/internal/constants"
)

// GenerateInvitationCode generates a short random invitation code.
// Codes are only 4 hex characters, so uniqueness is left to the storage
// constraint and callers retry on collision.
func GenerateInvitationCode() (string, error) {
	bytes := make([]byte, constants.InvitationCodeLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
