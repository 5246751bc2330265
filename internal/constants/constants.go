package constants

// Session
const (
	SessionCookieName  = "qa_board_session"
	ContextKeyUsername = "username"
)

// Invitation codes
const (
	InvitationCodeLength   = 4
	InvitationCodeAttempts = 5
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
