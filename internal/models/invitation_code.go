package models

import "time"

// InvitationCode is a single-use token that grants a role at registration.
type InvitationCode struct {
	Code      string    `gorm:"type:varchar(10);primaryKey" json:"code"`
	Role      string    `gorm:"type:varchar(255);not null" json:"role"`
	IsUsed    bool      `gorm:"not null;default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

func (InvitationCode) TableName() string {
	return "invitation_codes"
}
