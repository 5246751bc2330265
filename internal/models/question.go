package models

import "time"

// NoAcceptedAnswer is the sentinel stored while no answer has been accepted.
const NoAcceptedAnswer int64 = -1

type Question struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	BodyText         string    `gorm:"type:text;not null" json:"body_text"`
	PostedBy         string    `gorm:"type:varchar(255);not null;index" json:"posted_by"`
	ResolvedStatus   bool      `gorm:"not null;default:false" json:"resolved_status"`
	AcceptedAnsID    int64     `gorm:"not null;default:-1" json:"accepted_ans_id"`
	NewMessagesCount int       `gorm:"not null;default:0" json:"new_messages_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Answers  []Answer   `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	Feedback []Feedback `gorm:"foreignKey:QuestionID" json:"-"`
}
