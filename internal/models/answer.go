package models

import "time"

type Answer struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	QuestionID uint64    `gorm:"not null;index" json:"question_id"`
	BodyText   string    `gorm:"type:text;not null" json:"body_text"`
	AnsweredBy string    `gorm:"type:varchar(255);not null" json:"answered_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
}
