package models

import "time"

// FeedbackType tags a feedback row as a top-level message or a reply.
type FeedbackType string

const (
	FeedbackTypeTopLevel FeedbackType = "Feedback"
	FeedbackTypeReply    FeedbackType = "Reply"
)

// Feedback is a message about a question sent from one user to another.
// A nil ParentID marks a top-level message; replies carry their parent's ID
// and are only ever one level deep.
type Feedback struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	QuestionID   uint64    `gorm:"not null;index" json:"question_id"`
	SentTo       string    `gorm:"type:varchar(255);not null;index" json:"sent_to"`
	SentBy       string    `gorm:"type:varchar(255);not null" json:"sent_by"`
	FeedbackText string    `gorm:"type:text;not null" json:"feedback_text"`
	ParentID     *uint64   `gorm:"index" json:"parent_id"`
	CreatedAt    time.Time `json:"timestamp"`

	// Relations
	Question Question   `gorm:"foreignKey:QuestionID" json:"-"`
	Replies  []Feedback `gorm:"foreignKey:ParentID" json:"-"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// Type derives the tagged variant from the parent reference.
func (f *Feedback) Type() FeedbackType {
	if f.ParentID == nil {
		return FeedbackTypeTopLevel
	}
	return FeedbackTypeReply
}
