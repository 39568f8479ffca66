package models

import "time"

// Comment represents a comment on an activity
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ActivityID uint      `json:"activity_id" gorm:"index"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Text       string    `json:"comment_text" gorm:"column:comment_text;size:1000"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaxCommentLength is the upper bound on comment text after trimming.
const MaxCommentLength = 1000

// CreateCommentRequest defines the request body for commenting on an activity
type CreateCommentRequest struct {
	Text string `json:"comment_text" validate:"required,max=1000"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"comment_text" validate:"required,max=1000"`
}
