package models

import "time"

// Review is a user's written review of a media item.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"`
	MediaID    uint      `json:"media_id" gorm:"index"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	IsSpoiler  bool      `json:"is_spoiler"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateReviewRequest defines the request body for reviewing a media item
type CreateReviewRequest struct {
	MediaID    uint   `json:"media_id" validate:"required"`
	ReviewText string `json:"review_text" validate:"required,min=1"`
	IsSpoiler  bool   `json:"is_spoiler"`
}
