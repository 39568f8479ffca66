package models

import "time"

// Rating is a user's score for a media item.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_media_rating"`
	MediaID   uint      `json:"media_id" gorm:"index;uniqueIndex:idx_user_media_rating"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRatingRequest defines the request body for rating a media item
type CreateRatingRequest struct {
	MediaID uint `json:"media_id" validate:"required"`
	Rating  int  `json:"rating" validate:"required,min=1,max=10"`
}
