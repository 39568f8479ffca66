package models

import "time"

// WatchlistItem tracks a media item on a user's watch/read list.
type WatchlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_media_watchlist"`
	MediaID   uint      `json:"media_id" gorm:"index;uniqueIndex:idx_user_media_watchlist"`
	Status    string    `json:"status" gorm:"size:20"` // e.g. "plan_to_watch", "watching", "completed"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateWatchlistRequest defines the request body for a watchlist add
type CreateWatchlistRequest struct {
	MediaID uint   `json:"media_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=plan_to_watch watching completed dropped"`
}
