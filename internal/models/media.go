package models

import "time"

// MediaItem is a catalog entry (movie, show, book) activities point at.
// Catalog ingestion is external; this service only reads it.
type MediaItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExternalID  string    `json:"external_id" gorm:"index"`
	Title       string    `json:"title"`
	PosterURL   string    `json:"poster_url"`
	MediaType   string    `json:"media_type" gorm:"size:20;index"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
