package models

import "time"

// CustomList is a user-curated list of media items.
type CustomList struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	ListName    string    `json:"list_name" gorm:"size:100"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomListItem is one entry of a custom list. The unique pair keeps a
// media item from appearing twice in the same list.
type CustomListItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListID    uint      `json:"list_id" gorm:"index;uniqueIndex:idx_list_media_item"`
	MediaID   uint      `json:"media_id" gorm:"index;uniqueIndex:idx_list_media_item"`
	ListOrder int       `json:"list_order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateListRequest defines the request body for creating a custom list
type CreateListRequest struct {
	ListName    string `json:"list_name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    *bool  `json:"is_public"`
}

// AddListItemRequest defines the request body for adding media to a list
type AddListItemRequest struct {
	MediaID uint `json:"media_id" validate:"required"`
}

// ListItemOrder is one (media, position) pair of a reorder request.
type ListItemOrder struct {
	MediaID   uint `json:"media_id" validate:"required"`
	ListOrder int  `json:"list_order"`
}

// ReorderListRequest defines the request body for reordering list items
type ReorderListRequest struct {
	Items []ListItemOrder `json:"items" validate:"required,min=1,dive"`
}
