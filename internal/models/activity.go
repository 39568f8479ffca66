package models

import "time"

// Activity types recorded in the timeline.
const (
	ActivityRating       = "rating"
	ActivityReview       = "review"
	ActivityWatchlistAdd = "watchlist_add"
	ActivityListCreate   = "list_create"
	ActivityListAdd      = "list_add"
)

// Activity represents a single recorded user action feeding the timeline.
// Exactly one of the four payload references is set and it matches
// ActivityType; use NewActivity so the invariant holds for every persisted
// row.
type Activity struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index"`
	ActivityType string    `json:"activity_type" gorm:"size:20;index"`
	MediaID      *uint     `json:"media_id,omitempty" gorm:"index"`
	RatingID     *uint     `json:"rating_id,omitempty"`
	ReviewID     *uint     `json:"review_id,omitempty"`
	WatchlistID  *uint     `json:"watchlist_id,omitempty"`
	ListID       *uint     `json:"list_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

// ActivityPayload carries the optional payload references for NewActivity.
type ActivityPayload struct {
	MediaID     *uint
	RatingID    *uint
	ReviewID    *uint
	WatchlistID *uint
	ListID      *uint
}

// NewActivity builds a validated activity. It fails with
// ErrInvalidActivityType for an unknown type, and ErrMissingPayloadRef
// unless exactly one payload reference is present and matches the type.
func NewActivity(userID uint, activityType string, payload ActivityPayload) (*Activity, error) {
	var matching *uint
	switch activityType {
	case ActivityRating:
		matching = payload.RatingID
	case ActivityReview:
		matching = payload.ReviewID
	case ActivityWatchlistAdd:
		matching = payload.WatchlistID
	case ActivityListCreate, ActivityListAdd:
		matching = payload.ListID
	default:
		return nil, ErrInvalidActivityType
	}

	if matching == nil {
		return nil, ErrMissingPayloadRef
	}

	refs := 0
	for _, ref := range []*uint{payload.RatingID, payload.ReviewID, payload.WatchlistID, payload.ListID} {
		if ref != nil {
			refs++
		}
	}
	if refs != 1 {
		return nil, ErrMissingPayloadRef
	}

	return &Activity{
		UserID:       userID,
		ActivityType: activityType,
		MediaID:      payload.MediaID,
		RatingID:     payload.RatingID,
		ReviewID:     payload.ReviewID,
		WatchlistID:  payload.WatchlistID,
		ListID:       payload.ListID,
	}, nil
}

// ActivityStats aggregates a user's activity totals. Likes received is
// computed from like rows at read time, not a maintained counter.
type ActivityStats struct {
	TotalActivities    int64 `json:"total_activities"`
	RatingActivities   int64 `json:"rating_activities"`
	ReviewActivities   int64 `json:"review_activities"`
	WatchlistAdds      int64 `json:"watchlist_activities"`
	ListCreates        int64 `json:"list_create_activities"`
	ListAdds           int64 `json:"list_add_activities"`
	TotalLikesReceived int64 `json:"total_likes_received"`
}
