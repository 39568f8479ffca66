package models

import "time"

// Like target types.
const (
	LikeTargetActivity = "activity"
	LikeTargetComment  = "comment"
	LikeTargetReview   = "review"
)

// Like is a polymorphic like on an activity, comment, or review. The
// composite unique index is what prevents duplicate likes: two concurrent
// likes on the same target race on the insert and the loser surfaces
// ErrAlreadyLiked.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	TargetType string    `json:"target_type" gorm:"size:20;uniqueIndex:idx_user_target_like"`
	TargetID   uint      `json:"target_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidLikeTarget reports whether targetType names a likeable record kind.
func ValidLikeTarget(targetType string) bool {
	switch targetType {
	case LikeTargetActivity, LikeTargetComment, LikeTargetReview:
		return true
	}
	return false
}

// LikerSummary is one row of a "who liked this" listing.
type LikerSummary struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	LikedAt   time.Time `json:"liked_at"`
}

// LikeStats summarizes likes a user has given and received per target type.
type LikeStats struct {
	ActivitiesLiked       int64 `json:"activities_liked"`
	CommentsLiked         int64 `json:"comments_liked"`
	ReviewsLiked          int64 `json:"reviews_liked"`
	ActivityLikesReceived int64 `json:"activity_likes_received"`
	CommentLikesReceived  int64 `json:"comment_likes_received"`
	ReviewLikesReceived   int64 `json:"review_likes_received"`
}
