package repositories

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRow is a comment joined with its author summary and like count.
// UserLiked is set only when a viewer is known; for anonymous reads it is
// omitted from the JSON rather than reported as false.
type CommentRow struct {
	ID         uint      `json:"id"`
	ActivityID uint      `json:"activity_id"`
	UserID     uint      `json:"user_id"`
	Text       string    `json:"comment_text" gorm:"column:comment_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	AvatarURL  string    `json:"avatar_url"`
	LikesCount int64     `json:"likes_count"`
	UserLiked  *bool     `json:"user_liked,omitempty" gorm:"-"`
	MediaTitle string    `json:"media_title,omitempty"`
	MediaType  string    `json:"media_type,omitempty"`

	// ViewerLikes is a scan target for the viewer-scoped subselect, folded
	// into UserLiked after the query.
	ViewerLikes int64 `json:"-" gorm:"column:viewer_likes"`
}

// CommentRepository defines the interface for activity comment operations
type CommentRepository interface {
	Create(userID, activityID uint, text string) (*models.Comment, error)
	ByID(id uint) (*CommentRow, error)
	Update(id, userID uint, text string) (*models.Comment, error)
	Delete(id, userID uint) error
	ByActivity(activityID uint, viewerID *uint, limit, offset int) ([]CommentRow, error)
	CountByActivity(activityID uint) (int64, error)
	CountByActivities(activityIDs []uint) (map[uint]int64, error)
	RecentByUser(userID uint, limit, offset int) ([]CommentRow, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// validateText enforces the 1..1000 character bound on trimmed text. The
// bound counts characters, not bytes, so multibyte text is not penalized.
func validateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > models.MaxCommentLength {
		return "", models.ErrInvalidComment
	}
	return trimmed, nil
}

// Create persists a new comment on an activity
func (r *PostgresCommentRepository) Create(userID, activityID uint, text string) (*models.Comment, error) {
	trimmed, err := validateText(text)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ActivityID: activityID,
		UserID:     userID,
		Text:       trimmed,
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ByID retrieves a comment with its author summary and like count
func (r *PostgresCommentRepository) ByID(id uint) (*CommentRow, error) {
	var row CommentRow
	res := r.db.Table("comments").
		Select(`comments.id, comments.activity_id, comments.user_id, comments.comment_text,
			comments.created_at, comments.updated_at,
			users.username, users.full_name, users.avatar_url,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) AS likes_count`).
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return &row, nil
}

// Update replaces the text of a comment; only its owner may edit it
func (r *PostgresCommentRepository) Update(id, userID uint, text string) (*models.Comment, error) {
	trimmed, err := validateText(text)
	if err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.ErrUnauthorized
	}
	comment.Text = trimmed
	if err := r.db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment; only its owner may delete it
func (r *PostgresCommentRepository) Delete(id, userID uint) error {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return models.ErrUnauthorized
	}
	return r.db.Delete(&models.Comment{}, id).Error
}

// ByActivity lists an activity's comments oldest first, each with its like
// count and, when a viewer is known, whether that viewer liked it.
func (r *PostgresCommentRepository) ByActivity(activityID uint, viewerID *uint, limit, offset int) ([]CommentRow, error) {
	var rows []CommentRow
	viewer := uint(0)
	if viewerID != nil {
		viewer = *viewerID
	}
	err := r.db.Table("comments").
		Select(`comments.id, comments.activity_id, comments.user_id, comments.comment_text,
			comments.created_at, comments.updated_at,
			users.username, users.full_name, users.avatar_url,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) AS likes_count,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id AND likes.user_id = ?) AS viewer_likes`, viewer).
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.activity_id = ?", activityID).
		Order("comments.created_at ASC, comments.id ASC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if viewerID != nil {
		for i := range rows {
			liked := rows[i].ViewerLikes > 0
			rows[i].UserLiked = &liked
		}
	}
	return rows, nil
}

// CountByActivity retrieves the comment count for one activity
func (r *PostgresCommentRepository) CountByActivity(activityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("activity_id = ?", activityID).Count(&count).Error
	return count, err
}

// CountByActivities returns comment counts for a page of activities in one
// grouped query. Activities without comments are absent from the map.
func (r *PostgresCommentRepository) CountByActivities(activityIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(activityIDs))
	if len(activityIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ActivityID uint
		Total      int64
	}
	err := r.db.Model(&models.Comment{}).
		Select("activity_id, COUNT(*) AS total").
		Where("activity_id IN ?", activityIDs).
		Group("activity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ActivityID] = row.Total
	}
	return counts, nil
}

// RecentByUser lists a user's latest comments with the media they were
// made under, newest first.
func (r *PostgresCommentRepository) RecentByUser(userID uint, limit, offset int) ([]CommentRow, error) {
	var rows []CommentRow
	err := r.db.Table("comments").
		Select(`comments.id, comments.activity_id, comments.user_id, comments.comment_text,
			comments.created_at, comments.updated_at,
			media_items.title AS media_title, media_items.media_type,
			(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) AS likes_count`).
		Joins("JOIN activities ON activities.id = comments.activity_id").
		Joins("LEFT JOIN media_items ON media_items.id = activities.media_id").
		Where("comments.user_id = ?", userID).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}
