package repositories

import (
	"errors"
	"time"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRow is an activity joined with its denormalized actor and media
// summary, as selected for feeds and single lookups.
type ActivityRow struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	MediaID      *uint     `json:"media_id,omitempty"`
	RatingID     *uint     `json:"rating_id,omitempty"`
	ReviewID     *uint     `json:"review_id,omitempty"`
	WatchlistID  *uint     `json:"watchlist_id,omitempty"`
	ListID       *uint     `json:"list_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	MediaTitle   string    `json:"media_title,omitempty"`
	PosterURL    string    `json:"poster_url,omitempty"`
	MediaType    string    `json:"media_type,omitempty"`
	ReleaseYear  *int      `json:"release_year,omitempty"`
}

// ActivityFilters are the optional equality filters of global and per-user
// activity listings.
type ActivityFilters struct {
	ActivityType string
	MediaType    string
}

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	Create(activity *models.Activity) error
	CreateTx(tx *gorm.DB, activity *models.Activity) error
	FindByID(id uint) (*ActivityRow, error)
	Delete(id, userID uint) error
	UserActivityStats(userID uint) (*models.ActivityStats, error)
	FeedRows(actorIDs []uint, limit, offset int) ([]ActivityRow, error)
	GlobalRows(filters ActivityFilters, limit, offset int) ([]ActivityRow, error)
	UserRows(userID uint, filters ActivityFilters, limit, offset int) ([]ActivityRow, error)
	PopularRows(cutoff time.Time, limit int) ([]ActivityRow, error)
	MediaRows(mediaID uint, limit int) ([]ActivityRow, error)
	LikedRows(userID uint, limit, offset int) ([]ActivityRow, error)
}

// PostgresActivityRepository implements ActivityRepository for PostgreSQL
type PostgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

const activityRowColumns = `activities.id, activities.user_id, activities.activity_type,
	activities.media_id, activities.rating_id, activities.review_id,
	activities.watchlist_id, activities.list_id, activities.created_at,
	users.username, users.full_name, users.avatar_url,
	media_items.title AS media_title, media_items.poster_url,
	media_items.media_type, media_items.release_year`

// rowQuery is the base joined select shared by all feed row lookups.
func (r *PostgresActivityRepository) rowQuery() *gorm.DB {
	return r.db.Table("activities").
		Select(activityRowColumns).
		Joins("JOIN users ON users.id = activities.user_id").
		Joins("LEFT JOIN media_items ON media_items.id = activities.media_id")
}

// Create persists a new activity in PostgreSQL
func (r *PostgresActivityRepository) Create(activity *models.Activity) error {
	return r.CreateTx(r.db, activity)
}

// CreateTx persists a new activity inside the caller's transaction, so a
// payload row and its activity commit or roll back together.
func (r *PostgresActivityRepository) CreateTx(tx *gorm.DB, activity *models.Activity) error {
	// Re-validate the tagged payload so nothing bypasses the invariant.
	validated, err := models.NewActivity(activity.UserID, activity.ActivityType, models.ActivityPayload{
		MediaID:     activity.MediaID,
		RatingID:    activity.RatingID,
		ReviewID:    activity.ReviewID,
		WatchlistID: activity.WatchlistID,
		ListID:      activity.ListID,
	})
	if err != nil {
		return err
	}
	if err := tx.Create(validated).Error; err != nil {
		return err
	}
	activity.ID = validated.ID
	activity.CreatedAt = validated.CreatedAt
	return nil
}

// FindByID retrieves an activity with its actor and media summary
func (r *PostgresActivityRepository) FindByID(id uint) (*ActivityRow, error) {
	var row ActivityRow
	res := r.rowQuery().Where("activities.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}
	return &row, nil
}

// Delete removes an activity; only its actor may delete it
func (r *PostgresActivityRepository) Delete(id, userID uint) error {
	var activity models.Activity
	if err := r.db.First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if activity.UserID != userID {
		return models.ErrUnauthorized
	}
	return r.db.Delete(&models.Activity{}, id).Error
}

// UserActivityStats aggregates per-type totals and likes received across
// the user's activities. Computed from rows at read time.
func (r *PostgresActivityRepository) UserActivityStats(userID uint) (*models.ActivityStats, error) {
	var stats models.ActivityStats
	err := r.db.Table("activities").
		Select(`COUNT(*) AS total_activities,
			COUNT(*) FILTER (WHERE activity_type = 'rating') AS rating_activities,
			COUNT(*) FILTER (WHERE activity_type = 'review') AS review_activities,
			COUNT(*) FILTER (WHERE activity_type = 'watchlist_add') AS watchlist_adds,
			COUNT(*) FILTER (WHERE activity_type = 'list_create') AS list_creates,
			COUNT(*) FILTER (WHERE activity_type = 'list_add') AS list_adds,
			(SELECT COUNT(*) FROM likes
				JOIN activities a2 ON a2.id = likes.target_id
				WHERE likes.target_type = 'activity' AND a2.user_id = ?) AS total_likes_received`, userID).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// FeedRows returns activities whose actor is in actorIDs, newest first.
func (r *PostgresActivityRepository) FeedRows(actorIDs []uint, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	if len(actorIDs) == 0 {
		return rows, nil
	}
	err := r.rowQuery().
		Where("activities.user_id IN ?", actorIDs).
		Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// GlobalRows returns activities across all actors with optional filters.
func (r *PostgresActivityRepository) GlobalRows(filters ActivityFilters, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	q := r.rowQuery()
	if filters.ActivityType != "" {
		q = q.Where("activities.activity_type = ?", filters.ActivityType)
	}
	if filters.MediaType != "" {
		q = q.Where("media_items.media_type = ?", filters.MediaType)
	}
	err := q.Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// UserRows returns one actor's activities with optional filters.
func (r *PostgresActivityRepository) UserRows(userID uint, filters ActivityFilters, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	q := r.rowQuery().Where("activities.user_id = ?", userID)
	if filters.ActivityType != "" {
		q = q.Where("activities.activity_type = ?", filters.ActivityType)
	}
	if filters.MediaType != "" {
		q = q.Where("media_items.media_type = ?", filters.MediaType)
	}
	err := q.Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// PopularRows returns the most engaged activities created at or after
// cutoff. The whole window is ordered by like count, then comment count,
// then recency, in SQL — so a heavily liked activity early in the window
// still ranks ahead of quieter newer ones.
func (r *PostgresActivityRepository) PopularRows(cutoff time.Time, limit int) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.rowQuery().
		Select(activityRowColumns + `,
			COALESCE(lc.total, 0) AS likes_count,
			COALESCE(cc.total, 0) AS comments_count`).
		Joins(`LEFT JOIN (SELECT target_id, COUNT(*) AS total FROM likes
			WHERE target_type = 'activity' GROUP BY target_id) lc ON lc.target_id = activities.id`).
		Joins(`LEFT JOIN (SELECT activity_id, COUNT(*) AS total FROM comments
			GROUP BY activity_id) cc ON cc.activity_id = activities.id`).
		Where("activities.created_at >= ?", cutoff).
		Order("likes_count DESC, comments_count DESC, activities.created_at DESC, activities.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// MediaRows returns recent activities for one media item.
func (r *PostgresActivityRepository) MediaRows(mediaID uint, limit int) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.rowQuery().
		Where("activities.media_id = ?", mediaID).
		Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// LikedRows returns the activities the user has liked, most recently liked
// first.
func (r *PostgresActivityRepository) LikedRows(userID uint, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.rowQuery().
		Joins("JOIN likes ON likes.target_id = activities.id AND likes.target_type = 'activity'").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC, activities.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}
