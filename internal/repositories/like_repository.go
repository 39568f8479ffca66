package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the single code path for likes on activities,
// comments, and reviews.
type LikeRepository interface {
	Like(userID uint, targetType string, targetID uint) error
	Unlike(userID uint, targetType string, targetID uint) error
	HasLiked(userID uint, targetType string, targetID uint) (bool, error)
	LikesOf(targetType string, targetID uint, limit, offset int) ([]models.LikerSummary, error)
	CountByTarget(targetType string, targetID uint) (int64, error)
	CountByTargets(targetType string, targetIDs []uint) (map[uint]int64, error)
	LikedSet(userID uint, targetType string, targetIDs []uint) (map[uint]bool, error)
	UserLikeStats(userID uint) (*models.LikeStats, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Like records a like. Duplicate prevention is the composite unique index;
// the losing insert of a concurrent race comes back as ErrAlreadyLiked and
// is never retried as success.
func (r *PostgresLikeRepository) Like(userID uint, targetType string, targetID uint) error {
	if !models.ValidLikeTarget(targetType) {
		return models.ErrInvalidLikeTarget
	}
	like := &models.Like{UserID: userID, TargetType: targetType, TargetID: targetID}
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// Unlike removes a like; a bare unlike fails ErrNotLiked.
func (r *PostgresLikeRepository) Unlike(userID uint, targetType string, targetID uint) error {
	if !models.ValidLikeTarget(targetType) {
		return models.ErrInvalidLikeTarget
	}
	res := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotLiked
	}
	return nil
}

// HasLiked checks whether the user has liked a specific target
func (r *PostgresLikeRepository) HasLiked(userID uint, targetType string, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

// LikesOf lists who liked a target, newest like first.
func (r *PostgresLikeRepository) LikesOf(targetType string, targetID uint, limit, offset int) ([]models.LikerSummary, error) {
	var likers []models.LikerSummary
	err := r.db.Table("likes").
		Select(`users.id AS user_id, users.username, users.full_name, users.avatar_url,
			likes.created_at AS liked_at`).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.target_type = ? AND likes.target_id = ?", targetType, targetID).
		Order("likes.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&likers).Error
	return likers, err
}

// CountByTarget retrieves the like count for a single target
func (r *PostgresLikeRepository) CountByTarget(targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// CountByTargets returns like counts for a page of targets in one grouped
// query. Targets with no likes are absent from the map.
func (r *PostgresLikeRepository) CountByTargets(targetType string, targetIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		TargetID uint
		Total    int64
	}
	err := r.db.Model(&models.Like{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

// LikedSet returns which of the given targets the user has liked.
func (r *PostgresLikeRepository) LikedSet(userID uint, targetType string, targetIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// UserLikeStats summarizes likes the user has given and received.
func (r *PostgresLikeRepository) UserLikeStats(userID uint) (*models.LikeStats, error) {
	var stats models.LikeStats
	err := r.db.Raw(`SELECT
		(SELECT COUNT(*) FROM likes WHERE user_id = ? AND target_type = 'activity') AS activities_liked,
		(SELECT COUNT(*) FROM likes WHERE user_id = ? AND target_type = 'comment') AS comments_liked,
		(SELECT COUNT(*) FROM likes WHERE user_id = ? AND target_type = 'review') AS reviews_liked,
		(SELECT COUNT(*) FROM likes
			JOIN activities ON activities.id = likes.target_id
			WHERE likes.target_type = 'activity' AND activities.user_id = ?) AS activity_likes_received,
		(SELECT COUNT(*) FROM likes
			JOIN comments ON comments.id = likes.target_id
			WHERE likes.target_type = 'comment' AND comments.user_id = ?) AS comment_likes_received,
		(SELECT COUNT(*) FROM likes
			JOIN reviews ON reviews.id = likes.target_id
			WHERE likes.target_type = 'review' AND reviews.user_id = ?) AS review_likes_received`,
		userID, userID, userID, userID, userID, userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
