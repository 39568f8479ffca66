package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository stores reviews and the activities they feed.
type ReviewRepository interface {
	Create(userID, mediaID uint, text string, isSpoiler bool) (*models.Review, error)
	ByID(id uint) (*models.Review, error)
	ByIDs(ids []uint) (map[uint]models.Review, error)
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db         *gorm.DB
	activities ActivityRepository
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB, activities ActivityRepository) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db, activities: activities}
}

// Create writes the review and its feed activity in one transaction.
func (r *PostgresReviewRepository) Create(userID, mediaID uint, text string, isSpoiler bool) (*models.Review, error) {
	review := &models.Review{UserID: userID, MediaID: mediaID, ReviewText: text, IsSpoiler: isSpoiler}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		activity, err := models.NewActivity(userID, models.ActivityReview, models.ActivityPayload{
			MediaID:  &mediaID,
			ReviewID: &review.ID,
		})
		if err != nil {
			return err
		}
		return r.activities.CreateTx(tx, activity)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *PostgresReviewRepository) ByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ByIDs fetches a batch of reviews keyed by id for page enrichment.
func (r *PostgresReviewRepository) ByIDs(ids []uint) (map[uint]models.Review, error) {
	result := make(map[uint]models.Review, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var reviews []models.Review
	if err := r.db.Where("id IN ?", ids).Find(&reviews).Error; err != nil {
		return nil, err
	}
	for _, review := range reviews {
		result[review.ID] = review
	}
	return result, nil
}
