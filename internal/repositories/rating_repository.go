package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// RatingRepository stores ratings and the activities they feed.
type RatingRepository interface {
	Create(userID, mediaID uint, value int) (*models.Rating, error)
	ByID(id uint) (*models.Rating, error)
	ByIDs(ids []uint) (map[uint]models.Rating, error)
}

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db         *gorm.DB
	activities ActivityRepository
}

// NewPostgresRatingRepository creates a new PostgresRatingRepository
func NewPostgresRatingRepository(db *gorm.DB, activities ActivityRepository) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db, activities: activities}
}

// Create writes the rating and its feed activity in one transaction, so a
// crash between the two cannot leave an orphaned half-write.
func (r *PostgresRatingRepository) Create(userID, mediaID uint, value int) (*models.Rating, error) {
	rating := &models.Rating{UserID: userID, MediaID: mediaID, Rating: value}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		activity, err := models.NewActivity(userID, models.ActivityRating, models.ActivityPayload{
			MediaID:  &mediaID,
			RatingID: &rating.ID,
		})
		if err != nil {
			return err
		}
		return r.activities.CreateTx(tx, activity)
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *PostgresRatingRepository) ByID(id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// ByIDs fetches a batch of ratings keyed by id for page enrichment.
func (r *PostgresRatingRepository) ByIDs(ids []uint) (map[uint]models.Rating, error) {
	result := make(map[uint]models.Rating, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var ratings []models.Rating
	if err := r.db.Where("id IN ?", ids).Find(&ratings).Error; err != nil {
		return nil, err
	}
	for _, rating := range ratings {
		result[rating.ID] = rating
	}
	return result, nil
}
