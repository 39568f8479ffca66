package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// WatchlistRepository stores watchlist entries and the activities they feed.
type WatchlistRepository interface {
	Create(userID, mediaID uint, status string) (*models.WatchlistItem, error)
	ByID(id uint) (*models.WatchlistItem, error)
	ByIDs(ids []uint) (map[uint]models.WatchlistItem, error)
}

// PostgresWatchlistRepository implements WatchlistRepository for PostgreSQL
type PostgresWatchlistRepository struct {
	db         *gorm.DB
	activities ActivityRepository
}

// NewPostgresWatchlistRepository creates a new PostgresWatchlistRepository
func NewPostgresWatchlistRepository(db *gorm.DB, activities ActivityRepository) *PostgresWatchlistRepository {
	return &PostgresWatchlistRepository{db: db, activities: activities}
}

// Create writes the watchlist entry and its feed activity in one transaction.
func (r *PostgresWatchlistRepository) Create(userID, mediaID uint, status string) (*models.WatchlistItem, error) {
	item := &models.WatchlistItem{UserID: userID, MediaID: mediaID, Status: status}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		activity, err := models.NewActivity(userID, models.ActivityWatchlistAdd, models.ActivityPayload{
			MediaID:     &mediaID,
			WatchlistID: &item.ID,
		})
		if err != nil {
			return err
		}
		return r.activities.CreateTx(tx, activity)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresWatchlistRepository) ByID(id uint) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ByIDs fetches a batch of watchlist entries keyed by id for page enrichment.
func (r *PostgresWatchlistRepository) ByIDs(ids []uint) (map[uint]models.WatchlistItem, error) {
	result := make(map[uint]models.WatchlistItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var items []models.WatchlistItem
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}
