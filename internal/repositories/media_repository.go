package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// MediaRepository is the media catalog collaborator; ingestion is external.
type MediaRepository interface {
	GetMediaByID(id uint) (*models.MediaItem, error)
}

// PostgresMediaRepository implements MediaRepository for PostgreSQL
type PostgresMediaRepository struct {
	db *gorm.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository
func NewPostgresMediaRepository(db *gorm.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

func (r *PostgresMediaRepository) GetMediaByID(id uint) (*models.MediaItem, error) {
	var media models.MediaItem
	if err := r.db.First(&media, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}
