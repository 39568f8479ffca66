package repositories

import (
	"errors"

	"github.com/mediatrail/backend/internal/models"
	"gorm.io/gorm"
)

// ListRepository stores custom lists, their items, and the activities they
// feed.
type ListRepository interface {
	Create(userID uint, name, description string, isPublic bool) (*models.CustomList, error)
	AddItem(listID, userID, mediaID uint) (*models.CustomListItem, error)
	ReorderItems(listID, userID uint, orders []models.ListItemOrder) error
	ByID(id uint) (*models.CustomList, error)
	ByIDs(ids []uint) (map[uint]models.CustomList, error)
}

// PostgresListRepository implements ListRepository for PostgreSQL
type PostgresListRepository struct {
	db         *gorm.DB
	activities ActivityRepository
}

// NewPostgresListRepository creates a new PostgresListRepository
func NewPostgresListRepository(db *gorm.DB, activities ActivityRepository) *PostgresListRepository {
	return &PostgresListRepository{db: db, activities: activities}
}

// Create writes the list and its list_create activity in one transaction.
func (r *PostgresListRepository) Create(userID uint, name, description string, isPublic bool) (*models.CustomList, error) {
	list := &models.CustomList{UserID: userID, ListName: name, Description: description, IsPublic: isPublic}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}
		activity, err := models.NewActivity(userID, models.ActivityListCreate, models.ActivityPayload{
			ListID: &list.ID,
		})
		if err != nil {
			return err
		}
		return r.activities.CreateTx(tx, activity)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AddItem appends media to a list and records the list_add activity in the
// same transaction. A duplicate (list, media) pair fails the unique index
// and surfaces ErrDuplicateListItem.
func (r *PostgresListRepository) AddItem(listID, userID, mediaID uint) (*models.CustomListItem, error) {
	list, err := r.ByID(listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, models.ErrUnauthorized
	}

	item := &models.CustomListItem{ListID: listID, MediaID: mediaID}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var position int64
		if err := tx.Model(&models.CustomListItem{}).Where("list_id = ?", listID).Count(&position).Error; err != nil {
			return err
		}
		item.ListOrder = int(position) + 1
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		activity, err := models.NewActivity(userID, models.ActivityListAdd, models.ActivityPayload{
			MediaID: &mediaID,
			ListID:  &listID,
		})
		if err != nil {
			return err
		}
		return r.activities.CreateTx(tx, activity)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateListItem
		}
		return nil, err
	}
	return item, nil
}

// ReorderItems applies a sequence of position updates all-or-nothing.
func (r *PostgresListRepository) ReorderItems(listID, userID uint, orders []models.ListItemOrder) error {
	list, err := r.ByID(listID)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return models.ErrUnauthorized
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			err := tx.Model(&models.CustomListItem{}).
				Where("list_id = ? AND media_id = ?", listID, order.MediaID).
				Update("list_order", order.ListOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresListRepository) ByID(id uint) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// ByIDs fetches a batch of lists keyed by id for page enrichment.
func (r *PostgresListRepository) ByIDs(ids []uint) (map[uint]models.CustomList, error) {
	result := make(map[uint]models.CustomList, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var lists []models.CustomList
	if err := r.db.Where("id IN ?", ids).Find(&lists).Error; err != nil {
		return nil, err
	}
	for _, list := range lists {
		result[list.ID] = list
	}
	return result, nil
}
