package store

import (
	"context"
	"errors"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"gorm.io/gorm"
)

// Repository manages persistence for store items.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a store repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateItem appends an item to an event's store, assigning the per-event
// item id as max(item_id)+1.
func (r *Repository) CreateItem(ctx context.Context, eventID int64, description string, cost, stock int64, category string) (*models.StoreItem, error) {
	item := &models.StoreItem{
		EventID:     eventID,
		Description: description,
		Cost:        cost,
		Stock:       stock,
		Category:    category,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Event{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check event")
		}
		if count == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "event does not exist")
		}

		var nextID int64
		if err := tx.Model(&models.StoreItem{}).
			Where("event_id = ?", eventID).
			Select("COALESCE(MAX(item_id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next item id")
		}

		item.ItemID = nextID
		if err := tx.Create(item).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert store item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListByEvent returns every item of an event's store in id order.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.StoreItem, error) {
	var out []models.StoreItem
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("item_id ASC").
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store items")
	}
	return out, nil
}

// Find loads one store item.
func (r *Repository) Find(ctx context.Context, eventID, itemID int64) (*models.StoreItem, error) {
	var item models.StoreItem
	err := r.db.WithContext(ctx).
		First(&item, "event_id = ? AND item_id = ?", eventID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store item not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store item")
	}
	return &item, nil
}

// DecrementStock takes one unit off the shelf. Items carrying the
// unlimited sentinel are excluded in the WHERE clause and stay at -1;
// for those the update matches zero rows, which is not an error.
func (r *Repository) DecrementStock(ctx context.Context, eventID, itemID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.StoreItem{}).
		Where("event_id = ? AND item_id = ? AND stock != ?", eventID, itemID, models.UnlimitedStock).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if result.Error != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "update stock")
	}
	return result.RowsAffected, nil
}
