package events

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"gorm.io/gorm"
)

// TimeWindow bounds a time-limited event.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Repository manages persistence for events.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns an event repository bound to the provided database.
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

// Create inserts an event referencing an existing currency. The event is
// always created active. A window is stored only for time-limited events.
func (r *Repository) Create(ctx context.Context, name string, currencyID int64, window *TimeWindow) (*models.Event, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Currency{}).
		Where("currency_id = ?", currencyID).
		Count(&count).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check currency")
	}
	if count == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "currency does not exist")
	}

	event := &models.Event{
		Name:       name,
		CurrencyID: currencyID,
		IsActive:   true,
	}
	if window != nil {
		start, end := window.Start, window.End
		event.IsTimeLimited = true
		event.StartTime = &start
		event.EndTime = &end
	}

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert event")
	}
	return event, nil
}

// ListActive returns every event still flagged active.
func (r *Repository) ListActive(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("event_id ASC").
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active events")
	}
	return out, nil
}

// FindActiveByID loads one active event. Inactive or missing events are
// both reported as not found.
func (r *Repository) FindActiveByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		First(&event, "event_id = ? AND is_active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return &event, nil
}

// Deactivate clears the active flag. Nothing in the menu flows calls this
// today; it exists for future expiry of time-limited events.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("event_id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "deactivate event")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
	}
	return nil
}
