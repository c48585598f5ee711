package tasks

import (
	"context"
	"errors"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"gorm.io/gorm"
)

// Repository manages persistence for event tasks.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a task repository bound to the provided database.
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

// Create appends a task to an event. The per-event task id is assigned
// here as max(task_id)+1 so callers cannot collide counters.
func (r *Repository) Create(ctx context.Context, eventID int64, description string, amount int64) (*models.Task, error) {
	task := &models.Task{
		EventID:        eventID,
		Description:    description,
		CurrencyAmount: amount,
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
		if err := tx.Model(&models.Task{}).
			Where("event_id = ?", eventID).
			Select("COALESCE(MAX(task_id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next task id")
		}

		task.TaskID = nextID
		if err := tx.Create(task).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListByEvent returns every task of an event in id order.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.Task, error) {
	var out []models.Task
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("task_id ASC").
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	return out, nil
}

// ListIncomplete returns the tasks of an event still awaiting completion.
func (r *Repository) ListIncomplete(ctx context.Context, eventID int64) ([]models.Task, error) {
	var out []models.Task
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND is_completed = ?", eventID, false).
		Order("task_id ASC").
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list incomplete tasks")
	}
	return out, nil
}

// FindIncomplete loads one task that has not been completed yet.
func (r *Repository) FindIncomplete(ctx context.Context, eventID, taskID int64) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		First(&task, "event_id = ? AND task_id = ? AND is_completed = ?", eventID, taskID, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found or already completed")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	return &task, nil
}

// MarkComplete flips the completion flag once. A second invocation matches
// zero rows and reports false, never an error, so completion can never
// double-fire.
func (r *Repository) MarkComplete(ctx context.Context, eventID, taskID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("event_id = ? AND task_id = ? AND is_completed = ?", eventID, taskID, false).
		UpdateColumn("is_completed", true)
	if result.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "mark task complete")
	}
	return result.RowsAffected > 0, nil
}
