package models

// Task is a unit of work inside an event. TaskID is sequential per event,
// not globally unique. Completion is one-directional.
type Task struct {
	EventID        int64  `gorm:"column:event_id;primaryKey;autoIncrement:false"`
	TaskID         int64  `gorm:"column:task_id;primaryKey;autoIncrement:false"`
	Description    string `gorm:"column:task_description;not null"`
	CurrencyAmount int64  `gorm:"column:currency_amount;not null"`
	IsCompleted    bool   `gorm:"column:is_completed;not null;default:false"`
}

func (Task) TableName() string {
	return "tasks"
}
