package models

import "time"

// Event is a container of tasks and store items tied to one currency.
// StartTime/EndTime are set together when the event is time-limited and
// are both NULL otherwise.
type Event struct {
	ID            int64      `gorm:"column:event_id;primaryKey;autoIncrement"`
	Name          string     `gorm:"column:event_name;not null"`
	CurrencyID    int64      `gorm:"column:currency_id;not null"`
	IsTimeLimited bool       `gorm:"column:is_time_limited;not null"`
	StartTime     *time.Time `gorm:"column:start_time"`
	EndTime       *time.Time `gorm:"column:end_time"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`

	Currency *Currency `gorm:"foreignKey:CurrencyID;references:ID"`
}

func (Event) TableName() string {
	return "events"
}
