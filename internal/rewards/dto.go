package rewards

import (
	"time"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
)

// Field length caps match the storage contract for names and descriptions.

// NewCurrencyInput describes a currency to create inline.
type NewCurrencyInput struct {
	Name   string `json:"name" validate:"required,max=49"`
	Symbol string `json:"symbol" validate:"required,max=9"`
}

// NewTaskInput describes one task created together with its event.
type NewTaskInput struct {
	Description    string `json:"description" validate:"required,max=255"`
	CurrencyAmount int64  `json:"currency_amount" validate:"gte=0"`
}

// NewStoreItemInput describes one store item created together with its
// event. Stock -1 means unlimited.
type NewStoreItemInput struct {
	Description string `json:"description" validate:"required,max=255"`
	Cost        int64  `json:"cost" validate:"gte=0"`
	Stock       int64  `json:"stock" validate:"gte=-1"`
	Category    string `json:"category" validate:"max=49"`
}

// EventWindow bounds a time-limited event. Both ends are required together.
type EventWindow struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// CreateEventInput drives the whole add-event workflow. CurrencyID 0 means
// create NewCurrency inline instead of reusing an existing one.
type CreateEventInput struct {
	Name        string             `json:"name" validate:"required,max=99"`
	CurrencyID  int64              `json:"currency_id" validate:"gte=0"`
	NewCurrency *NewCurrencyInput  `json:"new_currency,omitempty"`
	Window      *EventWindow       `json:"window,omitempty"`
	Tasks       []NewTaskInput     `json:"tasks" validate:"dive"`
	Items       []NewStoreItemInput `json:"items" validate:"dive"`
}

// CreateEventResult reports everything the add-event workflow persisted.
type CreateEventResult struct {
	Event           models.Event
	Currency        models.Currency
	CurrencyCreated bool
	Tasks           []models.Task
	Items           []models.StoreItem
}

// CompleteTaskResult reports the completed task and the credited currency
// as stored after the credit.
type CompleteTaskResult struct {
	Task     models.Task
	Currency models.Currency
}

// PurchaseResult reports the bought item and the debited currency as
// stored after the purchase.
type PurchaseResult struct {
	Item     models.StoreItem
	Currency models.Currency
}

// EventOverview pairs an active event with its currency and live balance.
type EventOverview struct {
	Event    models.Event
	Currency models.Currency
}

// EventDetail pairs an active event with its currency and every task.
type EventDetail struct {
	Event    models.Event
	Currency models.Currency
	Tasks    []models.Task
}

// Catalog pairs an active event with its currency and store items.
type Catalog struct {
	Event    models.Event
	Currency models.Currency
	Items    []models.StoreItem
}
