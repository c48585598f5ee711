package rewards

import (
	"context"
	"reflect"
	"strings"

	"github.com/angelmondragon/rewardtrack/internal/currencies"
	"github.com/angelmondragon/rewardtrack/internal/events"
	"github.com/angelmondragon/rewardtrack/internal/store"
	"github.com/angelmondragon/rewardtrack/internal/tasks"
	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ServiceParams groups dependencies for the rewards service.
type ServiceParams struct {
	CurrencyRepo *currencies.Repository
	EventRepo    *events.Repository
	TaskRepo     *tasks.Repository
	StoreRepo    *store.Repository
	Logger       *logger.Logger
}

// Service exposes the reward tracker workflows and read models.
type Service interface {
	CreateCurrency(ctx context.Context, input NewCurrencyInput) (*models.Currency, error)
	Currencies(ctx context.Context) ([]models.Currency, error)
	CreateEvent(ctx context.Context, input CreateEventInput) (*CreateEventResult, error)
	IncompleteTasks(ctx context.Context, eventID int64) ([]models.Task, error)
	CompleteTask(ctx context.Context, eventID, taskID int64) (*CompleteTaskResult, error)
	PurchaseItem(ctx context.Context, eventID, itemID int64) (*PurchaseResult, error)
	Overview(ctx context.Context) ([]EventOverview, error)
	EventsWithTasks(ctx context.Context) ([]EventDetail, error)
	StoreCatalog(ctx context.Context, eventID int64) (*Catalog, error)
	Stats(ctx context.Context) ([]models.Currency, error)
}

type service struct {
	currencyRepo *currencies.Repository
	eventRepo    *events.Repository
	taskRepo     *tasks.Repository
	storeRepo    *store.Repository
	log          *logger.Logger
}

// NewService wires the rewards service with the required repositories.
func NewService(params ServiceParams) (Service, error) {
	if params.CurrencyRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency repo is required")
	}
	if params.EventRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event repo is required")
	}
	if params.TaskRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task repo is required")
	}
	if params.StoreRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		currencyRepo: params.CurrencyRepo,
		eventRepo:    params.EventRepo,
		taskRepo:     params.TaskRepo,
		storeRepo:    params.StoreRepo,
		log:          params.Logger,
	}, nil
}

// CreateCurrency validates and inserts a currency with a zero balance.
func (s *service) CreateCurrency(ctx context.Context, input NewCurrencyInput) (*models.Currency, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationErrors(err)
	}
	currency, err := s.currencyRepo.Create(ctx, input.Name, input.Symbol)
	if err != nil {
		return nil, err
	}
	s.log.Info(s.log.WithCurrencyID(ctx, currency.ID), "currency created")
	return currency, nil
}

// Currencies lists every currency.
func (s *service) Currencies(ctx context.Context) ([]models.Currency, error) {
	return s.currencyRepo.List(ctx)
}

// CreateEvent runs the add-event workflow: resolve or create the currency,
// insert the event, then its tasks and store items in order. Later steps
// failing do not undo earlier inserts; already-persisted rows stay and the
// error is surfaced.
func (s *service) CreateEvent(ctx context.Context, input CreateEventInput) (*CreateEventResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, formatValidationErrors(err)
	}
	if input.CurrencyID == 0 && input.NewCurrency == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency id or a new currency is required")
	}
	if input.Window != nil && input.Window.End.Before(input.Window.Start) {
		// Stored as given; the window is informational and not enforced.
		s.log.Warn(ctx, "event window ends before it starts")
	}

	result := &CreateEventResult{}

	if input.CurrencyID == 0 {
		currency, err := s.CreateCurrency(ctx, *input.NewCurrency)
		if err != nil {
			return nil, err
		}
		result.Currency = *currency
		result.CurrencyCreated = true
	} else {
		currency, err := s.currencyRepo.FindByID(ctx, input.CurrencyID)
		if err != nil {
			return nil, err
		}
		result.Currency = *currency
	}

	var window *events.TimeWindow
	if input.Window != nil {
		window = &events.TimeWindow{Start: input.Window.Start, End: input.Window.End}
	}

	event, err := s.eventRepo.Create(ctx, input.Name, result.Currency.ID, window)
	if err != nil {
		return nil, err
	}
	result.Event = *event

	ctx = s.log.WithEventID(ctx, event.ID)
	s.log.Info(ctx, "event created")

	for _, in := range input.Tasks {
		task, err := s.taskRepo.Create(ctx, event.ID, in.Description, in.CurrencyAmount)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "event created with partial task list")
		}
		result.Tasks = append(result.Tasks, *task)
	}

	for _, in := range input.Items {
		item, err := s.storeRepo.CreateItem(ctx, event.ID, in.Description, in.Cost, in.Stock, in.Category)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "event created with partial store")
		}
		result.Items = append(result.Items, *item)
	}

	return result, nil
}

// IncompleteTasks lists the open tasks of an active event.
func (s *service) IncompleteTasks(ctx context.Context, eventID int64) ([]models.Task, error) {
	if _, err := s.eventRepo.FindActiveByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListIncomplete(ctx, eventID)
}

// CompleteTask marks a task done, then credits the event's currency by the
// task's reward. The mark lands before the credit; if the credit fails the
// task stays completed and the error reports the missing reward.
func (s *service) CompleteTask(ctx context.Context, eventID, taskID int64) (*CompleteTaskResult, error) {
	event, err := s.eventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindIncomplete(ctx, eventID, taskID)
	if err != nil {
		return nil, err
	}

	marked, err := s.taskRepo.MarkComplete(ctx, eventID, taskID)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found or already completed")
	}

	ctx = s.log.WithFields(ctx, map[string]any{"event_id": eventID, "task_id": taskID})
	s.log.Info(ctx, "task completed")

	if err := s.currencyRepo.Credit(ctx, event.CurrencyID, task.CurrencyAmount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "task completed but reward not credited")
	}

	currency, err := s.currencyRepo.FindByID(ctx, event.CurrencyID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = true
	return &CompleteTaskResult{Task: *task, Currency: *currency}, nil
}

// PurchaseItem checks stock first, then balance, then decrements stock and
// debits the currency. The two mutations are sequential, not atomic; the
// stock decrement lands first.
func (s *service) PurchaseItem(ctx context.Context, eventID, itemID int64) (*PurchaseResult, error) {
	event, err := s.eventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencyRepo.FindByID(ctx, event.CurrencyID)
	if err != nil {
		return nil, err
	}

	item, err := s.storeRepo.Find(ctx, eventID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Stock == 0 {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "out of stock")
	}
	if currency.Balance < item.Cost {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "insufficient balance")
	}

	if _, err := s.storeRepo.DecrementStock(ctx, eventID, itemID); err != nil {
		return nil, err
	}

	ctx = s.log.WithFields(ctx, map[string]any{"event_id": eventID, "item_id": itemID})
	s.log.Info(ctx, "item purchased")

	if err := s.currencyRepo.Credit(ctx, event.CurrencyID, -item.Cost); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "stock taken but balance not debited")
	}

	updatedItem, err := s.storeRepo.Find(ctx, eventID, itemID)
	if err != nil {
		return nil, err
	}
	updatedCurrency, err := s.currencyRepo.FindByID(ctx, event.CurrencyID)
	if err != nil {
		return nil, err
	}

	return &PurchaseResult{Item: *updatedItem, Currency: *updatedCurrency}, nil
}

// Overview pairs every active event with its currency and live balance.
func (s *service) Overview(ctx context.Context) ([]EventOverview, error) {
	active, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byID, err := s.currenciesByID(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EventOverview, 0, len(active))
	for _, event := range active {
		currency, ok := byID[event.CurrencyID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
		}
		out = append(out, EventOverview{Event: event, Currency: currency})
	}
	return out, nil
}

// EventsWithTasks returns every active event with its full task list.
func (s *service) EventsWithTasks(ctx context.Context) ([]EventDetail, error) {
	active, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byID, err := s.currenciesByID(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EventDetail, 0, len(active))
	for _, event := range active {
		currency, ok := byID[event.CurrencyID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
		}
		eventTasks, err := s.taskRepo.ListByEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, EventDetail{Event: event, Currency: currency, Tasks: eventTasks})
	}
	return out, nil
}

// StoreCatalog returns an active event's store with its currency.
func (s *service) StoreCatalog(ctx context.Context, eventID int64) (*Catalog, error) {
	event, err := s.eventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindByID(ctx, event.CurrencyID)
	if err != nil {
		return nil, err
	}
	items, err := s.storeRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &Catalog{Event: *event, Currency: *currency, Items: items}, nil
}

// Stats lists every currency with its balance.
func (s *service) Stats(ctx context.Context) ([]models.Currency, error) {
	return s.currencyRepo.List(ctx)
}

func (s *service) currenciesByID(ctx context.Context) (map[int64]models.Currency, error) {
	all, err := s.currencyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Currency, len(all))
	for _, currency := range all {
		byID[currency.ID] = currency
	}
	return byID, nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}
