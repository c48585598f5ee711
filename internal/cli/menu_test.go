package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/rewardtrack/internal/currencies"
	"github.com/angelmondragon/rewardtrack/internal/events"
	"github.com/angelmondragon/rewardtrack/internal/rewards"
	"github.com/angelmondragon/rewardtrack/internal/store"
	"github.com/angelmondragon/rewardtrack/internal/tasks"
	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
)

func newMenuService(t *testing.T) rewards.Service {
	t.Helper()

	dsn := "file:menu_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	err = db.AutoMigrate(&models.Currency{}, &models.Event{}, &models.Task{}, &models.StoreItem{})
	require.NoError(t, err)

	svc, err := rewards.NewService(rewards.ServiceParams{
		CurrencyRepo: currencies.NewRepository(db),
		EventRepo:    events.NewRepository(db),
		TaskRepo:     tasks.NewRepository(db),
		StoreRepo:    store.NewRepository(db),
		Logger:       logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func runMenu(t *testing.T, svc rewards.Service, lines ...string) string {
	t.Helper()

	var out strings.Builder
	menu := NewMenu(svc, strings.NewReader(strings.Join(lines, "\n")), &out,
		logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	err := menu.Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestMenuFullSession(t *testing.T) {
	svc := newMenuService(t)

	output := runMenu(t, svc,
		// 1. Add an event with a fresh currency, one task, one item.
		"1",
		"Sprint",
		"Gems",
		"G",
		"0", // not time-limited
		"1", // one task
		"finish the report",
		"10",
		"1", // one store item
		"boost",
		"5",
		"2",
		"Boost",
		// 2. Mark the task done.
		"2",
		"1", // event id
		"1", // task id
		// 3. Buy the item.
		"3",
		"1", // event id
		"1", // item id
		// 5. Stats, then exit.
		"5",
		"6",
	)

	require.Contains(t, output, "There are no currencies available, make one.")
	require.Contains(t, output, "Event added successfully with 1 tasks and 1 store items")
	require.Contains(t, output, "Task 1 successfully completed. Keep it up!")
	require.Contains(t, output, "Currency Gems has increased by 10 Gs. Happy spending!")
	require.Contains(t, output, "Exiting...")

	// Balance after earning 10 and spending 5.
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, int64(5), stats[0].Balance)
}

func TestMenuReusesExistingCurrency(t *testing.T) {
	svc := newMenuService(t)
	_, err := svc.CreateCurrency(context.Background(), rewards.NewCurrencyInput{Name: "Gold", Symbol: "Au"})
	require.NoError(t, err)

	output := runMenu(t, svc,
		"1",
		"Quest",
		"1", // pick currency 1 from the table
		"0", // not time-limited
		"0", // no tasks
		"0", // no items
		"6",
	)

	require.Contains(t, output, "Existing currencies")
	require.Contains(t, output, "Gold")
	require.Contains(t, output, "Event added successfully with 0 tasks and 0 store items")
}

func TestMenuInvalidChoiceReprompts(t *testing.T) {
	svc := newMenuService(t)

	output := runMenu(t, svc, "9", "6")
	require.Contains(t, output, "Invalid choice. Please try again.")
	require.Contains(t, output, "Exiting...")
}

func TestMenuWorkflowErrorReturnsToMenu(t *testing.T) {
	svc := newMenuService(t)

	// No events exist, so completing a task fails; the menu must recover
	// and still reach the exit option.
	output := runMenu(t, svc,
		"2",
		"42", // unknown event
		"6",
	)
	require.Contains(t, output, "event not found")
	require.Contains(t, output, "Exiting...")
}

func TestMenuNoTasksLeft(t *testing.T) {
	svc := newMenuService(t)
	result, err := svc.CreateEvent(context.Background(), rewards.CreateEventInput{
		Name:        "Sprint",
		NewCurrency: &rewards.NewCurrencyInput{Name: "Gems", Symbol: "G"},
		Tasks:       []rewards.NewTaskInput{{Description: "only task", CurrencyAmount: 3}},
	})
	require.NoError(t, err)
	_, err = svc.CompleteTask(context.Background(), result.Event.ID, 1)
	require.NoError(t, err)

	output := runMenu(t, svc,
		"2",
		"1",
		"6",
	)
	require.Contains(t, output, "No tasks left.")
}

func TestMenuOutOfStockMessage(t *testing.T) {
	svc := newMenuService(t)
	result, err := svc.CreateEvent(context.Background(), rewards.CreateEventInput{
		Name:        "Sprint",
		NewCurrency: &rewards.NewCurrencyInput{Name: "Gems", Symbol: "G"},
		Items:       []rewards.NewStoreItemInput{{Description: "boost", Cost: 0, Stock: 1, Category: "Boost"}},
	})
	require.NoError(t, err)
	_, err = svc.PurchaseItem(context.Background(), result.Event.ID, 1)
	require.NoError(t, err)

	output := runMenu(t, svc,
		"3",
		"1",
		"1",
		"6",
	)
	require.Contains(t, output, "out of stock")
}

func TestMenuEndsCleanlyOnEOF(t *testing.T) {
	svc := newMenuService(t)

	output := runMenu(t, svc, "4")
	require.Contains(t, output, "--- Reward System Menu ---")
}
