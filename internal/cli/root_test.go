package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/rewardtrack/internal/rewards"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
)

func TestStatsCommand(t *testing.T) {
	svc := newMenuService(t)
	_, err := svc.CreateCurrency(context.Background(), rewards.NewCurrencyInput{Name: "Gems", Symbol: "G"})
	require.NoError(t, err)

	cmd := NewRootCommand(&App{Service: svc})
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"stats"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Gems")
	require.Contains(t, out.String(), "Balance")
}

func TestEventsCommand(t *testing.T) {
	svc := newMenuService(t)
	_, err := svc.CreateEvent(context.Background(), rewards.CreateEventInput{
		Name:        "Sprint",
		NewCurrency: &rewards.NewCurrencyInput{Name: "Gems", Symbol: "G"},
		Tasks:       []rewards.NewTaskInput{{Description: "write the plan", CurrencyAmount: 4}},
	})
	require.NoError(t, err)

	cmd := NewRootCommand(&App{Service: svc})
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"events"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Sprint")
	require.Contains(t, out.String(), "write the plan")
}

func TestRootCommandRunsMenu(t *testing.T) {
	svc := newMenuService(t)

	cmd := NewRootCommand(&App{
		Service: svc,
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("6\n"))
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "--- Reward System Menu ---")
	require.Contains(t, out.String(), "Exiting...")
}
