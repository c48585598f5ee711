package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/angelmondragon/rewardtrack/internal/rewards"
	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"github.com/angelmondragon/rewardtrack/pkg/logger"
)

// Menu drives the interactive session. Every choice maps to one workflow
// or listing; a failed workflow prints its reason and returns here.
type Menu struct {
	svc rewards.Service
	p   *Prompter
	out io.Writer
	log *logger.Logger
}

func NewMenu(svc rewards.Service, in io.Reader, out io.Writer, log *logger.Logger) *Menu {
	return &Menu{svc: svc, p: NewPrompter(in, out), out: out, log: log}
}

// Run loops until the user exits, the input ends, or the context is
// canceled by an interrupt.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out, "\n--- Reward System Menu ---")
		fmt.Fprintln(m.out, "1. Add an Event")
		fmt.Fprintln(m.out, "2. Mark a Task as Done")
		fmt.Fprintln(m.out, "3. Buy an Item from the Store")
		fmt.Fprintln(m.out, "4. List All Events and Their Tasks")
		fmt.Fprintln(m.out, "5. List My Stats")
		fmt.Fprintln(m.out, "6. Exit")

		choice, err := m.p.Int64("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.addEvent(ctx)
		case 2:
			err = m.markTaskDone(ctx)
		case 3:
			err = m.buyItem(ctx)
		case 4:
			err = m.listEventsAndTasks(ctx)
		case 5:
			err = m.listStats(ctx)
		case 6:
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			m.report(ctx, err)
		}
	}
}

// report prints a domain error and logs the rest. No error here is fatal;
// the menu is the recovery point for every workflow.
func (m *Menu) report(ctx context.Context, err error) {
	if typed := pkgerrors.As(err); typed != nil {
		fmt.Fprintf(m.out, "%s\n", typed.Message())
		return
	}
	m.log.Error(ctx, "workflow failed", err)
	fmt.Fprintln(m.out, "Something went wrong. Please try again.")
}

func (m *Menu) addEvent(ctx context.Context) error {
	name, err := m.p.String("Enter event name: ")
	if err != nil {
		return err
	}

	input := rewards.CreateEventInput{Name: name}

	existing, err := m.svc.Currencies(ctx)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Fprintln(m.out, "There are no currencies available, make one.")
		newCurrency, err := m.promptNewCurrency()
		if err != nil {
			return err
		}
		input.NewCurrency = newCurrency
	} else {
		fmt.Fprintln(m.out, "Existing currencies")
		m.renderCurrencies(existing)
		choice, err := m.p.Int64("Choose an existing currency or create a new one (0): ")
		if err != nil {
			return err
		}
		if choice == 0 {
			newCurrency, err := m.promptNewCurrency()
			if err != nil {
				return err
			}
			input.NewCurrency = newCurrency
		} else {
			input.CurrencyID = choice
		}
	}

	timeLimited, err := m.p.Bool("Is this event time-limited? (1 for Yes, 0 for No): ")
	if err != nil {
		return err
	}
	if timeLimited {
		start, err := m.p.Time("Enter start time (YYYY-MM-DD HH:MM:SS): ")
		if err != nil {
			return err
		}
		end, err := m.p.Time("Enter end time (YYYY-MM-DD HH:MM:SS): ")
		if err != nil {
			return err
		}
		input.Window = &rewards.EventWindow{Start: start, End: end}
	}

	numTasks, err := m.p.Int64(fmt.Sprintf("Enter the number of tasks for Event %s: ", name))
	if err != nil {
		return err
	}
	for i := int64(1); i <= numTasks; i++ {
		description, err := m.p.String("Enter task description: ")
		if err != nil {
			return err
		}
		amount, err := m.p.Int64("Enter the currency amount rewarded upon completion: ")
		if err != nil {
			return err
		}
		input.Tasks = append(input.Tasks, rewards.NewTaskInput{
			Description:    description,
			CurrencyAmount: amount,
		})
	}

	numItems, err := m.p.Int64("Enter the number of store items associated with this event: ")
	if err != nil {
		return err
	}
	for i := int64(1); i <= numItems; i++ {
		description, err := m.p.String("Enter item description: ")
		if err != nil {
			return err
		}
		cost, err := m.p.Int64("Enter cost of the item: ")
		if err != nil {
			return err
		}
		stock, err := m.p.Int64("Enter item stock (-1 for infinity): ")
		if err != nil {
			return err
		}
		category, err := m.p.String("Enter category: ")
		if err != nil {
			return err
		}
		input.Items = append(input.Items, rewards.NewStoreItemInput{
			Description: description,
			Cost:        cost,
			Stock:       stock,
			Category:    category,
		})
	}

	result, err := m.svc.CreateEvent(ctx, input)
	if err != nil {
		return err
	}

	if result.CurrencyCreated {
		fmt.Fprintf(m.out, "New currency created with ID: %d\n", result.Currency.ID)
	}
	fmt.Fprintf(m.out, "Event added successfully with %d tasks and %d store items\n",
		len(result.Tasks), len(result.Items))
	return nil
}

func (m *Menu) markTaskDone(ctx context.Context) error {
	overview, err := m.svc.Overview(ctx)
	if err != nil {
		return err
	}
	m.renderEvents(overview)

	eventID, err := m.p.Int64("Choose which event the task belongs to: ")
	if err != nil {
		return err
	}

	open, err := m.svc.IncompleteTasks(ctx, eventID)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		fmt.Fprintln(m.out, "No tasks left.")
		return nil
	}
	m.renderTasks(open)

	taskID, err := m.p.Int64("Choose completed task: ")
	if err != nil {
		return err
	}

	result, err := m.svc.CompleteTask(ctx, eventID, taskID)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Task %d successfully completed. Keep it up!\n", taskID)
	fmt.Fprintf(m.out, "Currency %s has increased by %d %ss. Happy spending!\n",
		result.Currency.Name, result.Task.CurrencyAmount, result.Currency.Symbol)
	return m.listStats(ctx)
}

func (m *Menu) buyItem(ctx context.Context) error {
	overview, err := m.svc.Overview(ctx)
	if err != nil {
		return err
	}
	m.renderEventsWithBalances(overview)

	eventID, err := m.p.Int64("Enter event associated with the store: ")
	if err != nil {
		return err
	}

	catalog, err := m.svc.StoreCatalog(ctx, eventID)
	if err != nil {
		return err
	}
	m.renderStoreItems(catalog)

	itemID, err := m.p.Int64("Enter item to buy: ")
	if err != nil {
		return err
	}

	if _, err := m.svc.PurchaseItem(ctx, eventID, itemID); err != nil {
		return err
	}
	return m.listStats(ctx)
}

func (m *Menu) listEventsAndTasks(ctx context.Context) error {
	details, err := m.svc.EventsWithTasks(ctx)
	if err != nil {
		return err
	}
	renderEventsAndTasks(m.out, details)
	return nil
}

func (m *Menu) listStats(ctx context.Context) error {
	stats, err := m.svc.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Current Balance")
	renderStats(m.out, stats)
	return nil
}

func (m *Menu) promptNewCurrency() (*rewards.NewCurrencyInput, error) {
	name, err := m.p.String("Enter currency name: ")
	if err != nil {
		return nil, err
	}
	symbol, err := m.p.String("Enter currency symbol: ")
	if err != nil {
		return nil, err
	}
	return &rewards.NewCurrencyInput{Name: name, Symbol: symbol}, nil
}

func (m *Menu) renderCurrencies(all []models.Currency) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Name", Width: 20},
		Column{Header: "Symbol", Width: 10},
	)
	rows := make([][]string, 0, len(all))
	for _, currency := range all {
		rows = append(rows, []string{
			fmt.Sprintf("%d", currency.ID), currency.Name, currency.Symbol,
		})
	}
	table.Render(m.out, rows)
}

func (m *Menu) renderEvents(overview []rewards.EventOverview) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Name", Width: 30},
		Column{Header: "Start Time", Width: 20},
		Column{Header: "End Time", Width: 20},
	)
	rows := make([][]string, 0, len(overview))
	for _, entry := range overview {
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Event.ID),
			entry.Event.Name,
			formatTime(entry.Event.StartTime),
			formatTime(entry.Event.EndTime),
		})
	}
	table.Render(m.out, rows)
}

func (m *Menu) renderEventsWithBalances(overview []rewards.EventOverview) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Event Name", Width: 20},
		Column{Header: "Start Time", Width: 20},
		Column{Header: "End Time", Width: 20},
		Column{Header: "Currency", Width: 20},
		Column{Header: "Balance", Width: 15},
	)
	rows := make([][]string, 0, len(overview))
	for _, entry := range overview {
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Event.ID),
			entry.Event.Name,
			formatTime(entry.Event.StartTime),
			formatTime(entry.Event.EndTime),
			entry.Currency.Name,
			fmt.Sprintf("%d %ss", entry.Currency.Balance, entry.Currency.Symbol),
		})
	}
	table.Render(m.out, rows)
}

func (m *Menu) renderTasks(tasks []models.Task) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Task Description", Width: 60},
		Column{Header: "Amount", Width: 15},
	)
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", task.TaskID),
			task.Description,
			fmt.Sprintf("%d", task.CurrencyAmount),
		})
	}
	table.Render(m.out, rows)
}

func (m *Menu) renderStoreItems(catalog *rewards.Catalog) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Description", Width: 50},
		Column{Header: "Cost", Width: 15},
		Column{Header: "Stock", Width: 10},
		Column{Header: "Category", Width: 20},
	)
	rows := make([][]string, 0, len(catalog.Items))
	for _, item := range catalog.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.ItemID),
			item.Description,
			fmt.Sprintf("%d %s", item.Cost, catalog.Currency.Symbol),
			formatStock(item.Stock),
			item.Category,
		})
	}
	table.Render(m.out, rows)
}

func renderEventsAndTasks(out io.Writer, details []rewards.EventDetail) {
	table := NewTable(
		Column{Header: "EID/TID", Width: 10},
		Column{Header: "Name/Description", Width: 50},
		Column{Header: "Start Time/Reward", Width: 20},
		Column{Header: "End Time/Completed", Width: 20},
	)
	var rows [][]string
	for _, detail := range details {
		rows = append(rows, []string{
			fmt.Sprintf("%d", detail.Event.ID),
			detail.Event.Name,
			formatTime(detail.Event.StartTime),
			formatTime(detail.Event.EndTime),
		})
		for _, task := range detail.Tasks {
			rows = append(rows, []string{
				fmt.Sprintf("%d", task.TaskID),
				task.Description,
				fmt.Sprintf("%d %s", task.CurrencyAmount, detail.Currency.Symbol),
				formatBool(task.IsCompleted),
			})
		}
	}
	table.Render(out, rows)
}

func renderStats(out io.Writer, stats []models.Currency) {
	table := NewTable(
		Column{Header: "ID", Width: 10},
		Column{Header: "Name", Width: 20},
		Column{Header: "Symbol", Width: 10},
		Column{Header: "Balance", Width: 15},
	)
	rows := make([][]string, 0, len(stats))
	for _, currency := range stats {
		rows = append(rows, []string{
			fmt.Sprintf("%d", currency.ID),
			currency.Name,
			currency.Symbol,
			fmt.Sprintf("%d", currency.Balance),
		})
	}
	table.Render(out, rows)
}
