package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
)

// timeLayout is the fixed timestamp format used across prompts and tables.
const timeLayout = "2006-01-02 15:04:05"

// Column describes one table column: a header and a fixed content width.
type Column struct {
	Header string
	Width  int
}

// Table renders rows inside a box-drawn frame with fixed column widths.
type Table struct {
	columns []Column
}

func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

func (t *Table) Render(w io.Writer, rows [][]string) {
	t.border(w, "┌", "┬", "┐")
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	t.row(w, headers)
	t.border(w, "├", "┼", "┤")
	for _, cells := range rows {
		t.row(w, cells)
	}
	t.border(w, "└", "┴", "┘")
}

func (t *Table) border(w io.Writer, left, mid, right string) {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("─", col.Width+2)
	}
	fmt.Fprintln(w, left+strings.Join(parts, mid)+right)
}

func (t *Table) row(w io.Writer, cells []string) {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = " " + pad(cell, col.Width) + " "
	}
	fmt.Fprintln(w, "│"+strings.Join(parts, "│")+"│")
}

// pad right-pads to width, truncating overlong cells so the frame stays
// aligned.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return "N/A"
	}
	return ts.Format(timeLayout)
}

func formatStock(stock int64) string {
	if stock == models.UnlimitedStock {
		return "INF"
	}
	return fmt.Sprintf("%d", stock)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
