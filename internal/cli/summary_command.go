package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"deadlines/internal/api"
	"deadlines/internal/urgency"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app      *App
	category string
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App, category string) *SummaryCommand {
	return &SummaryCommand{app: app, category: category}
}

// Execute prints open tasks per urgency bucket and the expired count
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	list, err := c.app.businessAPI.ListTasks(ctx, api.ListRequest{View: "undone", Category: c.category})
	if err != nil {
		return c.app.errorHandler.Handle("summarize tasks", err)
	}
	expired, err := c.app.businessAPI.CountExpired(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("summarize tasks", err)
	}

	table := newTaskTable(c.app)
	width := 30

	fmt.Fprintln(c.app.out, strings.Repeat("=", width))
	fmt.Fprintf(c.app.out, "Open: %s\n", english.Plural(len(list.Tasks), "task", ""))
	fmt.Fprintln(c.app.out, strings.Repeat("-", width))
	for _, bucket := range urgency.Buckets() {
		fmt.Fprintf(c.app.out, "%s %4d\n", table.badge(bucket), list.Counts[bucket.String()])
	}
	fmt.Fprintln(c.app.out, strings.Repeat("-", width))
	fmt.Fprintf(c.app.out, "Expired: %d\n", expired)
	fmt.Fprintln(c.app.out, strings.Repeat("=", width))
	return nil
}
