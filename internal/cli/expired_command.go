package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"
)

// ExpiredCommand handles the expired command
type ExpiredCommand struct {
	app   *App
	quiet bool
}

// NewExpiredCommand creates a new expired command handler. Quiet prints the
// bare count, for status bars.
func NewExpiredCommand(app *App, quiet bool) *ExpiredCommand {
	return &ExpiredCommand{app: app, quiet: quiet}
}

// Execute prints how many open tasks are past due
func (c *ExpiredCommand) Execute(ctx context.Context, args []string) error {
	count, err := c.app.businessAPI.CountExpired(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("count expired tasks", err)
	}

	if c.quiet {
		fmt.Fprintln(c.app.out, count)
		return nil
	}
	fmt.Fprintln(c.app.out, english.Plural(count, "expired task", ""))
	return nil
}
