package cli

import (
	"context"
	"fmt"
	"strings"

	"deadlines/internal/errors"
)

// AddOptions carries the add command flags
type AddOptions struct {
	Due      string
	Category string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute runs the add command. All arguments form the title.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		return c.app.errorHandler.Handle("add task", errors.NewInvalidInputError("title", title, "usage: sd add <title> [--due DATE] [--category NAME]"))
	}

	due, err := parseDue(c.opts.Due, c.app.clock.Now())
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	view, err := c.app.businessAPI.AddTask(ctx, title, due, c.opts.Category)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added %s\n", newTaskTable(c.app).Row(*view))
	return nil
}
