package cli

import (
	"context"
	"fmt"

	"deadlines/internal/errors"
	"deadlines/internal/services"
)

// EditOptions carries the edit command flags. Nil fields are left unchanged.
type EditOptions struct {
	Title    *string
	Due      *string
	ClearDue bool
	// Category "" removes the task from its category.
	Category *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute applies the flags to the task named by the single argument
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("edit task", errors.NewInvalidInputError("id", args, "usage: sd edit <id> [--title T] [--due DATE|--clear-due] [--category NAME]"))
	}
	id, err := parseID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	update := services.TaskUpdate{
		Title:    c.opts.Title,
		ClearDue: c.opts.ClearDue,
		Category: c.opts.Category,
	}
	if c.opts.Due != nil && !c.opts.ClearDue {
		due, err := parseDue(*c.opts.Due, c.app.clock.Now())
		if err != nil {
			return c.app.errorHandler.Handle("edit task", err)
		}
		update.DueDate = due
		update.ClearDue = due == nil
	}
	if update.Title == nil && update.DueDate == nil && !update.ClearDue && update.Category == nil {
		return c.app.errorHandler.Handle("edit task", errors.NewInvalidInputError("flags", nil, "nothing to change"))
	}

	view, err := c.app.businessAPI.EditTask(ctx, id, update)
	if err != nil {
		return c.app.errorHandler.Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated %s\n", newTaskTable(c.app).Row(*view))
	return nil
}
