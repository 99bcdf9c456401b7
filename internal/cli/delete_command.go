package cli

import (
	"context"
	"fmt"

	"deadlines/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the task named by the single argument. Its category is kept.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("delete task", errors.NewInvalidInputError("id", args, "usage: sd delete <id>"))
	}
	id, err := parseID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	task, err := c.app.businessAPI.GetTask(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}
	if err := c.app.businessAPI.DeleteTask(ctx, id); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.Title)
	return nil
}
