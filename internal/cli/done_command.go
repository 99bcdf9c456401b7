package cli

import (
	"context"
	"fmt"

	"deadlines/internal/errors"
)

// DoneCommand handles the done command
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute toggles completion of the task named by the single argument
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errorHandler.Handle("toggle task", errors.NewInvalidInputError("id", args, "usage: sd done <id>"))
	}
	id, err := parseID(args[0])
	if err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	view, err := c.app.businessAPI.ToggleDone(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	if view.IsDone {
		fmt.Fprintf(c.app.out, "Completed: %s\n", view.Title)
	} else {
		fmt.Fprintf(c.app.out, "Reopened: %s (%s)\n", view.Title, view.RemainingText())
	}
	return nil
}
