package cli

import (
	"context"
	"io"

	"deadlines/internal/api"
)

// ListOptions carries the list command flags
type ListOptions struct {
	Category string
	// Days is nil unless --days was given.
	Days   *int
	Format string
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute runs the list command. The optional argument names the view.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	view := c.app.config.Commands.ListDefaultView
	if len(args) > 0 {
		view = args[0]
	}

	formatName := c.opts.Format
	if formatName == "" {
		formatName = c.app.config.Commands.ListDefaultFormat
	}
	format, err := parseFormat(formatName)
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	list, err := c.app.businessAPI.ListTasks(ctx, api.ListRequest{
		View:     view,
		Category: c.opts.Category,
		Days:     c.opts.Days,
	})
	if err != nil {
		return c.app.errorHandler.Handle("list tasks", err)
	}

	return c.app.errorHandler.Handle("print tasks", printTaskList(c.app, c.app.out, format, list))
}

func printTaskList(app *App, w io.Writer, format outputFormat, list *api.TaskList) error {
	switch format {
	case formatJSON:
		return writeJSON(w, list)
	case formatYAML:
		return writeYAML(w, list)
	default:
		return newTaskTable(app).Render(list)
	}
}
