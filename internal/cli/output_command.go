package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deadlines/internal/api"
	"deadlines/internal/errors"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute exports tasks: sd output format=csv|json|yaml [view]. The view
// defaults to all.
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.app.errorHandler.Handle("export tasks", errors.NewInvalidInputError("command", "output", "usage: sd output format=csv [view]"))
	}

	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return c.app.errorHandler.Handle("export tasks", errors.NewInvalidInputError("format", format, "invalid format option"))
	}
	format = strings.TrimPrefix(format, "format=")

	view := "all"
	if len(args) > 1 {
		view = args[1]
	}

	list, err := c.app.businessAPI.ListTasks(ctx, api.ListRequest{View: view})
	if err != nil {
		return c.app.errorHandler.Handle("export tasks", err)
	}

	switch format {
	case "csv":
		return c.app.errorHandler.Handle("export tasks", c.outputCSV(list))
	case "json":
		return c.app.errorHandler.Handle("export tasks", writeJSON(c.app.out, list.Tasks))
	case "yaml":
		return c.app.errorHandler.Handle("export tasks", writeYAML(c.app.out, list.Tasks))
	default:
		return c.app.errorHandler.Handle("export tasks", errors.NewInvalidInputError("format", format, "unsupported format"))
	}
}

// outputCSV writes one row per task
func (c *OutputCommand) outputCSV(list *api.TaskList) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"ID", "UID", "Title", "Category", "Due Date", "Done", "Done Date", "Bucket", "Days Left"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range list.Tasks {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.UID,
			task.Title,
			task.Category,
			formatOptionalTime(task.DueDate),
			strconv.FormatBool(task.IsDone),
			formatOptionalTime(task.DoneDate),
			task.Bucket.String(),
			"",
		}
		if task.Remaining != nil {
			row[8] = strconv.Itoa(*task.Remaining)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
