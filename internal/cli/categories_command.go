package cli

import (
	"context"
	"fmt"
)

// CategoriesCommand handles the categories command
type CategoriesCommand struct {
	app        *App
	activeOnly bool
	format     string
}

// NewCategoriesCommand creates a new categories command handler
func NewCategoriesCommand(app *App, activeOnly bool, format string) *CategoriesCommand {
	return &CategoriesCommand{app: app, activeOnly: activeOnly, format: format}
}

// Execute lists categories by name
func (c *CategoriesCommand) Execute(ctx context.Context, args []string) error {
	format, err := parseFormat(c.format)
	if err != nil {
		return c.app.errorHandler.Handle("list categories", err)
	}

	categories, err := c.app.businessAPI.ListCategories(ctx, c.activeOnly)
	if err != nil {
		return c.app.errorHandler.Handle("list categories", err)
	}

	switch format {
	case formatJSON:
		return c.app.errorHandler.Handle("print categories", writeJSON(c.app.out, categories))
	case formatYAML:
		return c.app.errorHandler.Handle("print categories", writeYAML(c.app.out, categories))
	}

	if len(categories) == 0 {
		fmt.Fprintln(c.app.out, "No categories found")
		return nil
	}
	for _, category := range categories {
		fmt.Fprintf(c.app.out, "#%-4d %s\n", category.ID, category.Name)
	}
	return nil
}
