package cli

import (
	"context"
	"fmt"
)

// ConfigCommand handles the config command. It needs no task store.
type ConfigCommand struct {
	app  *App
	path string
	init bool
}

// NewConfigCommand creates a new config command handler for the file at path
func NewConfigCommand(app *App, path string, init bool) *ConfigCommand {
	return &ConfigCommand{app: app, path: path, init: init}
}

// Execute prints the effective configuration as TOML, or with init writes
// it to the config file when none exists yet.
func (c *ConfigCommand) Execute(ctx context.Context, args []string) error {
	if c.init {
		created, err := c.app.config.LoadOrCreateFile(c.path)
		if err != nil {
			return c.app.errorHandler.Handle("initialize config", err)
		}
		if created {
			fmt.Fprintf(c.app.out, "Created %s\n", c.path)
		} else {
			fmt.Fprintf(c.app.out, "%s already exists\n", c.path)
		}
		return nil
	}

	data, err := c.app.config.Marshal()
	if err != nil {
		return c.app.errorHandler.Handle("show config", err)
	}
	fmt.Fprintf(c.app.out, "# %s\n", c.path)
	_, err = c.app.out.Write(data)
	return err
}
