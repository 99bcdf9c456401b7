package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"deadlines/internal/widget"
)

// WidgetOptions carries the widget command flags
type WidgetOptions struct {
	// Days is nil to use the configured urgent window.
	Days *int
	// Out is a file path; empty writes to the command output.
	Out string
	// Diagnose prints CBOR diagnostic notation instead of the binary payload.
	Diagnose bool
}

// WidgetCommand handles the widget command
type WidgetCommand struct {
	app  *App
	opts WidgetOptions
}

// NewWidgetCommand creates a new widget command handler
func NewWidgetCommand(app *App, opts WidgetOptions) *WidgetCommand {
	return &WidgetCommand{app: app, opts: opts}
}

// Execute encodes the urgent-window digest for the companion widget
func (c *WidgetCommand) Execute(ctx context.Context, args []string) error {
	days := c.app.config.Urgency.WindowDays
	if c.opts.Days != nil {
		days = *c.opts.Days
	}

	digest, err := c.app.businessAPI.WidgetDigest(ctx, days)
	if err != nil {
		return c.app.errorHandler.Handle("build widget digest", err)
	}

	var buf bytes.Buffer
	if err := widget.Encode(&buf, digest); err != nil {
		return c.app.errorHandler.Handle("encode widget digest", err)
	}

	if c.opts.Diagnose {
		notation, err := widget.Diagnose(buf.Bytes())
		if err != nil {
			return c.app.errorHandler.Handle("encode widget digest", err)
		}
		fmt.Fprintln(c.app.out, notation)
		return nil
	}

	if c.opts.Out == "" {
		_, err := c.app.out.Write(buf.Bytes())
		return c.app.errorHandler.Handle("write widget digest", err)
	}
	if err := os.WriteFile(c.opts.Out, buf.Bytes(), 0o644); err != nil {
		return c.app.errorHandler.Handle("write widget digest", err)
	}
	fmt.Fprintf(c.app.out, "Wrote %d messages (%d expired) to %s\n", digest.Len(), digest.Expired, c.opts.Out)
	return nil
}
