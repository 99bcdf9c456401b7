package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"gopkg.in/yaml.v3"

	"deadlines/internal/api"
	"deadlines/internal/errors"
	"deadlines/internal/urgency"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(name string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatTable, nil
	default:
		return "", errors.NewInvalidInputError("format", name, "supported formats are table, json and yaml")
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// ANSI 256-colour codes for the bucket badges.
var badgeColors = map[urgency.Color]lipgloss.Color{
	urgency.ColorRed:    lipgloss.Color("196"),
	urgency.ColorOrange: lipgloss.Color("208"),
	urgency.ColorYellow: lipgloss.Color("220"),
	urgency.ColorGreen:  lipgloss.Color("42"),
	urgency.ColorBlue:   lipgloss.Color("39"),
}

// taskTable renders task views as aligned text lines with coloured badges.
type taskTable struct {
	out        io.Writer
	renderer   *lipgloss.Renderer
	color      bool
	timeFormat string
	now        time.Time
}

func newTaskTable(app *App) *taskTable {
	return &taskTable{
		out:        app.out,
		renderer:   lipgloss.NewRenderer(app.out),
		color:      app.config.Display.Color,
		timeFormat: app.config.Display.TimeFormat,
		now:        app.clock.Now(),
	}
}

func (t *taskTable) badge(bucket urgency.Bucket) string {
	label := fmt.Sprintf("%-9s", bucket.String())
	if !t.color {
		return label
	}
	return t.renderer.NewStyle().
		Foreground(badgeColors[bucket.Color()]).
		Bold(true).
		Render(label)
}

func (t *taskTable) faint(s string) string {
	if !t.color {
		return s
	}
	return t.renderer.NewStyle().Faint(true).Render(s)
}

// Row renders one task, e.g.
//
//	#12  urgent    in 2 days      Book flights [Travel]
func (t *taskTable) Row(v api.TaskView) string {
	var when string
	if v.IsDone && v.DoneDate != nil {
		when = "done " + humanize.RelTime(*v.DoneDate, t.now, "ago", "from now")
	} else {
		when = v.RemainingText()
	}

	line := fmt.Sprintf("#%-4d %s %-14s %s", v.ID, t.badge(v.Bucket), when, v.Title)
	if v.Category != "" {
		line += " " + t.faint("["+v.Category+"]")
	}
	if v.DueDate != nil && !v.IsDone {
		line += " " + t.faint("due "+v.DueDate.In(t.now.Location()).Format(t.timeFormat))
	}
	return line
}

// Render writes every row followed by a bucket summary line.
func (t *taskTable) Render(list *api.TaskList) error {
	if len(list.Tasks) == 0 {
		_, err := fmt.Fprintln(t.out, "No tasks found")
		return err
	}
	for _, v := range list.Tasks {
		if _, err := fmt.Fprintln(t.out, t.Row(v)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.out, summarizeCounts(len(list.Tasks), list.Counts))
	return err
}

// summarizeCounts renders "3 tasks: 1 today, 2 urgent" in bucket order.
func summarizeCounts(total int, counts map[string]int) string {
	var parts []string
	for _, b := range urgency.Buckets() {
		if n := counts[b.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, b))
		}
	}
	summary := english.Plural(total, "task", "")
	if len(parts) == 0 {
		return summary
	}
	return summary + ": " + strings.Join(parts, ", ")
}
