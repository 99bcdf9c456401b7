package cli

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"deadlines/internal/api"
	"deadlines/internal/calendar"
	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/errors"
)

// App holds what every command handler needs
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	clock        clock.Clock
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewApp creates a CLI application writing to stdout
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	return NewAppWithOptions(businessAPI, cfg, os.Stdout, clock.Real())
}

// NewAppWithOptions creates a CLI application with an explicit writer and clock
func NewAppWithOptions(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer, clk clock.Clock) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &App{
		businessAPI:  businessAPI,
		config:       cfg,
		clock:        clk,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Config returns the configuration the app was built with
func (a *App) Config() *config.Config {
	return a.config
}

var dueShorthand = regexp.MustCompile(`^(\d+)(d|w|mo|y)$`)

// parseDue parses a due date argument relative to now:
//
//	today, tomorrow          end of that day
//	3d, 2w, 1mo, 1y          end of the day that far ahead
//	2024-06-01               end of that day
//	2024-06-01 17:30         that exact minute
//
// An empty value means no due date.
func parseDue(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return nil, nil
	case "today":
		return endOfDay(now), nil
	case "tomorrow":
		return endOfDay(now.AddDate(0, 0, 1)), nil
	}

	if matches := dueShorthand.FindStringSubmatch(value); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, errors.NewInvalidInputError("due", value, "invalid number")
		}
		switch matches[2] {
		case "d":
			return endOfDay(now.AddDate(0, 0, n)), nil
		case "w":
			return endOfDay(now.AddDate(0, 0, 7*n)), nil
		case "mo":
			return endOfDay(now.AddDate(0, n, 0)), nil
		case "y":
			return endOfDay(now.AddDate(n, 0, 0)), nil
		}
	}

	if t, err := time.ParseInLocation("2006-01-02 15:04", value, now.Location()); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, now.Location()); err == nil {
		return endOfDay(t), nil
	}

	return nil, errors.NewInvalidInputError("due", value, "use YYYY-MM-DD, YYYY-MM-DD HH:MM, today, tomorrow or a shorthand like 3d")
}

// endOfDay returns the last second of t's calendar day
func endOfDay(t time.Time) *time.Time {
	end := calendar.StartOfDayAfter(t, 1).Add(-time.Second)
	return &end
}

// parseID parses a task id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "task id must be a positive number")
	}
	return id, nil
}
