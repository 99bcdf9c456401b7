// Package query turns the deadline views (today, archive, category, urgent
// window, undone/all, expired) into storage-independent predicates and sort
// orders. Every view is a pure function of "now" and its parameters.
package query

import (
	"strings"
	"time"

	"deadlines/internal/calendar"
	"deadlines/internal/errors"
)

// DefaultWindowDays is the urgent window used when none is configured.
const DefaultWindowDays = 3

// View names a standard task view.
type View string

const (
	ViewToday    View = "today"
	ViewArchive  View = "archive"
	ViewCategory View = "category"
	ViewUrgent   View = "urgent"
	ViewUndone   View = "undone"
	ViewAll      View = "all"
	ViewExpired  View = "expired"
)

// Query is a predicate plus the order its results come back in.
type Query struct {
	View      View
	Predicate Predicate
	Sort      SortOrder
}

// Today shows everything not yet done plus things completed during now's
// calendar day. Things completed on earlier days are hidden.
func Today(now time.Time) Query {
	day := calendar.DayOf(now)
	return Query{
		View:      ViewToday,
		Predicate: Predicate{DoneWithinOrOpen: &day},
		Sort:      SortByDueDate,
	}
}

// Archive shows tasks completed strictly before now's calendar day.
func Archive(now time.Time) Query {
	start := calendar.StartOfDay(now)
	return Query{
		View:      ViewArchive,
		Predicate: Predicate{DoneBefore: &start},
		Sort:      SortByDueDate,
	}
}

// Category is the Today view restricted to one category. The name is
// trimmed; an empty result is rejected.
func Category(now time.Time, name string) (Query, error) {
	trimmed, err := categoryName(name)
	if err != nil {
		return Query{}, err
	}
	q := Today(now)
	q.View = ViewCategory
	q.Predicate = q.Predicate.And(Predicate{Category: &trimmed})
	return q, nil
}

// UrgentWithin shows open tasks due no later than the end of the day that
// is days after today. days == 0 means "due today or overdue".
func UrgentWithin(now time.Time, days int) (Query, error) {
	if days < 0 {
		return Query{}, errors.NewInvalidInputError("days", days, "day window must not be negative")
	}
	limit := calendar.StartOfDayAfter(now, days+1)
	return Query{
		View:      ViewUrgent,
		Predicate: Predicate{DueBefore: &limit, OpenOnly: true},
		Sort:      SortByDueDate,
	}, nil
}

// Undone shows tasks whose done flag is false, optionally within a category.
// An empty category means no category filter.
func Undone(category string) Query {
	done := false
	q := Query{View: ViewUndone, Predicate: Predicate{IsDone: &done}, Sort: SortByDueDate}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		q.Predicate.Category = &trimmed
	}
	return q
}

// All shows every task, optionally within a category.
func All(category string) Query {
	q := Query{View: ViewAll, Sort: SortByDueDate}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		q.Predicate.Category = &trimmed
	}
	return q
}

// Expired selects open tasks whose due date is at or before now. Used for
// badge counts.
func Expired(now time.Time) Query {
	return Query{
		View:      ViewExpired,
		Predicate: Predicate{DueAtOrBefore: &now, OpenOnly: true},
		Sort:      SortByDueDate,
	}
}

// Builder resolves views by name, applying a configured default window.
type Builder struct {
	WindowDays int
}

// NewBuilder returns a Builder whose urgent view defaults to windowDays.
// A negative value falls back to DefaultWindowDays.
func NewBuilder(windowDays int) *Builder {
	if windowDays < 0 {
		windowDays = DefaultWindowDays
	}
	return &Builder{WindowDays: windowDays}
}

// Params carries the optional view parameters.
type Params struct {
	Category string
	// Days overrides the builder's window for ViewUrgent when non-nil.
	Days *int
}

// Build resolves a view into a Query.
func (b *Builder) Build(view View, now time.Time, params Params) (Query, error) {
	switch view {
	case ViewToday, "":
		if strings.TrimSpace(params.Category) != "" {
			return Category(now, params.Category)
		}
		return Today(now), nil
	case ViewCategory:
		return Category(now, params.Category)
	case ViewArchive:
		q := Archive(now)
		if trimmed := strings.TrimSpace(params.Category); trimmed != "" {
			q.Predicate.Category = &trimmed
		}
		return q, nil
	case ViewUrgent:
		days := b.WindowDays
		if params.Days != nil {
			days = *params.Days
		}
		q, err := UrgentWithin(now, days)
		if err != nil {
			return Query{}, err
		}
		if trimmed := strings.TrimSpace(params.Category); trimmed != "" {
			q.Predicate.Category = &trimmed
		}
		return q, nil
	case ViewUndone:
		return Undone(params.Category), nil
	case ViewAll:
		return All(params.Category), nil
	case ViewExpired:
		return Expired(now), nil
	default:
		return Query{}, errors.NewInvalidInputError("view", string(view), "unknown view")
	}
}

// ParseView converts a view name, case-insensitively.
func ParseView(name string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(name)))
	switch v {
	case ViewToday, ViewArchive, ViewCategory, ViewUrgent, ViewUndone, ViewAll, ViewExpired:
		return v, nil
	case "":
		return ViewToday, nil
	default:
		return "", errors.NewInvalidInputError("view", name, "unknown view")
	}
}

func categoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewInvalidInputError("category", name, "category name must not be empty")
	}
	return trimmed, nil
}
