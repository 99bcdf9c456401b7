// Package urgency classifies tasks by how soon they are due.
//
// Classification is a pure function of an integer day count. The day count
// is derived from a due date and a caller-supplied "now"; nothing in this
// package reads the clock, so results are reproducible.
package urgency

import (
	"fmt"
	"math"
	"strings"
	"time"

	"deadlines/internal/calendar"
)

// Classify maps the days remaining until a due date onto a bucket.
//
//	<= 1    Today
//	2..3    Urgent
//	4..7    Worrying
//	8..15   Nice
//	>= 16   Nevermind
func Classify(remaining int) Bucket {
	switch {
	case remaining <= 1:
		return Today
	case remaining <= 3:
		return Urgent
	case remaining <= 7:
		return Worrying
	case remaining <= 15:
		return Nice
	default:
		return Nevermind
	}
}

// Rule selects how remaining days are counted.
type Rule int

const (
	// RuleCalendarDays counts midnight boundaries between today and the due
	// day in the local calendar. Due today is 0, due yesterday is -1.
	RuleCalendarDays Rule = iota

	// RuleElapsedPlusOne counts whole 24h periods from now until the due
	// instant, truncated toward zero, plus one. Any due instant less than
	// 24h away in either direction is 1: later today, early tomorrow and
	// overdue by a few hours all count as 1. Overdue by 24h up to 48h is 0.
	// Kept for compatibility with stores populated by older clients.
	RuleElapsedPlusOne
)

// String returns the configuration name of the rule.
func (r Rule) String() string {
	switch r {
	case RuleCalendarDays:
		return "calendar"
	case RuleElapsedPlusOne:
		return "elapsed+1"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule converts a configuration name into a Rule.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "calendar":
		return RuleCalendarDays, nil
	case "elapsed+1", "elapsed":
		return RuleElapsedPlusOne, nil
	default:
		return RuleCalendarDays, fmt.Errorf("urgency: unknown day rule %q", name)
	}
}

// DaysRemaining counts days until due under the rule. The boolean is false
// when there is no due date; the count is then meaningless and the task
// classifies as Nevermind.
func (r Rule) DaysRemaining(due *time.Time, now time.Time) (int, bool) {
	if due == nil {
		return 0, false
	}
	if r == RuleElapsedPlusOne {
		days := due.Sub(now).Hours() / 24
		return int(math.Trunc(days)) + 1, true
	}
	return calendar.DaysBetween(now, *due), true
}

// Assess classifies a due date under the rule.
func (r Rule) Assess(due *time.Time, now time.Time) Assessment {
	remaining, ok := r.DaysRemaining(due, now)
	if !ok {
		return Assessment{Bucket: Nevermind}
	}
	return Assessment{Bucket: Classify(remaining), Remaining: remaining, HasDue: true}
}

// DaysRemaining counts calendar days from now until due. See RuleCalendarDays.
func DaysRemaining(due *time.Time, now time.Time) (int, bool) {
	return RuleCalendarDays.DaysRemaining(due, now)
}

// Assessment is the derived urgency of a single due date.
type Assessment struct {
	Bucket    Bucket
	Remaining int
	HasDue    bool
}

// Color returns the badge colour of the assessed bucket.
func (a Assessment) Color() Color {
	return a.Bucket.Color()
}

// Assess classifies a due date with the calendar-day rule.
func Assess(due *time.Time, now time.Time) Assessment {
	return RuleCalendarDays.Assess(due, now)
}

// StatusAndRemaining returns the bucket together with the raw day count, for
// callers that style by bucket and print the count ("in 3 days"). ok is false
// when there is no due date.
func StatusAndRemaining(due *time.Time, now time.Time) (bucket Bucket, remaining int, ok bool) {
	a := Assess(due, now)
	return a.Bucket, a.Remaining, a.HasDue
}

// Describe renders a remaining-day count as short display text.
func Describe(remaining int, hasDue bool) string {
	switch {
	case !hasDue:
		return "no deadline"
	case remaining == 0:
		return "today"
	case remaining == 1:
		return "tomorrow"
	case remaining == -1:
		return "yesterday"
	case remaining < 0:
		return fmt.Sprintf("%d days ago", -remaining)
	default:
		return fmt.Sprintf("in %d days", remaining)
	}
}
