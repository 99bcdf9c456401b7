package sqlite

import (
	"time"
)

// dbTimeLayout is fixed width and always UTC, so stored values order
// lexicographically in the same order as the instants they encode.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value as a fixed-width UTC timestamp for database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored timestamp. Plain RFC3339 values with any
// offset are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
