package query

import "sort"

// SortOrder names how a view's results are ordered.
type SortOrder string

const (
	// SortByDueDate orders by due date ascending, tasks without a due date
	// last, ties broken by ascending id.
	SortByDueDate SortOrder = "due_date"
)

// Less reports whether a sorts before b. Together with Predicate.Matches it
// is the in-memory reference for what storage must return.
func (s SortOrder) Less(a, b Fields) bool {
	if s == SortByDueDate {
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
	}
	return a.ID < b.ID
}

// Sort orders fields in place.
func (s SortOrder) Sort(rows []Fields) {
	sort.SliceStable(rows, func(i, j int) bool {
		return s.Less(rows[i], rows[j])
	})
}
