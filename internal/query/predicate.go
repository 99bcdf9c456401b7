package query

import (
	"time"

	"deadlines/internal/calendar"
)

// Predicate is a conjunction of the clauses a deadline view needs. A nil or
// false clause does not constrain. Storage backends translate it; Matches
// evaluates it in memory with identical semantics.
type Predicate struct {
	// DoneWithinOrOpen keeps tasks completed inside the day window, plus
	// tasks that are not completed at all.
	DoneWithinOrOpen *calendar.DayRange

	// DoneBefore keeps tasks completed strictly before the instant.
	DoneBefore *time.Time

	// DueBefore keeps tasks due strictly before the instant. Tasks without
	// a due date never match.
	DueBefore *time.Time

	// DueAtOrBefore keeps tasks due at or before the instant. Tasks without
	// a due date never match.
	DueAtOrBefore *time.Time

	// OpenOnly keeps tasks without a completion date.
	OpenOnly bool

	// IsDone keeps tasks whose done flag equals the value.
	IsDone *bool

	// Category keeps tasks filed under exactly this name. Uncategorized
	// tasks never match.
	Category *string
}

// Fields is the subset of a task that predicates and sort orders read.
type Fields struct {
	ID       int64
	DueDate  *time.Time
	IsDone   bool
	DoneDate *time.Time
	Category *string
}

// Matches reports whether the task satisfies every clause. It is the
// in-memory reference that storage-side filters are checked against.
func (p Predicate) Matches(f Fields) bool {
	if p.DoneWithinOrOpen != nil && f.DoneDate != nil && !p.DoneWithinOrOpen.Contains(*f.DoneDate) {
		return false
	}
	if p.DoneBefore != nil && (f.DoneDate == nil || !f.DoneDate.Before(*p.DoneBefore)) {
		return false
	}
	if p.DueBefore != nil && (f.DueDate == nil || !f.DueDate.Before(*p.DueBefore)) {
		return false
	}
	if p.DueAtOrBefore != nil && (f.DueDate == nil || f.DueDate.After(*p.DueAtOrBefore)) {
		return false
	}
	if p.OpenOnly && f.DoneDate != nil {
		return false
	}
	if p.IsDone != nil && f.IsDone != *p.IsDone {
		return false
	}
	if p.Category != nil && (f.Category == nil || *f.Category != *p.Category) {
		return false
	}
	return true
}

// And merges two predicates. Clauses set on both sides must agree; when
// they do not, the clause from other wins.
func (p Predicate) And(other Predicate) Predicate {
	merged := p
	if other.DoneWithinOrOpen != nil {
		merged.DoneWithinOrOpen = other.DoneWithinOrOpen
	}
	if other.DoneBefore != nil {
		merged.DoneBefore = other.DoneBefore
	}
	if other.DueBefore != nil {
		merged.DueBefore = other.DueBefore
	}
	if other.DueAtOrBefore != nil {
		merged.DueAtOrBefore = other.DueAtOrBefore
	}
	if other.OpenOnly {
		merged.OpenOnly = true
	}
	if other.IsDone != nil {
		merged.IsDone = other.IsDone
	}
	if other.Category != nil {
		merged.Category = other.Category
	}
	return merged
}
