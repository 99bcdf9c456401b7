package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups tasks under a unique, case-sensitive name.
type Category struct {
	ID   int64
	Name string
}

// NormalizeCategoryName trims surrounding whitespace. Names are otherwise
// compared exactly.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(name)
}

// Task is a to-do item with an optional deadline.
// IsDone and DoneDate always move together: DoneDate is set exactly when
// IsDone is true.
type Task struct {
	ID        int64
	UID       uuid.UUID
	Title     string
	DueDate   *time.Time
	IsDone    bool
	DoneDate  *time.Time
	Category  *Category
	CreatedAt time.Time
}

// NewTask creates an open task with a fresh UID.
func NewTask(title string, due *time.Time) Task {
	return Task{
		UID:     uuid.New(),
		Title:   strings.TrimSpace(title),
		DueDate: due,
	}
}

// HasDueDate reports whether the task has a deadline.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// CategoryName returns the category name or "" when uncategorized.
func (t Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// IsValid checks the title and the done flag invariant.
func (t Task) IsValid() bool {
	if strings.TrimSpace(t.Title) == "" {
		return false
	}
	return t.IsDone == (t.DoneDate != nil)
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
