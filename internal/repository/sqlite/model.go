package sqlite

import "time"

// Task is a row of the tasks table joined with its category name.
type Task struct {
	ID           int64
	UID          string
	Title        string
	DueDate      *time.Time // NULL when the task has no deadline
	IsDone       bool
	DoneDate     *time.Time // NULL unless IsDone
	CategoryID   *int64
	CategoryName *string // filled by reads, ignored by writes
	CreatedAt    time.Time
}

// Category is a row of the categories table.
type Category struct {
	ID   int64
	Name string
}
