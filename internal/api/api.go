package api

import (
	"time"

	"deadlines/internal/services"
	"deadlines/internal/urgency"
)

// TaskView is a task together with its urgency, ready for display or export.
type TaskView struct {
	ID       int64          `json:"id" yaml:"id"`
	UID      string         `json:"uid" yaml:"uid"`
	Title    string         `json:"title" yaml:"title"`
	Category string         `json:"category,omitempty" yaml:"category,omitempty"`
	DueDate  *time.Time     `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	IsDone   bool           `json:"is_done" yaml:"is_done"`
	DoneDate *time.Time     `json:"done_date,omitempty" yaml:"done_date,omitempty"`
	Bucket   urgency.Bucket `json:"bucket" yaml:"bucket"`
	Color    urgency.Color  `json:"color" yaml:"color"`
	// Remaining is nil when the task has no due date.
	Remaining *int `json:"remaining_days,omitempty" yaml:"remaining_days,omitempty"`
}

// NewTaskView flattens a triaged task.
func NewTaskView(tt services.TriagedTask) TaskView {
	task := tt.Task
	view := TaskView{
		ID:       task.ID,
		UID:      task.UID.String(),
		Title:    task.Title,
		Category: task.CategoryName(),
		DueDate:  task.DueDate,
		IsDone:   task.IsDone,
		DoneDate: task.DoneDate,
		Bucket:   tt.Bucket,
		Color:    tt.Bucket.Color(),
	}
	if tt.HasDue {
		remaining := tt.Remaining
		view.Remaining = &remaining
	}
	return view
}

// RemainingText describes the days left, e.g. "in 3 days" or "no deadline".
func (v TaskView) RemainingText() string {
	if v.Remaining == nil {
		return urgency.Describe(0, false)
	}
	return urgency.Describe(*v.Remaining, true)
}

// ListRequest selects a view. Empty View means today.
type ListRequest struct {
	View     string
	Category string
	// Days overrides the configured window of the urgent view.
	Days *int
}

// TaskList is the result of ListTasks.
type TaskList struct {
	View        string         `json:"view" yaml:"view"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Tasks       []TaskView     `json:"tasks" yaml:"tasks"`
	Counts      map[string]int `json:"counts" yaml:"counts"`
}

// CategoryView is a category as listed to users.
type CategoryView struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
