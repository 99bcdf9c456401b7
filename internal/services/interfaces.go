package services

import (
	"context"
	"log/slog"
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/domain"
	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite"
	"deadlines/internal/urgency"
)

// TaskObserver receives the id of a task whose completion state flipped or
// that was deleted. It is called synchronously, after the store accepted the
// change. Observers should re-query rather than trust any cached state.
type TaskObserver func(taskID int64)

// TaskUpdate carries the edits applied by UpdateTask. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Title    *string
	DueDate  *time.Time
	ClearDue bool
	// Category names the new category; an empty string removes it.
	Category *string
}

// TriagedTask pairs a task with its urgency at the time it was assessed.
type TriagedTask struct {
	Task      *domain.Task   `json:"task"`
	Bucket    urgency.Bucket `json:"bucket"`
	Remaining int            `json:"remaining_days"`
	HasDue    bool           `json:"has_due"`
}

// Assessment returns the urgency half of the triaged task.
func (t TriagedTask) Assessment() urgency.Assessment {
	return urgency.Assessment{Bucket: t.Bucket, Remaining: t.Remaining, HasDue: t.HasDue}
}

// TaskService handles the task lifecycle and the done-or-deleted event
type TaskService interface {
	// NewTask returns an unsaved task with a fresh UID
	NewTask(title string, due *time.Time) domain.Task

	CreateTask(ctx context.Context, title string, due *time.Time, category string) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error)

	// ToggleDone flips completion, stamping or clearing the done date
	ToggleDone(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// SetObserver replaces the registered observer. Nil unregisters.
	SetObserver(observer TaskObserver)
}

// QueryService answers the standard task views
type QueryService interface {
	View(ctx context.Context, view query.View, params query.Params) ([]*domain.Task, error)

	Today(ctx context.Context) ([]*domain.Task, error)
	Archive(ctx context.Context) ([]*domain.Task, error)
	ByCategory(ctx context.Context, name string) ([]*domain.Task, error)
	UrgentWithin(ctx context.Context, days int) ([]*domain.Task, error)
	Undone(ctx context.Context, category string) ([]*domain.Task, error)
	All(ctx context.Context, category string) ([]*domain.Task, error)

	// CountExpired counts open tasks whose due date has passed
	CountExpired(ctx context.Context) (int, error)

	GetOrCreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error)
}

// TriageService classifies tasks into urgency buckets
type TriageService interface {
	Assess(task *domain.Task) TriagedTask
	AssessAt(task *domain.Task, now time.Time) TriagedTask
	AssessAll(tasks []*domain.Task) []TriagedTask

	// CountByBucket counts open tasks per bucket. Done tasks are skipped.
	CountByBucket(triaged []TriagedTask) map[urgency.Bucket]int
	Rule() urgency.Rule
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService   TaskService
	QueryService  QueryService
	TriageService TriageService
}

// NewServiceContainer wires the services over one repository. A nil config
// means defaults, a nil clock the wall clock and a nil logger no logging.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, clk clock.Clock, logger *slog.Logger) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	rule, err := urgency.ParseRule(cfg.Urgency.DayRule)
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		TaskService:   NewTaskService(repo, cfg, clk, logger),
		QueryService:  NewQueryService(repo, cfg, clk, logger),
		TriageService: NewTriageService(rule, clk),
	}, nil
}
