package api

import (
	"context"
	"log/slog"
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/domain"
	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite"
	"deadlines/internal/services"
	"deadlines/internal/widget"
)

// BusinessAPI defines the operations offered to the command line and other front ends
type BusinessAPI interface {
	// ========== Task Management Workflows ==========

	// AddTask validates and stores a new task, creating its category on first use
	AddTask(ctx context.Context, title string, due *time.Time, category string) (*TaskView, error)

	// EditTask changes title, due date or category
	EditTask(ctx context.Context, id int64, update services.TaskUpdate) (*TaskView, error)

	// ToggleDone marks an open task done or reopens a done one
	ToggleDone(ctx context.Context, id int64) (*TaskView, error)

	// DeleteTask removes a task; its category is kept
	DeleteTask(ctx context.Context, id int64) error

	// OnTaskDoneOrDeleted registers the single observer of completion flips and deletions
	OnTaskDoneOrDeleted(observer services.TaskObserver)

	// ========== Query Operations ==========

	// GetTask returns a single task by ID
	GetTask(ctx context.Context, id int64) (*TaskView, error)

	// ListTasks resolves a view and triages its tasks
	ListTasks(ctx context.Context, req ListRequest) (*TaskList, error)

	// CountExpired counts open tasks that are past due
	CountExpired(ctx context.Context) (int, error)

	// ========== Categories ==========

	GetOrCreateCategory(ctx context.Context, name string) (*CategoryView, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]CategoryView, error)

	// ========== Widget ==========

	// WidgetDigest returns the open tasks due within days, most urgent first
	WidgetDigest(ctx context.Context, days int) (*widget.Digest, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	tasks   services.TaskService
	queries services.QueryService
	triage  services.TriageService
	clock   clock.Clock
}

// NewBusinessAPI creates a BusinessAPI over a service container
func NewBusinessAPI(container *services.ServiceContainer, clk clock.Clock) BusinessAPI {
	if clk == nil {
		clk = clock.Real()
	}
	return &businessAPIImpl{
		tasks:   container.TaskService,
		queries: container.QueryService,
		triage:  container.TriageService,
		clock:   clk,
	}
}

// NewBusinessAPIFromRepository wires the services over repo and returns the API
func NewBusinessAPIFromRepository(repo sqlite.Repository, cfg *config.Config, clk clock.Clock, logger *slog.Logger) (BusinessAPI, error) {
	if clk == nil {
		clk = clock.Real()
	}
	container, err := services.NewServiceContainer(repo, cfg, clk, logger)
	if err != nil {
		return nil, err
	}
	return NewBusinessAPI(container, clk), nil
}

func (b *businessAPIImpl) view(task *domain.Task) *TaskView {
	v := NewTaskView(b.triage.Assess(task))
	return &v
}

// ========== Task Management Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, title string, due *time.Time, category string) (*TaskView, error) {
	task, err := b.tasks.CreateTask(ctx, title, due, category)
	if err != nil {
		return nil, err
	}
	return b.view(task), nil
}

func (b *businessAPIImpl) EditTask(ctx context.Context, id int64, update services.TaskUpdate) (*TaskView, error) {
	task, err := b.tasks.UpdateTask(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return b.view(task), nil
}

func (b *businessAPIImpl) ToggleDone(ctx context.Context, id int64) (*TaskView, error) {
	task, err := b.tasks.ToggleDone(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.view(task), nil
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id int64) error {
	return b.tasks.DeleteTask(ctx, id)
}

func (b *businessAPIImpl) OnTaskDoneOrDeleted(observer services.TaskObserver) {
	b.tasks.SetObserver(observer)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id int64) (*TaskView, error) {
	task, err := b.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.view(task), nil
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, req ListRequest) (*TaskList, error) {
	view, err := query.ParseView(req.View)
	if err != nil {
		return nil, err
	}

	tasks, err := b.queries.View(ctx, view, query.Params{Category: req.Category, Days: req.Days})
	if err != nil {
		return nil, err
	}

	triaged := b.triage.AssessAll(tasks)
	list := &TaskList{
		View:        string(view),
		GeneratedAt: b.clock.Now(),
		Tasks:       make([]TaskView, len(triaged)),
		Counts:      make(map[string]int),
	}
	for i, tt := range triaged {
		list.Tasks[i] = NewTaskView(tt)
	}
	for bucket, n := range b.triage.CountByBucket(triaged) {
		list.Counts[bucket.String()] = n
	}
	return list, nil
}

func (b *businessAPIImpl) CountExpired(ctx context.Context) (int, error) {
	return b.queries.CountExpired(ctx)
}

// ========== Categories ==========

func (b *businessAPIImpl) GetOrCreateCategory(ctx context.Context, name string) (*CategoryView, error) {
	category, err := b.queries.GetOrCreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

func (b *businessAPIImpl) ListCategories(ctx context.Context, activeOnly bool) ([]CategoryView, error) {
	categories, err := b.queries.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, len(categories))
	for i, c := range categories {
		views[i] = CategoryView{ID: c.ID, Name: c.Name}
	}
	return views, nil
}

// ========== Widget ==========

func (b *businessAPIImpl) WidgetDigest(ctx context.Context, days int) (*widget.Digest, error) {
	tasks, err := b.queries.UrgentWithin(ctx, days)
	if err != nil {
		return nil, err
	}
	expired, err := b.queries.CountExpired(ctx)
	if err != nil {
		return nil, err
	}

	now := b.clock.Now()
	digest := &widget.Digest{
		GeneratedAt: now,
		WindowDays:  days,
		Expired:     expired,
		Messages:    make([]widget.Message, 0, len(tasks)),
	}
	for _, task := range tasks {
		tt := b.triage.AssessAt(task, now)
		digest.Messages = append(digest.Messages, widget.NewMessage(task.UID, task.Title, task.CategoryName(), tt.Assessment()))
	}
	return digest, nil
}
