package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/domain"
	"deadlines/internal/errors"
	"deadlines/internal/logging"
	"deadlines/internal/repository/sqlite"
	"deadlines/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo              sqlite.Repository
	clock             clock.Clock
	mapper            *domain.Mapper
	taskValidator     *validation.TaskValidator
	categoryValidator *validation.CategoryValidator
	logger            *slog.Logger

	mu       sync.RWMutex
	observer TaskObserver
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, cfg *config.Config, clk clock.Clock, logger *slog.Logger) TaskService {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &taskServiceImpl{
		repo:              repo,
		clock:             clk,
		mapper:            domain.NewMapper(),
		taskValidator:     validation.NewTaskValidatorWithConfig(cfg),
		categoryValidator: validation.NewCategoryValidatorWithConfig(cfg),
		logger:            logger,
	}
}

func (t *taskServiceImpl) NewTask(title string, due *time.Time) domain.Task {
	return domain.NewTask(title, due)
}

// SetObserver replaces the registered observer
func (t *taskServiceImpl) SetObserver(observer TaskObserver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = observer
}

func (t *taskServiceImpl) notify(id int64) {
	t.mu.RLock()
	observer := t.observer
	t.mu.RUnlock()

	if observer != nil {
		observer(id)
	}
}

// resolveCategory returns nil for a blank name. Existing categories are
// read without opening a write transaction.
func (t *taskServiceImpl) resolveCategory(ctx context.Context, name string) (*domain.Category, error) {
	if domain.NormalizeCategoryName(name) == "" {
		return nil, nil
	}
	cleaned, err := t.categoryValidator.GetValidName(name)
	if err != nil {
		return nil, err
	}
	dbCategory, err := t.repo.GetCategoryByName(ctx, cleaned)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		dbCategory, err = t.repo.FindOrCreateCategory(ctx, cleaned)
	}
	if err != nil {
		return nil, err
	}
	category := t.mapper.Category.FromDatabase(*dbCategory)
	return &category, nil
}

// CreateTask validates and stores a new open task
func (t *taskServiceImpl) CreateTask(ctx context.Context, title string, due *time.Time, category string) (*domain.Task, error) {
	now := t.clock.Now()
	if err := t.taskValidator.ValidateTaskForCreation(title, due, now); err != nil {
		return nil, err
	}

	task := t.NewTask(title, due)
	task.CreatedAt = now

	cat, err := t.resolveCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	task.Category = cat

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	task.ID = dbTask.ID

	t.logger.Info("task created", "id", task.ID, "title", task.Title, "category", task.CategoryName())
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	domainTask := t.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// UpdateTask applies title, due date and category edits and returns the
// stored task. Completion is changed through ToggleDone only, so a toggle
// racing an edit is never undone.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title, err := t.taskValidator.GetValidTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	switch {
	case update.ClearDue:
		task.DueDate = nil
	case update.DueDate != nil:
		due := *update.DueDate
		task.DueDate = &due
	}
	if update.Category != nil {
		cat, err := t.resolveCategory(ctx, *update.Category)
		if err != nil {
			return nil, err
		}
		task.Category = cat
	}

	if err := t.taskValidator.ValidateTask(*task, t.clock.Now()); err != nil {
		return nil, err
	}

	dbTask := t.mapper.Task.ToDatabase(*task)
	if err := t.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	t.logger.Debug("task updated", "id", id)
	return t.GetTask(ctx, id)
}

// ToggleDone flips completion at the clock's current time and notifies the
// observer once.
func (t *taskServiceImpl) ToggleDone(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	dbTask, err := t.repo.ToggleTaskDone(ctx, id, t.clock.Now())
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	if task.IsDone {
		t.logger.Info("task completed", "id", id)
	} else {
		t.logger.Info("task reopened", "id", id)
	}

	t.notify(id)
	return &task, nil
}

// DeleteTask removes a task and notifies the observer once. The task's
// category is kept.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return err
	}

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	t.logger.Info("task deleted", "id", id)
	t.notify(id)
	return nil
}
