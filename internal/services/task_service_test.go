package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/errors"
	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func daysFrom(t time.Time, n int) *time.Time {
	d := t.AddDate(0, 0, n)
	return &d
}

func setupRepository(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTaskService(t *testing.T) (TaskService, *clock.FakeClock, sqlite.Repository) {
	t.Helper()
	repo := setupRepository(t)
	clk := clock.Fake(day0)
	return NewTaskService(repo, config.NewConfig(), clk, nil), clk, repo
}

// failingRepository fails every call with err
type failingRepository struct {
	err error
}

func (f *failingRepository) CreateTask(ctx context.Context, task *sqlite.Task) error { return f.err }
func (f *failingRepository) GetTask(ctx context.Context, id int64) (*sqlite.Task, error) {
	return nil, f.err
}
func (f *failingRepository) UpdateTask(ctx context.Context, task *sqlite.Task) error { return f.err }
func (f *failingRepository) DeleteTask(ctx context.Context, id int64) error          { return f.err }
func (f *failingRepository) ToggleTaskDone(ctx context.Context, id int64, now time.Time) (*sqlite.Task, error) {
	return nil, f.err
}
func (f *failingRepository) FetchTasks(ctx context.Context, q query.Query) ([]*sqlite.Task, error) {
	return nil, f.err
}
func (f *failingRepository) CountTasks(ctx context.Context, q query.Query) (int, error) {
	return 0, f.err
}
func (f *failingRepository) FindOrCreateCategory(ctx context.Context, name string) (*sqlite.Category, error) {
	return nil, f.err
}
func (f *failingRepository) GetCategoryByName(ctx context.Context, name string) (*sqlite.Category, error) {
	return nil, f.err
}
func (f *failingRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*sqlite.Category, error) {
	return nil, f.err
}
func (f *failingRepository) Close() error { return nil }

// toggleAfterReadRepository completes a task right after its first read,
// as another writer would between an edit's read and its write.
type toggleAfterReadRepository struct {
	sqlite.Repository
	at      time.Time
	toggled bool
}

func (r *toggleAfterReadRepository) GetTask(ctx context.Context, id int64) (*sqlite.Task, error) {
	task, err := r.Repository.GetTask(ctx, id)
	if err != nil || r.toggled {
		return task, err
	}
	r.toggled = true
	if _, err := r.Repository.ToggleTaskDone(ctx, id, r.at); err != nil {
		return nil, err
	}
	return task, nil
}

// categoryLookupRepository counts category writes
type categoryLookupRepository struct {
	sqlite.Repository
	creates int
}

func (r *categoryLookupRepository) FindOrCreateCategory(ctx context.Context, name string) (*sqlite.Category, error) {
	r.creates++
	return r.Repository.FindOrCreateCategory(ctx, name)
}

func TestTaskService_NewTask(t *testing.T) {
	service, _, _ := setupTaskService(t)

	task := service.NewTask("  Pay rent  ", daysFrom(day0, 2))

	assert.Equal(t, "Pay rent", task.Title)
	assert.Zero(t, task.ID, "new tasks are not persisted")
	assert.NotEqual(t, uuid.Nil, task.UID)
	assert.False(t, task.IsDone)
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name             string
		title            string
		due              *time.Time
		category         string
		expectedCategory string
		errorAssertion   func(t *testing.T, err error)
	}{
		{
			name:  "should create task with due date",
			title: "Pay rent",
			due:   daysFrom(day0, 2),
		},
		{
			name:  "should create task without due date",
			title: "Someday",
		},
		{
			name:             "should trim category name",
			title:            "Write report",
			category:         "  Work ",
			expectedCategory: "Work",
		},
		{
			name:  "should reject empty title",
			title: "   ",
			errorAssertion: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				assert.Contains(t, err.Error(), "title")
			},
		},
		{
			name:  "should reject very long title",
			title: strings.Repeat("x", 300),
			errorAssertion: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
			},
		},
		{
			name:  "should reject due date beyond the horizon",
			title: "Retire",
			due:   daysFrom(day0, 365*20),
			errorAssertion: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				assert.Contains(t, err.Error(), "due_date")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := setupTaskService(t)
			ctx := context.Background()

			result, err := service.CreateTask(ctx, tt.title, tt.due, tt.category)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Greater(t, result.ID, int64(0))
			assert.Equal(t, strings.TrimSpace(tt.title), result.Title)
			assert.Equal(t, tt.expectedCategory, result.CategoryName())
			assert.True(t, result.CreatedAt.Equal(day0))

			stored, err := service.GetTask(ctx, result.ID)
			require.NoError(t, err)
			assert.Equal(t, result.UID, stored.UID)
			assert.Equal(t, tt.expectedCategory, stored.CategoryName())
			assert.Equal(t, tt.due == nil, stored.DueDate == nil)
		})
	}
}

func TestTaskService_GetTask(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.CreateTask(ctx, "Test Task", nil, "")
	require.NoError(t, err)

	t.Run("should return existing task", func(t *testing.T) {
		result, err := service.GetTask(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test Task", result.Title)
	})

	t.Run("should return not found error for non-existent task", func(t *testing.T) {
		result, err := service.GetTask(ctx, 999)
		assert.Nil(t, result)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.IsType(errors.ErrorTypeNotFound))
	})

	t.Run("should return validation error for invalid ID", func(t *testing.T) {
		_, err := service.GetTask(ctx, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "id")
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.CreateTask(ctx, "Draft", daysFrom(day0, 1), "Home")
	require.NoError(t, err)

	title := "  Final  "
	work := "Work"
	updated, err := service.UpdateTask(ctx, created.ID, TaskUpdate{Title: &title, ClearDue: true, Category: &work})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Work", updated.CategoryName())

	stored, err := service.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Nil(t, stored.DueDate)
	assert.Equal(t, "Work", stored.CategoryName())

	none := ""
	updated, err = service.UpdateTask(ctx, created.ID, TaskUpdate{Category: &none, DueDate: daysFrom(day0, 5)})
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	require.NotNil(t, updated.DueDate)

	blank := " "
	_, err = service.UpdateTask(ctx, created.ID, TaskUpdate{Title: &blank})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = service.UpdateTask(ctx, 999, TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestTaskService_UpdateTask_KeepsConcurrentCompletion(t *testing.T) {
	base := setupRepository(t)
	seed := NewTaskService(base, config.NewConfig(), clock.Fake(day0), nil)
	ctx := context.Background()

	created, err := seed.CreateTask(ctx, "Draft", daysFrom(day0, 1), "")
	require.NoError(t, err)

	repo := &toggleAfterReadRepository{Repository: base, at: day0}
	service := NewTaskService(repo, config.NewConfig(), clock.Fake(day0), nil)

	title := "Final"
	updated, err := service.UpdateTask(ctx, created.ID, TaskUpdate{Title: &title})
	require.NoError(t, err)
	require.True(t, repo.toggled)

	assert.Equal(t, "Final", updated.Title)
	assert.True(t, updated.IsDone)

	stored, err := base.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.True(t, stored.IsDone)
	require.NotNil(t, stored.DoneDate)
	assert.True(t, stored.DoneDate.Equal(day0))
}

func TestTaskService_ExistingCategoryIsNotRecreated(t *testing.T) {
	repo := &categoryLookupRepository{Repository: setupRepository(t)}
	service := NewTaskService(repo, config.NewConfig(), clock.Fake(day0), nil)
	ctx := context.Background()

	first, err := service.CreateTask(ctx, "Pay rent", nil, "Home")
	require.NoError(t, err)
	second, err := service.CreateTask(ctx, "Water plants", nil, " Home ")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, first.Category.ID, second.Category.ID)
}

func TestTaskService_ToggleDone_FiresObserverOnce(t *testing.T) {
	service, clk, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.CreateTask(ctx, "Ship it", daysFrom(day0, 0), "")
	require.NoError(t, err)

	var events []int64
	service.SetObserver(func(id int64) { events = append(events, id) })

	done, err := service.ToggleDone(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.IsDone)
	require.NotNil(t, done.DoneDate)
	assert.True(t, done.DoneDate.Equal(day0), "done date should be the clock reading")
	assert.Equal(t, []int64{created.ID}, events)

	clk.Advance(time.Hour)
	reopened, err := service.ToggleDone(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsDone)
	assert.Nil(t, reopened.DoneDate)
	assert.Equal(t, []int64{created.ID, created.ID}, events)
}

func TestTaskService_DeleteTask(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.CreateTask(ctx, "Temporary", nil, "Errands")
	require.NoError(t, err)

	var events []int64
	service.SetObserver(func(id int64) { events = append(events, id) })

	require.NoError(t, service.DeleteTask(ctx, created.ID))
	assert.Equal(t, []int64{created.ID}, events)

	_, err = service.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = service.DeleteTask(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Len(t, events, 1, "failed deletes do not notify")
}

func TestTaskService_SetObserver(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.CreateTask(ctx, "Observed", nil, "")
	require.NoError(t, err)

	var first, second int
	service.SetObserver(func(int64) { first++ })
	service.SetObserver(func(int64) { second++ })

	_, err = service.ToggleDone(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first, "registration replaces the previous observer")
	assert.Equal(t, 1, second)

	service.SetObserver(nil)
	_, err = service.ToggleDone(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second)

	_, err = service.ToggleDone(ctx, 4242)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestTaskService_RepositoryErrorsPropagate(t *testing.T) {
	cause := errors.NewDatabaseError("exec", fmt.Errorf("disk I/O error"))
	service := NewTaskService(&failingRepository{err: cause}, nil, clock.Fake(day0), nil)
	ctx := context.Background()

	called := false
	service.SetObserver(func(int64) { called = true })

	_, err := service.CreateTask(ctx, "x", nil, "")
	assert.ErrorIs(t, err, cause)

	_, err = service.CreateTask(ctx, "x", nil, "Work")
	assert.ErrorIs(t, err, cause)

	_, err = service.ToggleDone(ctx, 1)
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, service.DeleteTask(ctx, 1), cause)
	assert.False(t, called)
}
