package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/domain"
	"deadlines/internal/errors"
	"deadlines/internal/logging"
	"deadlines/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queryFixture struct {
	tasks   TaskService
	queries QueryService
	clock   *clock.FakeClock
}

func setupQueryFixture(t *testing.T, cfg *config.Config) *queryFixture {
	t.Helper()
	repo := setupRepository(t)
	clk := clock.Fake(day0)
	return &queryFixture{
		tasks:   NewTaskService(repo, cfg, clk, nil),
		queries: NewQueryService(repo, cfg, clk, nil),
		clock:   clk,
	}
}

// completeAt marks the task done with the clock set to when, then restores it
func (f *queryFixture) completeAt(t *testing.T, id int64, when time.Time) {
	t.Helper()
	saved := f.clock.Now()
	f.clock.Set(when)
	_, err := f.tasks.ToggleDone(context.Background(), id)
	require.NoError(t, err)
	f.clock.Set(saved)
}

func (f *queryFixture) create(t *testing.T, title string, due *time.Time, category string) *domain.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), title, due, category)
	require.NoError(t, err)
	return task
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestQueryService_TodayAndArchive(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	f.create(t, "B", daysFrom(day0, 2), "")
	f.create(t, "A", daysFrom(day0, 0), "")
	c := f.create(t, "C", daysFrom(day0, 10), "")
	f.completeAt(t, c.ID, day0.AddDate(0, 0, -1))

	today, err := f.queries.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(today))

	archive, err := f.queries.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, titles(archive))

	// Completed earlier today stays in Today and out of Archive.
	b := today[1]
	f.completeAt(t, b.ID, day0.Add(-time.Hour))

	today, err = f.queries.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(today))

	archive, err = f.queries.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, titles(archive))
}

func TestQueryService_EmptyResultIsNotAnError(t *testing.T) {
	f := setupQueryFixture(t, nil)

	tasks, err := f.queries.Today(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestQueryService_ByCategory(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	f.create(t, "report", daysFrom(day0, 1), "Work")
	f.create(t, "groceries", daysFrom(day0, 0), "Home")
	f.create(t, "loose end", daysFrom(day0, 0), "")

	tasks, err := f.queries.ByCategory(ctx, " Work ")
	require.NoError(t, err)
	assert.Equal(t, []string{"report"}, titles(tasks))

	tasks, err = f.queries.ByCategory(ctx, "work")
	require.NoError(t, err)
	assert.Empty(t, tasks, "category names are case-sensitive")

	_, err = f.queries.ByCategory(ctx, "  ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestQueryService_UrgentWithin(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	f.create(t, "overdue", daysFrom(day0, -2), "")
	f.create(t, "today", daysFrom(day0, 0), "")
	f.create(t, "in one", daysFrom(day0, 1), "")
	f.create(t, "in three", daysFrom(day0, 3), "")
	f.create(t, "in four", daysFrom(day0, 4), "")
	f.create(t, "no deadline", nil, "")
	done := f.create(t, "done", daysFrom(day0, 1), "")
	f.completeAt(t, done.ID, day0)

	tests := []struct {
		days     int
		expected []string
	}{
		{0, []string{"overdue", "today"}},
		{1, []string{"overdue", "today", "in one"}},
		{3, []string{"overdue", "today", "in one", "in three"}},
		{4, []string{"overdue", "today", "in one", "in three", "in four"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			tasks, err := f.queries.UrgentWithin(ctx, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(tasks))
		})
	}

	_, err := f.queries.UrgentWithin(ctx, -1)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = f.queries.UrgentWithin(ctx, 366)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestQueryService_UrgentUsesConfiguredWindow(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Urgency.WindowDays = 1
	f := setupQueryFixture(t, cfg)

	f.create(t, "in one", daysFrom(day0, 1), "")
	f.create(t, "in two", daysFrom(day0, 2), "")

	tasks, err := f.queries.View(context.Background(), query.ViewUrgent, query.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"in one"}, titles(tasks))
}

func TestQueryService_UndoneAndAll(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	f.create(t, "open work", daysFrom(day0, 1), "Work")
	closed := f.create(t, "closed work", daysFrom(day0, 2), "Work")
	f.create(t, "open home", daysFrom(day0, 3), "Home")
	f.completeAt(t, closed.ID, day0.AddDate(0, 0, -3))

	undone, err := f.queries.Undone(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"open work", "open home"}, titles(undone))

	undone, err = f.queries.Undone(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, []string{"open work"}, titles(undone))

	all, err := f.queries.All(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, []string{"open work", "closed work"}, titles(all))

	all, err = f.queries.All(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestQueryService_CountExpired(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *queryFixture)
		expected int
	}{
		{
			name:     "zero",
			setup:    func(t *testing.T, f *queryFixture) { f.create(t, "future", daysFrom(day0, 1), "") },
			expected: 0,
		},
		{
			name: "one",
			setup: func(t *testing.T, f *queryFixture) {
				due := day0.Add(-time.Minute)
				f.create(t, "just missed", &due, "")
				f.create(t, "no deadline", nil, "")
			},
			expected: 1,
		},
		{
			name: "many",
			setup: func(t *testing.T, f *queryFixture) {
				exact := day0
				f.create(t, "due right now", &exact, "")
				f.create(t, "last week", daysFrom(day0, -7), "")
				f.create(t, "yesterday", daysFrom(day0, -1), "Work")
				done := f.create(t, "done late", daysFrom(day0, -2), "")
				f.completeAt(t, done.ID, day0)
				later := day0.Add(time.Minute)
				f.create(t, "later today", &later, "")
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupQueryFixture(t, nil)
			tt.setup(t, f)

			count, err := f.queries.CountExpired(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestQueryService_GetOrCreateCategory(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	padded, err := f.queries.GetOrCreateCategory(ctx, " Work ")
	require.NoError(t, err)
	plain, err := f.queries.GetOrCreateCategory(ctx, "Work")
	require.NoError(t, err)

	assert.Equal(t, "Work", padded.Name)
	assert.Equal(t, padded.ID, plain.ID)

	all, err := f.queries.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.queries.GetOrCreateCategory(ctx, "\t ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestQueryService_ListCategories(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	f.create(t, "open", nil, "Active")
	closed := f.create(t, "closed", nil, "Finished")
	f.completeAt(t, closed.ID, day0)
	_, err := f.queries.GetOrCreateCategory(ctx, "Empty")
	require.NoError(t, err)

	all, err := f.queries.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := f.queries.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active", active[0].Name)
}

func TestQueryService_DeletingLastTaskKeepsCategory(t *testing.T) {
	f := setupQueryFixture(t, nil)
	ctx := context.Background()

	task := f.create(t, "only one", nil, "Lonely")
	require.NoError(t, f.tasks.DeleteTask(ctx, task.ID))

	all, err := f.queries.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Lonely", all[0].Name)
}

func TestQueryService_FailuresAreNotEmptyResults(t *testing.T) {
	cause := errors.NewQueryFailedError("today", fmt.Errorf("no such table: tasks"))
	service := NewQueryService(&failingRepository{err: cause}, nil, clock.Fake(day0), nil)
	ctx := context.Background()

	tasks, err := service.Today(ctx)
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, errors.ErrQueryFailed)

	count, err := service.CountExpired(ctx)
	assert.Zero(t, count)
	assert.ErrorIs(t, err, errors.ErrQueryFailed)

	categories, err := service.ListCategories(ctx, true)
	assert.Nil(t, categories)
	assert.ErrorIs(t, err, errors.ErrQueryFailed)
}

func TestQueryService_LogsOnlyStorageFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		logged bool
	}{
		{"query failed", errors.NewQueryFailedError("today", fmt.Errorf("disk I/O error")), true},
		{"storage unavailable", errors.NewStorageUnavailableError("/nowhere/sd.db", nil), true},
		{"not found", errors.NewNotFoundError("category", "Work"), false},
		{"invalid input", errors.NewInvalidInputError("days", -1, "must not be negative"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(&buf, "error", logging.FormatText)
			require.NoError(t, err)
			service := NewQueryService(&failingRepository{err: tt.err}, nil, clock.Fake(day0), logger)

			_, err = service.Today(context.Background())
			assert.ErrorIs(t, err, tt.err)

			if tt.logged {
				assert.Contains(t, buf.String(), "view query failed")
				assert.Contains(t, buf.String(), "view=today")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestQueryService_UnknownView(t *testing.T) {
	f := setupQueryFixture(t, nil)

	_, err := f.queries.View(context.Background(), query.View("someday"), query.Params{})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
