package services

import (
	"context"
	"log/slog"

	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/domain"
	"deadlines/internal/errors"
	"deadlines/internal/logging"
	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite"
	"deadlines/internal/validation"
)

// queryServiceImpl implements the QueryService interface
type queryServiceImpl struct {
	repo              sqlite.Repository
	clock             clock.Clock
	mapper            *domain.Mapper
	builder           *query.Builder
	windowValidator   *validation.WindowValidator
	categoryValidator *validation.CategoryValidator
	logger            *slog.Logger
}

// NewQueryService creates a new QueryService instance. The urgent view
// defaults to the configured window.
func NewQueryService(repo sqlite.Repository, cfg *config.Config, clk clock.Clock, logger *slog.Logger) QueryService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &queryServiceImpl{
		repo:              repo,
		clock:             clk,
		mapper:            domain.NewMapper(),
		builder:           query.NewBuilder(cfg.Urgency.WindowDays),
		windowValidator:   validation.NewWindowValidatorWithConfig(cfg),
		categoryValidator: validation.NewCategoryValidatorWithConfig(cfg),
		logger:            logger,
	}
}

// View builds the named view for the current time and fetches it
func (q *queryServiceImpl) View(ctx context.Context, view query.View, params query.Params) ([]*domain.Task, error) {
	if view == query.ViewUrgent && params.Days != nil {
		if err := q.windowValidator.ValidateDays(*params.Days); err != nil {
			return nil, err
		}
	}

	qry, err := q.builder.Build(view, q.clock.Now(), params)
	if err != nil {
		return nil, err
	}

	dbTasks, err := q.repo.FetchTasks(ctx, qry)
	if err != nil {
		q.logFailure("view query failed", string(qry.View), err)
		return nil, err
	}

	tasks := q.mapper.Task.FromDatabaseSlice(dbTasks)
	q.logger.Debug("view fetched", "view", string(qry.View), "count", len(tasks))
	return tasks, nil
}

func (q *queryServiceImpl) Today(ctx context.Context) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewToday, query.Params{})
}

func (q *queryServiceImpl) Archive(ctx context.Context) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewArchive, query.Params{})
}

func (q *queryServiceImpl) ByCategory(ctx context.Context, name string) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewCategory, query.Params{Category: name})
}

func (q *queryServiceImpl) UrgentWithin(ctx context.Context, days int) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewUrgent, query.Params{Days: &days})
}

func (q *queryServiceImpl) Undone(ctx context.Context, category string) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewUndone, query.Params{Category: category})
}

func (q *queryServiceImpl) All(ctx context.Context, category string) ([]*domain.Task, error) {
	return q.View(ctx, query.ViewAll, query.Params{Category: category})
}

// CountExpired runs a count query; no rows are fetched
func (q *queryServiceImpl) CountExpired(ctx context.Context) (int, error) {
	n, err := q.repo.CountTasks(ctx, query.Expired(q.clock.Now()))
	if err != nil {
		q.logFailure("expired count failed", string(query.ViewExpired), err)
		return 0, err
	}
	return n, nil
}

// GetOrCreateCategory trims name and returns the single category holding it
func (q *queryServiceImpl) GetOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	cleaned, err := q.categoryValidator.GetValidName(name)
	if err != nil {
		return nil, err
	}

	dbCategory, err := q.repo.FindOrCreateCategory(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	category := q.mapper.Category.FromDatabase(*dbCategory)
	return &category, nil
}

func (q *queryServiceImpl) ListCategories(ctx context.Context, activeOnly bool) ([]*domain.Category, error) {
	dbCategories, err := q.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		q.logFailure("category listing failed", "categories", err)
		return nil, err
	}
	return q.mapper.Category.FromDatabaseSlice(dbCategories), nil
}

// logFailure logs storage and query failures. User errors are left to the caller.
func (q *queryServiceImpl) logFailure(msg, view string, err error) {
	if errors.ShouldLogError(err) {
		q.logger.Error(msg, "view", view, "error", err)
	}
}
