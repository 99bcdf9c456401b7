package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deadlines/internal/errors"
	"deadlines/internal/query"
	"deadlines/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
	ToggleTaskDone(ctx context.Context, id int64, now time.Time) (*Task, error)

	// View operations
	FetchTasks(ctx context.Context, q query.Query) ([]*Task, error)
	CountTasks(ctx context.Context, q query.Query) (int, error)

	// Category operations
	FindOrCreateCategory(ctx context.Context, name string) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*Category, error)

	// Utility
	Close() error
}

// Options tunes a repository. Zero values mean no per-call timeout and no logging.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	BusyTimeout    time.Duration
	DirPermissions os.FileMode
	Logger         *slog.Logger
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db     *sql.DB
	opts   Options
	logger *slog.Logger
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, creating parent directories as needed, and
// applies pending migrations. Any failure to reach the store is reported as
// a storage-unavailable error.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.NewStorageUnavailableError(dbPath, fmt.Errorf("database path is empty"))
	}
	if !isMemoryPath(dbPath) && !strings.HasPrefix(dbPath, "file:") {
		perm := opts.DirPermissions
		if perm == 0 {
			perm = 0o755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perm); err != nil {
			return nil, errors.NewStorageUnavailableError(dbPath, err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath, opts.BusyTimeout))
	if err != nil {
		return nil, errors.NewStorageUnavailableError(dbPath, err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewStorageUnavailableError(dbPath, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewStorageUnavailableError(dbPath, err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("opened task store", "path", dbPath)

	return &SQLiteRepository{db: db, opts: opts, logger: logger}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func sqliteDSN(path string, busyTimeout time.Duration) string {
	if isMemoryPath(path) || strings.HasPrefix(path, "file:") {
		return path
	}
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.WriteTimeout)
	}
	return context.WithCancel(ctx)
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

const selectTasks = `
	SELECT ` + taskColumns + `
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id`

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	stmt := `
	INSERT INTO tasks (uid, title, due_date, is_done, done_date, category_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, stmt,
		task.UID, task.Title, FormatTimePtrForDB(task.DueDate), boolToInt(task.IsDone),
		FormatTimePtrForDB(task.DoneDate), nullableID(task.CategoryID), FormatTimeForDB(task.CreatedAt))
	if err != nil {
		return err
	}

	task.ID = id
	r.logger.Debug("created task", "id", id, "uid", task.UID)
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return getTask(ctx, r.db, id)
}

func getTask(ctx context.Context, db Executor, id int64) (*Task, error) {
	return QuerySingle(ctx, db, selectTasks+` WHERE t.id = ?`, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// UpdateTask writes the title, due date and category of an existing task.
// is_done and done_date are left alone; ToggleTaskDone owns them.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	stmt := `
	UPDATE tasks
	SET title = ?, due_date = ?, category_id = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, stmt, "task", fmt.Sprintf("%d", task.ID),
		task.Title, FormatTimePtrForDB(task.DueDate), nullableID(task.CategoryID), task.ID)
}

// DeleteTask deletes a task by ID. Its category is kept.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	stmt := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, stmt, "task", fmt.Sprintf("%d", id), id)
}

// ToggleTaskDone flips the done flag and stamps or clears the completion
// date in one transaction, returning the updated row.
func (r *SQLiteRepository) ToggleTaskDone(ctx context.Context, id int64, now time.Time) (*Task, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	var updated *Task
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}

		var doneDate interface{}
		if !current.IsDone {
			doneDate = FormatTimeForDB(now)
		}

		stmt := `UPDATE tasks SET is_done = ?, done_date = ? WHERE id = ?`
		if err := ExecuteWithRowsAffected(ctx, tx, stmt, "task", fmt.Sprintf("%d", id),
			boolToInt(!current.IsDone), doneDate, id); err != nil {
			return err
		}

		updated, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("toggled task", "id", id, "done", updated.IsDone)
	return updated, nil
}

// FetchTasks returns the rows matching a view query in its sort order.
// An empty result is not an error.
func (r *SQLiteRepository) FetchTasks(ctx context.Context, q query.Query) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	where, args := buildWhere(q.Predicate)
	stmt := selectTasks + where + buildOrderBy(q.Sort)
	r.logger.Debug("fetch tasks", "view", string(q.View), "where", where, "args", len(args))

	tasks, err := QueryMultiple(ctx, r.db, stmt, ScanTasks, queryFailedWrapper(string(q.View)), args...)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	return tasks, nil
}

// CountTasks counts the rows matching a view query.
func (r *SQLiteRepository) CountTasks(ctx context.Context, q query.Query) (int, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	where, args := buildWhere(q.Predicate)
	stmt := `
	SELECT COUNT(*)
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id` + where

	var count int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, errors.NewQueryFailedError(string(q.View), err)
	}
	return count, nil
}

// FindOrCreateCategory returns the category named name, inserting it first
// when missing. The name must already be trimmed and non-empty.
func (r *SQLiteRepository) FindOrCreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, errors.NewInvalidInputError("category", name, "category name must not be empty")
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	var category *Category
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
			return HandleDatabaseError("insert category", err)
		}
		var err error
		category, err = QuerySingle(ctx, tx, `SELECT id, name FROM categories WHERE name = ?`, ScanCategory, "category", name, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategoryByName retrieves a category by its exact name
func (r *SQLiteRepository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return QuerySingle(ctx, r.db, `SELECT id, name FROM categories WHERE name = ?`, ScanCategory, "category", name, name)
}

// ListCategories returns categories ordered by name. With activeOnly, only
// categories holding at least one open task are returned.
func (r *SQLiteRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	stmt := `SELECT c.id, c.name FROM categories c`
	if activeOnly {
		stmt += ` WHERE EXISTS (SELECT 1 FROM tasks t WHERE t.category_id = c.id AND t.done_date IS NULL)`
	}
	stmt += ` ORDER BY c.name ASC, c.id ASC`

	categories, err := QueryMultiple(ctx, r.db, stmt, ScanCategories, queryFailedWrapper("categories"))
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
