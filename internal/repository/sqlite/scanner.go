package sqlite

import (
	"database/sql"
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns matches the scan order of ScanTask. Queries alias tasks as t
// and categories as c.
const taskColumns = `t.id, t.uid, t.title, t.due_date, t.is_done, t.done_date, t.category_id, c.name, t.created_at`

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		dueDate      sql.NullString
		doneDate     sql.NullString
		categoryID   sql.NullInt64
		categoryName sql.NullString
		createdAt    string
	)

	err := scanner.Scan(
		&task.ID,
		&task.UID,
		&task.Title,
		&dueDate,
		&task.IsDone,
		&doneDate,
		&categoryID,
		&categoryName,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if task.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, err
	}
	if task.DoneDate, err = parseNullTime(doneDate); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := categoryID.Int64
		task.CategoryID = &id
	}
	if categoryName.Valid {
		name := categoryName.String
		task.CategoryName = &name
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanCategory scans a single category from a database row
func ScanCategory(scanner Scanner) (*Category, error) {
	category := &Category{}
	if err := scanner.Scan(&category.ID, &category.Name); err != nil {
		return nil, err
	}
	return category, nil
}

// ScanCategories scans multiple categories from database rows
func ScanCategories(rows Rows) ([]*Category, error) {
	var categories []*Category
	for rows.Next() {
		category, err := ScanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
