package domain

import (
	"github.com/google/uuid"

	"deadlines/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	dbTask := sqlite.Task{
		ID:        domainTask.ID,
		UID:       domainTask.UID.String(),
		Title:     domainTask.Title,
		DueDate:   domainTask.DueDate,
		IsDone:    domainTask.IsDone,
		DoneDate:  domainTask.DoneDate,
		CreatedAt: domainTask.CreatedAt,
	}
	if domainTask.Category != nil {
		id := domainTask.Category.ID
		name := domainTask.Category.Name
		dbTask.CategoryID = &id
		dbTask.CategoryName = &name
	}
	return dbTask
}

// FromDatabase converts a database Task to a domain Task. A malformed UID
// maps to uuid.Nil.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	uid, err := uuid.Parse(dbTask.UID)
	if err != nil {
		uid = uuid.Nil
	}
	task := Task{
		ID:        dbTask.ID,
		UID:       uid,
		Title:     dbTask.Title,
		DueDate:   dbTask.DueDate,
		IsDone:    dbTask.IsDone,
		DoneDate:  dbTask.DoneDate,
		CreatedAt: dbTask.CreatedAt,
	}
	if dbTask.CategoryID != nil {
		category := &Category{ID: *dbTask.CategoryID}
		if dbTask.CategoryName != nil {
			category.Name = *dbTask.CategoryName
		}
		task.Category = category
	}
	return task
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
// The result is never nil.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		task := m.FromDatabase(*dbTask)
		domainTasks[i] = &task
	}
	return domainTasks
}

// CategoryMapper handles conversion between domain and database Category models.
type CategoryMapper struct{}

// NewCategoryMapper creates a new CategoryMapper instance.
func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

// ToDatabase converts a domain Category to a database Category.
func (m *CategoryMapper) ToDatabase(domainCategory Category) sqlite.Category {
	return sqlite.Category{ID: domainCategory.ID, Name: domainCategory.Name}
}

// FromDatabase converts a database Category to a domain Category.
func (m *CategoryMapper) FromDatabase(dbCategory sqlite.Category) Category {
	return Category{ID: dbCategory.ID, Name: dbCategory.Name}
}

// FromDatabaseSlice converts a slice of database Categories to domain Categories.
func (m *CategoryMapper) FromDatabaseSlice(dbCategories []*sqlite.Category) []*Category {
	categories := make([]*Category, len(dbCategories))
	for i, c := range dbCategories {
		category := m.FromDatabase(*c)
		categories[i] = &category
	}
	return categories
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task     *TaskMapper
	Category *CategoryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:     NewTaskMapper(),
		Category: NewCategoryMapper(),
	}
}
