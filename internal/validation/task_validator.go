package validation

import (
	"time"

	"deadlines/internal/config"
	"deadlines/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	minLen, maxLen := tv.validator.TitleMinLength(), tv.validator.TitleMaxLength()
	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed, minLen, maxLen)
	}
	if !tv.validator.IsPrintable(trimmed) {
		validationError.AddInvalidCharacterError("title", trimmed)
	}

	return validationError.OrNil()
}

// ValidateDueDate checks a due date against the configured horizon.
// A nil due date is valid.
func (tv *TaskValidator) ValidateDueDate(due *time.Time, now time.Time) error {
	if due == nil || tv.validator.IsReasonableDueDate(*due, now) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidRangeError("due_date", *due, "too far in the future")
	return validationError
}

// ValidateTaskForCreation validates the inputs of a new task
func (tv *TaskValidator) ValidateTaskForCreation(title string, due *time.Time, now time.Time) error {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTitle(title))
	validationError.Merge(tv.ValidateDueDate(due, now))
	return validationError.OrNil()
}

// ValidateTask validates a domain.Task, including the done flag invariant
func (tv *TaskValidator) ValidateTask(task domain.Task, now time.Time) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTitle(task.Title))
	validationError.Merge(tv.ValidateDueDate(task.DueDate, now))

	if task.ID != 0 && !tv.validator.IsValidTaskID(task.ID) {
		validationError.AddInvalidValueError("id", task.ID, "must be a positive integer")
	}
	if task.IsDone != (task.DoneDate != nil) {
		validationError.AddInvalidValueError("done_date", task.DoneDate, "must be set exactly when the task is done")
	}

	return validationError.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
