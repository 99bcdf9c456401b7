package cli

import (
	"errors"
	"fmt"

	apperrors "deadlines/internal/errors"
	"deadlines/internal/validation"
)

// CommandError is a failed command with a message fit for the terminal.
// The cause stays reachable through errors.Is and errors.As.
type CommandError struct {
	Operation string
	Message   string
	Err       error
}

func (e *CommandError) Error() string {
	if e.Operation == "" {
		return e.Message
	}
	return fmt.Sprintf("failed to %s: %s", e.Operation, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors.
// A nil error stays nil.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Operation: operation, Message: eh.message(err), Err: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Message: eh.message(err), Err: err}
}

func (eh *ErrorHandler) message(err error) string {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	if apperrors.IsAppError(err) {
		return apperrors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) || apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}

// ExitCode maps an error to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return 2
	case eh.IsNotFoundError(err):
		return 3
	case apperrors.IsErrorType(err, apperrors.ErrorTypeStorageUnavailable):
		return 4
	default:
		return 1
	}
}
