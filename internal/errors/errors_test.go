package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 123")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewDatabaseError("create task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: create task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("days", -2, "must not be negative")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for days: must not be negative" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	value, ok := err.GetContext("value")
	if !ok || value != -2 {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewStorageUnavailableError(t *testing.T) {
	cause := errors.New("unable to open database file")
	err := NewStorageUnavailableError("/tmp/sd.db", cause)

	if err.Type != ErrorTypeStorageUnavailable {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeStorageUnavailable)
	}
	if err.Code != "STORAGE_UNAVAILABLE" {
		t.Errorf("code = %v", err.Code)
	}
	location, ok := err.GetContext("location")
	if !ok || location != "/tmp/sd.db" {
		t.Errorf("should set location context")
	}
	if !errors.Is(err, cause) {
		t.Errorf("should wrap cause")
	}
}

func TestNewQueryFailedError(t *testing.T) {
	cause := errors.New("no such column: due_date")
	err := NewQueryFailedError("urgent", cause)

	if err.Type != ErrorTypeQueryFailed {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeQueryFailed)
	}
	if err.Message != "query failed: urgent" {
		t.Errorf("message = %v", err.Message)
	}
	view, ok := err.GetContext("view")
	if !ok || view != "urgent" {
		t.Errorf("should set view context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Type != ErrorTypeDatabase {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	wrapped := fmt.Errorf("outer: %w", NewQueryFailedError("today", nil))
	regularError := errors.New("regular error")

	if !IsErrorType(appError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if !IsErrorType(wrapped, ErrorTypeQueryFailed) {
		t.Errorf("IsErrorType should see through fmt wrapping")
	}
	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(regularError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}

	result, ok := AsAppError(appError)
	if !ok || result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(errors.New("regular error"))
	if ok || result != nil {
		t.Errorf("AsAppError should return nil, false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"not found", NewNotFoundError("task", "9"), "task not found: 9"},
		{"invalid input", NewInvalidInputError("days", -1, "must not be negative"), "invalid input for days: must not be negative"},
		{"database", NewDatabaseError("insert", nil), "A database error occurred. Please try again."},
		{"storage", NewStorageUnavailableError("x", nil), "The task store could not be opened. Check the database location."},
		{"query", NewQueryFailedError("today", nil), "The task list could not be loaded. Please try again."},
		{"plain", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(NewQueryFailedError("x", nil)); code != "QUERY_FAILED" {
		t.Errorf("GetErrorCode() = %v", code)
	}
	if code := GetErrorCode(errors.New("x")); code != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v", code)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation", NewValidationError("bad", nil), false},
		{"not found", NewNotFoundError("task", "1"), false},
		{"invalid input", NewInvalidInputError("f", 1, "r"), false},
		{"database", NewDatabaseError("op", nil), true},
		{"query failed", NewQueryFailedError("today", nil), true},
		{"storage", NewStorageUnavailableError("db", nil), true},
		{"unknown", errors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}
