package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"deadlines/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTitleLength checks if a title length is within configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, v.TitleMinLength(), v.TitleMaxLength())
}

// IsPrintable rejects control characters such as newlines and tabs.
func (v *Validator) IsPrintable(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return false
		}
	}
	return true
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsReasonableDueDate accepts any past date and future dates up to the
// configured horizon.
func (v *Validator) IsReasonableDueDate(due, now time.Time) bool {
	return due.Before(now.AddDate(v.maxDueYears(), 0, 0))
}

// IsValidWindow checks an urgent-window length in days
func (v *Validator) IsValidWindow(days int) bool {
	return days >= 0 && days <= v.MaxWindowDays()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMinLength returns configured minimum title length or default
func (v *Validator) TitleMinLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMinLength
	}
	return 1
}

// TitleMaxLength returns configured maximum title length or default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

// CategoryMaxLength returns configured maximum category name length or default
func (v *Validator) CategoryMaxLength() int {
	if v.config != nil {
		return v.config.Validation.CategoryMaxLength
	}
	return 64
}

// MaxWindowDays returns the configured longest urgent window or default
func (v *Validator) MaxWindowDays() int {
	if v.config != nil {
		return v.config.Urgency.MaxWindowDays
	}
	return 365
}

func (v *Validator) maxDueYears() int {
	if v.config != nil {
		return v.config.Validation.MaxDueYears
	}
	return 10
}
