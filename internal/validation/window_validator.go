package validation

import "deadlines/internal/config"

// WindowValidator validates urgent-window lengths
type WindowValidator struct {
	validator *Validator
}

// NewWindowValidator creates a window validator with default limits
func NewWindowValidator() *WindowValidator {
	return &WindowValidator{validator: NewValidator()}
}

// NewWindowValidatorWithConfig creates a window validator using configured limits
func NewWindowValidatorWithConfig(cfg *config.Config) *WindowValidator {
	return &WindowValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateDays accepts 0 through the configured maximum.
func (wv *WindowValidator) ValidateDays(days int) error {
	if wv.validator.IsValidWindow(days) {
		return nil
	}
	validationError := NewValidationError()
	if days < 0 {
		validationError.AddInvalidRangeError("days", days, "must not be negative")
	} else {
		validationError.AddInvalidRangeError("days", days, "exceeds the longest allowed window")
	}
	return validationError
}
