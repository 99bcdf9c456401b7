package validation

import (
	"deadlines/internal/config"
	"deadlines/internal/domain"
)

// CategoryValidator validates category names
type CategoryValidator struct {
	validator *Validator
}

// NewCategoryValidator creates a category validator with default limits
func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{validator: NewValidator()}
}

// NewCategoryValidatorWithConfig creates a category validator using configured limits
func NewCategoryValidatorWithConfig(cfg *config.Config) *CategoryValidator {
	return &CategoryValidator{validator: NewValidatorWithConfig(cfg)}
}

// GetValidName trims name and checks it is non-empty, printable and short
// enough. Case is preserved.
func (cv *CategoryValidator) GetValidName(name string) (string, error) {
	validationError := NewValidationError()

	trimmed := domain.NormalizeCategoryName(name)
	if trimmed == "" {
		validationError.AddRequiredError("category")
		return "", validationError
	}
	if !cv.validator.IsValidStringLength(trimmed, 1, cv.validator.CategoryMaxLength()) {
		validationError.AddInvalidLengthError("category", trimmed, 1, cv.validator.CategoryMaxLength())
	}
	if !cv.validator.IsPrintable(trimmed) {
		validationError.AddInvalidCharacterError("category", trimmed)
	}

	if err := validationError.OrNil(); err != nil {
		return "", err
	}
	return trimmed, nil
}
