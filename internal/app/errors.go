package app

import "errors"

type ValidationErrorCode string

const (
	ErrMissingDeadline   ValidationErrorCode = "MISSING_DEADLINE"
	ErrMissingTemplate   ValidationErrorCode = "MISSING_TEMPLATE"
	ErrTemplateNotFound  ValidationErrorCode = "TEMPLATE_NOT_FOUND"
	ErrMissingBureau     ValidationErrorCode = "MISSING_BUREAU"
	ErrMissingWork       ValidationErrorCode = "MISSING_WORK"
	ErrWorkNotFound      ValidationErrorCode = "WORK_NOT_FOUND"
	ErrInvalidDateRange  ValidationErrorCode = "INVALID_DATE_RANGE"
	ErrInvalidPersonIDs  ValidationErrorCode = "INVALID_PERSON_IDS"
	ErrInvalidAssignment ValidationErrorCode = "INVALID_ASSIGNMENT"
)

// ValidationError is a caller-facing, non-retryable input error.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newValidationError(code ValidationErrorCode, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

// NewValidationError builds a ValidationError with the given code.
func NewValidationError(code ValidationErrorCode, msg string) error {
	return newValidationError(code, msg)
}

// IsValidation reports whether err wraps a ValidationError, optionally
// matching one of codes.
func IsValidation(err error, codes ...ValidationErrorCode) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if ve.Code == c {
			return true
		}
	}
	return false
}
