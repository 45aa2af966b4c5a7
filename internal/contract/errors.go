package contract

import "github.com/alexanderramin/backplan/internal/app"

type ValidationErrorCode = app.ValidationErrorCode

const (
	ErrMissingDeadline   ValidationErrorCode = app.ErrMissingDeadline
	ErrMissingTemplate   ValidationErrorCode = app.ErrMissingTemplate
	ErrTemplateNotFound  ValidationErrorCode = app.ErrTemplateNotFound
	ErrMissingBureau     ValidationErrorCode = app.ErrMissingBureau
	ErrMissingWork       ValidationErrorCode = app.ErrMissingWork
	ErrWorkNotFound      ValidationErrorCode = app.ErrWorkNotFound
	ErrInvalidDateRange  ValidationErrorCode = app.ErrInvalidDateRange
	ErrInvalidPersonIDs  ValidationErrorCode = app.ErrInvalidPersonIDs
	ErrInvalidAssignment ValidationErrorCode = app.ErrInvalidAssignment
)

type ValidationError = app.ValidationError

func IsValidation(err error, codes ...ValidationErrorCode) bool {
	return app.IsValidation(err, codes...)
}
