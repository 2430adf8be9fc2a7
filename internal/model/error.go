package model

import "errors"

// Error codes returned to API clients. They double as DomainError codes.
const (
	ErrCodeMissingCodeOrGame = "missing_code_or_game"
	ErrCodeMissingCode       = "missing_code"
	ErrCodeInvalidCode       = "invalid_code"
	ErrCodeBindingNotFound   = "binding_not_found"
	ErrCodeSaveFailed        = "save_failed"
	ErrCodeInternalError     = "internal_error"
)

// DomainError is a business rule failure with a stable, client-facing code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingCodeOrGame = NewDomainError(ErrCodeMissingCodeOrGame, "Code and game are both required")
	ErrMissingCode       = NewDomainError(ErrCodeMissingCode, "Code is required")
	ErrInvalidCode       = NewDomainError(ErrCodeInvalidCode, "Code is not available for binding")
	ErrBindingNotFound   = NewDomainError(ErrCodeBindingNotFound, "No binding exists for this code")
	ErrSaveFailed        = NewDomainError(ErrCodeSaveFailed, "Failed to persist the code document")
)

// ErrorCode extracts the client-facing code from err. Errors that are not
// domain errors map to ErrCodeInternalError.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrCodeInternalError
}
