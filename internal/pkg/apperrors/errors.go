package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrPerevalNotFound = errors.New("pereval not found")
	ErrUserNotFound    = errors.New("user not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Update policy errors
	ErrUpdateRejected  = errors.New("update rejected")
	ErrNothingToUpdate = errors.New("nothing to update")

	// Persistence errors
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error carrying a field -> message map.
func NewValidationError(message string, fields map[string]interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: fields,
	}
}

// NewRejectedError creates an update-policy rejection with a reason message.
func NewRejectedError(message string) error {
	return &CustomError{
		Err:     ErrUpdateRejected,
		Message: message,
	}
}

// Details extracts the details map from err if it carries one.
func Details(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
