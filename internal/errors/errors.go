package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrExpenseNotFound is returned when an expense is missing or owned by
	// another user. The two cases are indistinguishable to the caller.
	ErrExpenseNotFound = errors.New("Expense not found")
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidPeriod is returned for an unrecognized trend period.
	ErrInvalidPeriod = errors.New("Invalid period. Choose 'month' or 'week'.")
	// ErrInvalidStartDate is returned for a malformed start_date parameter.
	ErrInvalidStartDate = errors.New("Invalid start_date format. Use YYYY-MM-DD.")
	// ErrInvalidMonthYear is returned for malformed month/year parameters.
	ErrInvalidMonthYear = errors.New("Invalid month or year format.")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationError carries field-level validation failures. It serializes
// as a field -> message object, mirroring the per-field 400 body.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrExpenseNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case ErrInvalidPeriod:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PERIOD")
	case ErrInvalidStartDate:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_START_DATE")
	case ErrInvalidMonthYear:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_MONTH_YEAR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
