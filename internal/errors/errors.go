// Package errors provides custom error types for the HabitKit API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrAccountDeactivated = &AppError{Code: "ACCOUNT_DEACTIVATED", Message: "This account has been deactivated", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Habit errors.
var (
	ErrHabitNotFound           = &AppError{Code: "HABIT_NOT_FOUND", Message: "Habit not found", StatusCode: http.StatusNotFound}
	ErrHabitArchived           = &AppError{Code: "HABIT_ARCHIVED", Message: "This habit is archived", StatusCode: http.StatusConflict}
	ErrInvalidTaperingSchedule = &AppError{Code: "INVALID_TAPERING_SCHEDULE", Message: "Tapering end date must be after the start date", StatusCode: http.StatusBadRequest}
	ErrTaperingNotApplicable   = &AppError{Code: "TAPERING_NOT_APPLICABLE", Message: "Tapering requires a negative habit with a max goal", StatusCode: http.StatusBadRequest}
	ErrNotFixedDaysHabit       = &AppError{Code: "NOT_FIXED_DAYS_HABIT", Message: "Fixed-days tracking is not enabled for this habit", StatusCode: http.StatusBadRequest}
)

// Log errors.
var (
	ErrLogNotFound = &AppError{Code: "LOG_NOT_FOUND", Message: "Habit log not found", StatusCode: http.StatusNotFound}
)

// Journal errors.
var (
	ErrJournalEntryNotFound = &AppError{Code: "JOURNAL_ENTRY_NOT_FOUND", Message: "Journal entry not found", StatusCode: http.StatusNotFound}
)
