// Package error defines domain-specific errors for the card ledger engine.
package error

import "errors"

// Stats and dashboard errors.
var (
	// ErrInvalidYear is returned when the requested series year is out of range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidTotalType is returned when a total is requested for a type
	// other than income or expense.
	ErrInvalidTotalType = errors.New("totals are only defined for income and expense")

	// ErrInvalidDateRange is returned when the end of a range precedes its start.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// StatsErrorCode defines error codes for stats errors.
// Format: STS-XXYYYY where XX is category and YYYY is specific error.
type StatsErrorCode string

const (
	ErrCodeInvalidYear      StatsErrorCode = "STS-010001"
	ErrCodeInvalidTotalType StatsErrorCode = "STS-010002"
	ErrCodeInvalidDateRange StatsErrorCode = "STS-010003"
)

// StatsError represents a stats error with code and message.
type StatsError struct {
	Code    StatsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatsError) Unwrap() error {
	return e.Err
}

// NewStatsError creates a new StatsError with the given code and message.
func NewStatsError(code StatsErrorCode, message string, err error) *StatsError {
	return &StatsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
